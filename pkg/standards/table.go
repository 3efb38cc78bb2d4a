package standards

import (
	"sort"
	"strings"
)

const (
	Football     = "FOOTBALL"
	Soccer       = "SOCCER"
	Lacrosse     = "LACROSSE"
	FieldHockey  = "FIELD_HOCKEY"
	Baseball     = "BASEBALL"
	MultiPurpose = "MULTI_PURPOSE"
)

// Table is an immutable lookup of standards by field type. Build it once at
// startup and hand it to whatever needs it.
type Table struct {
	byType   map[string]SportStandards
	fallback string
}

func builtin() []SportStandards {
	return []SportStandards{
		{
			FieldType:   Football,
			Gmax:        GmaxStandard{Optimal: Range{60, 120}, SafetyLimit: 200},
			Shear:       BandStandard{Optimal: Range{25, 35}, Range: Range{15, 45}},
			InfillDepth: BandStandard{Optimal: Range{1.5, 2.0}, Range: Range{1.0, 2.5}},
		},
		{
			FieldType:   Soccer,
			Gmax:        GmaxStandard{Optimal: Range{60, 115}, SafetyLimit: 200},
			Shear:       BandStandard{Optimal: Range{22, 32}, Range: Range{15, 45}},
			InfillDepth: BandStandard{Optimal: Range{1.5, 2.25}, Range: Range{1.0, 2.75}},
		},
		{
			FieldType:   Lacrosse,
			Gmax:        GmaxStandard{Optimal: Range{60, 110}, SafetyLimit: 200},
			Shear:       BandStandard{Optimal: Range{25, 35}, Range: Range{15, 45}},
			InfillDepth: BandStandard{Optimal: Range{1.5, 2.0}, Range: Range{1.0, 2.5}},
		},
		{
			FieldType:   FieldHockey,
			Gmax:        GmaxStandard{Optimal: Range{50, 100}, SafetyLimit: 200},
			Shear:       BandStandard{Optimal: Range{20, 30}, Range: Range{12, 40}},
			InfillDepth: BandStandard{Optimal: Range{0.75, 1.25}, Range: Range{0.5, 1.75}},
		},
		{
			FieldType:   Baseball,
			Gmax:        GmaxStandard{Optimal: Range{60, 125}, SafetyLimit: 200},
			Shear:       BandStandard{Optimal: Range{25, 38}, Range: Range{15, 48}},
			InfillDepth: BandStandard{Optimal: Range{1.5, 2.25}, Range: Range{1.0, 2.75}},
		},
	}
}

// Default returns the built-in table. MULTI_PURPOSE is derived as the union
// of the sport rows and doubles as the fallback for unknown types.
func Default() *Table {
	t, _ := newTable(builtin())
	return t
}

func newTable(rows []SportStandards) (*Table, error) {
	t := &Table{byType: make(map[string]SportStandards, len(rows)+1), fallback: MultiPurpose}
	sports := make([]SportStandards, 0, len(rows))
	for _, s := range rows {
		s.FieldType = NormalizeType(s.FieldType)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		t.byType[s.FieldType] = s
	}
	if _, ok := t.byType[MultiPurpose]; !ok {
		for _, k := range t.sortedKeys() {
			sports = append(sports, t.byType[k])
		}
		t.byType[MultiPurpose] = Union(MultiPurpose, sports...)
	}
	return t, nil
}

// NormalizeType maps user input such as "field hockey" or "Field-Hockey"
// onto the table key FIELD_HOCKEY.
func NormalizeType(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// Get never fails: unknown or empty types resolve to the fallback standard.
func (t *Table) Get(fieldType string) SportStandards {
	if s, ok := t.byType[NormalizeType(fieldType)]; ok {
		return s
	}
	return t.byType[t.fallback]
}

// Known reports whether fieldType has its own row (not the fallback).
func (t *Table) Known(fieldType string) bool {
	_, ok := t.byType[NormalizeType(fieldType)]
	return ok
}

func (t *Table) Types() []string { return t.sortedKeys() }

func (t *Table) All() []SportStandards {
	out := make([]SportStandards, 0, len(t.byType))
	for _, k := range t.sortedKeys() {
		out = append(out, t.byType[k])
	}
	return out
}

func (t *Table) sortedKeys() []string {
	keys := make([]string, 0, len(t.byType))
	for k := range t.byType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package standards holds the per-sport testing thresholds used to judge
// field surface safety.
package standards

import (
	"fmt"
	"math"
)

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Within reports whether r lies entirely inside outer.
func (r Range) Within(outer Range) bool { return r.Min >= outer.Min && r.Max <= outer.Max }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (r Range) valid() bool {
	return finite(r.Min) && finite(r.Max) && r.Min <= r.Max
}

// GmaxStandard: lower is safer, SafetyLimit is the hard ceiling.
type GmaxStandard struct {
	Optimal     Range   `json:"optimal"`
	SafetyLimit float64 `json:"safety_limit"`
}

// BandStandard is used for shear and infill depth where the middle of the
// band is safest and both ends are a concern.
type BandStandard struct {
	Optimal Range `json:"optimal"`
	Range   Range `json:"range"`
}

type SportStandards struct {
	FieldType   string       `json:"field_type"`
	Gmax        GmaxStandard `json:"gmax"`
	Shear       BandStandard `json:"shear"`
	InfillDepth BandStandard `json:"infill_depth"` // inches
}

func (g GmaxStandard) Validate() error {
	if !g.Optimal.valid() {
		return fmt.Errorf("gmax optimal %v..%v is not an ordered pair", g.Optimal.Min, g.Optimal.Max)
	}
	if g.SafetyLimit <= 0 || !finite(g.SafetyLimit) {
		return fmt.Errorf("gmax safety limit must be positive and finite, got %v", g.SafetyLimit)
	}
	if !g.Optimal.Within(Range{Min: 0, Max: g.SafetyLimit}) {
		return fmt.Errorf("gmax optimal %v..%v outside 0..%v", g.Optimal.Min, g.Optimal.Max, g.SafetyLimit)
	}
	return nil
}

func (b BandStandard) Validate() error {
	if !b.Optimal.valid() || !b.Range.valid() {
		return fmt.Errorf("band %v..%v / %v..%v is not ordered", b.Optimal.Min, b.Optimal.Max, b.Range.Min, b.Range.Max)
	}
	if b.Range.Min < 0 {
		return fmt.Errorf("range minimum %v is negative", b.Range.Min)
	}
	if !b.Optimal.Within(b.Range) {
		return fmt.Errorf("optimal %v..%v outside range %v..%v", b.Optimal.Min, b.Optimal.Max, b.Range.Min, b.Range.Max)
	}
	return nil
}

func (s SportStandards) Validate() error {
	if err := s.Gmax.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.FieldType, err)
	}
	if err := s.Shear.Validate(); err != nil {
		return fmt.Errorf("%s shear: %w", s.FieldType, err)
	}
	if err := s.InfillDepth.Validate(); err != nil {
		return fmt.Errorf("%s infill depth: %w", s.FieldType, err)
	}
	return nil
}

// Union returns the most permissive standard covering every input: widest
// optimal and acceptable bands, highest safety limit.
func Union(fieldType string, in ...SportStandards) SportStandards {
	out := SportStandards{FieldType: fieldType}
	for i, s := range in {
		if i == 0 {
			out.Gmax = s.Gmax
			out.Shear = s.Shear
			out.InfillDepth = s.InfillDepth
			continue
		}
		out.Gmax.Optimal = widen(out.Gmax.Optimal, s.Gmax.Optimal)
		out.Gmax.SafetyLimit = math.Max(out.Gmax.SafetyLimit, s.Gmax.SafetyLimit)
		out.Shear = BandStandard{Optimal: widen(out.Shear.Optimal, s.Shear.Optimal), Range: widen(out.Shear.Range, s.Shear.Range)}
		out.InfillDepth = BandStandard{Optimal: widen(out.InfillDepth.Optimal, s.InfillDepth.Optimal), Range: widen(out.InfillDepth.Range, s.InfillDepth.Range)}
	}
	return out
}

func widen(a, b Range) Range {
	return Range{Min: math.Min(a.Min, b.Min), Max: math.Max(a.Max, b.Max)}
}

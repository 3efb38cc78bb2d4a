package standards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFromFile reads standard overrides from a CSV or XLSX file and merges
// them over the built-in rows. An empty path returns the defaults.
func LoadFromFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	overrides, err := parseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	merged := map[string]SportStandards{}
	order := []string{}
	for _, s := range builtin() {
		merged[s.FieldType] = s
		order = append(order, s.FieldType)
	}
	for _, s := range overrides {
		if _, ok := merged[s.FieldType]; !ok {
			order = append(order, s.FieldType)
		}
		merged[s.FieldType] = s
	}
	list := make([]SportStandards, 0, len(order))
	for _, k := range order {
		list = append(list, merged[k])
	}
	return newTable(list)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()
	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return x.GetRows(sheets[0])
}

var columns = []struct {
	key     string
	aliases []string
}{
	{"type", []string{"field_type", "type", "sport", "fieldtype"}},
	{"gmax_opt_min", []string{"gmax_optimal_min", "gmax_min"}},
	{"gmax_opt_max", []string{"gmax_optimal_max", "gmax_max"}},
	{"gmax_limit", []string{"gmax_safety_limit", "safety_limit", "gmax_limit"}},
	{"shear_opt_min", []string{"shear_optimal_min"}},
	{"shear_opt_max", []string{"shear_optimal_max"}},
	{"shear_rng_min", []string{"shear_range_min", "shear_min"}},
	{"shear_rng_max", []string{"shear_range_max", "shear_max"}},
	{"infill_opt_min", []string{"infill_optimal_min", "infill_depth_optimal_min"}},
	{"infill_opt_max", []string{"infill_optimal_max", "infill_depth_optimal_max"}},
	{"infill_rng_min", []string{"infill_range_min", "infill_depth_range_min", "infill_min"}},
	{"infill_rng_max", []string{"infill_range_max", "infill_depth_range_max", "infill_max"}},
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

func parseRows(rows [][]string) ([]SportStandards, error) {
	if len(rows) == 0 {
		return nil, errors.New("standards file is empty")
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[normHeader(h)] = i
	}
	idx := map[string]int{}
	var missing []string
	for _, c := range columns {
		idx[c.key] = -1
		for _, a := range c.aliases {
			if i, ok := hmap[normHeader(a)]; ok {
				idx[c.key] = i
				break
			}
		}
		if idx[c.key] == -1 {
			missing = append(missing, c.aliases[0])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %v (found %v)", missing, rows[0])
	}

	var out []SportStandards
	for n, rec := range rows[1:] {
		get := func(key string) string {
			i := idx[key]
			if i < 0 || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("type") == "" {
			continue
		}
		var perr error
		num := func(key string) float64 {
			v, err := strconv.ParseFloat(get(key), 64)
			if err != nil && perr == nil {
				perr = fmt.Errorf("row %d column %s: %w", n+2, key, err)
			}
			return v
		}
		s := SportStandards{
			FieldType: NormalizeType(get("type")),
			Gmax: GmaxStandard{
				Optimal:     Range{Min: num("gmax_opt_min"), Max: num("gmax_opt_max")},
				SafetyLimit: num("gmax_limit"),
			},
			Shear: BandStandard{
				Optimal: Range{Min: num("shear_opt_min"), Max: num("shear_opt_max")},
				Range:   Range{Min: num("shear_rng_min"), Max: num("shear_rng_max")},
			},
			InfillDepth: BandStandard{
				Optimal: Range{Min: num("infill_opt_min"), Max: num("infill_opt_max")},
				Range:   Range{Min: num("infill_rng_min"), Max: num("infill_rng_max")},
			},
		}
		if perr != nil {
			return nil, perr
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

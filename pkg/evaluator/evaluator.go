// Package evaluator turns averaged field test readings into metric statuses,
// an overall status, a risk level and maintenance suggestions.
//
// Everything here is pure: no clock, no storage, no shared mutable state.
// An *Evaluator may be used from any number of goroutines.
package evaluator

import (
	"fmt"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type Config struct {
	// GoodBufferRatio of the GMAX safety limit under which a reading above
	// optimal is still GOOD.
	GoodBufferRatio float64
	// BaselineTempF and TempCoefficient drive the heat projection of GMAX.
	BaselineTempF   float64
	TempCoefficient float64
	// StaleFieldAgeYears escalates risk by one step when reached.
	StaleFieldAgeYears float64
	// TestingIntervals holds days until the next test, indexed by Severity.
	TestingIntervals [4]int
}

func DefaultConfig() Config {
	return Config{
		GoodBufferRatio:    0.8,
		BaselineTempF:      70,
		TempCoefficient:    0.004,
		StaleFieldAgeYears: 8,
		TestingIntervals:   [4]int{180, 90, 30, ContinuousMonitoring},
	}
}

// Context carries optional modifiers. A nil pointer disables the matching
// adjustment.
type Context struct {
	TemperatureF  *float64
	FieldAgeYears *float64
}

type Readings struct {
	Gmax        []float64
	Shear       []float64
	InfillDepth []float64
}

type Averages struct {
	Gmax        float64 `json:"gmax"`
	Shear       float64 `json:"shear"`
	InfillDepth float64 `json:"infill_depth"`
}

type MetricResult struct {
	Metric   Metric   `json:"metric"`
	Value    float64  `json:"value"`
	Status   Severity `json:"status"`
	Position Position `json:"position"`
	// BoundaryProximity is 0..1 inside the MONITOR band toward CRITICAL.
	BoundaryProximity float64 `json:"boundary_proximity"`
}

type FieldHealthInsight struct {
	FieldType              string           `json:"field_type"`
	OverallStatus          Severity         `json:"overall_status"`
	RiskLevel              RiskLevel        `json:"risk_level"`
	Metrics                []MetricResult   `json:"metrics"`
	PrimaryConcerns        []string         `json:"primary_concerns"`
	Recommendations        []Recommendation `json:"recommendations"`
	NextTestingRecommended int              `json:"next_testing_recommended"`
	Heat                   HeatImpact       `json:"heat"`
	FieldAgeYears          *float64         `json:"field_age_years,omitempty"`
	AgeEscalated           bool             `json:"age_escalated"`
}

// Result returns the result for m, or false when absent.
func (in FieldHealthInsight) Result(m Metric) (MetricResult, bool) {
	for _, r := range in.Metrics {
		if r.Metric == m {
			return r, true
		}
	}
	return MetricResult{}, false
}

type Evaluation struct {
	Averages Averages           `json:"averages"`
	Insight  FieldHealthInsight `json:"insight"`
}

type Evaluator struct {
	table *standards.Table
	cfg   Config
}

func New(table *standards.Table, cfg Config) *Evaluator {
	if table == nil {
		table = standards.Default()
	}
	return &Evaluator{table: table, cfg: cfg}
}

func (e *Evaluator) Standards(fieldType string) standards.SportStandards {
	return e.table.Get(fieldType)
}

func (e *Evaluator) Config() Config { return e.cfg }

// ClassifyMetric classifies one averaged value against std.
func (e *Evaluator) ClassifyMetric(v float64, std standards.SportStandards, kind Metric) (Severity, error) {
	switch kind {
	case MetricGmax:
		return ClassifyGmax(v, std.Gmax, e.cfg.GoodBufferRatio)
	case MetricShear:
		return ClassifyBand(v, std.Shear)
	case MetricInfillDepth:
		return ClassifyBand(v, std.InfillDepth)
	}
	return Critical, fmt.Errorf("%w: unknown metric %q", ErrInvalidInput, kind)
}

// NextTestingDays maps a severity to the fixed re-test interval.
func (e *Evaluator) NextTestingDays(s Severity) int {
	if !s.Valid() {
		return ContinuousMonitoring
	}
	return e.cfg.TestingIntervals[s]
}

func (e *Evaluator) result(v float64, std standards.SportStandards, kind Metric) (MetricResult, error) {
	sev, err := e.ClassifyMetric(v, std, kind)
	if err != nil {
		return MetricResult{}, fmt.Errorf("%s: %w", kind, err)
	}
	r := MetricResult{Metric: kind, Value: v, Status: sev, Position: Within}
	switch kind {
	case MetricGmax:
		if v > std.Gmax.Optimal.Max {
			r.Position = Above
		}
	case MetricShear:
		r.Position = bandPosition(v, std.Shear)
	case MetricInfillDepth:
		r.Position = bandPosition(v, std.InfillDepth)
	}
	if sev == Monitor {
		r.BoundaryProximity = monitorProximity(kind, v, std, e.cfg.GoodBufferRatio)
	} else if sev == Critical {
		r.BoundaryProximity = 1
	}
	return r, nil
}

// EvaluateField evaluates three averages for a field type. Absent context
// values simply disable their adjustment. The only failure is an averaged
// value outside its domain, reported as ErrInvalidInput.
func (e *Evaluator) EvaluateField(gmaxAvg, shearAvg, infillAvg float64, fieldType string, ctx Context) (FieldHealthInsight, error) {
	std := e.table.Get(fieldType)

	metrics := make([]MetricResult, 0, 3)
	for _, in := range []struct {
		v    float64
		kind Metric
	}{{gmaxAvg, MetricGmax}, {shearAvg, MetricShear}, {infillAvg, MetricInfillDepth}} {
		r, err := e.result(in.v, std, in.kind)
		if err != nil {
			return FieldHealthInsight{}, err
		}
		metrics = append(metrics, r)
	}

	overall := Worst(metrics[0].Status, metrics[1].Status, metrics[2].Status)

	heat := HeatImpact{MeasuredGmax: gmaxAvg, AdjustedGmax: gmaxAvg, AdjustedStatus: metrics[0].Status}
	if adj, ok := AdjustGmax(gmaxAvg, ctx.TemperatureF, e.cfg.BaselineTempF, e.cfg.TempCoefficient); ok {
		t := *ctx.TemperatureF
		heat.Applied = true
		heat.TemperatureF = &t
		heat.AdjustedGmax = adj
		heat.Delta = adj - gmaxAvg
		// adj is finite and non-negative, classification cannot fail
		heat.AdjustedStatus, _ = ClassifyGmax(adj, std.Gmax, e.cfg.GoodBufferRatio)
		heat.Escalates = heat.AdjustedStatus > metrics[0].Status
	}

	var age *float64
	stale := false
	if ctx.FieldAgeYears != nil {
		a := *ctx.FieldAgeYears
		age = &a
		stale = e.cfg.StaleFieldAgeYears > 0 && a >= e.cfg.StaleFieldAgeYears
	}

	steps := 0
	if stale {
		steps++
	}
	if heat.Escalates {
		steps++
	}

	concerns := []string{}
	for _, m := range metrics {
		if c := concernFor(m, std); c != "" {
			concerns = append(concerns, c)
		}
	}

	ageYears := 0.0
	if age != nil {
		ageYears = *age
	}

	return FieldHealthInsight{
		FieldType:              std.FieldType,
		OverallStatus:          overall,
		RiskLevel:              escalate(baseRisk(overall), steps),
		Metrics:                metrics,
		PrimaryConcerns:        concerns,
		Recommendations:        recommend(metrics, std, stale, ageYears),
		NextTestingRecommended: e.NextTestingDays(overall),
		Heat:                   heat,
		FieldAgeYears:          age,
		AgeEscalated:           stale,
	}, nil
}

// EvaluateReadings averages raw readings and evaluates them. Any empty
// reading set fails with ErrEmptyInput before a status is computed.
func (e *Evaluator) EvaluateReadings(r Readings, fieldType string, ctx Context) (Evaluation, error) {
	var avg Averages
	var err error
	if avg.Gmax, err = Average(r.Gmax); err != nil {
		return Evaluation{}, fmt.Errorf("gmax readings: %w", err)
	}
	if avg.Shear, err = Average(r.Shear); err != nil {
		return Evaluation{}, fmt.Errorf("shear readings: %w", err)
	}
	if avg.InfillDepth, err = Average(r.InfillDepth); err != nil {
		return Evaluation{}, fmt.Errorf("infill depth readings: %w", err)
	}
	insight, err := e.EvaluateField(avg.Gmax, avg.Shear, avg.InfillDepth, fieldType, ctx)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluation{Averages: avg, Insight: insight}, nil
}

package evaluator

import (
	"encoding/json"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

func f64(v float64) *float64 { return &v }

func newEval() *Evaluator { return New(standards.Default(), DefaultConfig()) }

func football() standards.SportStandards { return standards.Default().Get(standards.Football) }

// representative FOOTBALL values for each severity
var (
	gmaxBy   = map[Severity]float64{Excellent: 61, Good: 150, Monitor: 180, Critical: 205}
	shearBy  = map[Severity]float64{Excellent: 30, Good: 22, Monitor: 17, Critical: 10}
	infillBy = map[Severity]float64{Excellent: 1.83, Good: 1.3, Monitor: 1.1, Critical: 0.8}
)

func TestAverage(t *testing.T) {
	_, err := Average(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = Average([]float64{})
	assert.ErrorIs(t, err, ErrEmptyInput)

	v, err := Average([]float64{42.5})
	require.NoError(t, err)
	assert.Equal(t, 42.5, v)

	v, err = Average([]float64{62, 58, 65, 59, 61, 64, 57, 60, 63, 66, 55, 62})
	require.NoError(t, err)
	assert.Equal(t, 61.0, v)

	_, err = Average([]float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAverage_RejectsNegativeReading(t *testing.T) {
	_, err := Average([]float64{-40, 100})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "reading 0")

	_, err = Average([]float64{1.8, 2.0, -0.01})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "reading 2")

	v, err := Average([]float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestEvaluateReadings_NegativeReadingsNeverBecomeStatus(t *testing.T) {
	e := newEval()
	_, err := e.EvaluateReadings(Readings{
		Gmax:        []float64{100},
		Shear:       []float64{-40, 100},
		InfillDepth: []float64{1.8},
	}, standards.Football, Context{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.EvaluateReadings(Readings{
		Gmax:        []float64{100},
		Shear:       []float64{30},
		InfillDepth: []float64{-1.0, 5.0},
	}, standards.Football, Context{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyGmax_Bands(t *testing.T) {
	std := football().Gmax
	cases := []struct {
		v    float64
		want Severity
	}{
		{0, Excellent}, {61, Excellent}, {120, Excellent},
		{120.1, Good}, {160, Good},
		{160.1, Monitor}, {200, Monitor},
		{200.1, Critical}, {205, Critical},
	}
	for _, c := range cases {
		got, err := ClassifyGmax(c.v, std, 0.8)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "gmax %v", c.v)
	}
}

func TestClassifyGmax_RejectsOutOfDomain(t *testing.T) {
	std := football().Gmax
	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := ClassifyGmax(v, std, 0.8)
		assert.ErrorIs(t, err, ErrInvalidInput, "%v", v)
	}
}

func TestClassifyGmax_Monotonic(t *testing.T) {
	for _, std := range standards.Default().All() {
		prev := Excellent
		for v := 0.0; v <= 300; v += 0.5 {
			got, err := ClassifyGmax(v, std.Gmax, 0.8)
			require.NoError(t, err)
			require.GreaterOrEqual(t, int(got), int(prev), "%s at %v", std.FieldType, v)
			prev = got
		}
	}
}

func TestClassifyBand_Shear(t *testing.T) {
	std := football().Shear // optimal 25-35, range 15-45
	cases := []struct {
		v    float64
		want Severity
	}{
		{30, Excellent}, {25, Excellent}, {35, Excellent},
		{20, Good}, {40, Good},
		{19, Monitor}, {15, Monitor}, {41, Monitor}, {45, Monitor},
		{14.9, Critical}, {10, Critical}, {45.1, Critical},
	}
	for _, c := range cases {
		got, err := ClassifyBand(c.v, std)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "shear %v", c.v)
	}
}

func TestClassifyBand_RejectsNegative(t *testing.T) {
	_, err := ClassifyBand(-0.1, football().InfillDepth)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ClassifyBand(math.NaN(), football().Shear)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyMetric_UnknownKind(t *testing.T) {
	_, err := newEval().ClassifyMetric(1, football(), Metric("wind"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluateField_WorstOfThree(t *testing.T) {
	e := newEval()
	all := []Severity{Excellent, Good, Monitor, Critical}
	for _, g := range all {
		for _, s := range all {
			for _, i := range all {
				in, err := e.EvaluateField(gmaxBy[g], shearBy[s], infillBy[i], standards.Football, Context{})
				require.NoError(t, err)
				assert.Equal(t, g, in.Metrics[0].Status)
				assert.Equal(t, s, in.Metrics[1].Status)
				assert.Equal(t, i, in.Metrics[2].Status)
				assert.Equal(t, Worst(g, s, i), in.OverallStatus, "g=%s s=%s i=%s", g, s, i)
			}
		}
	}
}

func TestEvaluateReadings_AllGood(t *testing.T) {
	ev, err := newEval().EvaluateReadings(Readings{
		Gmax:        []float64{62, 58, 65, 59, 61, 64, 57, 60, 63, 66, 55, 62},
		Shear:       []float64{30},
		InfillDepth: []float64{1.83},
	}, "FOOTBALL", Context{})
	require.NoError(t, err)

	assert.Equal(t, 61.0, ev.Averages.Gmax)
	in := ev.Insight
	assert.Equal(t, Excellent, in.OverallStatus)
	assert.Equal(t, []string{}, in.PrimaryConcerns)
	assert.Empty(t, in.Recommendations)
	assert.Equal(t, RiskLow, in.RiskLevel)
	assert.Equal(t, 180, in.NextTestingRecommended)
	assert.False(t, in.Heat.Applied)

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"primary_concerns":[]`)
	assert.Contains(t, string(raw), `"overall_status":"EXCELLENT"`)
}

func TestEvaluateField_GmaxOverLimit(t *testing.T) {
	in, err := newEval().EvaluateField(205, 30, 1.83, standards.Football, Context{})
	require.NoError(t, err)

	assert.Equal(t, Critical, in.OverallStatus)
	assert.Equal(t, ContinuousMonitoring, in.NextTestingRecommended)
	assert.Equal(t, RiskSevere, in.RiskLevel)
	require.Len(t, in.PrimaryConcerns, 1)
	assert.Contains(t, in.PrimaryConcerns[0], "GMAX exceeds safety limit")
	require.NotEmpty(t, in.Recommendations)
	assert.Equal(t, PriorityCritical, in.Recommendations[0].Priority)
	assert.Equal(t, MetricGmax, in.Recommendations[0].Metric)
	assert.Equal(t, 0, in.Recommendations[0].DueInDays)
}

func TestEvaluateField_ShearBelowRange(t *testing.T) {
	in, err := newEval().EvaluateField(61, 10, 1.83, standards.Football, Context{})
	require.NoError(t, err)

	shear, ok := in.Result(MetricShear)
	require.True(t, ok)
	assert.Equal(t, Critical, shear.Status)
	assert.Equal(t, Below, shear.Position)
	assert.Equal(t, Critical, in.OverallStatus)
	require.Len(t, in.PrimaryConcerns, 1)
	assert.Contains(t, in.PrimaryConcerns[0], "below acceptable range")
}

func TestEvaluateReadings_EmptyReadings(t *testing.T) {
	_, err := newEval().EvaluateReadings(Readings{
		Gmax:        []float64{},
		Shear:       []float64{30},
		InfillDepth: []float64{1.8},
	}, standards.Football, Context{})
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = newEval().EvaluateReadings(Readings{
		Gmax:  []float64{100},
		Shear: []float64{30},
	}, standards.Football, Context{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestEvaluateField_InvalidAveragesFail(t *testing.T) {
	e := newEval()
	_, err := e.EvaluateField(math.NaN(), 30, 1.8, standards.Football, Context{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.EvaluateField(100, 30, -1, standards.Football, Context{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluateField_Idempotent(t *testing.T) {
	e := newEval()
	ctx := Context{TemperatureF: f64(92), FieldAgeYears: f64(9.5)}
	a, err := e.EvaluateField(175, 18, 1.2, standards.Soccer, ctx)
	require.NoError(t, err)
	b, err := e.EvaluateField(175, 18, 1.2, standards.Soccer, ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateField_ConcurrentCallsAgree(t *testing.T) {
	e := newEval()
	ctx := Context{TemperatureF: f64(98)}
	want, err := e.EvaluateField(170, 20, 1.4, standards.Lacrosse, ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]FieldHealthInsight, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.EvaluateField(170, 20, 1.4, standards.Lacrosse, ctx)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEvaluateField_UnknownTypeUsesMultiPurpose(t *testing.T) {
	in, err := newEval().EvaluateField(100, 30, 1.8, "quidditch", Context{})
	require.NoError(t, err)
	assert.Equal(t, standards.MultiPurpose, in.FieldType)
}

func TestAdjustGmax(t *testing.T) {
	v, ok := AdjustGmax(137.25, f64(70), 70, 0.004)
	assert.True(t, ok)
	assert.Equal(t, 137.25, v)

	v, ok = AdjustGmax(137.25, nil, 70, 0.004)
	assert.False(t, ok)
	assert.Equal(t, 137.25, v)

	v, ok = AdjustGmax(100, f64(95), 70, 0.004)
	assert.True(t, ok)
	assert.InDelta(t, 110.0, v, 1e-9)

	v, _ = AdjustGmax(100, f64(-500), 70, 0.004)
	assert.Equal(t, 0.0, v)
}

func TestEvaluateField_HeatEscalatesRiskNotStatus(t *testing.T) {
	e := newEval()
	in, err := e.EvaluateField(155, 30, 1.83, standards.Football, Context{TemperatureF: f64(100)})
	require.NoError(t, err)

	assert.Equal(t, Good, in.OverallStatus)
	assert.True(t, in.Heat.Applied)
	assert.InDelta(t, 173.6, in.Heat.AdjustedGmax, 1e-9)
	assert.Equal(t, Monitor, in.Heat.AdjustedStatus)
	assert.True(t, in.Heat.Escalates)
	assert.Equal(t, RiskModerate, in.RiskLevel)

	gmax, _ := in.Result(MetricGmax)
	assert.Equal(t, 155.0, gmax.Value, "measured value is kept for classification")
	assert.Equal(t, Good, gmax.Status)
}

func TestEvaluateField_BaselineTemperatureChangesNothing(t *testing.T) {
	e := newEval()
	plain, err := e.EvaluateField(158, 30, 1.83, standards.Football, Context{})
	require.NoError(t, err)
	warm, err := e.EvaluateField(158, 30, 1.83, standards.Football, Context{TemperatureF: f64(70)})
	require.NoError(t, err)

	assert.Equal(t, 158.0, warm.Heat.AdjustedGmax)
	assert.Equal(t, 0.0, warm.Heat.Delta)
	assert.False(t, warm.Heat.Escalates)
	assert.Equal(t, plain.RiskLevel, warm.RiskLevel)
	assert.Equal(t, plain.OverallStatus, warm.OverallStatus)
}

func TestEvaluateField_AgeEscalation(t *testing.T) {
	e := newEval()
	young, err := e.EvaluateField(61, 17, 1.83, standards.Football, Context{FieldAgeYears: f64(3)})
	require.NoError(t, err)
	assert.Equal(t, RiskModerate, young.RiskLevel)
	assert.False(t, young.AgeEscalated)

	old, err := e.EvaluateField(61, 17, 1.83, standards.Football, Context{FieldAgeYears: f64(10)})
	require.NoError(t, err)
	assert.Equal(t, Monitor, old.OverallStatus)
	assert.Equal(t, RiskHigh, old.RiskLevel)
	assert.True(t, old.AgeEscalated)

	var lifecycle bool
	for _, r := range old.Recommendations {
		if r.Metric == MetricFieldAge {
			lifecycle = true
			assert.Equal(t, "lifecycle", r.Category)
		}
	}
	assert.True(t, lifecycle)
}

func TestEvaluateField_HeatAndAgeCapAtSevere(t *testing.T) {
	in, err := newEval().EvaluateField(180, 30, 1.83, standards.Football,
		Context{TemperatureF: f64(100), FieldAgeYears: f64(12)})
	require.NoError(t, err)
	assert.Equal(t, Monitor, in.OverallStatus)
	assert.Equal(t, RiskSevere, in.RiskLevel)
}

func TestRecommendations_OrderedBySeverity(t *testing.T) {
	// gmax 180 sits halfway into MONITOR (high), shear 22 is GOOD (low),
	// infill 0.8 is CRITICAL.
	in, err := newEval().EvaluateField(180, 22, 0.8, standards.Football, Context{})
	require.NoError(t, err)
	require.Len(t, in.Recommendations, 3)

	assert.Equal(t, MetricInfillDepth, in.Recommendations[0].Metric)
	assert.Equal(t, PriorityCritical, in.Recommendations[0].Priority)
	assert.Equal(t, MetricGmax, in.Recommendations[1].Metric)
	assert.Equal(t, PriorityHigh, in.Recommendations[1].Priority)
	assert.Equal(t, MetricShear, in.Recommendations[2].Metric)
	assert.Equal(t, PriorityLow, in.Recommendations[2].Priority)
	for _, r := range in.Recommendations {
		assert.Equal(t, "pending", r.Status)
		assert.NotEmpty(t, r.Title)
	}
}

func TestRecommendations_MonitorNearGoodIsMedium(t *testing.T) {
	in, err := newEval().EvaluateField(170, 30, 1.83, standards.Football, Context{})
	require.NoError(t, err)
	require.Len(t, in.Recommendations, 1)
	assert.Equal(t, PriorityMedium, in.Recommendations[0].Priority)
	assert.Equal(t, 14, in.Recommendations[0].DueInDays)
}

func TestNextTestingDays_ShorterForWorse(t *testing.T) {
	e := newEval()
	prev := math.MaxInt
	for _, s := range []Severity{Excellent, Good, Monitor, Critical} {
		d := e.NextTestingDays(s)
		assert.Less(t, d, prev, s.String())
		prev = d
	}
	assert.Equal(t, ContinuousMonitoring, e.NextTestingDays(Critical))
}

func TestParseSeverity_LegacyVocabulary(t *testing.T) {
	cases := map[string]Severity{
		"EXCELLENT": Excellent, "good": Good, "PASSED": Good,
		"Monitor": Monitor, "FAILED": Critical, "critical": Critical,
	}
	for in, want := range cases {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSeverity("meh")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeverity_JSONAndScan(t *testing.T) {
	raw, err := json.Marshal(struct {
		S Severity `json:"s"`
	}{Monitor})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"MONITOR"}`, string(raw))

	var back struct {
		S Severity `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"FAILED"}`), &back))
	assert.Equal(t, Critical, back.S)

	var s Severity
	require.NoError(t, s.Scan([]byte("GOOD")))
	assert.Equal(t, Good, s)
	assert.Error(t, s.Scan(nil))
	assert.Equal(t, Good, s, "a NULL leaves the value untouched")
	v, err := Critical.Value()
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", v)
}

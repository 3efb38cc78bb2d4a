package evaluator

import (
	"fmt"
	"math"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type Metric string

const (
	MetricGmax        Metric = "gmax"
	MetricShear       Metric = "shear"
	MetricInfillDepth Metric = "infill_depth"
	MetricFieldAge    Metric = "field_age"
)

// Position of a value relative to its optimal band.
type Position string

const (
	Below  Position = "below"
	Within Position = "within"
	Above  Position = "above"
)

// Average is the plain arithmetic mean; every reading counts the same.
// No metric can be negative, so a single negative reading fails the set.
func Average(readings []float64) (float64, error) {
	if len(readings) == 0 {
		return 0, ErrEmptyInput
	}
	var sum float64
	for i, r := range readings {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0, fmt.Errorf("%w: reading %d is not a number", ErrInvalidInput, i)
		}
		if r < 0 {
			return 0, fmt.Errorf("%w: reading %d is negative (%v)", ErrInvalidInput, i, r)
		}
		sum += r
	}
	return sum / float64(len(readings)), nil
}

func checkValue(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: value is not a finite number", ErrInvalidInput)
	}
	if v < 0 {
		return fmt.Errorf("%w: negative value %v", ErrInvalidInput, v)
	}
	return nil
}

// ClassifyGmax: lower is safer. goodBuffer is the fraction of the safety
// limit below which a non-optimal reading still counts as GOOD.
func ClassifyGmax(v float64, std standards.GmaxStandard, goodBuffer float64) (Severity, error) {
	if err := checkValue(v); err != nil {
		return Critical, err
	}
	switch {
	case v <= std.Optimal.Max:
		return Excellent, nil
	case v <= std.SafetyLimit*goodBuffer:
		return Good, nil
	case v <= std.SafetyLimit:
		return Monitor, nil
	}
	return Critical, nil
}

// ClassifyBand handles shear and infill depth. Inside the optimal band is
// EXCELLENT, outside the acceptable range is CRITICAL. In between, the value
// is GOOD while it covers at most half of the gap from the optimal edge to
// the range edge on its side, MONITOR beyond that.
func ClassifyBand(v float64, std standards.BandStandard) (Severity, error) {
	if err := checkValue(v); err != nil {
		return Critical, err
	}
	if std.Optimal.Contains(v) {
		return Excellent, nil
	}
	if !std.Range.Contains(v) {
		return Critical, nil
	}
	if bandFraction(v, std) <= 0.5 {
		return Good, nil
	}
	return Monitor, nil
}

// bandFraction is how far v has travelled from the optimal edge toward the
// range edge, in [0,1]. Only meaningful for v inside range but outside optimal.
func bandFraction(v float64, std standards.BandStandard) float64 {
	var dist, gap float64
	if v < std.Optimal.Min {
		dist, gap = std.Optimal.Min-v, std.Optimal.Min-std.Range.Min
	} else {
		dist, gap = v-std.Optimal.Max, std.Range.Max-std.Optimal.Max
	}
	if gap <= 0 {
		return 1
	}
	return math.Min(dist/gap, 1)
}

func bandPosition(v float64, std standards.BandStandard) Position {
	switch {
	case v < std.Optimal.Min:
		return Below
	case v > std.Optimal.Max:
		return Above
	}
	return Within
}

// monitorProximity places a MONITOR value inside its MONITOR band: 0 at the
// GOOD edge, 1 at the CRITICAL edge.
func monitorProximity(m Metric, v float64, std standards.SportStandards, goodBuffer float64) float64 {
	switch m {
	case MetricGmax:
		lo := math.Max(std.Gmax.Optimal.Max, std.Gmax.SafetyLimit*goodBuffer)
		if std.Gmax.SafetyLimit <= lo {
			return 1
		}
		return clamp01((v - lo) / (std.Gmax.SafetyLimit - lo))
	case MetricShear:
		return clamp01((bandFraction(v, std.Shear) - 0.5) / 0.5)
	case MetricInfillDepth:
		return clamp01((bandFraction(v, std.InfillDepth) - 0.5) / 0.5)
	}
	return 0
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

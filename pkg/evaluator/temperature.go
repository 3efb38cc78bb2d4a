package evaluator

import "math"

// HeatImpact is informational. Status classification always uses the
// measured GMAX.
type HeatImpact struct {
	Applied      bool     `json:"applied"`
	TemperatureF *float64 `json:"temperature_f,omitempty"`
	MeasuredGmax float64  `json:"measured_gmax"`
	AdjustedGmax float64  `json:"adjusted_gmax"`
	Delta        float64  `json:"delta"`
	// AdjustedStatus is the GMAX band the adjusted value would fall into.
	AdjustedStatus Severity `json:"adjusted_status"`
	Escalates      bool     `json:"escalates"`
}

// AdjustGmax applies a linear correction per degree away from baseline:
// adjusted = gmax * (1 + coefficient*(t-baseline)), floored at zero.
// A nil or non-finite temperature leaves the value untouched.
func AdjustGmax(gmax float64, temperatureF *float64, baselineF, coefficient float64) (float64, bool) {
	if temperatureF == nil || math.IsNaN(*temperatureF) || math.IsInf(*temperatureF, 0) {
		return gmax, false
	}
	adjusted := gmax * (1 + coefficient*(*temperatureF-baselineF))
	if adjusted < 0 {
		adjusted = 0
	}
	return adjusted, true
}

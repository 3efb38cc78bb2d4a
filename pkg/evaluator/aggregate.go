package evaluator

import (
	"fmt"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

var riskOrder = []RiskLevel{RiskLow, RiskModerate, RiskHigh, RiskSevere}

func (r RiskLevel) Rank() int {
	for i, v := range riskOrder {
		if v == r {
			return i
		}
	}
	return -1
}

func baseRisk(s Severity) RiskLevel {
	switch s {
	case Excellent, Good:
		return RiskLow
	case Monitor:
		return RiskModerate
	}
	return RiskSevere
}

func escalate(r RiskLevel, steps int) RiskLevel {
	i := r.Rank() + steps
	if i >= len(riskOrder) {
		i = len(riskOrder) - 1
	}
	return riskOrder[i]
}

// concernFor returns a human readable concern for a metric at MONITOR or
// worse, and "" otherwise.
func concernFor(m MetricResult, std standards.SportStandards) string {
	if m.Status < Monitor {
		return ""
	}
	crit := m.Status == Critical
	switch m.Metric {
	case MetricGmax:
		if crit {
			return fmt.Sprintf("GMAX exceeds safety limit (%.1f g > %.0f g)", m.Value, std.Gmax.SafetyLimit)
		}
		return fmt.Sprintf("GMAX approaching safety limit (%.1f g of %.0f g)", m.Value, std.Gmax.SafetyLimit)
	case MetricShear:
		switch {
		case m.Position == Below && crit:
			return fmt.Sprintf("Shear factor below acceptable range (%.1f < %.1f), slip risk", m.Value, std.Shear.Range.Min)
		case m.Position == Below:
			return "Shear factor trending low, traction loss in worn areas"
		case crit:
			return fmt.Sprintf("Shear factor above acceptable range (%.1f > %.1f), excessive grip", m.Value, std.Shear.Range.Max)
		}
		return "Shear factor trending high, joint loading risk from excess grip"
	case MetricInfillDepth:
		switch {
		case m.Position == Below && crit:
			return fmt.Sprintf("Infill depth below acceptable range (%.2f in < %.2f in)", m.Value, std.InfillDepth.Range.Min)
		case m.Position == Below:
			return "Infill depth below target in high-traffic zones"
		case crit:
			return fmt.Sprintf("Infill depth above acceptable range (%.2f in > %.2f in)", m.Value, std.InfillDepth.Range.Max)
		}
		return "Infill depth above target, surface may be unstable"
	}
	return ""
}

package evaluator

import (
	"fmt"
	"sort"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	}
	return -1
}

func (p Priority) Valid() bool { return p.Rank() >= 0 }

// ContinuousMonitoring is the next-test interval for CRITICAL fields: test
// again before the next use.
const ContinuousMonitoring = 0

// Recommendation is a suggestion only; callers decide whether to store it.
type Recommendation struct {
	Metric            Metric   `json:"metric"`
	Priority          Priority `json:"priority"`
	Category          string   `json:"category"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	EstimatedCost     string   `json:"estimated_cost,omitempty"`
	EstimatedDuration string   `json:"estimated_duration,omitempty"`
	DueInDays         int      `json:"due_in_days"`
	Status            string   `json:"status"`
}

var dueDays = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     7,
	PriorityMedium:   14,
	PriorityLow:      45,
}

func priorityFor(sev Severity, proximity float64) (Priority, bool) {
	switch sev {
	case Good:
		return PriorityLow, true
	case Monitor:
		if proximity >= 0.5 {
			return PriorityHigh, true
		}
		return PriorityMedium, true
	case Critical:
		return PriorityCritical, true
	}
	return "", false
}

type action struct {
	category, title, cost, duration string
}

// remediation returns the catalogue entry for a metric and direction.
func remediation(m MetricResult) action {
	switch m.Metric {
	case MetricGmax:
		if m.Status == Critical {
			return action{"shock_absorption", "Restrict play and remediate surface hardness", "$2,500 - $8,000", "1-3 days"}
		}
		if m.Status == Monitor {
			return action{"shock_absorption", "Decompact and top-dress infill", "$1,200 - $3,500", "1-2 days"}
		}
		return action{"shock_absorption", "Schedule deep grooming to maintain cushioning", "$400 - $900", "4-6 hours"}
	case MetricShear:
		if m.Position == Below {
			return action{"grooming", "Brush fibers upright and restore traction", "$300 - $800", "3-5 hours"}
		}
		return action{"decompaction", "Loosen compacted infill to reduce grip", "$600 - $1,500", "4-8 hours"}
	case MetricInfillDepth:
		if m.Position == Below {
			return action{"infill", "Top-dress infill to target depth", "$1,500 - $4,000", "1-2 days"}
		}
		return action{"infill", "Redistribute and remove excess infill", "$500 - $1,200", "4-8 hours"}
	}
	return action{}
}

func describe(m MetricResult, std standards.SportStandards) string {
	switch m.Metric {
	case MetricGmax:
		return fmt.Sprintf("Average GMAX %.1f g (%s); optimal at or below %.0f g, safety limit %.0f g.",
			m.Value, m.Status, std.Gmax.Optimal.Max, std.Gmax.SafetyLimit)
	case MetricShear:
		return fmt.Sprintf("Average shear factor %.1f (%s, %s optimal %.1f-%.1f); acceptable %.1f-%.1f.",
			m.Value, m.Status, m.Position, std.Shear.Optimal.Min, std.Shear.Optimal.Max, std.Shear.Range.Min, std.Shear.Range.Max)
	case MetricInfillDepth:
		return fmt.Sprintf("Average infill depth %.2f in (%s, %s optimal %.2f-%.2f in); acceptable %.2f-%.2f in.",
			m.Value, m.Status, m.Position, std.InfillDepth.Optimal.Min, std.InfillDepth.Optimal.Max, std.InfillDepth.Range.Min, std.InfillDepth.Range.Max)
	}
	return ""
}

// recommend builds suggestions ordered most severe first; ties keep metric
// order (gmax, shear, infill depth, field age).
func recommend(metrics []MetricResult, std standards.SportStandards, staleAge bool, ageYears float64) []Recommendation {
	out := make([]Recommendation, 0, len(metrics)+1)
	for _, m := range metrics {
		p, ok := priorityFor(m.Status, m.BoundaryProximity)
		if !ok {
			continue
		}
		a := remediation(m)
		out = append(out, Recommendation{
			Metric:            m.Metric,
			Priority:          p,
			Category:          a.category,
			Title:             a.title,
			Description:       describe(m, std),
			EstimatedCost:     a.cost,
			EstimatedDuration: a.duration,
			DueInDays:         dueDays[p],
			Status:            "pending",
		})
	}
	if staleAge {
		out = append(out, Recommendation{
			Metric:            MetricFieldAge,
			Priority:          PriorityMedium,
			Category:          "lifecycle",
			Title:             "Assess surface for replacement",
			Description:       fmt.Sprintf("Field is %.1f years old; plan a carpet and infill condition assessment.", ageYears),
			EstimatedCost:     "$0 - $500",
			EstimatedDuration: "1 day",
			DueInDays:         90,
			Status:            "pending",
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority.Rank() > out[j].Priority.Rank() })
	return out
}

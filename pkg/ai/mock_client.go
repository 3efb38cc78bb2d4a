package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) Narrate(_ context.Context, f *entities.Field, in evaluator.FieldHealthInsight) string {
	return fallbackNarrative(f, in)
}

var openers = map[evaluator.Severity]string{
	evaluator.Excellent: "is in excellent condition and within optimal ranges for all tested metrics",
	evaluator.Good:      "is in good condition with minor deviations from optimal ranges",
	evaluator.Monitor:   "needs monitoring: at least one metric is drifting toward its limit",
	evaluator.Critical:  "is in critical condition and should not be used until remediated",
}

func fallbackNarrative(f *entities.Field, in evaluator.FieldHealthInsight) string {
	var b strings.Builder
	name := "The field"
	if f != nil && f.Name != "" {
		name = f.Name
	}
	fmt.Fprintf(&b, "%s (%s) %s. Risk level: %s.", name, in.FieldType, openers[in.OverallStatus], in.RiskLevel)
	if len(in.PrimaryConcerns) > 0 {
		fmt.Fprintf(&b, " Concerns: %s.", strings.Join(in.PrimaryConcerns, "; "))
	}
	if in.Heat.Escalates {
		fmt.Fprintf(&b, " At %.0f°F the projected GMAX of %.1f g would rate %s.", *in.Heat.TemperatureF, in.Heat.AdjustedGmax, in.Heat.AdjustedStatus)
	}
	if len(in.Recommendations) > 0 {
		fmt.Fprintf(&b, " First action: %s (%s priority).", in.Recommendations[0].Title, in.Recommendations[0].Priority)
	}
	if in.NextTestingRecommended == evaluator.ContinuousMonitoring {
		b.WriteString(" Re-test before the next use.")
	} else {
		fmt.Fprintf(&b, " Next test recommended within %d days.", in.NextTestingRecommended)
	}
	return b.String()
}

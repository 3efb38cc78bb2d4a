package ai

import (
	"context"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

// Client writes a short plain-language narrative of a field's condition for
// reports. Implementations never fail: they fall back to the rule-based text.
type Client interface {
	Narrate(ctx context.Context, f *entities.Field, in evaluator.FieldHealthInsight) string
}

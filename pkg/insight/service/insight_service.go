package service

import (
	"context"
	"time"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/standards"
)

type FieldInsight struct {
	Field       entities.Field               `json:"field"`
	TestID      uint                         `json:"test_id"`
	TestingDate time.Time                    `json:"testing_date"`
	Averages    evaluator.Averages           `json:"averages"`
	Standards   standards.SportStandards      `json:"standards"`
	Insight     evaluator.FieldHealthInsight `json:"insight"`
	// NextTestDue is the testing date plus the re-test interval. For
	// continuous monitoring it equals the testing date.
	NextTestDue time.Time `json:"next_test_due"`
	TestOverdue bool      `json:"test_overdue"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generated_at"`
}

type FieldSummary struct {
	FieldID         uint                `json:"field_id"`
	Name            string              `json:"name"`
	FieldType       string              `json:"field_type"`
	OverallStatus   evaluator.Severity  `json:"overall_status"`
	RiskLevel       evaluator.RiskLevel `json:"risk_level"`
	LastTested      time.Time           `json:"last_tested"`
	NextTestDue     time.Time           `json:"next_test_due"`
	TestOverdue     bool                `json:"test_overdue"`
	PrimaryConcerns []string            `json:"primary_concerns"`
}

type FieldRef struct {
	FieldID   uint   `json:"field_id"`
	Name      string `json:"name"`
	FieldType string `json:"field_type"`
}

type Dashboard struct {
	OrgID        uint           `json:"org_id"`
	TotalFields  int            `json:"total_fields"`
	TestedFields int            `json:"tested_fields"`
	ByStatus     map[string]int `json:"by_status"`
	ByRisk       map[string]int `json:"by_risk"`
	// NeedsAttention holds fields at MONITOR or worse, or at high risk,
	// most severe first.
	NeedsAttention         []FieldSummary `json:"needs_attention"`
	NeverTested            []FieldRef     `json:"never_tested"`
	TestsOverdue           int            `json:"tests_overdue"`
	OpenRecommendations    int            `json:"open_recommendations"`
	OverdueRecommendations int            `json:"overdue_recommendations"`
	GeneratedAt            time.Time      `json:"generated_at"`
}

type InsightService interface {
	FieldInsight(ctx context.Context, orgID, fieldID uint) (*FieldInsight, error)
	Dashboard(ctx context.Context, orgID uint) (*Dashboard, error)
	Invalidate(ctx context.Context, orgID, fieldID uint) error
}

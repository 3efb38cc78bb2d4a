package service

import (
	"context"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

type RecordInput struct {
	TestingDate         string    `json:"testing_date"` // YYYY-MM-DD or RFC3339; empty = now
	Technician          string    `json:"technician" validate:"max=120"`
	WeatherConditions   string    `json:"weather_conditions" validate:"max=200"`
	TemperatureF        *float64  `json:"temperature_f" validate:"omitempty,gte=-60,lte=160"`
	GmaxReadings        []float64 `json:"gmax_readings" validate:"max=200,dive,gte=0"`
	ShearReadings       []float64 `json:"shear_readings" validate:"max=200,dive,gte=0"`
	InfillDepthReadings []float64 `json:"infill_depth_readings" validate:"max=200,dive,gte=0"`
}

type RecordResult struct {
	Record          *entities.TestingRecord              `json:"record"`
	Insight         evaluator.FieldHealthInsight         `json:"insight"`
	Recommendations []entities.MaintenanceRecommendation `json:"recommendations"`
}

// Invalidator drops any cached insight for a field.
type Invalidator interface {
	Invalidate(ctx context.Context, orgID, fieldID uint) error
}

type MeasureService interface {
	Record(ctx context.Context, orgID, fieldID uint, in RecordInput) (*RecordResult, error)
	List(orgID, fieldID uint, limit int) ([]entities.TestingRecord, error)
	Get(orgID, testID uint) (*entities.TestingRecord, error)
}

package entities

import (
	"time"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

// TestingRecord is one field test session. Rows are written once and never
// updated.
type TestingRecord struct {
	TestID            uint      `gorm:"primaryKey" json:"test_id"`
	OrgID             uint      `gorm:"index" json:"org_id"`
	FieldID           uint      `gorm:"index" json:"field_id"`
	TestingDate       time.Time `gorm:"index" json:"testing_date"`
	Technician        string    `json:"technician"`
	WeatherConditions string    `json:"weather_conditions"`
	TemperatureF      *float64  `json:"temperature_f"`

	GmaxReadings        []float64 `gorm:"serializer:json" json:"gmax_readings"`
	ShearReadings       []float64 `gorm:"serializer:json" json:"shear_readings"`
	InfillDepthReadings []float64 `gorm:"serializer:json" json:"infill_depth_readings"`

	GmaxAverage        float64 `json:"gmax_average"`
	ShearAverage       float64 `json:"shear_average"`
	InfillDepthAverage float64 `json:"infill_depth_average"`

	GmaxStatus        evaluator.Severity `gorm:"not null" json:"gmax_status"`
	ShearStatus       evaluator.Severity `gorm:"not null" json:"shear_status"`
	InfillDepthStatus evaluator.Severity `gorm:"not null" json:"infill_depth_status"`
	OverallStatus     evaluator.Severity `gorm:"not null;index" json:"overall_status"`

	CreatedAt time.Time `json:"created_at"`
}

func (r TestingRecord) Readings() evaluator.Readings {
	return evaluator.Readings{Gmax: r.GmaxReadings, Shear: r.ShearReadings, InfillDepth: r.InfillDepthReadings}
}

package service

import (
	"context"
	"time"

	"github.com/SMBeePay/field-health-systems-sub001/pkg/evaluator"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Report struct {
	ReportID      string             `json:"report_id"`
	FieldID       uint               `json:"field_id"`
	FileName      string             `json:"file_name"`
	GeneratedAt   time.Time          `json:"generated_at"`
	OverallStatus evaluator.Severity `json:"overall_status"`
	Narrative     string             `json:"narrative"`
	Data          []byte             `json:"-"`
}

type EmailInput struct {
	To []string `json:"to" validate:"required,min=1,dive,email"`
}

type ReportService interface {
	Generate(ctx context.Context, orgID, fieldID uint) (*Report, error)
	Email(ctx context.Context, orgID, fieldID uint, in EmailInput) (*Report, error)
}

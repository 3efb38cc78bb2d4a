package service

import (
	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
)

type CreateInput struct {
	Priority          string `json:"priority" validate:"required,oneof=low medium high critical"`
	Category          string `json:"category" validate:"required"`
	Title             string `json:"title" validate:"required,max=200"`
	Description       string `json:"description" validate:"max=2000"`
	EstimatedCost     string `json:"estimated_cost" validate:"max=60"`
	EstimatedDuration string `json:"estimated_duration" validate:"max=60"`
	DueDate           string `json:"due_date"` // YYYY-MM-DD, optional
}

// Patch applies only non-nil fields.
type Patch struct {
	Status  *string `json:"status" validate:"omitempty,oneof=pending scheduled completed"`
	DueDate *string `json:"due_date"`
	Notes   *string `json:"notes" validate:"omitempty,max=2000"`
}

type MaintenanceService interface {
	Create(orgID, fieldID uint, in CreateInput) (*entities.MaintenanceRecommendation, error)
	List(orgID uint, f repository.Filter) ([]entities.MaintenanceRecommendation, error)
	Update(orgID, recID uint, p Patch) (*entities.MaintenanceRecommendation, error)
}

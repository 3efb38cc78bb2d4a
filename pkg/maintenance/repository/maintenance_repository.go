package repository

import "github.com/SMBeePay/field-health-systems-sub001/entities"

type Filter struct {
	FieldID uint   // 0 = any field
	Status  string // "" = any status
}

type MaintenanceRepository interface {
	Create(r *entities.MaintenanceRecommendation) error
	FindByID(id, orgID uint) (*entities.MaintenanceRecommendation, error)
	List(orgID uint, f Filter) ([]entities.MaintenanceRecommendation, error)
	Update(r *entities.MaintenanceRecommendation) error
}

package repository

import "github.com/SMBeePay/field-health-systems-sub001/entities"

type FieldRepository interface {
	Create(f *entities.Field) error
	FindByID(id, orgID uint) (*entities.Field, error)
	ListByOrg(orgID uint) ([]entities.Field, error)
}

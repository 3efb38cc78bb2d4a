package service

import "github.com/SMBeePay/field-health-systems-sub001/entities"

type CreateInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	FieldType   string `json:"field_type" validate:"required"`
	SurfaceType string `json:"surface_type" validate:"max=60"`
	Location    string `json:"location" validate:"max=200"`
	InstallDate string `json:"install_date"` // YYYY-MM-DD, optional
}

type FieldService interface {
	CreateField(orgID uint, in CreateInput) (*entities.Field, error)
	GetFieldByID(id, orgID uint) (*entities.Field, error)
	ListFields(orgID uint) ([]entities.Field, error)
}

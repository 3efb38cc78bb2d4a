package service

import "github.com/SMBeePay/field-health-systems-sub001/entities"

type CreateInput struct {
	Name         string `json:"name" validate:"required,max=120"`
	Slug         string `json:"slug" validate:"required,max=64"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type Summary struct {
	entities.Organization
	FieldCount int64 `json:"field_count"`
}

type OrganizationService interface {
	Create(in CreateInput) (*entities.Organization, error)
	List() ([]Summary, error)
	Get(id uint) (*entities.Organization, error)
}

package repository

import "github.com/SMBeePay/field-health-systems-sub001/entities"

type OrganizationRepository interface {
	Create(o *entities.Organization) error
	List() ([]entities.Organization, error)
	FindByID(id uint) (*entities.Organization, error)
	FindBySlug(slug string) (*entities.Organization, error)
	CountFields(orgID uint) (int64, error)
}

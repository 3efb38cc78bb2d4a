package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/organization/repository"
)

type orgRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.OrganizationRepository { return &orgRepo{db} }

func (r *orgRepo) Create(o *entities.Organization) error { return r.db.Create(o).Error }

func (r *orgRepo) List() ([]entities.Organization, error) {
	var out []entities.Organization
	if err := r.db.Order("name ASC, org_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *orgRepo) FindByID(id uint) (*entities.Organization, error) {
	var o entities.Organization
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orgRepo) FindBySlug(slug string) (*entities.Organization, error) {
	var o entities.Organization
	if err := r.db.Where("slug = ?", slug).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orgRepo) CountFields(orgID uint) (int64, error) {
	var n int64
	err := r.db.Model(&entities.Field{}).Where("org_id = ?", orgID).Count(&n).Error
	return n, err
}

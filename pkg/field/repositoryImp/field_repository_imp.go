package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(f *entities.Field) error { return r.db.Create(f).Error }

func (r *fieldRepo) FindByID(id, orgID uint) (*entities.Field, error) {
	var f entities.Field
	if err := r.db.Where("field_id = ? AND org_id = ?", id, orgID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) ListByOrg(orgID uint) ([]entities.Field, error) {
	var out []entities.Field
	if err := r.db.Where("org_id = ?", orgID).Order("name ASC, field_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

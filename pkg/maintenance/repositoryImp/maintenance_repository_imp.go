package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/maintenance/repository"
)

type maintRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MaintenanceRepository { return &maintRepo{db} }

func (r *maintRepo) Create(m *entities.MaintenanceRecommendation) error { return r.db.Create(m).Error }

func (r *maintRepo) FindByID(id, orgID uint) (*entities.MaintenanceRecommendation, error) {
	var out entities.MaintenanceRecommendation
	if err := r.db.Where("rec_id = ? AND org_id = ?", id, orgID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// List orders by due date (undated last), then id.
func (r *maintRepo) List(orgID uint, f repository.Filter) ([]entities.MaintenanceRecommendation, error) {
	q := r.db.Where("org_id = ?", orgID)
	if f.FieldID != 0 {
		q = q.Where("field_id = ?", f.FieldID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []entities.MaintenanceRecommendation
	if err := q.Order("due_date IS NULL, due_date ASC, rec_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *maintRepo) Update(m *entities.MaintenanceRecommendation) error { return r.db.Save(m).Error }

package repositoryImp

import (
	"gorm.io/gorm"

	"github.com/SMBeePay/field-health-systems-sub001/entities"
	"github.com/SMBeePay/field-health-systems-sub001/pkg/measure/repository"
)

type testingRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TestingRepository { return &testingRepo{db} }

func (r *testingRepo) Create(rec *entities.TestingRecord, recs []entities.MaintenanceRecommendation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		id := rec.TestID
		for i := range recs {
			recs[i].TestID = &id
		}
		return tx.Create(&recs).Error
	})
}

func (r *testingRepo) FindByID(id, orgID uint) (*entities.TestingRecord, error) {
	var out entities.TestingRecord
	if err := r.db.Where("test_id = ? AND org_id = ?", id, orgID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *testingRepo) ListByField(fieldID, orgID uint, limit int) ([]entities.TestingRecord, error) {
	var out []entities.TestingRecord
	q := r.db.Where("field_id = ? AND org_id = ?", fieldID, orgID).Order("testing_date DESC, test_id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *testingRepo) Latest(fieldID, orgID uint) (*entities.TestingRecord, error) {
	var out entities.TestingRecord
	err := r.db.Where("field_id = ? AND org_id = ?", fieldID, orgID).
		Order("testing_date DESC, test_id DESC").
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

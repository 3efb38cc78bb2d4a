package repository

import "github.com/SMBeePay/field-health-systems-sub001/entities"

// TestingRepository stores test sessions. Records are never updated or
// deleted.
type TestingRepository interface {
	// Create inserts the record and its suggested recommendations in one
	// transaction, stamping each recommendation with the new TestID.
	Create(r *entities.TestingRecord, recs []entities.MaintenanceRecommendation) error
	FindByID(id, orgID uint) (*entities.TestingRecord, error)
	// ListByField returns newest first; limit <= 0 means no limit.
	ListByField(fieldID, orgID uint, limit int) ([]entities.TestingRecord, error)
	Latest(fieldID, orgID uint) (*entities.TestingRecord, error)
}

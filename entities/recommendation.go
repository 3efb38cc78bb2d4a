package entities

import "time"

const (
	RecPending   = "pending"
	RecScheduled = "scheduled"
	RecCompleted = "completed"

	SourceSuggested = "suggested"
	SourceManual    = "manual"
)

type MaintenanceRecommendation struct {
	RecID             uint       `gorm:"primaryKey" json:"rec_id"`
	OrgID             uint       `gorm:"index" json:"org_id"`
	FieldID           uint       `gorm:"index" json:"field_id"`
	TestID            *uint      `gorm:"index" json:"test_id"`
	Metric            string     `json:"metric"`
	Priority          string     `gorm:"index" json:"priority"` // low|medium|high|critical
	Category          string     `json:"category"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	EstimatedCost     string     `json:"estimated_cost"`
	EstimatedDuration string     `json:"estimated_duration"`
	DueDate           *time.Time `json:"due_date"`
	Status            string     `gorm:"index" json:"status"` // pending|scheduled|completed
	Source            string     `json:"source"`              // suggested|manual
	Notes             string     `json:"notes"`
	CompletedAt       *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package entities

import "time"

type Organization struct {
	OrgID        uint      `gorm:"primaryKey" json:"org_id"`
	Name         string    `json:"name"`
	Slug         string    `gorm:"uniqueIndex" json:"slug"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

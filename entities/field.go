package entities

import "time"

type Field struct {
	FieldID     uint       `gorm:"primaryKey" json:"field_id"`
	OrgID       uint       `gorm:"index" json:"org_id"`
	Name        string     `json:"name"`
	FieldType   string     `json:"field_type"`   // FOOTBALL|SOCCER|LACROSSE|FIELD_HOCKEY|BASEBALL|MULTI_PURPOSE
	SurfaceType string     `json:"surface_type"` // e.g. sand-rubber, organic, hybrid
	Location    string     `json:"location"`
	InstallDate *time.Time `json:"install_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgeYears is the surface age at now, or nil when the install date is unknown
// or in the future.
func (f Field) AgeYears(now time.Time) *float64 {
	if f.InstallDate == nil || now.Before(*f.InstallDate) {
		return nil
	}
	y := now.Sub(*f.InstallDate).Hours() / (24 * 365.25)
	return &y
}

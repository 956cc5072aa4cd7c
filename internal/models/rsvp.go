package models

import (
	"time"

	"gorm.io/gorm"
)

// RSVPStatus represents a member's attendance declaration for an event
type RSVPStatus string

const (
	RSVPGo    RSVPStatus = "GO"
	RSVPNo    RSVPStatus = "NO"
	RSVPLate  RSVPStatus = "LATE"
	RSVPEarly RSVPStatus = "EARLY"
)

// ValidRSVPStatus reports whether s is one of the accepted event statuses
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPGo, RSVPNo, RSVPLate, RSVPEarly:
		return true
	}
	return false
}

// RSVP is a user's attendance declaration for an event.
// At most one row exists per (event, user); submissions upsert.
type RSVP struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	EventID uint       `gorm:"uniqueIndex:idx_rsvps_event_user" json:"event_id"`
	UserID  uint       `gorm:"uniqueIndex:idx_rsvps_event_user" json:"user_id"`
	Status  RSVPStatus `gorm:"type:varchar(10)" json:"status"`
	Note    string     `gorm:"type:text" json:"note"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Attending reports whether the RSVP counts as attending.
// GO, LATE and EARLY all make the user a settlement target.
func (r RSVP) Attending() bool {
	return r.Status == RSVPGo || r.Status == RSVPLate || r.Status == RSVPEarly
}

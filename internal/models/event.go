package models

import (
	"time"

	"gorm.io/gorm"
)

// Event represents a one-off circle event that members RSVP to
type Event struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID      uint      `gorm:"index" json:"circle_id"`
	Title         string    `gorm:"type:varchar(255)" json:"title"`
	StartAt       time.Time `json:"start_at"`
	Location      string    `gorm:"type:varchar(255)" json:"location"`
	CoverImageURL string    `gorm:"type:text" json:"cover_image_url"`
	CreatedBy     uint      `json:"created_by"`

	// Relationships
	Circle      Circle       `gorm:"foreignKey:CircleID" json:"circle,omitempty"`
	RSVPs       []RSVP       `gorm:"foreignKey:EventID" json:"rsvps,omitempty"`
	Settlements []Settlement `gorm:"foreignKey:EventID" json:"settlements,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Announcement is a message posted to a circle, optionally tied to an event
type Announcement struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID  uint   `gorm:"index" json:"circle_id"`
	EventID   *uint  `gorm:"index" json:"event_id,omitempty"`
	Title     string `gorm:"type:varchar(255)" json:"title"`
	Body      string `gorm:"type:text" json:"body"`
	CreatedBy uint   `json:"created_by"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a circle member account
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name      string  `gorm:"type:varchar(255)" json:"name"`
	AvatarURL string  `gorm:"type:text" json:"avatar_url"`
	Email     *string `gorm:"type:varchar(255)" json:"email,omitempty"` // optional, used for due reminders

	// Relationships
	Memberships []Membership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Payments    []Payment    `gorm:"foreignKey:UserID" json:"payments,omitempty"`
}

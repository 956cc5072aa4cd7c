package models

import (
	"time"

	"gorm.io/gorm"
)

// MemberRole represents a member's role within a circle
type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// Circle represents a club or group that owns events and settlements
type Circle struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string `gorm:"type:varchar(255)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"type:text" json:"logo_url"`

	// Relationships
	Memberships []Membership `gorm:"foreignKey:CircleID" json:"memberships,omitempty"`
	Events      []Event      `gorm:"foreignKey:CircleID" json:"events,omitempty"`
}

// Membership links a user to a circle with a role
type Membership struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID uint       `gorm:"uniqueIndex:idx_memberships_circle_user" json:"circle_id"`
	UserID   uint       `gorm:"uniqueIndex:idx_memberships_circle_user" json:"user_id"`
	Role     MemberRole `gorm:"type:varchar(20);default:'MEMBER'" json:"role"`
	JoinedAt time.Time  `json:"joined_at"`

	// Relationships
	Circle Circle `gorm:"foreignKey:CircleID" json:"circle,omitempty"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

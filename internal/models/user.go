package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:255"`
	FullName  string    `json:"full_name" gorm:"not null;size:100"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role      UserRole  `json:"role" gorm:"not null;size:32"`
	Workspace Workspace `json:"workspace" gorm:"not null;size:32;index"`

	// Credentials (only the hash is ever stored)
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	// Group membership (opaque ids owned by the roster side of the platform)
	CohortID *string `json:"cohort_id" gorm:"size:255;index"`
	TeamID   *string `json:"team_id" gorm:"size:255;index"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`

	// Status
	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

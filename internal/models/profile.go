package models

import (
	"time"
)

// Profile holds the dashboard-visible account details for a user. It is
// keyed 1:1 by the user ID, created alongside the user at registration and
// never deleted from this surface. Email is a fixed copy of the auth
// identity; only the full name is mutable.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	FullName  *string   `gorm:"size:100" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:ID" json:"-"`
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}

// Package models contains the application's domain models.
package models

import (
	"strings"
	"time"
)

// User is an account that owns posts and comments. Staff users may delete
// content they do not own.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	FirstName    string
	LastName     string
	PasswordHash string `gorm:"not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Posts        []Post    `gorm:"foreignKey:AuthorID"`
	Comments     []Comment `gorm:"foreignKey:AuthorID"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

package models

import "time"

// Category is an administrative classification for posts. Unpublished
// categories hide their posts from everyone but the authors.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Slug        string `gorm:"uniqueIndex;not null"`
	Description string
	IsPublished bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// Location is an administrative tag attached to posts.
type Location struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

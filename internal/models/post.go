package models

import "time"

// Post is a publishable content item with scheduling and visibility flags.
type Post struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Text        string    `gorm:"not null"`
	ImageURL    string
	PubDate     time.Time `gorm:"not null;index"`
	IsPublished bool      `gorm:"not null;default:true"`
	AuthorID    uint      `gorm:"not null;index"`
	Author      User      `gorm:"foreignKey:AuthorID"`
	CategoryID  *uint     `gorm:"index"`
	Category    *Category `gorm:"foreignKey:CategoryID"`
	LocationID  *uint
	Location    *Location `gorm:"foreignKey:LocationID"`
	// CommentCount is not persisted; annotated by list/detail queries.
	CommentCount int64 `gorm:"->;-:migration"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VisibleAt reports whether the post is publicly visible at the given time:
// the post is published, its category (if any) is published, and its
// publication date is not in the future.
func (p *Post) VisibleAt(now time.Time) bool {
	if !p.IsPublished {
		return false
	}
	if p.CategoryID != nil && p.Category != nil && !p.Category.IsPublished {
		return false
	}
	return !p.PubDate.After(now)
}

// ViewableBy reports whether the identified user may open the post's detail
// view. Authors always see their own posts; everyone else is bound by
// VisibleAt. A zero userID means an anonymous visitor.
func (p *Post) ViewableBy(userID uint, now time.Time) bool {
	if userID != 0 && userID == p.AuthorID {
		return true
	}
	return p.VisibleAt(now)
}

// OwnedBy reports whether the identified user is the post's author.
func (p *Post) OwnedBy(userID uint) bool {
	return userID != 0 && p.AuthorID == userID
}

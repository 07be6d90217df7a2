package models

import "time"

// Comment is a reply attached to a post. Comments cannot outlive their
// post: deleting a post removes its comments.
type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"not null"`
	AuthorID  uint   `gorm:"not null;index"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	PostID    uint   `gorm:"not null;index"`
	Post      Post   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the identified user is the comment's author.
func (c *Comment) OwnedBy(userID uint) bool {
	return userID != 0 && c.AuthorID == userID
}

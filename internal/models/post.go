package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a user's post in the feed.
type Post struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Content string `gorm:"type:text"`

	Author   User       `gorm:"foreignKey:UserID"`
	Likes    []PostLike `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
	Comments []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}

// PostLike represents a single user's like on a post. A user can like a post
// at most once.
type PostLike struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `gorm:"not null;uniqueIndex:idx_post_like"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_post_like"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

// Comment represents a comment on a post.
type Comment struct {
	gorm.Model
	PostID  uint   `gorm:"not null;index"`
	UserID  uint   `gorm:"not null"`
	Content string `gorm:"type:text;not null"`

	User User `gorm:"foreignKey:UserID"`
}

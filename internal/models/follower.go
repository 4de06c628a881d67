package models

import "time"

// Follower represents a follow edge: FollowerID follows UserID. Follows are
// asymmetric and carry no cached score.
type Follower struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_follower_pair"`
	FollowerID uint `gorm:"not null;uniqueIndex:idx_follower_pair"`
	CreatedAt  time.Time

	User         User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FollowerUser User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

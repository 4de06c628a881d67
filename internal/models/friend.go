package models

import "time"

// FriendshipStatus defines the state of a friendship between two users.
type FriendshipStatus string

const (
	// StatusPending means a friend request has been sent but not yet accepted.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted means the friend request was accepted, and the users are now friends.
	StatusAccepted FriendshipStatus = "accepted"

	// StatusDeclined means the friend request was declined by the recipient.
	StatusDeclined FriendshipStatus = "declined"
)

// Friend represents the friendship between two users. UserID is the user who
// sent the request, FriendID the one who received it. The (UserID, FriendID)
// pair is unique; symmetric lookups must check both directions.
//
// RelationshipScore is a cached [0,1] value summarizing interaction strength.
// It is recomputed and overwritten by the scoring engine whenever an
// interaction between the pair is recorded, but only while Status is accepted.
type Friend struct {
	ID                uint             `gorm:"primaryKey"`
	UserID            uint             `gorm:"not null;uniqueIndex:idx_friend_pair"`
	FriendID          uint             `gorm:"not null;uniqueIndex:idx_friend_pair"`
	Status            FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	RelationshipScore float64          `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Define foreign key relationships
	User       User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FriendUser User `gorm:"foreignKey:FriendID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

package models

import "time"

// InteractionType identifies the kind of action one user directed at another.
type InteractionType string

const (
	InteractionProfileVisit InteractionType = "profile_visit"
	InteractionMessage      InteractionType = "message"
	InteractionLike         InteractionType = "like"
	InteractionComment      InteractionType = "comment"
)

// UserInteraction tracks user interactions for the relationship strength
// algorithm. At most one record exists per (UserID, TargetID, InteractionType)
// triple; repeated interactions increment InteractionCount instead of
// creating new rows.
type UserInteraction struct {
	ID               uint            `gorm:"primaryKey"`
	UserID           uint            `gorm:"not null;uniqueIndex:idx_interaction"`
	TargetID         uint            `gorm:"not null;uniqueIndex:idx_interaction"`
	InteractionType  InteractionType `gorm:"size:50;not null;uniqueIndex:idx_interaction"`
	InteractionCount int             `gorm:"not null;default:1"`
	LastInteraction  time.Time

	User   User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Target User `gorm:"foreignKey:TargetID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

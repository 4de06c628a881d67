package models

import "gorm.io/gorm"

type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationFriendAccept  NotificationType = "friend_accept"
)

// Notification represents an in-app notification delivered to a user.
// ReferenceID points at the related item (post, comment, friend request).
type Notification struct {
	gorm.Model
	UserID           uint             `gorm:"not null;index"`
	SenderID         uint             `gorm:"not null"`
	NotificationType NotificationType `gorm:"size:50;not null"`
	ReferenceID      uint
	Content          string `gorm:"type:text"`
	IsRead           bool   `gorm:"not null;default:false"`

	User   User `gorm:"foreignKey:UserID"`
	Sender User `gorm:"foreignKey:SenderID"`
}

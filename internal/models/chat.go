package models

import (
	"time"

	"gorm.io/gorm"
)

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
)

// ChatGroup represents a chat between two or more users. Direct messages are
// chat groups with IsGroup false and exactly two members.
type ChatGroup struct {
	gorm.Model
	Name      string `gorm:"size:100"`
	CreatedBy uint   `gorm:"not null"`
	IsGroup   bool   `gorm:"not null;default:false"`

	Creator  User          `gorm:"foreignKey:CreatedBy"`
	Members  []ChatMember  `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Messages []ChatMessage `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

// ChatMember represents a user's membership in a chat group.
type ChatMember struct {
	ID       uint       `gorm:"primaryKey"`
	ChatID   uint       `gorm:"not null;uniqueIndex:idx_chat_member"`
	UserID   uint       `gorm:"not null;uniqueIndex:idx_chat_member"`
	Role     string     `gorm:"size:20;not null;default:'member'"`
	JoinedAt time.Time
	LastRead *time.Time

	User User `gorm:"foreignKey:UserID"`
}

// ChatMessage represents a message sent within a chat group.
type ChatMessage struct {
	gorm.Model
	ChatID      uint        `gorm:"not null;index"`
	UserID      uint        `gorm:"not null"`
	MessageType MessageType `gorm:"size:20;not null;default:'text'"`
	Content     string      `gorm:"type:text"`
	MediaURL    string      `gorm:"size:255"`

	User User `gorm:"foreignKey:UserID"`
}

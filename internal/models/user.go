package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	UID          string `gorm:"size:36;uniqueIndex;not null"`
	Username     string `gorm:"size:255;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	ProfilePic   string `gorm:"size:512"`
	Bio          string
}

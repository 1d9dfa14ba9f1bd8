package models

import (
	"gorm.io/gorm"
)

// User is the persisted account record. PasswordHash holds a bcrypt
// hash and must never be serialized to clients.
type User struct {
	gorm.Model
	Name         string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
}

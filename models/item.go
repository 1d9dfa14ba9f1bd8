package models

import (
	"gorm.io/gorm"
)

// Item belongs to exactly one user. UserID is mutated only by a
// successful voucher redemption or left untouched otherwise.
type Item struct {
	gorm.Model
	Name   string `gorm:"unique;not null"`
	UserID uint   `gorm:"not null;index"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account. Referenced by items (owner),
// auctions (creator, winner) and bids (bidder).
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Name         string         `json:"name" validate:"required,max=100"`
	Email        string         `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Phone        string         `json:"phone" validate:"omitempty,max=20"`
	ProfileImage string         `json:"profileImageUrl"`
	Password     string         `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

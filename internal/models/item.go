package models

import (
	"time"

	"gorm.io/gorm"
)

// Item is a sellable listing owned by a single user. Items are never
// hard-deleted; DeletedAt marks them inactive.
type Item struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"userId"`
	Name         string         `json:"itemName" gorm:"type:varchar(255)"`
	Description  string         `json:"description"`
	InitialPrice float64        `json:"initialPrice"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Image is one stored picture of an item. The stored value is a bare
// filename; URL resolution happens at response-shaping time.
type Image struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ItemID   uint   `json:"itemId" gorm:"index"`
	Filename string `json:"filename" gorm:"type:varchar(255)"`
}

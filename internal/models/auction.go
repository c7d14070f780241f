package models

import (
	"time"

	"gorm.io/gorm"
)

// Auction statuses. An auction is created open and only ever transitions
// to closed via an explicit close by its owner.
const (
	AuctionStatusOpen   = "open"
	AuctionStatusClosed = "closed"
)

// Auction binds one item to a sale lifecycle. UserID is the creator, who
// must also own the item. FinalPrice and WinnerUserID stay nil until the
// owner picks a winning bid; setting a winner does not change the status.
type Auction struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ItemID       uint           `json:"itemId" gorm:"index"`
	UserID       uint           `json:"userId"`
	Status       string         `json:"status" gorm:"type:varchar(16);default:open"`
	FinalPrice   *float64       `json:"finalPrice"`
	WinnerUserID *uint          `json:"winnerUserId"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Bid is an offer of a price against an open auction. Bids are immutable
// once recorded; there is no update or delete path.
type Bid struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuctionID uint      `json:"auctionId" gorm:"index"`
	UserID    uint      `json:"userId"`
	BidPrice  float64   `json:"bidPrice"`
	CreatedAt time.Time `json:"createdAt"`
}

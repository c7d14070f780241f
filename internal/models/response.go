package models

import "time"

// Response types carry the public camelCase schema directly, so there is
// exactly one mapping from storage rows to wire shape and no runtime key
// conversion. A nil Images slice serializes as JSON null, never []; the
// same goes for Winner when no winning bid has been picked.

// AuctionRow is the projection of the items ⋈ auctions ⋈ users join used
// by every auction read. Column aliases in the repository select match
// these field names.
type AuctionRow struct {
	AuctionID    uint
	ItemID       uint
	UserID       uint
	Username     string
	Name         string
	Email        string
	Phone        string
	ProfileImage string
	ItemName     string
	Description  string
	InitialPrice float64
	FinalPrice   *float64
	WinnerUserID *uint
	Status       string
	CreatedAt    time.Time
}

// BidAuctionRow is one row of the bids ⋈ auctions ⋈ items join backing a
// user's bid history.
type BidAuctionRow struct {
	BidID        uint
	AuctionID    uint
	BidPrice     float64
	BidCreatedAt time.Time
	ItemID       uint
	UserID       uint
	ItemName     string
	Description  string
	InitialPrice float64
	WinnerUserID *uint
	Status       string
	CreatedAt    time.Time
}

// UserRef is the public sub-object for auction authors and winners.
type UserRef struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// ImageURL wraps one resolved image URL. The wrapper key stays "url".
type ImageURL struct {
	URL string `json:"url"`
}

// AuctionResponse is the public shape of one auction with its item and
// author fields inlined.
type AuctionResponse struct {
	ID           uint       `json:"id"`
	ItemID       uint       `json:"itemId"`
	Author       UserRef    `json:"author"`
	ItemName     string     `json:"itemName"`
	Description  string     `json:"description"`
	InitialPrice float64    `json:"initialPrice"`
	FinalPrice   *float64   `json:"finalPrice"`
	Winner       *UserRef   `json:"winner"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	Images       []ImageURL `json:"images"`
}

// ItemResponse is one item with its image URLs attached.
type ItemResponse struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"userId"`
	ItemName     string     `json:"itemName"`
	Description  string     `json:"description"`
	InitialPrice float64    `json:"initialPrice"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Images       []ImageURL `json:"images"`
}

// BidHistoryEntry pairs one of the user's bids with a snapshot of the
// auction as it stands now, not as it stood when the bid was placed.
type BidHistoryEntry struct {
	Bid     BidSnapshot     `json:"bid"`
	Auction AuctionSnapshot `json:"auction"`
}

type BidSnapshot struct {
	ID        uint      `json:"id"`
	AuctionID uint      `json:"auctionId"`
	BidPrice  float64   `json:"bidPrice"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuctionSnapshot is the reduced auction view inside a bid history entry.
// Images carries at most one representative image, null when the item has
// none.
type AuctionSnapshot struct {
	ID           uint      `json:"id"`
	ItemID       uint      `json:"itemId"`
	UserID       uint      `json:"userId"`
	ItemName     string    `json:"itemName"`
	Description  string    `json:"description"`
	InitialPrice float64   `json:"initialPrice"`
	WinnerUserID *uint     `json:"winnerUserId"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	Images       *ImageURL `json:"images"`
}

// NewUserRef projects a user record onto the public sub-object shape.
func NewUserRef(u User) UserRef {
	return UserRef{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		ProfileImageURL: u.ProfileImage,
	}
}

// NewAuctionResponse shapes one joined row into the public auction form.
// winner is nil when no winning bid has been set.
func NewAuctionResponse(row AuctionRow, winner *User, images []ImageURL) AuctionResponse {
	resp := AuctionResponse{
		ID:     row.AuctionID,
		ItemID: row.ItemID,
		Author: UserRef{
			ID:              row.UserID,
			Username:        row.Username,
			Name:            row.Name,
			Email:           row.Email,
			Phone:           row.Phone,
			ProfileImageURL: row.ProfileImage,
		},
		ItemName:     row.ItemName,
		Description:  row.Description,
		InitialPrice: row.InitialPrice,
		FinalPrice:   row.FinalPrice,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
		Images:       images,
	}
	if winner != nil {
		ref := NewUserRef(*winner)
		resp.Winner = &ref
	}
	return resp
}

// NewItemResponse attaches resolved image URLs to an item.
func NewItemResponse(item Item, images []ImageURL) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		UserID:       item.UserID,
		ItemName:     item.Name,
		Description:  item.Description,
		InitialPrice: item.InitialPrice,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		Images:       images,
	}
}

// NewBidHistoryEntry splits one joined bid row into its bid/auction pair.
func NewBidHistoryEntry(row BidAuctionRow, image *ImageURL) BidHistoryEntry {
	return BidHistoryEntry{
		Bid: BidSnapshot{
			ID:        row.BidID,
			AuctionID: row.AuctionID,
			BidPrice:  row.BidPrice,
			CreatedAt: row.BidCreatedAt,
		},
		Auction: AuctionSnapshot{
			ID:           row.AuctionID,
			ItemID:       row.ItemID,
			UserID:       row.UserID,
			ItemName:     row.ItemName,
			Description:  row.Description,
			InitialPrice: row.InitialPrice,
			WinnerUserID: row.WinnerUserID,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
			Images:       image,
		},
	}
}

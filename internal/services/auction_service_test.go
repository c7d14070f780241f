package services_test

import (
	"fmt"
	"testing"
	"time"

	"lelang/internal/apperrors"
	"lelang/internal/models"
	"lelang/internal/repositories"
	"lelang/internal/services"
	"lelang/pkg/imageurl"
	"lelang/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuctionService(
	auctionRepo *MockAuctionRepository,
	itemRepo *MockItemRepository,
	userRepo *MockUserRepository,
	imageRepo *MockImageRepository,
	publisher *MockPublisher,
) *services.AuctionService {
	urls := imageurl.NewBuilder("http://localhost:8080")
	if publisher == nil {
		return services.NewAuctionService(auctionRepo, itemRepo, userRepo, imageRepo, urls, nil)
	}
	return services.NewAuctionService(auctionRepo, itemRepo, userRepo, imageRepo, urls, publisher)
}

func TestAuctionService_ListOpen(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	winnerID := uint(7)
	finalPrice := 150.0
	rows := []models.AuctionRow{
		{
			AuctionID: 2, ItemID: 20, UserID: 1, Username: "alice",
			ItemName: "Old Clock", InitialPrice: 100.0,
			FinalPrice: &finalPrice, WinnerUserID: &winnerID,
			Status: models.AuctionStatusOpen, CreatedAt: time.Now(),
		},
		{
			AuctionID: 1, ItemID: 10, UserID: 1, Username: "alice",
			ItemName: "Vase", InitialPrice: 50.0,
			Status: models.AuctionStatusOpen, CreatedAt: time.Now(),
		},
	}

	mockAuctions.On("ListAuctions", repositories.AuctionFilter{Status: models.AuctionStatusOpen}).
		Return(rows, nil).Once()
	mockImages.On("ListAll").Return([]models.Image{
		{ID: 1, ItemID: 20, Filename: "clock.jpg"},
		{ID: 2, ItemID: 20, Filename: "clock-side.jpg"},
	}, nil).Once()
	mockUsers.On("ListByIDs", []uint{7}).Return([]models.User{
		{ID: 7, Username: "bob", Name: "Bob", Email: "bob@example.com"},
	}, nil).Once()

	responses, err := service.ListOpen()

	assert.NoError(t, err)
	assert.Len(t, responses, 2)

	assert.Equal(t, uint(2), responses[0].ID)
	assert.Len(t, responses[0].Images, 2)
	assert.Equal(t, "http://localhost:8080/images/clock.jpg", responses[0].Images[0].URL)
	if assert.NotNil(t, responses[0].Winner) {
		assert.Equal(t, "bob", responses[0].Winner.Username)
	}

	// The second auction has no images and no winner; both stay nil so
	// they serialize as null.
	assert.Nil(t, responses[1].Images)
	assert.Nil(t, responses[1].Winner)
	assert.Nil(t, responses[1].FinalPrice)

	mockAuctions.AssertExpectations(t)
	mockImages.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestAuctionService_ListOpen_Empty(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	mockAuctions.On("ListAuctions", repositories.AuctionFilter{Status: models.AuctionStatusOpen}).
		Return([]models.AuctionRow{}, nil).Once()

	responses, err := service.ListOpen()

	assert.ErrorIs(t, err, apperrors.ErrNoAuctions)
	assert.Nil(t, responses)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_ListMine(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	rows := []models.AuctionRow{
		{AuctionID: 3, ItemID: 30, UserID: 5, Username: "carol", ItemName: "Lamp", Status: models.AuctionStatusClosed},
	}

	// Own listings carry every status, so the filter has no status set.
	mockAuctions.On("ListAuctions", repositories.AuctionFilter{OwnerID: 5}).Return(rows, nil).Once()
	mockImages.On("ListAll").Return([]models.Image{}, nil).Once()
	mockUsers.On("ListByIDs", []uint(nil)).Return([]models.User(nil), nil).Once()

	responses, err := service.ListMine(5)

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, models.AuctionStatusClosed, responses[0].Status)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_GetOpen(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	row := &models.AuctionRow{
		AuctionID: 1, ItemID: 10, UserID: 2, Username: "alice",
		ItemName: "Vase", InitialPrice: 50.0, Status: models.AuctionStatusOpen,
	}

	// Test successful retrieval
	mockAuctions.On("GetAuction", uint(1), repositories.AuctionFilter{Status: models.AuctionStatusOpen}).
		Return(row, nil).Once()
	mockImages.On("ListByItem", uint(10)).Return([]models.Image{{ID: 1, ItemID: 10, Filename: "vase.jpg"}}, nil).Once()

	resp, err := service.GetOpen(1)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "alice", resp.Author.Username)
	assert.Len(t, resp.Images, 1)
	assert.Nil(t, resp.Winner)
	mockAuctions.AssertExpectations(t)
	mockImages.AssertExpectations(t)

	// Test auction not found
	mockAuctions.On("GetAuction", uint(99), repositories.AuctionFilter{Status: models.AuctionStatusOpen}).
		Return(nil, apperrors.ErrAuctionNotFound).Once()

	resp, err = service.GetOpen(99)
	assert.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
	assert.Nil(t, resp)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_GetHistory_ResolvesWinner(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	winnerID := uint(7)
	finalPrice := 200.0
	row := &models.AuctionRow{
		AuctionID: 4, ItemID: 40, UserID: 2, Username: "alice",
		ItemName: "Painting", InitialPrice: 120.0,
		FinalPrice: &finalPrice, WinnerUserID: &winnerID,
		Status: models.AuctionStatusClosed,
	}

	mockAuctions.On("GetAuction", uint(4), repositories.AuctionFilter{Status: models.AuctionStatusClosed}).
		Return(row, nil).Once()
	mockImages.On("ListByItem", uint(40)).Return([]models.Image{}, nil).Once()
	mockUsers.On("GetByID", uint(7)).Return(&models.User{ID: 7, Username: "bob"}, nil).Once()

	resp, err := service.GetHistory(4)

	assert.NoError(t, err)
	if assert.NotNil(t, resp.Winner) {
		assert.Equal(t, uint(7), resp.Winner.ID)
	}
	assert.Equal(t, 200.0, *resp.FinalPrice)
	mockAuctions.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestAuctionService_Create(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	mockPublisher := new(MockPublisher)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, mockPublisher)

	// Test successful creation with an event published
	mockItems.On("GetOwned", uint(10), uint(2)).Return(&models.Item{ID: 10, UserID: 2, Name: "Vase"}, nil).Once()
	mockAuctions.On("Create", mock.MatchedBy(func(a *models.Auction) bool {
		return a.ItemID == 10 && a.UserID == 2 && a.Status == models.AuctionStatusOpen
	})).Return(nil).Once()
	mockPublisher.On("Publish", rabbitmq.ExchangeAuctions, "auction.created", mock.Anything).Return(nil).Once()

	err := service.Create(10, 2)
	assert.NoError(t, err)
	mockItems.AssertExpectations(t)
	mockAuctions.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test item owned by someone else: reads as item-not-found, nothing
	// is created or published.
	mockItems.On("GetOwned", uint(10), uint(9)).Return(nil, apperrors.ErrItemNotFound).Once()

	err = service.Create(10, 9)
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	mockItems.AssertExpectations(t)
	mockAuctions.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuctionService_Create_PublishFailureIgnored(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	mockPublisher := new(MockPublisher)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, mockPublisher)

	mockItems.On("GetOwned", uint(10), uint(2)).Return(&models.Item{ID: 10, UserID: 2}, nil).Once()
	mockAuctions.On("Create", mock.Anything).Return(nil).Once()
	mockPublisher.On("Publish", rabbitmq.ExchangeAuctions, "auction.created", mock.Anything).
		Return(fmt.Errorf("broker unavailable")).Once()

	// A broker failure never fails the request.
	err := service.Create(10, 2)
	assert.NoError(t, err)
	mockPublisher.AssertExpectations(t)
}

func TestAuctionService_Update(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	existing := &models.AuctionRow{AuctionID: 1, UserID: 2, Status: models.AuctionStatusOpen}

	// Test explicit status change
	mockAuctions.On("GetAuction", uint(1), repositories.AuctionFilter{OwnerID: 2}).Return(existing, nil).Once()
	mockAuctions.On("UpdateStatus", uint(1), uint(2), models.AuctionStatusClosed).Return(nil).Once()

	err := service.Update(1, 2, models.AuctionStatusClosed)
	assert.NoError(t, err)
	mockAuctions.AssertExpectations(t)

	// Test empty status keeps the current one
	mockAuctions.On("GetAuction", uint(1), repositories.AuctionFilter{OwnerID: 2}).Return(existing, nil).Once()
	mockAuctions.On("UpdateStatus", uint(1), uint(2), models.AuctionStatusOpen).Return(nil).Once()

	err = service.Update(1, 2, "")
	assert.NoError(t, err)
	mockAuctions.AssertExpectations(t)

	// Test auction not owned by the acting user
	mockAuctions.On("GetAuction", uint(1), repositories.AuctionFilter{OwnerID: 9}).
		Return(nil, apperrors.ErrAuctionNotFound).Once()

	err = service.Update(1, 9, models.AuctionStatusClosed)
	assert.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_Delete(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	mockAuctions.On("SoftDelete", uint(1), uint(2)).Return(nil).Once()
	err := service.Delete(1, 2)
	assert.NoError(t, err)
	mockAuctions.AssertExpectations(t)

	mockAuctions.On("SoftDelete", uint(1), uint(9)).Return(apperrors.ErrAuctionNotFound).Once()
	err = service.Delete(1, 9)
	assert.ErrorIs(t, err, apperrors.ErrAuctionNotFound)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_SetWinner(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	mockPublisher := new(MockPublisher)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, mockPublisher)

	winnerID := uint(7)
	finalPrice := 180.0
	updated := &models.Auction{ID: 1, ItemID: 10, UserID: 2, WinnerUserID: &winnerID, FinalPrice: &finalPrice}

	// Test successful winner selection
	mockAuctions.On("SetWinner", uint(1), uint(2), uint(3)).Return(updated, nil).Once()
	mockPublisher.On("Publish", rabbitmq.ExchangeAuctions, "auction.winner_set", mock.Anything).Return(nil).Once()

	err := service.SetWinner(1, 3, 2)
	assert.NoError(t, err)
	mockAuctions.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test bid not found
	mockAuctions.On("SetWinner", uint(1), uint(2), uint(99)).Return(nil, apperrors.ErrBidNotFound).Once()
	err = service.SetWinner(1, 99, 2)
	assert.ErrorIs(t, err, apperrors.ErrBidNotFound)
	mockAuctions.AssertExpectations(t)

	// Test acting user is not the auction owner
	mockAuctions.On("SetWinner", uint(1), uint(9), uint(3)).Return(nil, apperrors.ErrForbidden).Once()
	err = service.SetWinner(1, 3, 9)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockAuctions.AssertExpectations(t)
}

func TestAuctionService_Close(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	mockPublisher := new(MockPublisher)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, mockPublisher)

	// Test successful close
	mockAuctions.On("Close", uint(1), uint(2)).Return(nil).Once()
	mockPublisher.On("Publish", rabbitmq.ExchangeAuctions, "auction.closed", mock.Anything).Return(nil).Once()

	err := service.Close(1, 2)
	assert.NoError(t, err)
	mockAuctions.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test close by a non-owner
	mockAuctions.On("Close", uint(1), uint(9)).Return(apperrors.ErrForbidden).Once()
	err = service.Close(1, 9)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	mockAuctions.AssertExpectations(t)
	mockPublisher.AssertNotCalled(t, "Publish", rabbitmq.ExchangeAuctions, "auction.closed", mock.Anything)
}

func TestAuctionService_MyBids(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	rows := []models.BidAuctionRow{
		{BidID: 11, AuctionID: 1, BidPrice: 75.0, ItemID: 10, UserID: 2, ItemName: "Vase", Status: models.AuctionStatusOpen},
		{BidID: 12, AuctionID: 2, BidPrice: 120.0, ItemID: 20, UserID: 2, ItemName: "Old Clock", Status: models.AuctionStatusClosed},
	}

	mockAuctions.On("ListBidAuctions", uint(7)).Return(rows, nil).Once()
	mockImages.On("ListAll").Return([]models.Image{{ID: 1, ItemID: 10, Filename: "vase.jpg"}}, nil).Once()

	entries, err := service.MyBids(7)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, uint(11), entries[0].Bid.ID)
	if assert.NotNil(t, entries[0].Auction.Images) {
		assert.Equal(t, "http://localhost:8080/images/vase.jpg", entries[0].Auction.Images.URL)
	}
	assert.Nil(t, entries[1].Auction.Images)
	mockAuctions.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestAuctionService_MyBids_Empty(t *testing.T) {
	mockAuctions := new(MockAuctionRepository)
	mockItems := new(MockItemRepository)
	mockUsers := new(MockUserRepository)
	mockImages := new(MockImageRepository)
	service := newAuctionService(mockAuctions, mockItems, mockUsers, mockImages, nil)

	mockAuctions.On("ListBidAuctions", uint(7)).Return([]models.BidAuctionRow{}, nil).Once()

	entries, err := service.MyBids(7)

	assert.ErrorIs(t, err, apperrors.ErrNoBids)
	assert.Nil(t, entries)
	mockAuctions.AssertExpectations(t)
}

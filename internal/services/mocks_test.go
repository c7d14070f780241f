package services_test

import (
	"github.com/stretchr/testify/mock"

	"lelang/internal/models"
	"lelang/internal/repositories"
)

// Shared testify mocks for the repository interfaces and the event
// publisher, used across the service tests in this package.

type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) GetAuction(id uint, filter repositories.AuctionFilter) (*models.AuctionRow, error) {
	args := m.Called(id, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuctionRow), args.Error(1)
}

func (m *MockAuctionRepository) ListAuctions(filter repositories.AuctionFilter) ([]models.AuctionRow, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuctionRow), args.Error(1)
}

func (m *MockAuctionRepository) Create(auction *models.Auction) error {
	args := m.Called(auction)
	return args.Error(0)
}

func (m *MockAuctionRepository) UpdateStatus(id, ownerID uint, status string) error {
	args := m.Called(id, ownerID, status)
	return args.Error(0)
}

func (m *MockAuctionRepository) SoftDelete(id, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}

func (m *MockAuctionRepository) SetWinner(auctionID, ownerID, bidID uint) (*models.Auction, error) {
	args := m.Called(auctionID, ownerID, bidID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Auction), args.Error(1)
}

func (m *MockAuctionRepository) Close(auctionID, ownerID uint) error {
	args := m.Called(auctionID, ownerID)
	return args.Error(0)
}

func (m *MockAuctionRepository) ListBidAuctions(userID uint) ([]models.BidAuctionRow, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BidAuctionRow), args.Error(1)
}

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) ListByOwner(ownerID uint) ([]models.Item, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetOwned(id, ownerID uint) (*models.Item, error) {
	args := m.Called(id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) SoftDelete(id, ownerID uint) error {
	args := m.Called(id, ownerID)
	return args.Error(0)
}

type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) Create(bid *models.Bid) error {
	args := m.Called(bid)
	return args.Error(0)
}

func (m *MockBidRepository) ListByAuction(auctionID uint) ([]models.Bid, error) {
	args := m.Called(auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bid), args.Error(1)
}

func (m *MockBidRepository) GetHighest(auctionID uint) (*models.Bid, error) {
	args := m.Called(auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) ListByItem(itemID uint) ([]models.Image, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) ListAll() ([]models.Image, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Image), args.Error(1)
}

func (m *MockImageRepository) Create(image *models.Image) error {
	args := m.Called(image)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

package services_test

import (
	"testing"

	"lelang/internal/apperrors"
	"lelang/internal/models"
	"lelang/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testJWTSecret)

	newUser := &models.User{
		Username: "alice",
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "0811111111",
		Password: "password123",
	}

	// Test successful registration
	mockRepo.On("GetByUsername", "alice").Return(nil, apperrors.ErrUserNotFound).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, apperrors.ErrUserNotFound).Once()
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		// The stored password must be a bcrypt hash of the original.
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password123")) == nil
	})).Return(nil).Once()

	err := service.RegisterUser(newUser)
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", newUser.Password)
	mockRepo.AssertExpectations(t)

	// Test username already taken
	taken := &models.User{Username: "alice", Email: "other@example.com", Password: "x"}
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil).Once()

	err = service.RegisterUser(taken)
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	dupEmail := &models.User{Username: "bob", Email: "alice@example.com", Password: "x"}
	mockRepo.On("GetByUsername", "bob").Return(nil, apperrors.ErrUserNotFound).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(&models.User{ID: 1, Email: "alice@example.com"}, nil).Once()

	err = service.RegisterUser(dupEmail)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testJWTSecret)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	user := &models.User{ID: 42, Username: "alice", Password: string(hashed)}

	// Test successful login
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()

	token, err := service.LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	// Numeric claims round-trip through JSON as float64.
	assert.EqualValues(t, 42, claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
	mockRepo.AssertExpectations(t)

	// Test wrong password
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()

	token, err = service.LoginUser("alice", "wrong-password")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test unknown username: the error must not reveal which part failed.
	mockRepo.On("GetByUsername", "nobody").Return(nil, apperrors.ErrUserNotFound).Once()

	token, err = service.LoginUser("nobody", "password123")
	assert.Error(t, err)
	assert.Empty(t, token)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, testJWTSecret)

	// Test garbage token
	claims, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)

	// Test token signed with a different secret
	otherService := services.NewAuthService(mockRepo, "another-secret")
	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: 1, Username: "alice", Password: string(hashed)}, nil).Once()

	foreignToken, err := otherService.LoginUser("alice", "pw")
	assert.NoError(t, err)

	claims, err = service.ValidateToken(foreignToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "invalid token")
	mockRepo.AssertExpectations(t)
}

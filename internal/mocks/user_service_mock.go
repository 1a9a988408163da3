package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// MockUserService is a mock implementation of service.UserGenerator.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateLocal(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) FindOrCreateByOAuth(ctx context.Context, oauthID, suggestedUsername string) (*models.User, error) {
	args := m.Called(ctx, oauthID, suggestedUsername)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) SetSecret(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

func (m *MockUserService) ListSecrets(ctx context.Context) ([]models.PublicSecret, error) {
	args := m.Called(ctx)
	secrets, _ := args.Get(0).([]models.PublicSecret)
	return secrets, args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *MockUserRepository) FindOrCreateByOAuthID(ctx context.Context, oauthID, username string) (*models.User, error) {
	args := m.Called(ctx, oauthID, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	args := m.Called(ctx, id, secret)
	return args.Error(0)
}

func (m *MockUserRepository) ListSecrets(ctx context.Context) ([]models.PublicSecret, error) {
	args := m.Called(ctx)
	secrets, _ := args.Get(0).([]models.PublicSecret)
	return secrets, args.Error(1)
}

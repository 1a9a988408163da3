package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// MockSessionService is a mock implementation of service.SessionGenerator.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Establish(ctx context.Context, user *models.User, meta models.SessionMeta) (*models.Session, error) {
	args := m.Called(ctx, user, meta)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockSessionService) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

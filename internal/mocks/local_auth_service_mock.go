package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// MockLocalAuthService is a mock implementation of service.LocalAuthGenerator.
type MockLocalAuthService struct {
	mock.Mock
}

func (m *MockLocalAuthService) Register(ctx context.Context, username, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*models.AuthResult)
	return result, args.Error(1)
}

func (m *MockLocalAuthService) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, username, password)
	result, _ := args.Get(0).(*models.AuthResult)
	return result, args.Error(1)
}

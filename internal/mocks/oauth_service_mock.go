package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// MockOAuthService is a mock implementation of service.OAuthProvider.
// Use this for testing handlers that depend on the Google login flow.
type MockOAuthService struct {
	mock.Mock
}

// GetAuthCodeURL provides a mock function for generating the auth code URL.
func (m *MockOAuthService) GetAuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

// Authenticate provides a mock function for completing the callback.
func (m *MockOAuthService) Authenticate(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	// Handle potential nil return for the user
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

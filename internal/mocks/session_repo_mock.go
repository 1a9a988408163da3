package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// MockSessionRepository mocks repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) StoreSession(ctx context.Context, session *models.Session) error {
	return m.Called(ctx, session).Error(0)
}

// GetSession returns a nil session when the expectation was set with Return(nil, err).
func (m *MockSessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	session, _ := args.Get(0).(*models.Session)
	return session, args.Error(1)
}

func (m *MockSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionRepository) ExtendSession(ctx context.Context, sessionID string, newExpiry time.Time) error {
	return m.Called(ctx, sessionID, newExpiry).Error(0)
}

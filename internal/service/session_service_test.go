package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/juliotrujilloh/Authentication-Security/internal/mocks"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository/memory"
)

const (
	testSessionToken = "test-session-token-123"
	testUserID       = "user-1"
	testSessionTTL   = time.Hour
	genericErrMsg    = "a generic error occurred"
)

// sessionServiceTestDeps holds common dependencies for SessionService tests
type sessionServiceTestDeps struct {
	mockUserRepo    *mocks.MockUserRepository
	mockSessionRepo *mocks.MockSessionRepository
	now             time.Time
	service         *SessionService
}

// setupSessionServiceTest initializes mocks and a SessionService with a frozen clock.
func setupSessionServiceTest(t *testing.T) sessionServiceTestDeps {
	t.Helper()
	deps := sessionServiceTestDeps{
		mockUserRepo:    new(mocks.MockUserRepository),
		mockSessionRepo: new(mocks.MockSessionRepository),
		now:             time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	deps.service = NewSessionService(deps.mockSessionRepo, deps.mockUserRepo, testSessionTTL)
	deps.service.now = func() time.Time { return deps.now }
	return deps
}

func TestSessionService_Establish(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: testUserID, Username: "alice"}
	meta := models.SessionMeta{Host: "127.0.0.1", UserAgent: "go-test"}

	t.Run("Success_Establish", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("StoreSession", ctx, mock.AnythingOfType("*models.Session")).
			Run(func(args mock.Arguments) {
				stored := args.Get(1).(*models.Session)
				assert.Equal(t, testUserID, stored.UserID)
				assert.Equal(t, deps.now.Add(testSessionTTL), stored.Expiry)
				assert.Equal(t, "127.0.0.1", stored.Host)
				assert.Equal(t, "go-test", stored.UserAgent)
			}).Return(nil).Once()

		session, err := deps.service.Establish(ctx, user, meta)
		require.NoError(t, err)

		raw, err := base64.RawURLEncoding.DecodeString(session.SessionID)
		require.NoError(t, err)
		assert.Len(t, raw, sessionTokenBytes)
		deps.mockSessionRepo.AssertExpectations(t)
	})

	t.Run("TokensAreUnique", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("StoreSession", ctx, mock.Anything).Return(nil).Twice()

		first, err := deps.service.Establish(ctx, user, meta)
		require.NoError(t, err)
		second, err := deps.service.Establish(ctx, user, meta)
		require.NoError(t, err)
		assert.NotEqual(t, first.SessionID, second.SessionID)
	})

	t.Run("ErrorNoUser_Establish", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		_, err := deps.service.Establish(ctx, nil, meta)
		require.Error(t, err)
		deps.mockSessionRepo.AssertNotCalled(t, "StoreSession", mock.Anything, mock.Anything)
	})

	t.Run("ErrorRepoFailure_Establish", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		repoErr := errors.New(genericErrMsg)
		deps.mockSessionRepo.On("StoreSession", ctx, mock.Anything).Return(repoErr).Once()

		session, err := deps.service.Establish(ctx, user, meta)
		assert.Nil(t, session)
		assert.ErrorIs(t, err, repoErr)
		assert.Contains(t, err.Error(), "failed to store session")
	})
}

func TestSessionService_Resolve(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: testUserID, Username: "alice"}

	t.Run("EmptyToken", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		got, err := deps.service.Resolve(ctx, "")
		require.NoError(t, err)
		assert.Nil(t, got)
		deps.mockSessionRepo.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(nil, repository.ErrSessionNotFound).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("StoreFailureIsAnonymous", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(nil, errors.New(genericErrMsg)).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiredSessionIsDeleted", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(&models.Session{
			SessionID: testSessionToken,
			UserID:    testUserID,
			Expiry:    deps.now.Add(-time.Second),
		}, nil).Once()
		deps.mockSessionRepo.On("DeleteSession", ctx, testSessionToken).Return(nil).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Nil(t, got)
		deps.mockSessionRepo.AssertExpectations(t)
		deps.mockUserRepo.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("MissingUserIsAnonymous", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(&models.Session{
			SessionID: testSessionToken,
			UserID:    testUserID,
			Expiry:    deps.now.Add(testSessionTTL),
		}, nil).Once()
		deps.mockUserRepo.On("GetUserByID", ctx, testUserID).Return(nil, repository.ErrUserNotFound).Once()
		deps.mockSessionRepo.On("DeleteSession", ctx, testSessionToken).Return(nil).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Nil(t, got)
		deps.mockSessionRepo.AssertExpectations(t)
	})

	t.Run("FreshSessionNotExtended", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(&models.Session{
			SessionID: testSessionToken,
			UserID:    testUserID,
			Expiry:    deps.now.Add(testSessionTTL - time.Minute),
		}, nil).Once()
		deps.mockUserRepo.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		deps.mockSessionRepo.AssertNotCalled(t, "ExtendSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AgingSessionIsExtended", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(&models.Session{
			SessionID: testSessionToken,
			UserID:    testUserID,
			Expiry:    deps.now.Add(10 * time.Minute),
		}, nil).Once()
		deps.mockUserRepo.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()
		deps.mockSessionRepo.On("ExtendSession", ctx, testSessionToken, deps.now.Add(testSessionTTL)).Return(nil).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		deps.mockSessionRepo.AssertExpectations(t)
	})

	t.Run("ExtendFailureStillResolves", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("GetSession", ctx, testSessionToken).Return(&models.Session{
			SessionID: testSessionToken,
			UserID:    testUserID,
			Expiry:    deps.now.Add(time.Minute),
		}, nil).Once()
		deps.mockUserRepo.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()
		deps.mockSessionRepo.On("ExtendSession", ctx, testSessionToken, mock.Anything).Return(errors.New(genericErrMsg)).Once()

		got, err := deps.service.Resolve(ctx, testSessionToken)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})
}

func TestSessionService_Destroy(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Destroy", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("DeleteSession", ctx, testSessionToken).Return(nil).Once()

		require.NoError(t, deps.service.Destroy(ctx, testSessionToken))
		deps.mockSessionRepo.AssertExpectations(t)
	})

	t.Run("SuccessWhenSessionNotFound_Destroy", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		deps.mockSessionRepo.On("DeleteSession", ctx, testSessionToken).Return(repository.ErrSessionNotFound).Once()

		require.NoError(t, deps.service.Destroy(ctx, testSessionToken))
	})

	t.Run("EmptyToken_Destroy", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		require.NoError(t, deps.service.Destroy(ctx, ""))
		deps.mockSessionRepo.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
	})

	t.Run("ErrorRepoFailure_Destroy", func(t *testing.T) {
		deps := setupSessionServiceTest(t)
		repoErr := errors.New(genericErrMsg)
		deps.mockSessionRepo.On("DeleteSession", ctx, testSessionToken).Return(repoErr).Once()

		err := deps.service.Destroy(ctx, testSessionToken)
		require.Error(t, err)
		assert.ErrorIs(t, err, repoErr)
		assert.Contains(t, err.Error(), "failed to sign out")
	})
}

func TestSessionService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewMemoryUserRepository()
	sessionRepo := memory.NewMemorySessionRepository(time.Minute)
	t.Cleanup(sessionRepo.StopCleanup)

	users := NewUserService(userRepo)
	sessions := NewSessionService(sessionRepo, userRepo, testSessionTTL)

	alice, err := users.CreateLocal(ctx, "alice", "pw123")
	require.NoError(t, err)

	session, err := sessions.Establish(ctx, alice, models.SessionMeta{})
	require.NoError(t, err)

	resolved, err := sessions.Resolve(ctx, session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, alice.ID, resolved.ID)

	require.NoError(t, sessions.Destroy(ctx, session.SessionID))
	require.NoError(t, sessions.Destroy(ctx, session.SessionID), "destroy is idempotent")

	resolved, err = sessions.Resolve(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

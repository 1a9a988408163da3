package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliotrujilloh/Authentication-Security/internal/mocks"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

func TestLocalAuthService_Register(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u1", Username: "alice"}

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("CreateLocal", ctx, "alice", "pw123").Return(user, nil).Once()

		result, err := NewLocalAuthService(users).Register(ctx, "alice", "pw123")
		require.NoError(t, err)
		assert.Equal(t, models.AuthStateAuthenticated, result.State)
		assert.Equal(t, user, result.User)
		users.AssertExpectations(t)
	})

	t.Run("Duplicate", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("CreateLocal", ctx, "alice", "pw123").Return(nil, repository.ErrUserExists).Once()

		result, err := NewLocalAuthService(users).Register(ctx, "alice", "pw123")
		assert.ErrorIs(t, err, repository.ErrUserExists)
		require.NotNil(t, result)
		assert.Equal(t, models.AuthStateRejected, result.State)
		assert.Nil(t, result.User)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		users := new(mocks.MockUserService)
		storeErr := errors.Join(repository.ErrStoreUnavailable, errors.New("down"))
		users.On("CreateLocal", ctx, "alice", "pw123").Return(nil, storeErr).Once()

		result, err := NewLocalAuthService(users).Register(ctx, "alice", "pw123")
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.Nil(t, result)
	})
}

func TestLocalAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u1", Username: "alice"}

	t.Run("Success", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("VerifyPassword", ctx, "alice", "pw123").Return(user, nil).Once()

		result, err := NewLocalAuthService(users).Login(ctx, "alice", "pw123")
		require.NoError(t, err)
		assert.Equal(t, models.AuthStateAuthenticated, result.State)
		assert.Equal(t, "u1", result.User.ID)
	})

	t.Run("Rejected", func(t *testing.T) {
		users := new(mocks.MockUserService)
		users.On("VerifyPassword", ctx, "alice", "bad").Return(nil, ErrInvalidCredentials).Once()

		result, err := NewLocalAuthService(users).Login(ctx, "alice", "bad")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		require.NotNil(t, result)
		assert.Equal(t, models.AuthStateRejected, result.State)
		assert.Nil(t, result.User)
	})

	t.Run("StoreUnavailable", func(t *testing.T) {
		users := new(mocks.MockUserService)
		storeErr := errors.Join(repository.ErrStoreUnavailable, errors.New("down"))
		users.On("VerifyPassword", ctx, "alice", "pw123").Return(nil, storeErr).Once()

		result, err := NewLocalAuthService(users).Login(ctx, "alice", "pw123")
		assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
		assert.Nil(t, result)
	})
}

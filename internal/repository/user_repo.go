package repository

import (
	"context"
	"errors"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

// UserRepository defines operations for storing/retrieving user records
type UserRepository interface {
	// CreateUser stores a new user. ID and CreatedAt are assigned by the repository.
	// It should return ErrUserExists if the username is already taken.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)

	// FindOrCreateByOAuthID returns the user linked to oauthID, creating it with
	// the given username when no such user exists. At most one record is ever
	// created per oauthID, even under concurrent calls.
	// It should return ErrUserExists if the record has to be created and the
	// username belongs to another user.
	FindOrCreateByOAuthID(ctx context.Context, oauthID, username string) (*models.User, error)

	// GetUserByID retrieves a user by its ID.
	// It should return ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByUsername retrieves a user by its username.
	// It should return ErrUserNotFound if the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateSecret overwrites the secret of a user.
	// It should return ErrUserNotFound if the user does not exist.
	UpdateSecret(ctx context.Context, id, secret string) error

	// ListSecrets returns every user that has a non-empty secret, oldest first.
	ListSecrets(ctx context.Context) ([]models.PublicSecret, error)
}

// Common errors
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ErrStoreUnavailable marks failures of the backing store itself (connection,
// timeout, driver errors) as opposed to lookups that found nothing.
var ErrStoreUnavailable = errors.New("store unavailable")

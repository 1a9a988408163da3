package service

import (
	"context"
	"errors"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
)

var (
	// ErrInvalidCredentials covers unknown usernames, OAuth-only accounts and
	// wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrOAuthExchange wraps every failure of the Google callback flow.
	ErrOAuthExchange = errors.New("oauth exchange failed")
)

// UserGenerator is the credential store used by the authenticators and handlers.
type UserGenerator interface {
	CreateLocal(ctx context.Context, username, password string) (*models.User, error)
	FindOrCreateByOAuth(ctx context.Context, oauthID, suggestedUsername string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	SetSecret(ctx context.Context, userID, text string) error
	ListSecrets(ctx context.Context) ([]models.PublicSecret, error)
}

type LocalAuthGenerator interface {
	// Register creates a local account. A taken username yields a rejected
	// result together with repository.ErrUserExists.
	Register(ctx context.Context, username, password string) (*models.AuthResult, error)
	// Login verifies a username/password pair. Bad credentials yield a
	// rejected result together with ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*models.AuthResult, error)
}

type OAuthProvider interface {
	GetAuthCodeURL(state string) string
	// Authenticate completes the callback: code exchange, profile lookup and
	// find-or-create of the local user.
	Authenticate(ctx context.Context, code string) (*models.User, error)
}

type SessionGenerator interface {
	Establish(ctx context.Context, user *models.User, meta models.SessionMeta) (*models.Session, error)
	// Resolve returns nil, nil for anonymous requests.
	Resolve(ctx context.Context, token string) (*models.User, error)
	Destroy(ctx context.Context, token string) error
}

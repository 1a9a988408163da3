package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

var _ UserGenerator = (*userService)(nil)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

// CreateLocal stores a new local account with a freshly salted argon2id hash.
func (s *userService) CreateLocal(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	salt, err := generateSalt()
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(password, salt)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		PasswordSalt: salt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Str("userId", user.ID).Str("username", user.Username).Msg("Local user created")
	return user, nil
}

func (s *userService) FindOrCreateByOAuth(ctx context.Context, oauthID, suggestedUsername string) (*models.User, error) {
	if oauthID == "" {
		return nil, errors.New("oauth id cannot be empty")
	}
	return s.userRepo.FindOrCreateByOAuthID(ctx, oauthID, suggestedUsername)
}

func (s *userService) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

// VerifyPassword returns the user when password matches the stored hash.
// Every credential mismatch is reported as ErrInvalidCredentials.
func (s *userService) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			_, _ = hashPassword(password, dummySalt)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() {
		_, _ = hashPassword(password, dummySalt)
		return nil, ErrInvalidCredentials
	}
	if !checkPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) SetSecret(ctx context.Context, userID, text string) error {
	if err := s.userRepo.UpdateSecret(ctx, userID, text); err != nil {
		return fmt.Errorf("failed to set secret: %w", err)
	}
	log.Info().Str("userId", userID).Int("length", len(text)).Msg("Secret updated")
	return nil
}

func (s *userService) ListSecrets(ctx context.Context) ([]models.PublicSecret, error) {
	return s.userRepo.ListSecrets(ctx)
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

var _ LocalAuthGenerator = (*LocalAuthService)(nil)

// LocalAuthService authenticates username/password pairs against the credential store.
type LocalAuthService struct {
	users UserGenerator
}

func NewLocalAuthService(users UserGenerator) *LocalAuthService {
	return &LocalAuthService{users: users}
}

func (s *LocalAuthService) Register(ctx context.Context, username, password string) (*models.AuthResult, error) {
	user, err := s.users.CreateLocal(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Info().Str("username", username).Msg("Registration rejected, username taken")
			return &models.AuthResult{State: models.AuthStateRejected}, err
		}
		log.Error().Err(err).Str("username", username).Msg("Registration failed")
		return nil, err
	}
	return &models.AuthResult{State: models.AuthStateAuthenticated, User: user}, nil
}

func (s *LocalAuthService) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	user, err := s.users.VerifyPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Info().Str("username", username).Msg("Login rejected")
			return &models.AuthResult{State: models.AuthStateRejected}, err
		}
		log.Error().Err(err).Str("username", username).Msg("Login failed")
		return nil, err
	}
	log.Info().Str("userId", user.ID).Msg("Login succeeded")
	return &models.AuthResult{State: models.AuthStateAuthenticated, User: user}, nil
}

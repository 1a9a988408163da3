package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

const sessionTokenBytes = 32

type SessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	ttl         time.Duration
	now         func() time.Time
}

var _ SessionGenerator = (*SessionService)(nil)

// NewSessionService creates a SessionService issuing sessions valid for ttl.
func NewSessionService(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		ttl:         ttl,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// tokenPrefix is the only part of a session token that may be logged.
func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}

// Establish issues a new session for user.
func (s *SessionService) Establish(ctx context.Context, user *models.User, meta models.SessionMeta) (*models.Session, error) {
	if user == nil || user.ID == "" {
		return nil, errors.New("cannot establish a session without a user")
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.Session{
		SessionID: token,
		UserID:    user.ID,
		Host:      meta.Host,
		UserAgent: meta.UserAgent,
		CreatedAt: now,
		Expiry:    now.Add(s.ttl),
	}
	if err := s.sessionRepo.StoreSession(ctx, session); err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("Failed to store session")
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	log.Info().Str("userId", user.ID).Str("tokenPrefix", tokenPrefix(token)).Time("expiry", session.Expiry).Msg("Session established")
	return session, nil
}

// Resolve maps a session token back to its user. Missing, expired and
// orphaned sessions resolve to nil without error.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.GetSession(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			log.Warn().Err(err).Str("tokenPrefix", tokenPrefix(token)).Msg("Session lookup failed, treating request as anonymous")
		}
		return nil, nil
	}

	now := s.now()
	if now.After(session.Expiry) {
		_ = s.sessionRepo.DeleteSession(ctx, token)
		return nil, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Warn().Str("userId", session.UserID).Msg("Session refers to a missing user, deleting it")
			_ = s.sessionRepo.DeleteSession(ctx, token)
		} else {
			log.Warn().Err(err).Str("userId", session.UserID).Msg("User lookup failed, treating request as anonymous")
		}
		return nil, nil
	}

	if session.Expiry.Sub(now) < s.ttl/2 {
		newExpiry := now.Add(s.ttl)
		if err := s.sessionRepo.ExtendSession(ctx, token, newExpiry); err != nil {
			log.Warn().Err(err).Str("tokenPrefix", tokenPrefix(token)).Msg("Failed to extend session")
		}
	}

	return user, nil
}

// Destroy removes the session. Unknown and empty tokens are not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteSession(ctx, token); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error().Err(err).Str("tokenPrefix", tokenPrefix(token)).Msg("Failed to delete session")
		return fmt.Errorf("failed to sign out: %w", err)
	}
	log.Info().Str("tokenPrefix", tokenPrefix(token)).Msg("Session destroyed")
	return nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.SessionRepository = (*RedisSessionRepository)(nil)

// RedisSessionRepository implements SessionRepository using Redis.
// Each session is a JSON string under session:<id> whose key TTL matches the session expiry.
type RedisSessionRepository struct {
	client *redis.Client
}

// Helper to construct session key
func makeSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
	}
}

// StoreSession saves the session data with a TTL derived from its expiry.
func (r *RedisSessionRepository) StoreSession(ctx context.Context, session *models.Session) error {
	if session == nil || session.SessionID == "" || session.UserID == "" {
		return errors.New("invalid session data: SessionID and UserID must be set")
	}

	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := max(time.Until(session.Expiry), 0)
	if ttl <= 0 {
		return r.DeleteSession(ctx, session.SessionID)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, makeSessionKey(session.SessionID), jsonData, ttl)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: failed to execute session store pipeline: %w", repository.ErrStoreUnavailable, err)
	}

	return nil
}

// GetSession retrieves a session by its ID from Redis.
// It returns ErrSessionNotFound if the session doesn't exist or is expired (handled by Redis TTL).
// It also performs an additional check on the deserialized session's IsExpired() method
func (r *RedisSessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sessionKey := makeSessionKey(sessionID)

	jsonData, err := r.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis GET failed: %w", repository.ErrStoreUnavailable, err)
	}

	var session models.Session
	if err := json.Unmarshal(jsonData, &session); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if session.IsExpired() {
		_ = r.client.Del(ctx, sessionKey).Err()
		return nil, repository.ErrSessionNotFound
	}

	return &session, nil
}

// DeleteSession removes a session. Missing keys are not an error.
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, makeSessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete session: %w", repository.ErrStoreUnavailable, err)
	}
	return nil
}

// ExtendSession updates the expiry and stores the session with the new TTL.
func (r *RedisSessionRepository) ExtendSession(ctx context.Context, sessionID string, newExpiry time.Time) error {
	sessionKey := makeSessionKey(sessionID)

	jsonData, err := r.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return repository.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: redis GET failed during extend: %w", repository.ErrStoreUnavailable, err)
	}

	var currentSession models.Session
	if err := json.Unmarshal(jsonData, &currentSession); err != nil {
		return fmt.Errorf("json unmarshal failed during extend: %w", err)
	}

	if currentSession.IsExpired() {
		_ = r.DeleteSession(ctx, sessionID)
		return repository.ErrSessionNotFound
	}

	currentSession.Expiry = newExpiry
	updatedJSONData, err := json.Marshal(currentSession)
	if err != nil {
		return fmt.Errorf("json marshal failed during extend: %w", err)
	}

	ttl := max(time.Until(newExpiry), 0)
	if ttl <= 0 {
		return r.DeleteSession(ctx, sessionID)
	}

	// SET XX never recreates a session removed by a concurrent logout.
	ok, err := r.client.SetXX(ctx, sessionKey, updatedJSONData, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: redis SET failed during extend: %w", repository.ErrStoreUnavailable, err)
	}
	if !ok {
		return repository.ErrSessionNotFound
	}

	return nil
}

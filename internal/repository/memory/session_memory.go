package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

var _ repository.SessionRepository = (*MemorySessionRepository)(nil)

// MemorySessionRepository implements SessionRepository in memory (NOT FOR PRODUCTION).
type MemorySessionRepository struct {
	sessions      map[string]models.Session
	mutex         sync.RWMutex
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	stopOnce      sync.Once
}

// NewMemorySessionRepository creates a new in-memory session repository.
// cleanupInterval defines how often expired sessions are automatically removed.
func NewMemorySessionRepository(cleanupInterval time.Duration) *MemorySessionRepository {
	r := &MemorySessionRepository{
		sessions:      make(map[string]models.Session),
		cleanupTicker: time.NewTicker(cleanupInterval),
		stopCleanup:   make(chan struct{}),
	}
	go r.startCleanup()
	return r
}

// startCleanup runs the periodic cleanup in a background goroutine.
func (r *MemorySessionRepository) startCleanup() {
	for {
		select {
		case <-r.cleanupTicker.C:
			r.cleanupExpiredSessions()
		case <-r.stopCleanup:
			r.cleanupTicker.Stop()
			return
		}
	}
}

// cleanupExpiredSessions removes all expired sessions.
func (r *MemorySessionRepository) cleanupExpiredSessions() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := time.Now()
	for sessionID, session := range r.sessions {
		if now.After(session.Expiry) {
			delete(r.sessions, sessionID)
		}
	}
}

// StopCleanup stops the background cleanup task. It is safe to call more than once.
func (r *MemorySessionRepository) StopCleanup() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// StoreSession saves or updates a session.
func (r *MemorySessionRepository) StoreSession(ctx context.Context, session *models.Session) error {
	if session == nil || session.SessionID == "" || session.UserID == "" {
		return errors.New("invalid session data: SessionID and UserID must be set")
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if session.IsExpired() {
		delete(r.sessions, session.SessionID)
		return nil
	}
	r.sessions[session.SessionID] = *session
	return nil
}

// GetSession retrieves a session by its ID.
func (r *MemorySessionRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	session, exists := r.sessions[sessionID]
	if !exists || session.IsExpired() {
		return nil, repository.ErrSessionNotFound
	}
	return &session, nil
}

// DeleteSession removes a session.
func (r *MemorySessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

// ExtendSession updates the expiry time for a session.
func (r *MemorySessionRepository) ExtendSession(ctx context.Context, sessionID string, newExpiry time.Time) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	session, exists := r.sessions[sessionID]
	if !exists || session.IsExpired() {
		return repository.ErrSessionNotFound
	}

	session.Expiry = newExpiry
	r.sessions[sessionID] = session
	return nil
}

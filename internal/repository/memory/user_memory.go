package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

// MemoryUserRepository implements UserRepository in memory (NOT FOR PRODUCTION)
type MemoryUserRepository struct {
	users      map[string]*models.User // ID -> user
	byUsername map[string]string       // username -> ID
	byOAuthID  map[string]string       // oauthID -> ID
	mutex      sync.RWMutex
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[string]*models.User),
		byUsername: make(map[string]string),
		byOAuthID:  make(map[string]string),
	}
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.byUsername[user.Username]; exists {
		return nil, repository.ErrUserExists
	}
	if user.OAuthID != "" {
		if _, exists := r.byOAuthID[user.OAuthID]; exists {
			return nil, repository.ErrUserExists
		}
	}
	return r.insert(*user), nil
}

func (r *MemoryUserRepository) FindOrCreateByOAuthID(ctx context.Context, oauthID, username string) (*models.User, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if id, exists := r.byOAuthID[oauthID]; exists {
		u := *r.users[id]
		return &u, nil
	}
	if _, exists := r.byUsername[username]; exists {
		return nil, repository.ErrUserExists
	}
	return r.insert(models.User{Username: username, OAuthID: oauthID}), nil
}

// insert must be called with the write lock held.
func (r *MemoryUserRepository) insert(u models.User) *models.User {
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = &u
	r.byUsername[u.Username] = u.ID
	if u.OAuthID != "" {
		r.byOAuthID[u.OAuthID] = u.ID
	}
	out := u
	return &out
}

func (r *MemoryUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	id, exists := r.byUsername[username]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	out := *r.users[id]
	return &out, nil
}

func (r *MemoryUserRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	u, exists := r.users[id]
	if !exists {
		return repository.ErrUserNotFound
	}
	u.Secret = secret
	return nil
}

func (r *MemoryUserRepository) ListSecrets(ctx context.Context) ([]models.PublicSecret, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	withSecret := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		if u.Secret != "" {
			withSecret = append(withSecret, u)
		}
	}
	sort.Slice(withSecret, func(i, j int) bool {
		if withSecret[i].CreatedAt.Equal(withSecret[j].CreatedAt) {
			return withSecret[i].ID < withSecret[j].ID
		}
		return withSecret[i].CreatedAt.Before(withSecret[j].CreatedAt)
	})

	secrets := make([]models.PublicSecret, 0, len(withSecret))
	for _, u := range withSecret {
		secrets = append(secrets, models.PublicSecret{Username: u.Username, Secret: u.Secret})
	}
	return secrets, nil
}

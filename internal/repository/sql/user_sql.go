package sql_repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
)

const pgUniqueViolation = "23505"

const selectUser = `SELECT id, username,
	COALESCE(password_hash, '') AS password_hash,
	COALESCE(password_salt, '') AS password_salt,
	COALESCE(oauth_id, '') AS oauth_id,
	COALESCE(secret, '') AS secret,
	created_at
	FROM users `

var _ repository.UserRepository = (*SQLUserRepository)(nil)

// SQLUserRepository implements UserRepository on top of sqlx.
type SQLUserRepository struct {
	db *sqlx.DB
}

func NewSQLUserRepository(db *sqlx.DB) *SQLUserRepository {
	return &SQLUserRepository{db: db}
}

func (r *SQLUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO users (id, username, password_hash, password_salt, oauth_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		u.ID, u.Username, nullable(u.PasswordHash), nullable(u.PasswordSalt), nullable(u.OAuthID), u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrUserExists
		}
		return nil, fmt.Errorf("%w: insert user %q: %w", repository.ErrStoreUnavailable, u.Username, err)
	}
	return &u, nil
}

func (r *SQLUserRepository) FindOrCreateByOAuthID(ctx context.Context, oauthID, username string) (*models.User, error) {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO users (id, username, oauth_id, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (oauth_id) DO NOTHING`),
		uuid.NewString(), username, oauthID, time.Now().UTC(),
	)
	if err != nil && !isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: insert oauth user %q: %w", repository.ErrStoreUnavailable, oauthID, err)
	}

	// A unique violation here is either a concurrent insert of the same oauth_id
	// that won the race, or a username owned by someone else.
	user, lookupErr := r.getOne(ctx, `WHERE oauth_id = ?`, oauthID)
	if errors.Is(lookupErr, repository.ErrUserNotFound) && err != nil {
		return nil, repository.ErrUserExists
	}
	if lookupErr != nil {
		return nil, lookupErr
	}
	return user, nil
}

func (r *SQLUserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, `WHERE username = ?`, username)
}

func (r *SQLUserRepository) UpdateSecret(ctx context.Context, id, secret string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET secret = ? WHERE id = ?`), secret, id)
	if err != nil {
		return fmt.Errorf("%w: update secret for user %s: %w", repository.ErrStoreUnavailable, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %w", repository.ErrStoreUnavailable, err)
	}
	if n == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *SQLUserRepository) ListSecrets(ctx context.Context) ([]models.PublicSecret, error) {
	secrets := []models.PublicSecret{}
	err := r.db.SelectContext(ctx, &secrets,
		`SELECT username, secret FROM users
		 WHERE secret IS NOT NULL AND secret <> ''
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list secrets: %w", repository.ErrStoreUnavailable, err)
	}
	return secrets, nil
}

func (r *SQLUserRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(selectUser+where), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: query user: %w", repository.ErrStoreUnavailable, err)
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return &user, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

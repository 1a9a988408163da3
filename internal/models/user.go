package models

import "time"

// User is the persisted account record. PasswordHash and PasswordSalt are set
// for locally registered accounts, OAuthID for accounts created through Google.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hex encoded argon2id key
	PasswordSalt string    `json:"-" db:"password_salt"` // Hex encoded salt
	OAuthID      string    `json:"-" db:"oauth_id"`
	Secret       string    `json:"secret,omitempty" db:"secret"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// HasPassword reports whether the account can be used for local login.
func (u *User) HasPassword() bool {
	return u.PasswordHash != "" && u.PasswordSalt != ""
}

// PublicSecret is what the public secrets board shows for a user.
type PublicSecret struct {
	Username string `json:"username" db:"username"`
	Secret   string `json:"secret" db:"secret"`
}

// OAuthUser is the subset of the Google userinfo document the app relies on.
type OAuthUser struct {
	Subject   string `json:"sub"`
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
	Email     string `json:"email"`
}

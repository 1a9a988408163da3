package mocks

import (
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
)

// CreateTestConfig returns a valid configuration using the in-memory stores.
func CreateTestConfig() *config.Config {
	return &config.Config{
		Port:     "3000",
		AppEnv:   "test",
		LogLevel: "disabled",
		OAuthProviders: map[string]*oauth2.Config{
			config.GoogleProvider: {
				ClientID:     "test-client-id",
				ClientSecret: "test-client-secret",
				RedirectURL:  "http://localhost:3000/auth/google/secrets",
				Scopes:       []string{"openid", "profile"},
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://accounts.google.com/o/oauth2/auth",
					TokenURL: "https://oauth2.googleapis.com/token",
				},
			},
		},
		Google: config.GoogleSettings{
			UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
		},
		DatabaseDriver: "sqlite3",
		DatabaseURL:    "file::memory:",
		SessionStore:   config.SessionStoreMemory,
		SessionConfig: config.SessionConfig{
			Secret:     strings.Repeat("0123456789abcdef", 2),
			CookieName: "session",
			TTL:        time.Hour,
		},
		StateCookieName: "oauth_state",
	}
}

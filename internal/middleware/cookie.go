package middleware

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
)

// SessionCookie reads and writes the signed cookie carrying the session token.
type SessionCookie struct {
	name   string
	secure bool
	codec  *securecookie.SecureCookie
}

func NewSessionCookie(cfg config.SessionConfig) *SessionCookie {
	codec := securecookie.New([]byte(cfg.Secret), nil)
	// Expiry is enforced by the session store.
	codec.MaxAge(0)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &SessionCookie{
		name:   cfg.CookieName,
		secure: cfg.CookieSecure,
		codec:  codec,
	}
}

// Token returns the session token from the request, or "" when the cookie is
// missing or its signature does not verify.
func (s *SessionCookie) Token(c echo.Context) string {
	cookie, err := c.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return ""
	}
	var token string
	if err := s.codec.Decode(s.name, cookie.Value, &token); err != nil {
		return ""
	}
	return token
}

func (s *SessionCookie) Write(c echo.Context, token string) error {
	encoded, err := s.codec.Encode(s.name, token)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

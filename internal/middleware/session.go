package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
)

const userContextKey = "user"

// LoadSession resolves the session cookie on every request and stores the
// authenticated user, if any, in the echo context.
func LoadSession(sessions service.SessionGenerator, cookie *SessionCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := cookie.Token(c)
			if token == "" {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), token)
			if err != nil || user == nil {
				return next(c)
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentUser(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// CurrentUser returns the user resolved by LoadSession, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

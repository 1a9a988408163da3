package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
)

// startSession establishes a session for user and hands its token to the browser.
func startSession(c echo.Context, sessions service.SessionGenerator, cookie *middleware.SessionCookie, user *models.User) error {
	session, err := sessions.Establish(c.Request().Context(), user, models.SessionMeta{
		Host:      c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	})
	if err != nil {
		return err
	}
	return cookie.Write(c, session.SessionID)
}

// internalError hides err from the client. The cause is kept for the request logger.
func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
	"github.com/juliotrujilloh/Authentication-Security/internal/views"
)

const usernameTakenMsg = "That username is already taken."

// AuthHandler serves the local register, login and logout pages.
type AuthHandler struct {
	LocalAuth      service.LocalAuthGenerator
	SessionService service.SessionGenerator
	Cookie         *middleware.SessionCookie
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(localAuth service.LocalAuthGenerator, sessionService service.SessionGenerator, cookie *middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{
		LocalAuth:      localAuth,
		SessionService: sessionService,
		Cookie:         cookie,
	}
}

func (h *AuthHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageHome, models.PageData{User: middleware.CurrentUser(c)})
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageRegister, models.PageData{User: middleware.CurrentUser(c)})
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageLogin, models.PageData{User: middleware.CurrentUser(c)})
}

// Register creates a local account and logs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, views.PageRegister, models.PageData{Error: "Invalid form submission."})
	}
	if err := c.Validate(&req); err != nil {
		log.Debug().Err(err).Msg("Registration form rejected")
		return c.Render(http.StatusBadRequest, views.PageRegister, models.PageData{Error: "Username and password are required."})
	}

	ctx := c.Request().Context()
	result, err := h.LocalAuth.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.Render(http.StatusOK, views.PageRegister, models.PageData{Error: usernameTakenMsg})
		}
		return internalError(err)
	}

	if err := startSession(c, h.SessionService, h.Cookie, result.User); err != nil {
		log.Error().Err(err).Str("userId", result.User.ID).Msg("Failed to start session after registration")
		return internalError(err)
	}
	return c.Redirect(http.StatusFound, "/secrets")
}

// Login verifies the credentials before any session is issued.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}
	if err := c.Validate(&req); err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx := c.Request().Context()
	result, err := h.LocalAuth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Redirect(http.StatusFound, "/login")
		}
		return internalError(err)
	}
	if result.State != models.AuthStateAuthenticated || result.User == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := startSession(c, h.SessionService, h.Cookie, result.User); err != nil {
		log.Error().Err(err).Str("userId", result.User.ID).Msg("Failed to start session after login")
		return internalError(err)
	}
	return c.Redirect(http.StatusFound, "/secrets")
}

// Logout destroys the current session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if token := h.Cookie.Token(c); token != "" {
		if err := h.SessionService.Destroy(c.Request().Context(), token); err != nil {
			log.Error().Err(err).Msg("Logout failed to delete session")
		}
	}
	h.Cookie.Clear(c)
	return c.Redirect(http.StatusFound, "/")
}

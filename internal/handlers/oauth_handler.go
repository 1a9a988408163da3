package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
)

const stateCookieTTL = 10 * time.Minute

// OAuthHandler handles the Google login redirect and callback
type OAuthHandler struct {
	OAuthService   service.OAuthProvider
	SessionService service.SessionGenerator
	Cookie         *middleware.SessionCookie
	Config         *config.Config
}

// NewOAuthHandler creates a new instance of OAuthHandler
func NewOAuthHandler(oauthService service.OAuthProvider, sessionService service.SessionGenerator, cookie *middleware.SessionCookie, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{
		OAuthService:   oauthService,
		SessionService: sessionService,
		Cookie:         cookie,
		Config:         cfg,
	}
}

func (h *OAuthHandler) setStateCookie(c echo.Context, value string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.Config.StateCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.Config.SessionConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Login initiates the OAuth2 flow by redirecting the user to Google
func (h *OAuthHandler) Login(c echo.Context) error {
	state := uuid.NewString()
	h.setStateCookie(c, state, time.Now().Add(stateCookieTTL))

	authURL := h.OAuthService.GetAuthCodeURL(state)
	log.Debug().Str("url", authURL).Msg("Redirecting user to Google consent page")
	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback handles the redirect back from Google. Any failure sends the
// browser back to the login page without creating a session.
func (h *OAuthHandler) Callback(c echo.Context) error {
	queryState := c.QueryParam("state")
	var cookieState string
	if cookie, err := c.Cookie(h.Config.StateCookieName); err == nil {
		cookieState = cookie.Value
	}

	// Clear the state cookie immediately after reading
	h.setStateCookie(c, "", time.Unix(0, 0))

	if queryState == "" || cookieState == "" || queryState != cookieState {
		log.Warn().Bool("queryStatePresent", queryState != "").Bool("cookieStatePresent", cookieState != "").Msg("OAuth callback state verification failed")
		return c.Redirect(http.StatusFound, "/login")
	}

	code := c.QueryParam("code")
	if code == "" {
		log.Warn().Str("error", c.QueryParam("error")).Str("description", c.QueryParam("error_description")).Msg("OAuth callback without authorization code")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := h.OAuthService.Authenticate(c.Request().Context(), code)
	if err != nil {
		log.Warn().Err(err).Msg("Google login failed")
		return c.Redirect(http.StatusFound, "/login")
	}

	if err := startSession(c, h.SessionService, h.Cookie, user); err != nil {
		log.Error().Err(err).Str("userId", user.ID).Msg("Failed to start session after Google login")
		return c.Redirect(http.StatusFound, "/login")
	}
	return c.Redirect(http.StatusFound, "/secrets")
}

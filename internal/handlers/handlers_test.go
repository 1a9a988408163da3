package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
	"github.com/juliotrujilloh/Authentication-Security/internal/handlers"
	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/mocks"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository/memory"
	"github.com/juliotrujilloh/Authentication-Security/internal/router"
	"github.com/juliotrujilloh/Authentication-Security/internal/server"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
	"github.com/juliotrujilloh/Authentication-Security/internal/views"
)

// testApp wires the real services on in-memory stores. Only Google is mocked.
type testApp struct {
	echo  *echo.Echo
	cfg   *config.Config
	users service.UserGenerator
	oauth *mocks.MockOAuthService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := mocks.CreateTestConfig()

	userRepo := memory.NewMemoryUserRepository()
	sessionRepo := memory.NewMemorySessionRepository(time.Minute)
	t.Cleanup(sessionRepo.StopCleanup)

	users := service.NewUserService(userRepo)
	sessions := service.NewSessionService(sessionRepo, userRepo, cfg.SessionConfig.TTL)
	oauth := new(mocks.MockOAuthService)
	cookie := middleware.NewSessionCookie(cfg.SessionConfig)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	app := server.New(server.Options{
		Renderer:   renderer,
		Validator:  handlers.NewAppValidator(),
		Middleware: []echo.MiddlewareFunc{middleware.LoadSession(sessions, cookie)},
	})
	router.SetupAuthRoutes(app, handlers.NewAuthHandler(service.NewLocalAuthService(users), sessions, cookie))
	router.SetupOAuthRoutes(app, handlers.NewOAuthHandler(oauth, sessions, cookie, cfg))
	router.SetupSecretRoutes(app, handlers.NewSecretsHandler(users))

	return &testApp{
		echo:  app,
		cfg:   cfg,
		users: users,
		oauth: oauth,
	}
}

func (a *testApp) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil), cookies...)
}

func (a *testApp) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return a.do(req, cookies...)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func credentials(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/models"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
	"github.com/juliotrujilloh/Authentication-Security/internal/views"
)

// SecretsHandler serves the public secrets board and the submit form.
type SecretsHandler struct {
	UserService service.UserGenerator
}

func NewSecretsHandler(userService service.UserGenerator) *SecretsHandler {
	return &SecretsHandler{UserService: userService}
}

// List shows every posted secret to every visitor.
func (h *SecretsHandler) List(c echo.Context) error {
	secrets, err := h.UserService.ListSecrets(c.Request().Context())
	if err != nil {
		return internalError(err)
	}
	return c.Render(http.StatusOK, views.PageSecrets, models.PageData{
		User:    middleware.CurrentUser(c),
		Secrets: secrets,
	})
}

func (h *SecretsHandler) SubmitPage(c echo.Context) error {
	return c.Render(http.StatusOK, views.PageSubmit, models.PageData{User: middleware.CurrentUser(c)})
}

// Submit overwrites the caller's secret.
func (h *SecretsHandler) Submit(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	var req models.SecretRequest
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, views.PageSubmit, models.PageData{User: user, Error: "Invalid form submission."})
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusBadRequest, views.PageSubmit, models.PageData{User: user, Error: "Your secret must be between 1 and 2048 characters."})
	}

	if err := h.UserService.SetSecret(c.Request().Context(), user.ID, req.Secret); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Redirect(http.StatusFound, "/login")
		}
		return internalError(err)
	}
	return c.Redirect(http.StatusFound, "/secrets")
}

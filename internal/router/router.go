package router

import (
	"github.com/labstack/echo/v4"

	"github.com/juliotrujilloh/Authentication-Security/internal/handlers"
	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
)

func SetupAuthRoutes(app *echo.Echo, authHandler *handlers.AuthHandler) {
	app.GET("/", authHandler.Home)
	app.GET("/register", authHandler.RegisterPage)
	app.POST("/register", authHandler.Register) // Local registration, logs the new user in
	app.GET("/login", authHandler.LoginPage)
	app.POST("/login", authHandler.Login)
	app.GET("/logout", authHandler.Logout)
}

func SetupOAuthRoutes(app *echo.Echo, authHandler *handlers.OAuthHandler) {
	google := app.Group("/auth/google")
	google.GET("", authHandler.Login)
	google.GET("/secrets", authHandler.Callback) // Redirect URL registered with Google
}

func SetupSecretRoutes(app *echo.Echo, secretsHandler *handlers.SecretsHandler) {
	app.GET("/secrets", secretsHandler.List) // Public

	submit := app.Group("/submit", middleware.RequireAuth)
	submit.GET("", secretsHandler.SubmitPage)
	submit.POST("", secretsHandler.Submit)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/juliotrujilloh/Authentication-Security/internal/config"
	"github.com/juliotrujilloh/Authentication-Security/internal/handlers"
	"github.com/juliotrujilloh/Authentication-Security/internal/logger"
	"github.com/juliotrujilloh/Authentication-Security/internal/middleware"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository"
	"github.com/juliotrujilloh/Authentication-Security/internal/repository/memory"
	redis_repo "github.com/juliotrujilloh/Authentication-Security/internal/repository/redis"
	sql_repo "github.com/juliotrujilloh/Authentication-Security/internal/repository/sql"
	"github.com/juliotrujilloh/Authentication-Security/internal/router"
	"github.com/juliotrujilloh/Authentication-Security/internal/server"
	"github.com/juliotrujilloh/Authentication-Security/internal/service"
	"github.com/juliotrujilloh/Authentication-Security/internal/views"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	db, err := sql_repo.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	if err := sql_repo.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	userRepo := sql_repo.NewSQLUserRepository(db)

	var sessionRepo repository.SessionRepository
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		memRepo := memory.NewMemorySessionRepository(time.Minute)
		defer memRepo.StopCleanup()
		sessionRepo = memRepo
		log.Warn().Msg("Using in-memory session store, sessions are lost on restart")
	default:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisSettings.Address,
			Password: cfg.RedisSettings.Password,
			DB:       cfg.RedisSettings.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("address", cfg.RedisSettings.Address).Msg("Failed to connect to redis")
		}
		sessionRepo = redis_repo.NewRedisSessionRepository(redisClient)
	}

	userService := service.NewUserService(userRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, cfg.SessionConfig.TTL)
	oauthService, err := service.NewGoogleOAuthService(ctx, cfg, userService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up Google OAuth")
	}

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	cookie := middleware.NewSessionCookie(cfg.SessionConfig)

	app := server.New(server.Options{
		Renderer:   renderer,
		Validator:  handlers.NewAppValidator(),
		StaticDir:  cfg.StaticDir,
		Middleware: []echo.MiddlewareFunc{middleware.LoadSession(sessionService, cookie)},
	})

	router.SetupAuthRoutes(app, handlers.NewAuthHandler(
		service.NewLocalAuthService(userService),
		sessionService,
		cookie,
	))
	router.SetupOAuthRoutes(app, handlers.NewOAuthHandler(
		oauthService,
		sessionService,
		cookie,
		cfg,
	))
	router.SetupSecretRoutes(app, handlers.NewSecretsHandler(userService))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped gracefully.")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cocktailhub/database"
	"cocktailhub/internal/auth"
	"cocktailhub/internal/microservices/http-api/repository"
	"cocktailhub/internal/microservices/http-api/router"
	"cocktailhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

type ServeCmd struct{}

func (s *ServeCmd) Run(cliCtx *Context) error {
	cfg, logger, err := bootstrap(cliCtx)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return err
		}
	}

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))
		return err
	}
	defer database.Close(db) //nolint:errcheck

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sessions := repository.NewNoopSessionRepository()
	if cfg.RedisURL != "" {
		rdb, err := repository.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Error("error connecting to redis", zap.Error(err))
			return err
		}
		defer rdb.Close()
		// a revocation point only matters while tokens issued before it can still be valid
		sessions = repository.NewRedisSessionRepository(rdb, cfg.AccessTokenTTL+time.Minute)
		logger.Info("session revocation enabled")
	} else {
		logger.Warn("REDIS_URL not set, issued tokens stay valid until they expire")
	}

	userRepo := repository.NewUserRepository(db)
	cocktailRepo := repository.NewCocktailRepository(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Deps{
		Config:          cfg,
		Logger:          logger,
		DB:              sqlDB,
		AuthService:     service.NewAuthService(userRepo, sessions, tokens, cfg, logger),
		UserService:     service.NewUserService(userRepo, reviewRepo, sessions, cfg, logger),
		CocktailService: service.NewCocktailService(cocktailRepo, ingredientRepo),
		ReviewService:   service.NewReviewService(reviewRepo),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.GoEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

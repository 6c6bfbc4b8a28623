package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventory/auth"
	"inventory/config"
	"inventory/controllers"
	"inventory/database"
	"inventory/middleware"
	"inventory/repository"
	"inventory/routes"
	"inventory/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(config.LoggerConfig{Level: cfg.LogLevel, Env: cfg.Env})
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := store.Disconnect(shutdownCtx); err != nil {
			logger.Warn("disconnecting from mongo", zap.Error(err))
		}
	}()
	logger.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))

	if err := database.EnsureIndexes(ctx, store.DB); err != nil {
		return err
	}

	itemRepo := repository.NewItemRepository(store.DB)
	userRepo := repository.NewUserRepository(store.DB)
	tokenRepo := repository.NewTokenRepository(store.DB)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	itemService := services.NewItemService(itemRepo, logger)
	userService := services.NewUserService(userRepo, tokenRepo, hasher, tokens, logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.HTTP.AllowedOrigins),
	)

	routes.RegisterRoutes(r, routes.Handlers{
		Items:  controllers.NewItemController(itemService, cfg.Mongo.Timeout, logger),
		Users:  controllers.NewUserController(userService, cfg.Mongo.Timeout, logger),
		Health: controllers.NewHealthController(store, cfg.Mongo.Timeout, logger),
		Auth:   middleware.Auth(tokens, tokenRepo, cfg.Mongo.Timeout, logger),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

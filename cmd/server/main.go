// Package main is the entry point for the Chat Service.
// @title Chat Service API
// @version 1.0
// @description Users and messages of the chat application.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chatroom/chat-service/internal/api/handlers"
	"github.com/chatroom/chat-service/internal/api/middleware"
	"github.com/chatroom/chat-service/internal/api/routes"
	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/cache"
	"github.com/chatroom/chat-service/internal/core/docdb"
	rediscache "github.com/chatroom/chat-service/internal/infrastructure/cache/redis"
	"github.com/chatroom/chat-service/internal/infrastructure/docdb/memory"
	"github.com/chatroom/chat-service/internal/infrastructure/docdb/mongodb"
	"github.com/chatroom/chat-service/internal/pkg/logging"
	"github.com/chatroom/chat-service/internal/services/chatdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.Setup(cfg.Log)

	provider, err := createProvider(cfg.Store)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize document store")
	}

	cacheClient, err := createCacheClient(cfg.Cache)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	if cacheClient != nil {
		defer cacheClient.Close()
	}

	opts := []chatdb.Option{chatdb.WithLogger(logger)}
	if cacheClient != nil {
		opts = append(opts, chatdb.WithUserCache(cacheClient, cfg.Cache.TTL))
	}
	repo, err := chatdb.NewRepository(provider, cfg.Store, opts...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize repository")
	}

	if err := bootstrap(context.Background(), repo); err != nil {
		logger.Fatal().Err(err).Str("store", cfg.Store.Address()).Msg("failed to set up database")
	}

	gin.SetMode(cfg.Server.GinMode)
	router := setupRouter(cfg, repo, cacheClient)

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

// bootstrap runs the schema setup once. A store that cannot be reached
// surfaces as an error instead of a panic.
func bootstrap(ctx context.Context, repo *chatdb.Repository) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var connErr *docdb.ConnectError
			if e, ok := rec.(error); ok && errors.As(e, &connErr) {
				err = connErr
				return
			}
			panic(rec)
		}
	}()

	repo.Setup(ctx)
	return nil
}

// createProvider creates a document store provider based on the configuration.
func createProvider(cfg config.StoreConfig) (docdb.Provider, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB:
		return mongodb.NewProvider(cfg)
	case docdb.TypeMemory:
		return memory.NewProvider(nil), nil
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// createCacheClient creates a cache client based on the configuration.
// It returns nil when caching is disabled.
func createCacheClient(cfg config.CacheConfig) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeNone, "":
		return nil, nil
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: cfg.TTL,
		})
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, repo *chatdb.Repository, cacheClient cache.Client) *gin.Engine {
	router := gin.New()

	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:   handlers.NewHealthHandler(repo, cacheClient),
		UsersHandler:    handlers.NewUsersHandler(repo),
		MessagesHandler: handlers.NewMessagesHandler(repo, cfg.Messages.MaxResults),
	},
		middleware.NewLoggingMiddleware(),
		middleware.NewErrorMiddleware(),
		middleware.DefaultCORSConfig(cfg.Server.AllowedOrigins),
	)

	return router
}

// Package chatdb implements the chat data operations on top of the document
// store. Every operation opens its own session, runs one query and closes the
// session before returning.
package chatdb

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/cache"
	"github.com/chatroom/chat-service/internal/core/docdb"
)

// DefaultUserCacheTTL is used when WithUserCache is given a zero TTL.
const DefaultUserCacheTTL = 3 * time.Minute

// ReadErrorPolicy controls how read operations report query errors.
type ReadErrorPolicy int

const (
	// ReadErrorsSurface returns FindUserByEmail query errors to the caller.
	// FindUserByID and FindMessages always log and degrade.
	ReadErrorsSurface ReadErrorPolicy = iota
	// ReadErrorsDegrade logs every read error and returns an empty result.
	ReadErrorsDegrade
)

// Repository runs the chat data operations.
type Repository struct {
	provider     docdb.Provider
	cfg          config.StoreConfig
	logger       zerolog.Logger
	readPolicy   ReadErrorPolicy
	userCache    cache.Client
	userCacheTTL time.Duration
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. Defaults to the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithReadErrorPolicy sets the read error policy.
func WithReadErrorPolicy(policy ReadErrorPolicy) Option {
	return func(r *Repository) {
		r.readPolicy = policy
	}
}

// WithUserCache enables caching of FindUserByID results.
func WithUserCache(client cache.Client, ttl time.Duration) Option {
	return func(r *Repository) {
		r.userCache = client
		r.userCacheTTL = ttl
	}
}

// NewRepository creates a repository bound to provider and cfg.
func NewRepository(provider docdb.Provider, cfg config.StoreConfig, opts ...Option) (*Repository, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database name is required")
	}
	if cfg.Schema == nil {
		cfg.Schema = config.DefaultSchema()
	} else {
		cfg.Schema = maps.Clone(cfg.Schema)
	}

	r := &Repository{
		provider: provider,
		cfg:      cfg,
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.userCache != nil && r.userCacheTTL == 0 {
		r.userCacheTTL = DefaultUserCacheTTL
	}
	r.logger = r.logger.With().Str("component", "chatdb").Str("database", cfg.Database).Logger()

	return r, nil
}

// Ping opens and closes a session. Unlike the data operations it reports
// connection failures as errors.
func (r *Repository) Ping(ctx context.Context) error {
	session, err := r.provider.Acquire(ctx)
	if err != nil {
		return err
	}
	return session.Close(context.WithoutCancel(ctx))
}

// withSession acquires a session, runs fn and closes the session on every
// exit path, including panics raised by fn.
func withSession[T any](ctx context.Context, r *Repository, op string, fn func(docdb.Session, zerolog.Logger) (T, error)) (T, error) {
	session := r.mustAcquire(ctx, op)
	logger := r.logger.With().Str("conn_id", session.ID()).Str("op", op).Logger()

	defer func() {
		if err := session.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("failed to close connection")
		}
	}()

	return fn(session, logger)
}

// mustAcquire opens a session or panics with a *docdb.ConnectError.
// A store that cannot be reached is an environment failure, not a result.
func (r *Repository) mustAcquire(ctx context.Context, op string) docdb.Session {
	session, err := r.provider.Acquire(ctx)
	if err == nil {
		return session
	}

	var connectErr *docdb.ConnectError
	if !errors.As(err, &connectErr) {
		connectErr = &docdb.ConnectError{Address: r.cfg.Address(), Err: err}
	}

	r.logger.Error().
		Err(connectErr.Err).
		Str("op", op).
		Str("address", connectErr.Address).
		Msg("failed to connect to store")

	panic(connectErr)
}

// Setup creates the database and every table of the schema. Failures, most
// often because the object already exists, are logged and skipped.
func (r *Repository) Setup(ctx context.Context) {
	_, _ = withSession(ctx, r, "setup", func(s docdb.Session, logger zerolog.Logger) (struct{}, error) {
		if err := s.CreateDatabase(ctx, r.cfg.Database); err != nil {
			logger.Debug().Err(err).Msg("database already exists")
		} else {
			logger.Info().Msg("database created")
		}

		for _, tbl := range r.cfg.Schema.Tables() {
			tableLogger := logger.With().Str("table", tbl.Name).Logger()
			if err := s.CreateTable(ctx, r.cfg.Database, tbl.Name, tbl.PrimaryKey); err != nil {
				tableLogger.Debug().Err(err).Msg("table already exists")
				continue
			}
			tableLogger.Info().Str("primary_key", tbl.PrimaryKey).Msg("table created")
		}

		return struct{}{}, nil
	})
}

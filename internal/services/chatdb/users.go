package chatdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/cache"
	"github.com/chatroom/chat-service/internal/core/docdb"
	"github.com/chatroom/chat-service/internal/domain/models"
)

// FindUserByEmail returns the user whose mail matches, or nil when there is none.
// A failed query is returned unless the repository degrades read errors.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return withSession(ctx, r, "findUserByEmail", func(s docdb.Session, logger zerolog.Logger) (*models.User, error) {
		// never log the password
		logger.Info().Str("mail", email).Msg("login lookup")

		cursor, err := s.Table(r.cfg.Database, config.TableUsers).Find(ctx,
			map[string]interface{}{"mail": email},
			&docdb.FindOptions{Limit: 1},
		)
		if err != nil {
			logger.Error().Err(err).Msg("query failed")
			if r.readPolicy == ReadErrorsDegrade {
				return nil, nil
			}
			return nil, err
		}
		defer cursor.Close(ctx)

		if !cursor.Next(ctx) {
			if err := cursor.Err(); err != nil {
				logger.Error().Err(err).Msg("failed to read cursor")
			}
			return nil, nil
		}

		var user models.User
		if err := cursor.Decode(&user); err != nil {
			logger.Error().Err(err).Msg("failed to decode user")
			return nil, nil
		}
		return &user, nil
	})
}

// FindUserByID returns the user with the given id, or nil. Query errors are
// logged and reported as not found.
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if cached := r.cachedUser(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := withSession(ctx, r, "findUserById", func(s docdb.Session, logger zerolog.Logger) (*models.User, error) {
		result := s.Table(r.cfg.Database, config.TableUsers).Get(ctx, id)
		if err := result.Err(); err != nil {
			if !errors.Is(err, docdb.ErrNoDocuments) {
				logger.Error().Err(err).Str("user_id", id).Msg("query failed")
			}
			return nil, nil
		}

		var user models.User
		if err := result.Decode(&user); err != nil {
			logger.Error().Err(err).Str("user_id", id).Msg("failed to decode user")
			return nil, nil
		}
		return &user, nil
	})

	if user != nil {
		r.cacheUser(ctx, user)
	}
	return user, err
}

// SaveUser inserts a user. It reports true when exactly one record was
// inserted and false when the store rejected it, e.g. for a duplicate id.
// A missing ID or CreatedAt is filled in on user.
func (r *Repository) SaveUser(ctx context.Context, user *models.User) (bool, error) {
	if user == nil {
		return false, fmt.Errorf("user is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	ok, err := r.insert(ctx, "saveUser", config.TableUsers, user)
	if ok {
		r.cacheUser(ctx, user)
	}
	return ok, err
}

// insert runs a single insert and interprets the reported insert count.
func (r *Repository) insert(ctx context.Context, op, table string, document interface{}) (bool, error) {
	return withSession(ctx, r, op, func(s docdb.Session, logger zerolog.Logger) (bool, error) {
		result, err := s.Table(r.cfg.Database, table).Insert(ctx, document)
		if err != nil {
			logger.Error().Err(err).Msg("insert failed")
			return false, err
		}

		if result.Inserted != 1 {
			logger.Warn().
				Int("inserted", result.Inserted).
				Int("errors", result.Errors).
				Str("first_error", result.FirstError).
				Msg("record not inserted")
			return false, nil
		}

		logger.Info().Msg("record inserted")
		return true, nil
	})
}

func userCacheKey(id string) string {
	return "user:" + id
}

// cachedUser returns the cached user or nil. Cache failures are logged and ignored.
func (r *Repository) cachedUser(ctx context.Context, id string) *models.User {
	if r.userCache == nil {
		return nil
	}

	user, err := cache.GetJSON[models.User](ctx, r.userCache, userCacheKey(id))
	if err != nil {
		r.logger.Warn().Err(err).Str("user_id", id).Msg("user cache read failed")
		_, _ = r.userCache.Delete(ctx, userCacheKey(id))
		return nil
	}
	return user
}

// cacheUser stores user in the cache. The password hash is not serialised.
func (r *Repository) cacheUser(ctx context.Context, user *models.User) {
	if r.userCache == nil {
		return
	}
	if err := cache.SetJSON(ctx, r.userCache, userCacheKey(user.ID), user, r.userCacheTTL); err != nil {
		r.logger.Warn().Err(err).Str("user_id", user.ID).Msg("user cache write failed")
	}
}

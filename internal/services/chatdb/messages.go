package chatdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/docdb"
	"github.com/chatroom/chat-service/internal/domain/models"
)

// FindMessages returns up to maxResults messages, most recent first.
// It never fails: query and decode errors are logged and yield an empty list.
func (r *Repository) FindMessages(ctx context.Context, maxResults int) ([]*models.Message, error) {
	if maxResults <= 0 {
		return []*models.Message{}, nil
	}

	return withSession(ctx, r, "findMessages", func(s docdb.Session, logger zerolog.Logger) ([]*models.Message, error) {
		cursor, err := s.Table(r.cfg.Database, config.TableMessages).Find(ctx, nil, &docdb.FindOptions{
			Limit: int64(maxResults),
			Sort:  []docdb.SortField{docdb.Desc("timestamp")},
		})
		if err != nil {
			logger.Error().Err(err).Msg("query failed")
			return []*models.Message{}, nil
		}
		defer cursor.Close(ctx)

		var messages []*models.Message
		if err := cursor.All(ctx, &messages); err != nil {
			logger.Error().Err(err).Msg("failed to materialise cursor")
			return []*models.Message{}, nil
		}
		if messages == nil {
			messages = []*models.Message{}
		}
		return messages, nil
	})
}

// SaveMessage inserts a message. It reports true when exactly one record
// was inserted. A missing ID or timestamp is filled in on msg.
func (r *Repository) SaveMessage(ctx context.Context, msg *models.Message) (bool, error) {
	if msg == nil {
		return false, fmt.Errorf("message is required")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UTC().UnixMilli()
	}

	return r.insert(ctx, "saveMessage", config.TableMessages, msg)
}

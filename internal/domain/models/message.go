package models

import (
	"time"

	"github.com/google/uuid"
)

// Message represents a chat message. Messages are append-only.
type Message struct {
	ID        string `json:"id" bson:"_id"`
	UserID    string `json:"userId,omitempty" bson:"userId,omitempty"`
	Author    string `json:"author,omitempty" bson:"author,omitempty"`
	Content   string `json:"content" bson:"content"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"` // unix milliseconds
}

// NewMessage creates a message with a fresh ID stamped with the current time.
func NewMessage(userID, author, content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Author:    author,
		Content:   content,
		Timestamp: time.Now().UTC().UnixMilli(),
	}
}

// Time returns the message timestamp as a time.Time.
func (m *Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp).UTC()
}

package testutil

import (
	"time"

	"github.com/chatroom/chat-service/internal/domain/models"
)

// Test constants
const (
	TestUserID    = "user-test-def"
	TestUserMail  = "alice@example.com"
	TestMessageID = "msg-test-789"
)

// NewTestUser creates a test user with default values.
func NewTestUser() *models.User {
	return &models.User{
		ID:        TestUserID,
		Mail:      TestUserMail,
		Name:      "Alice",
		Password:  "$2a$04$notarealhash",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// NewTestMessage creates a test message at the given unix millisecond timestamp.
func NewTestMessage(timestamp int64) *models.Message {
	return &models.Message{
		ID:        TestMessageID,
		UserID:    TestUserID,
		Author:    "Alice",
		Content:   "Test message content",
		Timestamp: timestamp,
	}
}

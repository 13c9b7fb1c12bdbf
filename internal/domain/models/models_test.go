package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/chatroom/chat-service/internal/domain/models"
)

func TestNewMessage(t *testing.T) {
	before := time.Now().UTC().UnixMilli()

	msg := models.NewMessage("u1", "alice", "hello")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "u1", msg.UserID)
	assert.Equal(t, "hello", msg.Content)
	assert.GreaterOrEqual(t, msg.Timestamp, before)
	assert.Equal(t, msg.Timestamp, msg.Time().UnixMilli())
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	a := models.NewMessage("u1", "alice", "one")
	b := models.NewMessage("u1", "alice", "two")

	assert.NotEqual(t, a.ID, b.ID)
}

func TestUser_BSONUsesIDAsPrimaryKey(t *testing.T) {
	user := &models.User{ID: "1", Mail: "a@b.com", Password: "secret"}

	raw, err := bson.Marshal(user)
	assert.NoError(t, err)

	var doc bson.M
	assert.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, "1", doc["_id"])
	assert.Equal(t, "a@b.com", doc["mail"])
}

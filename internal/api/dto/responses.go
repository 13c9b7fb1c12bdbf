package dto

import (
	"time"

	"github.com/chatroom/chat-service/internal/domain/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// UserResponse is a user without its password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Mail      string    `json:"mail"`
	Name      string    `json:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Author    string    `json:"author,omitempty"`
	Content   string    `json:"content"`
	Timestamp int64     `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListMessagesResponse is the body of GET /messages, newest first.
type ListMessagesResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Limit    int                `json:"limit"`
}

// NewUserResponse converts a user model.
func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Mail:      u.Mail,
		Name:      u.Name,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// NewMessageResponse converts a message model.
func NewMessageResponse(m *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Author:    m.Author,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		CreatedAt: m.Time(),
	}
}

// NewMessageResponses converts a message list, keeping its order.
func NewMessageResponses(messages []*models.Message) []*MessageResponse {
	out := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, NewMessageResponse(m))
	}
	return out
}

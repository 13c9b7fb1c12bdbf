// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	ID       string `json:"id" binding:"omitempty,max=128"`
	Mail     string `json:"mail" binding:"required,email"`
	Name     string `json:"name" binding:"omitempty,max=256"`
	Password string `json:"password" binding:"required,min=1"`
	Avatar   string `json:"avatar" binding:"omitempty,url"`
}

// FindUserQuery holds the query parameters of GET /users.
type FindUserQuery struct {
	Mail string `form:"mail" binding:"required"`
}

// SendMessageRequest is the body of POST /messages.
type SendMessageRequest struct {
	UserID  string `json:"userId" binding:"omitempty,max=128"`
	Author  string `json:"author" binding:"omitempty,max=256"`
	Content string `json:"content" binding:"required,min=1,max=32000"`
}

// ListMessagesQuery holds the query parameters of GET /messages.
type ListMessagesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// LoginRequest is the body of POST /users/login.
type LoginRequest struct {
	Mail     string `json:"mail" binding:"required"`
	Password string `json:"password" binding:"required"`
}

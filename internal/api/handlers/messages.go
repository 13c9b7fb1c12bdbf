package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatroom/chat-service/internal/api/dto"
	"github.com/chatroom/chat-service/internal/api/middleware"
	"github.com/chatroom/chat-service/internal/domain/errors"
	"github.com/chatroom/chat-service/internal/domain/models"
)

// MessageStore is the message half of the chat repository.
type MessageStore interface {
	FindMessages(ctx context.Context, maxResults int) ([]*models.Message, error)
	SaveMessage(ctx context.Context, msg *models.Message) (bool, error)
}

// MessagesHandler handles message endpoints.
type MessagesHandler struct {
	store        MessageStore
	defaultLimit int
}

// NewMessagesHandler creates a MessagesHandler. defaultLimit applies when a
// request has no limit.
func NewMessagesHandler(store MessageStore, defaultLimit int) *MessagesHandler {
	return &MessagesHandler{
		store:        store,
		defaultLimit: defaultLimit,
	}
}

// ListMessages handles GET /messages.
// @Summary List recent messages
// @Description Returns the most recent messages, newest first
// @Tags Messages
// @Produce json
// @Param limit query int false "Maximum number of messages" minimum(1) maximum(500)
// @Success 200 {object} dto.ListMessagesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat/messages [get]
func (h *MessagesHandler) ListMessages(c *gin.Context) {
	var query dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}
	if query.Limit == 0 {
		query.Limit = h.defaultLimit
	}

	messages, err := h.store.FindMessages(c.Request.Context(), query.Limit)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list messages", err))
		return
	}

	c.JSON(http.StatusOK, dto.ListMessagesResponse{
		Messages: dto.NewMessageResponses(messages),
		Limit:    query.Limit,
	})
}

// SendMessage handles POST /messages.
// @Summary Post a message
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat/messages [post]
func (h *MessagesHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	msg := models.NewMessage(req.UserID, req.Author, req.Content)

	saved, err := h.store.SaveMessage(c.Request.Context(), msg)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to save message", err))
		return
	}
	if !saved {
		middleware.HandleError(c, errors.NewConflictError("message was not saved", msg.ID))
		return
	}

	c.JSON(http.StatusCreated, dto.NewMessageResponse(msg))
}

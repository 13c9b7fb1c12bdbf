package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/chatroom/chat-service/internal/api/dto"
	"github.com/chatroom/chat-service/internal/api/middleware"
	"github.com/chatroom/chat-service/internal/domain/errors"
	"github.com/chatroom/chat-service/internal/domain/models"
)

// UserStore is the user half of the chat repository.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) (bool, error)
}

// UsersHandler handles user endpoints.
type UsersHandler struct {
	store    UserStore
	hashCost int
}

// NewUsersHandler creates a UsersHandler that hashes passwords with
// bcrypt.DefaultCost.
func NewUsersHandler(store UserStore) *UsersHandler {
	return NewUsersHandlerWithCost(store, bcrypt.DefaultCost)
}

// NewUsersHandlerWithCost creates a UsersHandler with a custom bcrypt cost.
func NewUsersHandlerWithCost(store UserStore, cost int) *UsersHandler {
	return &UsersHandler{
		store:    store,
		hashCost: cost,
	}
}

// CreateUser handles POST /users.
// @Summary Register a user
// @Description Stores a new user. The password is stored as a bcrypt hash.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat/users [post]
func (h *UsersHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.hashCost)
	if err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid password", err.Error()))
		return
	}

	user := &models.User{
		ID:       req.ID,
		Mail:     req.Mail,
		Name:     req.Name,
		Password: string(hash),
		Avatar:   req.Avatar,
	}

	saved, err := h.store.SaveUser(c.Request.Context(), user)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to save user", err))
		return
	}
	if !saved {
		middleware.HandleError(c, errors.NewConflictError("user was not saved", user.ID))
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUser handles GET /users/:id.
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/chat/users/{id} [get]
func (h *UsersHandler) GetUser(c *gin.Context) {
	id := c.Param("id")

	user, err := h.store.FindUserByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load user", err))
		return
	}
	if user == nil {
		middleware.HandleError(c, errors.NewNotFoundError("user", id))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// FindUser handles GET /users?mail=.
// @Summary Find a user by mail
// @Tags Users
// @Produce json
// @Param mail query string true "Mail address"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat/users [get]
func (h *UsersHandler) FindUser(c *gin.Context) {
	var query dto.FindUserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid query parameters", err.Error()))
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), query.Mail)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to look up user", err))
		return
	}
	if user == nil {
		middleware.HandleError(c, errors.NewNotFoundError("user", query.Mail))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Login handles POST /users/login.
// @Summary Check user credentials
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat/users/login [post]
func (h *UsersHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), req.Mail)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to look up user", err))
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		middleware.HandleError(c, errors.NewUnauthorizedError("invalid mail or password"))
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

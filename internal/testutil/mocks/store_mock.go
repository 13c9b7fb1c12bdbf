package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chatroom/chat-service/internal/domain/models"
)

// MockChatStore is a mock of the chat repository as seen by the HTTP handlers.
type MockChatStore struct {
	mock.Mock
}

// NewMockChatStore creates a new MockChatStore.
func NewMockChatStore() *MockChatStore {
	return &MockChatStore{}
}

// Ping mocks the store health check.
func (m *MockChatStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// FindUserByEmail mocks the user lookup by mail.
func (m *MockChatStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// FindUserByID mocks the user lookup by id.
func (m *MockChatStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// SaveUser mocks the user insert.
func (m *MockChatStore) SaveUser(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

// FindMessages mocks the recent message listing.
func (m *MockChatStore) FindMessages(ctx context.Context, maxResults int) ([]*models.Message, error) {
	args := m.Called(ctx, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

// SaveMessage mocks the message insert.
func (m *MockChatStore) SaveMessage(ctx context.Context, msg *models.Message) (bool, error) {
	args := m.Called(ctx, msg)
	return args.Bool(0), args.Error(1)
}

package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatroom/chat-service/internal/api/dto"
	"github.com/chatroom/chat-service/internal/api/handlers"
	"github.com/chatroom/chat-service/internal/domain/models"
	"github.com/chatroom/chat-service/internal/testutil"
	"github.com/chatroom/chat-service/internal/testutil/mocks"
)

func messagesRouter(store *mocks.MockChatStore) *gin.Engine {
	handler := handlers.NewMessagesHandler(store, 50)
	router := testutil.SetupTestRouter()
	router.GET("/messages", handler.ListMessages)
	router.POST("/messages", handler.SendMessage)
	return router
}

func TestMessagesHandler_ListMessages_DefaultLimit(t *testing.T) {
	store := mocks.NewMockChatStore()
	newer := testutil.NewTestMessage(300)
	older := testutil.NewTestMessage(200)
	older.ID = "older"
	store.On("FindMessages", mock.Anything, 50).Return([]*models.Message{newer, older}, nil)

	w := testutil.PerformRequest(messagesRouter(store), http.MethodGet, "/messages", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	var response dto.ListMessagesResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, 50, response.Limit)
	require.Len(t, response.Messages, 2)
	assert.Equal(t, int64(300), response.Messages[0].Timestamp)
	assert.Equal(t, "older", response.Messages[1].ID)
	store.AssertExpectations(t)
}

func TestMessagesHandler_ListMessages_Empty(t *testing.T) {
	store := mocks.NewMockChatStore()
	store.On("FindMessages", mock.Anything, 5).Return([]*models.Message{}, nil)

	w := testutil.PerformRequest(messagesRouter(store), http.MethodGet, "/messages?limit=5", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	assert.JSONEq(t, `{"messages":[],"limit":5}`, w.Body.String())
}

func TestMessagesHandler_ListMessages_InvalidLimit(t *testing.T) {
	store := mocks.NewMockChatStore()
	router := messagesRouter(store)

	for _, query := range []string{"limit=501", "limit=-1", "limit=abc"} {
		w := testutil.PerformRequest(router, http.MethodGet, "/messages?"+query, nil, nil)
		testutil.AssertStatusCode(t, http.StatusBadRequest, w)
	}
	store.AssertNotCalled(t, "FindMessages", mock.Anything, mock.Anything)
}

func TestMessagesHandler_SendMessage(t *testing.T) {
	store := mocks.NewMockChatStore()
	store.On("SaveMessage", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.ID != "" && m.Timestamp > 0 && m.Content == "hello"
	})).Return(true, nil)

	w := testutil.PerformRequest(messagesRouter(store), http.MethodPost, "/messages", dto.SendMessageRequest{
		UserID:  testutil.TestUserID,
		Author:  "Alice",
		Content: "hello",
	}, nil)

	testutil.AssertStatusCode(t, http.StatusCreated, w)
	var response dto.MessageResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "hello", response.Content)
	assert.Equal(t, testutil.TestUserID, response.UserID)
	assert.NotEmpty(t, response.ID)
	store.AssertExpectations(t)
}

func TestMessagesHandler_SendMessage_Failures(t *testing.T) {
	tests := []struct {
		name       string
		saved      bool
		err        error
		wantStatus int
	}{
		{name: "not inserted", wantStatus: http.StatusConflict},
		{name: "store error", err: errors.New("write failed"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockChatStore()
			store.On("SaveMessage", mock.Anything, mock.Anything).Return(tt.saved, tt.err)

			w := testutil.PerformRequest(messagesRouter(store), http.MethodPost, "/messages", dto.SendMessageRequest{
				Content: "hello",
			}, nil)

			testutil.AssertStatusCode(t, tt.wantStatus, w)
		})
	}
}

func TestMessagesHandler_SendMessage_EmptyContent(t *testing.T) {
	store := mocks.NewMockChatStore()

	w := testutil.PerformRequest(messagesRouter(store), http.MethodPost, "/messages", dto.SendMessageRequest{}, nil)

	testutil.AssertStatusCode(t, http.StatusBadRequest, w)
	store.AssertNotCalled(t, "SaveMessage", mock.Anything, mock.Anything)
}

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chatroom/chat-service/internal/api/dto"
	"github.com/chatroom/chat-service/internal/api/handlers"
	"github.com/chatroom/chat-service/internal/testutil"
	"github.com/chatroom/chat-service/internal/testutil/mocks"
)

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	store := mocks.NewMockChatStore()
	cacheClient := mocks.NewMockCacheClient()
	store.On("Ping", mock.Anything).Return(nil)
	cacheClient.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(store, cacheClient)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "healthy", response.Components["store"])
	assert.Equal(t, "healthy", response.Components["cache"])

	store.AssertExpectations(t)
	cacheClient.AssertExpectations(t)
}

func TestHealthHandler_Health_NoCacheConfigured(t *testing.T) {
	store := mocks.NewMockChatStore()
	store.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(store, nil)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.NotContains(t, response.Components, "cache")
}

func TestHealthHandler_Health_StoreUnhealthy(t *testing.T) {
	store := mocks.NewMockChatStore()
	cacheClient := mocks.NewMockCacheClient()
	store.On("Ping", mock.Anything).Return(assert.AnError)
	cacheClient.On("Ping", mock.Anything).Return(nil)

	handler := handlers.NewHealthHandler(store, cacheClient)
	router := testutil.SetupTestRouter()
	router.GET("/health", handler.Health)

	w := testutil.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	testutil.AssertStatusCode(t, http.StatusServiceUnavailable, w)
	var response dto.HealthResponse
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "unhealthy", response.Components["store"])
	assert.Equal(t, "healthy", response.Components["cache"])
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name       string
		storeErr   error
		cacheErr   error
		wantStatus int
		wantReason string
	}{
		{name: "ready", wantStatus: http.StatusOK},
		{name: "store down", storeErr: assert.AnError, wantStatus: http.StatusServiceUnavailable, wantReason: "store unavailable"},
		{name: "cache down", cacheErr: assert.AnError, wantStatus: http.StatusServiceUnavailable, wantReason: "cache unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockChatStore()
			cacheClient := mocks.NewMockCacheClient()
			store.On("Ping", mock.Anything).Return(tt.storeErr)
			cacheClient.On("Ping", mock.Anything).Return(tt.cacheErr)

			handler := handlers.NewHealthHandler(store, cacheClient)
			router := testutil.SetupTestRouter()
			router.GET("/ready", handler.Ready)

			w := testutil.PerformRequest(router, http.MethodGet, "/ready", nil, nil)

			testutil.AssertStatusCode(t, tt.wantStatus, w)
			var response map[string]string
			testutil.ParseJSONResponse(t, w, &response)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, response["reason"])
			} else {
				assert.Equal(t, "ready", response["status"])
			}
		})
	}
}

func TestHealthHandler_Live(t *testing.T) {
	handler := handlers.NewHealthHandler(mocks.NewMockChatStore(), nil)
	router := testutil.SetupTestRouter()
	router.GET("/live", handler.Live)

	w := testutil.PerformRequest(router, http.MethodGet, "/live", nil, nil)

	testutil.AssertStatusCode(t, http.StatusOK, w)
	var response map[string]string
	testutil.ParseJSONResponse(t, w, &response)
	assert.Equal(t, "alive", response["status"])
}

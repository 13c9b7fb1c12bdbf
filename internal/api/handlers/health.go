// Package handlers provides HTTP handlers for the chat API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/chatroom/chat-service/internal/api/dto"
	"github.com/chatroom/chat-service/internal/core/cache"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store       Pinger
	cacheClient cache.Client
}

// NewHealthHandler creates a HealthHandler. cacheClient may be nil when no
// cache is configured.
func NewHealthHandler(store Pinger, cacheClient cache.Client) *HealthHandler {
	return &HealthHandler{
		store:       store,
		cacheClient: cacheClient,
	}
}

// check pings every dependency concurrently. The second result names the
// first unhealthy component, store before cache, or is empty.
func (h *HealthHandler) check(ctx context.Context) (map[string]string, string) {
	var storeErr, cacheErr error

	var g errgroup.Group
	g.Go(func() error {
		storeErr = h.store.Ping(ctx)
		return nil
	})
	if h.cacheClient != nil {
		g.Go(func() error {
			cacheErr = h.cacheClient.Ping(ctx)
			return nil
		})
	}
	_ = g.Wait()

	components := map[string]string{"store": status(storeErr)}
	if h.cacheClient != nil {
		components["cache"] = status(cacheErr)
	}

	switch {
	case storeErr != nil:
		return components, "store"
	case cacheErr != nil:
		return components, "cache"
	}
	return components, ""
}

func status(err error) string {
	if err != nil {
		return "unhealthy"
	}
	return "healthy"
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status and component statuses
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service healthy"
// @Failure 503 {object} dto.HealthResponse "Service unhealthy"
// @Router /api/v1/chat/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	components, failed := h.check(c.Request.Context())

	if failed != "" {
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:     "unhealthy",
			Components: components,
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:     "healthy",
		Components: components,
	})
}

// Ready handles the /ready endpoint.
// @Summary Readiness check
// @Description Returns 200 if the store and cache are reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /api/v1/chat/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, failed := h.check(c.Request.Context()); failed != "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": failed + " unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /api/v1/chat/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

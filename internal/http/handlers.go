package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/socraticlabs/council/backend/internal/events"
	"github.com/socraticlabs/council/backend/internal/logging"
	"github.com/socraticlabs/council/backend/internal/monitoring"
	"github.com/socraticlabs/council/backend/internal/relay"
	"github.com/socraticlabs/council/backend/internal/service"
	"github.com/socraticlabs/council/backend/internal/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	relay    *relay.Relay
	registry *service.Registry
	hub      *events.Hub
	metrics  *monitoring.Metrics
	log      *logging.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(
	rly *relay.Relay,
	registry *service.Registry,
	hub *events.Hub,
	metrics *monitoring.Metrics,
	log *logging.Logger,
) *Handlers {
	return &Handlers{
		relay:    rly,
		registry: registry,
		hub:      hub,
		metrics:  metrics,
		log:      log.Named("http"),
	}
}

// Root handles the identity check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Council Desktop Backend",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(h.metrics.Uptime().Seconds()),
		"plugins":        h.registry.Stats(),
		"event_clients":  h.hub.Clients(),
	})
}

// HTTPRequest executes a relayed request and returns the full response
func (h *Handlers) HTTPRequest(c *gin.Context) {
	var cfg relay.RequestConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request config: " + err.Error()})
		return
	}

	start := time.Now()
	resp, err := h.relay.Do(c.Request.Context(), cfg)
	if err != nil {
		h.metrics.RecordRelay("request", "error", time.Since(start))
		h.log.Warn("relay request failed",
			zap.String("url", cfg.URL),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordRelay("request", "ok", time.Since(start))
	c.JSON(http.StatusOK, resp)
}

// HTTPRequestStream executes a relayed request, streaming the body to
// the event bus. The HTTP reply carries only the success/failure
// signal; chunks travel as http-stream-chunk events.
func (h *Handlers) HTTPRequestStream(c *gin.Context) {
	var cfg relay.RequestConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request config: " + err.Error()})
		return
	}

	start := time.Now()
	if err := h.relay.Stream(c.Request.Context(), cfg); err != nil {
		h.metrics.RecordRelay("stream", "error", time.Since(start))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.metrics.RecordRelay("stream", "ok", time.Since(start))
	c.JSON(http.StatusOK, gin.H{"success": true, "request_id": cfg.StreamID()})
}

// ListServices lists all registered plugins
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService runs a plugin tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req struct {
		ToolID  string                 `json:"tool_id" binding:"required"`
		Params  map[string]interface{} `json:"params"`
		Context *types.Context         `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid execute request: " + err.Error()})
		return
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, req.Context)
	if err != nil && result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

// healthCheckTimeout bounds each remote connectivity probe
const healthCheckTimeout = 5 * time.Second

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	erp        integration.ERPClient
	storefront integration.StorefrontClient
	logger     *zap.Logger
	startTime  time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(erp integration.ERPClient, storefront integration.StorefrontClient, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		erp:        erp,
		storefront: storefront,
		logger:     logger,
		startTime:  time.Now(),
	}
}

// RegisterRoutes registers system routes on the given router group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/health", h.Health)
		system.GET("/ping", h.Ping)
	}
}

// Health probes connectivity to both remote systems
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	odooUp := true
	if err := h.erp.Connect(ctx); err != nil {
		h.logger.Warn("Health check: Odoo unreachable", zap.Error(err))
		odooUp = false
	}

	magentoUp := true
	if err := h.storefront.Authenticate(ctx); err != nil {
		h.logger.Warn("Health check: Magento unreachable", zap.Error(err))
		magentoUp = false
	}

	status := "ok"
	if !odooUp || !magentoUp {
		status = "degraded"
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.HealthResponse{
		Status:           status,
		OdooConnected:    odooUp,
		MagentoConnected: magentoUp,
	}))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// Ping checks that the API itself is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

// ProductSyncer is the product synchronization surface used by the handler
type ProductSyncer interface {
	SyncOne(ctx context.Context, sku string) integration.ProductSyncReport
	SyncAll(ctx context.Context) (*integration.ProductBatchReport, error)
}

// OrderSyncer is the order synchronization surface used by the handler
type OrderSyncer interface {
	SyncOne(ctx context.Context, orderID string) integration.OrderSyncReport
	SyncNew(ctx context.Context) (*integration.OrderBatchReport, error)
}

// SyncHandler handles synchronization API endpoints
type SyncHandler struct {
	products ProductSyncer
	orders   OrderSyncer
	logger   *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(products ProductSyncer, orders OrderSyncer, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// RegisterRoutes registers sync routes on the given router group
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/product", h.SyncProduct)
		sync.POST("/products/all", h.SyncAllProducts)
		sync.POST("/order", h.SyncOrder)
		sync.POST("/orders/all", h.SyncNewOrders)
	}
}

// SyncProduct synchronizes a single product by SKU
func (h *SyncHandler) SyncProduct(c *gin.Context) {
	var req dto.ProductSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", "sku is required"))
		return
	}

	report := h.products.SyncOne(c.Request.Context(), req.SKU)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromProductReport(report)))
}

// SyncAllProducts synchronizes every product. With ?background=true the
// batch is dispatched onto a background task and the request returns
// immediately; within the task execution remains strictly sequential.
func (h *SyncHandler) SyncAllProducts(c *gin.Context) {
	if c.Query("background") == "true" {
		ctx := context.WithoutCancel(c.Request.Context())
		go func() {
			if _, err := h.products.SyncAll(ctx); err != nil {
				h.logger.Error("Background product sync failed", zap.Error(err))
			}
		}()
		c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"message": "product sync started"}))
		return
	}

	report, err := h.products.SyncAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("SYNC_FAILED", "failed to list products from Odoo"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromProductBatchReport(report)))
}

// SyncOrder synchronizes a single storefront order into the ERP
func (h *SyncHandler) SyncOrder(c *gin.Context) {
	var req dto.OrderSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("INVALID_REQUEST", "order_id is required"))
		return
	}

	report := h.orders.SyncOne(c.Request.Context(), req.OrderID)
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromOrderReport(report)))
}

// SyncNewOrders synchronizes every new (pending or processing) order.
// Supports ?background=true like SyncAllProducts.
func (h *SyncHandler) SyncNewOrders(c *gin.Context) {
	if c.Query("background") == "true" {
		ctx := context.WithoutCancel(c.Request.Context())
		go func() {
			if _, err := h.orders.SyncNew(ctx); err != nil {
				h.logger.Error("Background order sync failed", zap.Error(err))
			}
		}()
		c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{"message": "order sync started"}))
		return
	}

	report, err := h.orders.SyncNew(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse("SYNC_FAILED", "failed to list new orders from Magento"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromOrderBatchReport(report)))
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

type fakeProductSyncer struct {
	mu      sync.Mutex
	oneSKUs []string
	allRuns int
	allErr  error
}

func (f *fakeProductSyncer) SyncOne(ctx context.Context, sku string) integration.ProductSyncReport {
	f.mu.Lock()
	f.oneSKUs = append(f.oneSKUs, sku)
	f.mu.Unlock()
	return integration.ProductSyncReport{Success: true, Message: "ok", SKU: sku}
}

func (f *fakeProductSyncer) SyncAll(ctx context.Context) (*integration.ProductBatchReport, error) {
	f.mu.Lock()
	f.allRuns++
	f.mu.Unlock()
	if f.allErr != nil {
		return nil, f.allErr
	}
	return &integration.ProductBatchReport{Total: 2, Successful: 1, Failed: 1, FailedSKUs: []string{"B-1"}}, nil
}

func (f *fakeProductSyncer) runs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.allRuns
}

type fakeOrderSyncer struct {
	mu     sync.Mutex
	oneIDs []string
	newErr error
}

func (f *fakeOrderSyncer) SyncOne(ctx context.Context, orderID string) integration.OrderSyncReport {
	f.mu.Lock()
	f.oneIDs = append(f.oneIDs, orderID)
	f.mu.Unlock()
	return integration.OrderSyncReport{Success: true, Message: "created", OrderID: orderID, ERPOrderID: 7}
}

func (f *fakeOrderSyncer) SyncNew(ctx context.Context) (*integration.OrderBatchReport, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	return &integration.OrderBatchReport{Total: 1, Successful: 1, SyncedOrders: []string{"42"}}, nil
}

func setupSyncRouter(products ProductSyncer, orders OrderSyncer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewSyncHandler(products, orders, zap.NewNop())
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestSyncHandler_SyncProduct(t *testing.T) {
	products := &fakeProductSyncer{}
	engine := setupSyncRouter(products, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/product",
		strings.NewReader(`{"sku":"WID-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"WID-1"}, products.oneSKUs)

	var resp struct {
		Success bool                    `json:"success"`
		Data    dto.ProductSyncResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "WID-1", resp.Data.SKU)
}

func TestSyncHandler_SyncProduct_MissingSKU(t *testing.T) {
	engine := setupSyncRouter(&fakeProductSyncer{}, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/product", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncHandler_SyncAllProducts(t *testing.T) {
	engine := setupSyncRouter(&fakeProductSyncer{}, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/products/all", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.ProductBatchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Successful)
	assert.Equal(t, []string{"B-1"}, resp.Data.FailedSKUs)
}

func TestSyncHandler_SyncAllProducts_Background(t *testing.T) {
	products := &fakeProductSyncer{}
	engine := setupSyncRouter(products, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/products/all?background=true", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	require.Eventually(t, func() bool { return products.runs() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestSyncHandler_SyncAllProducts_ListFailure(t *testing.T) {
	products := &fakeProductSyncer{allErr: integration.ErrUnavailable}
	engine := setupSyncRouter(products, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/products/all", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestSyncHandler_SyncOrder(t *testing.T) {
	orders := &fakeOrderSyncer{}
	engine := setupSyncRouter(&fakeProductSyncer{}, orders)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/order",
		strings.NewReader(`{"order_id":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"42"}, orders.oneIDs)

	var resp struct {
		Data dto.OrderSyncResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42", resp.Data.OrderID)
	assert.Equal(t, int64(7), resp.Data.OdooOrderID)
}

func TestSyncHandler_SyncNewOrders(t *testing.T) {
	engine := setupSyncRouter(&fakeProductSyncer{}, &fakeOrderSyncer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/orders/all", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dto.OrderBatchResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"42"}, resp.Data.OrdersSynced)
	assert.NotNil(t, resp.Data.FailedOrders)
}

func TestSyncHandler_SyncNewOrders_ListFailure(t *testing.T) {
	orders := &fakeOrderSyncer{newErr: integration.ErrUnavailable}
	engine := setupSyncRouter(&fakeProductSyncer{}, orders)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sync/orders/all", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

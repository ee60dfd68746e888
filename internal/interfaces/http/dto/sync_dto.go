package dto

import "github.com/syncbridge/backend/internal/domain/integration"

// ProductSyncRequest is the payload for a single product sync
type ProductSyncRequest struct {
	SKU string `json:"sku" binding:"required"`
}

// ProductSyncResponse is the result of a single product sync
type ProductSyncResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SKU     string `json:"sku"`
}

// ProductBatchResponse is the result of a full product sync
type ProductBatchResponse struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	FailedSKUs []string `json:"failed_skus"`
}

// OrderSyncRequest is the payload for a single order sync
type OrderSyncRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// OrderSyncResponse is the result of a single order sync
type OrderSyncResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OrderID     string `json:"order_id"`
	OdooOrderID int64  `json:"odoo_order_id,omitempty"`
}

// OrderBatchResponse is the result of a new-order sync
type OrderBatchResponse struct {
	Total        int      `json:"total"`
	Successful   int      `json:"successful"`
	Failed       int      `json:"failed"`
	FailedOrders []string `json:"failed_orders"`
	OrdersSynced []string `json:"orders_synced"`
}

// HealthResponse reports connectivity to both remote systems
type HealthResponse struct {
	Status           string `json:"status"`
	OdooConnected    bool   `json:"odoo_connected"`
	MagentoConnected bool   `json:"magento_connected"`
}

// FromProductReport maps a domain product report to its response shape
func FromProductReport(report integration.ProductSyncReport) ProductSyncResponse {
	return ProductSyncResponse{
		Success: report.Success,
		Message: report.Message,
		SKU:     report.SKU,
	}
}

// FromProductBatchReport maps a domain batch report to its response shape
func FromProductBatchReport(report *integration.ProductBatchReport) ProductBatchResponse {
	out := ProductBatchResponse{
		Total:      report.Total,
		Successful: report.Successful,
		Failed:     report.Failed,
		FailedSKUs: report.FailedSKUs,
	}
	if out.FailedSKUs == nil {
		out.FailedSKUs = []string{}
	}
	return out
}

// FromOrderReport maps a domain order report to its response shape
func FromOrderReport(report integration.OrderSyncReport) OrderSyncResponse {
	return OrderSyncResponse{
		Success:     report.Success,
		Message:     report.Message,
		OrderID:     report.OrderID,
		OdooOrderID: report.ERPOrderID,
	}
}

// FromOrderBatchReport maps a domain batch report to its response shape
func FromOrderBatchReport(report *integration.OrderBatchReport) OrderBatchResponse {
	out := OrderBatchResponse{
		Total:        report.Total,
		Successful:   report.Successful,
		Failed:       report.Failed,
		FailedOrders: report.FailedOrders,
		OrdersSynced: report.SyncedOrders,
	}
	if out.FailedOrders == nil {
		out.FailedOrders = []string{}
	}
	if out.OrdersSynced == nil {
		out.OrdersSynced = []string{}
	}
	return out
}

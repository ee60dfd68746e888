package integration

import (
	"context"

	"github.com/shopspring/decimal"
)

// ERPClient defines the port interface for the ERP backend.
// The concrete adapter (Odoo JSON-RPC) lives in the infrastructure layer.
type ERPClient interface {
	// Connect establishes a session against the ERP server. It is
	// idempotent; subsequent operations reconnect lazily if needed.
	Connect(ctx context.Context) error

	// GetProductBySKU returns the product whose external code matches the
	// SKU exactly, or ErrProductNotFound.
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)

	// GetAllProducts returns every product, optionally truncated to limit
	// (limit <= 0 means unbounded).
	GetAllProducts(ctx context.Context, limit int) ([]Product, error)

	// CreateSaleOrder looks up or creates the customer by email, resolves
	// each line's SKU to an ERP product, and creates a sale order
	// referencing the external order ID. Unresolvable lines are dropped;
	// ErrNoOrderLines is returned if none resolve, and no order is created.
	CreateSaleOrder(ctx context.Context, customer Customer, lines []OrderLine, externalOrderID string) (int64, error)

	// ResolveCountryID resolves an ISO country code (case-insensitive) to
	// the ERP country identifier, or ErrCountryNotFound.
	ResolveCountryID(ctx context.Context, code string) (int64, error)
}

// StorefrontClient defines the port interface for the storefront platform.
// The concrete adapter (Magento REST) lives in the infrastructure layer.
type StorefrontClient interface {
	// Authenticate obtains (or reuses) a bearer token. A missing token
	// means no storefront operation can proceed.
	Authenticate(ctx context.Context) error

	// GetProductBySKU returns the storefront product, or ErrProductNotFound.
	GetProductBySKU(ctx context.Context, sku string) (*StorefrontProduct, error)

	// UpdateStock sets the stock quantity; is_in_stock follows quantity > 0.
	UpdateStock(ctx context.Context, sku string, quantity decimal.Decimal) error

	// UpdatePrice sets the regular price.
	UpdatePrice(ctx context.Context, sku string, price decimal.Decimal) error

	// UpdateSpecialPrice sets the special price; the date bounds are
	// attached only when non-empty (format: YYYY-MM-DD).
	UpdateSpecialPrice(ctx context.Context, sku string, specialPrice decimal.Decimal, fromDate, toDate string) error

	// ListOrders returns one page of orders, optionally filtered by an
	// exact status match (empty status means no filter).
	ListOrders(ctx context.Context, pageSize, page int, status OrderStatus) ([]StorefrontOrder, error)

	// GetOrderByID returns the order, or ErrOrderNotFound.
	GetOrderByID(ctx context.Context, orderID string) (*StorefrontOrder, error)

	// ListNewOrders returns pending orders followed by processing orders,
	// concatenated without deduplication.
	ListNewOrders(ctx context.Context) ([]StorefrontOrder, error)
}

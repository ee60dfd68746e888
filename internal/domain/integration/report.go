package integration

// ProductSyncReport is the outcome of synchronizing a single product.
type ProductSyncReport struct {
	// Success indicates whether every attempted update succeeded
	Success bool
	// Message is a human-readable description of the outcome
	Message string
	// SKU is the product SKU the report refers to
	SKU string
}

// ProductBatchReport is the aggregate outcome of a full product sync.
type ProductBatchReport struct {
	// Total is the number of products considered
	Total int
	// Successful is the number of fully synchronized products
	Successful int
	// Failed is the number of products that failed or were skipped
	Failed int
	// FailedSKUs lists the SKUs of failed products (skipped products
	// without a SKU are counted in Failed but cannot be listed)
	FailedSKUs []string
}

// OrderSyncReport is the outcome of synchronizing a single order.
type OrderSyncReport struct {
	// Success indicates whether the sale order was created in the ERP
	Success bool
	// Message is a human-readable description of the outcome
	Message string
	// OrderID is the storefront order identifier the report refers to
	OrderID string
	// ERPOrderID is the created ERP sale order identifier (zero on failure)
	ERPOrderID int64
}

// OrderBatchReport is the aggregate outcome of a new-order sync.
type OrderBatchReport struct {
	// Total is the number of orders considered
	Total int
	// Successful is the number of orders synchronized to the ERP
	Successful int
	// Failed is the number of orders that failed or were skipped
	Failed int
	// FailedOrders lists the storefront identifiers of failed orders
	FailedOrders []string
	// SyncedOrders lists the storefront identifiers of synchronized orders
	SyncedOrders []string
}

package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
	"github.com/syncbridge/backend/internal/infrastructure/telemetry"
)

// ProductSyncService pushes ERP product data (stock, price, special price)
// to the storefront. The storefront is never the source of truth for
// products; only existing storefront products are updated.
type ProductSyncService struct {
	erp        integration.ERPClient
	storefront integration.StorefrontClient
	logger     *zap.Logger

	// throttle is the fixed delay between items in a batch
	throttle time.Duration
	// productLimit truncates full syncs (0 = unbounded)
	productLimit int
}

// NewProductSyncService creates a new product synchronization service
func NewProductSyncService(
	erp integration.ERPClient,
	storefront integration.StorefrontClient,
	logger *zap.Logger,
	throttle time.Duration,
	productLimit int,
) *ProductSyncService {
	return &ProductSyncService{
		erp:          erp,
		storefront:   storefront,
		logger:       logger,
		throttle:     throttle,
		productLimit: productLimit,
	}
}

// SyncOne synchronizes a single product by SKU. Stock, price, and
// (conditionally) special price are pushed in that fixed order; all are
// attempted even if an earlier one fails, and partial failures are
// aggregated into the report message.
func (s *ProductSyncService) SyncOne(ctx context.Context, sku string) integration.ProductSyncReport {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_sync", "sync_one",
		attribute.String("sku", sku))
	defer span.End()

	product, err := s.erp.GetProductBySKU(ctx, sku)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Product sync failed at source lookup",
			zap.String("sku", sku),
			zap.Error(err),
		)
		return integration.ProductSyncReport{
			Success: false,
			Message: fmt.Sprintf("Product with SKU %s not found in Odoo", sku),
			SKU:     sku,
		}
	}

	if _, err := s.storefront.GetProductBySKU(ctx, sku); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Product sync failed at destination lookup",
			zap.String("sku", sku),
			zap.Error(err),
		)
		return integration.ProductSyncReport{
			Success: false,
			Message: fmt.Sprintf("Product with SKU %s not found in Magento", sku),
			SKU:     sku,
		}
	}

	var failed []string

	if err := s.storefront.UpdateStock(ctx, sku, product.Quantity); err != nil {
		s.logger.Warn("Stock update failed", zap.String("sku", sku), zap.Error(err))
		failed = append(failed, "stock update")
	}

	if err := s.storefront.UpdatePrice(ctx, sku, product.RetailPrice); err != nil {
		s.logger.Warn("Price update failed", zap.String("sku", sku), zap.Error(err))
		failed = append(failed, "price update")
	}

	if product.HasSpecialPrice() {
		if err := s.storefront.UpdateSpecialPrice(ctx, sku, product.PromoPrice, "", ""); err != nil {
			s.logger.Warn("Special price update failed", zap.String("sku", sku), zap.Error(err))
			failed = append(failed, "special price update")
		}
	}

	if len(failed) > 0 {
		message := fmt.Sprintf("Partial sync for SKU %s, failed: %s", sku, strings.Join(failed, ", "))
		telemetry.RecordError(span, fmt.Errorf("%s", message))
		return integration.ProductSyncReport{
			Success: false,
			Message: message,
			SKU:     sku,
		}
	}

	s.logger.Info("Product synchronized",
		zap.String("sku", sku),
		zap.String("qty", product.Quantity.String()),
		zap.String("price", product.RetailPrice.String()),
		zap.Bool("special_price", product.HasSpecialPrice()),
	)
	return integration.ProductSyncReport{
		Success: true,
		Message: fmt.Sprintf("Product %s synchronized successfully", sku),
		SKU:     sku,
	}
}

// SyncAll synchronizes every ERP product to the storefront. Products with
// an empty SKU count as failures without an attempt. Items are processed
// strictly sequentially with a fixed delay between them; the batch never
// aborts on a single item's failure. An error is returned only when the
// initial product listing itself fails.
func (s *ProductSyncService) SyncAll(ctx context.Context) (*integration.ProductBatchReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product_sync", "sync_all")
	defer span.End()

	products, err := s.erp.GetAllProducts(ctx, s.productLimit)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to list products from Odoo", zap.Error(err))
		return nil, err
	}

	report := &integration.ProductBatchReport{Total: len(products)}

	for i, product := range products {
		if i > 0 {
			pause(ctx, s.throttle)
		}

		if product.SKU == "" {
			s.logger.Warn("Skipping product without SKU",
				zap.Int64("product_id", product.ID),
				zap.String("name", product.Name),
			)
			report.Failed++
			continue
		}

		result := s.SyncOne(ctx, product.SKU)
		if result.Success {
			report.Successful++
		} else {
			report.Failed++
			report.FailedSKUs = append(report.FailedSKUs, product.SKU)
		}
	}

	span.SetAttributes(
		attribute.Int("total", report.Total),
		attribute.Int("successful", report.Successful),
		attribute.Int("failed", report.Failed),
	)
	s.logger.Info("Product batch sync completed",
		zap.Int("total", report.Total),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// pause sleeps for the given duration, returning early if the context is done.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

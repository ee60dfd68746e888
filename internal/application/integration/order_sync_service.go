package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
	"github.com/syncbridge/backend/internal/infrastructure/telemetry"
)

// OrderSyncService pulls new storefront orders and records them as sale
// orders in the ERP.
type OrderSyncService struct {
	erp        integration.ERPClient
	storefront integration.StorefrontClient
	logger     *zap.Logger

	// throttle is the fixed delay between items in a batch
	throttle time.Duration
}

// NewOrderSyncService creates a new order synchronization service
func NewOrderSyncService(
	erp integration.ERPClient,
	storefront integration.StorefrontClient,
	logger *zap.Logger,
	throttle time.Duration,
) *OrderSyncService {
	return &OrderSyncService{
		erp:        erp,
		storefront: storefront,
		logger:     logger,
		throttle:   throttle,
	}
}

// SyncOne synchronizes a single storefront order into the ERP. The billing
// address becomes the customer record (looked up or created by email) and
// the line items become sale order lines.
func (s *OrderSyncService) SyncOne(ctx context.Context, orderID string) integration.OrderSyncReport {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_sync", "sync_one",
		attribute.String("order_id", orderID))
	defer span.End()

	order, err := s.storefront.GetOrderByID(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Order sync failed at storefront lookup",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return integration.OrderSyncReport{
			Success: false,
			Message: fmt.Sprintf("Order %s not found in Magento", orderID),
			OrderID: orderID,
		}
	}

	erpOrderID, err := s.erp.CreateSaleOrder(ctx, order.Customer(), order.Lines(), order.EntityID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Warn("Order sync failed at sale order creation",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		message := fmt.Sprintf("Failed to create sale order in Odoo for order %s", orderID)
		if errors.Is(err, integration.ErrNoOrderLines) {
			message = fmt.Sprintf("No valid order lines for order %s", orderID)
		}
		return integration.OrderSyncReport{
			Success: false,
			Message: message,
			OrderID: orderID,
		}
	}

	s.logger.Info("Order synchronized",
		zap.String("order_id", orderID),
		zap.Int64("sale_order_id", erpOrderID),
	)
	return integration.OrderSyncReport{
		Success:    true,
		Message:    fmt.Sprintf("Order %s created in Odoo with id %d", orderID, erpOrderID),
		OrderID:    orderID,
		ERPOrderID: erpOrderID,
	}
}

// SyncNew synchronizes every new (pending or processing) storefront order.
// Orders with an empty identifier count as failures without an attempt.
// Items are processed strictly sequentially with a fixed delay between
// them; the batch never aborts on a single item's failure. An error is
// returned only when the initial order listing itself fails.
func (s *OrderSyncService) SyncNew(ctx context.Context) (*integration.OrderBatchReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order_sync", "sync_new")
	defer span.End()

	orders, err := s.storefront.ListNewOrders(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to list new orders from Magento", zap.Error(err))
		return nil, err
	}

	report := &integration.OrderBatchReport{Total: len(orders)}

	for i, order := range orders {
		if i > 0 {
			pause(ctx, s.throttle)
		}

		if order.EntityID == "" {
			s.logger.Warn("Skipping order without identifier")
			report.Failed++
			continue
		}

		result := s.SyncOne(ctx, order.EntityID)
		if result.Success {
			report.Successful++
			report.SyncedOrders = append(report.SyncedOrders, order.EntityID)
		} else {
			report.Failed++
			report.FailedOrders = append(report.FailedOrders, order.EntityID)
		}
	}

	span.SetAttributes(
		attribute.Int("total", report.Total),
		attribute.Int("successful", report.Successful),
		attribute.Int("failed", report.Failed),
	)
	s.logger.Info("Order batch sync completed",
		zap.Int("total", report.Total),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

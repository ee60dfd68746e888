package integration

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// fakeERP is a hand-rolled test double for the ERP port
type fakeERP struct {
	products    map[string]integration.Product
	allProducts []integration.Product
	listErr     error

	createdOrders []createdOrder
	createErr     error
	nextOrderID   int64
}

type createdOrder struct {
	Customer        integration.Customer
	Lines           []integration.OrderLine
	ExternalOrderID string
}

func newFakeERP() *fakeERP {
	return &fakeERP{
		products:    make(map[string]integration.Product),
		nextOrderID: 100,
	}
}

func (f *fakeERP) Connect(ctx context.Context) error { return nil }

func (f *fakeERP) GetProductBySKU(ctx context.Context, sku string) (*integration.Product, error) {
	product, ok := f.products[sku]
	if !ok {
		return nil, integration.ErrProductNotFound
	}
	return &product, nil
}

func (f *fakeERP) GetAllProducts(ctx context.Context, limit int) ([]integration.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > 0 && limit < len(f.allProducts) {
		return f.allProducts[:limit], nil
	}
	return f.allProducts, nil
}

func (f *fakeERP) CreateSaleOrder(ctx context.Context, customer integration.Customer, lines []integration.OrderLine, externalOrderID string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.createdOrders = append(f.createdOrders, createdOrder{
		Customer:        customer,
		Lines:           lines,
		ExternalOrderID: externalOrderID,
	})
	f.nextOrderID++
	return f.nextOrderID, nil
}

func (f *fakeERP) ResolveCountryID(ctx context.Context, code string) (int64, error) {
	return 0, integration.ErrCountryNotFound
}

var _ integration.ERPClient = (*fakeERP)(nil)

// fakeStorefront is a hand-rolled test double for the storefront port
type fakeStorefront struct {
	products map[string]integration.StorefrontProduct
	orders   map[string]integration.StorefrontOrder

	newOrders   []integration.StorefrontOrder
	listErr     error
	stockErr    error
	priceErr    error
	specialErr  error

	stockUpdates   []string
	priceUpdates   []string
	specialUpdates []string
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{
		products: make(map[string]integration.StorefrontProduct),
		orders:   make(map[string]integration.StorefrontOrder),
	}
}

func (f *fakeStorefront) Authenticate(ctx context.Context) error { return nil }

func (f *fakeStorefront) GetProductBySKU(ctx context.Context, sku string) (*integration.StorefrontProduct, error) {
	product, ok := f.products[sku]
	if !ok {
		return nil, integration.ErrProductNotFound
	}
	return &product, nil
}

func (f *fakeStorefront) UpdateStock(ctx context.Context, sku string, quantity decimal.Decimal) error {
	if f.stockErr != nil {
		return f.stockErr
	}
	f.stockUpdates = append(f.stockUpdates, sku)
	return nil
}

func (f *fakeStorefront) UpdatePrice(ctx context.Context, sku string, price decimal.Decimal) error {
	if f.priceErr != nil {
		return f.priceErr
	}
	f.priceUpdates = append(f.priceUpdates, sku)
	return nil
}

func (f *fakeStorefront) UpdateSpecialPrice(ctx context.Context, sku string, specialPrice decimal.Decimal, fromDate, toDate string) error {
	if f.specialErr != nil {
		return f.specialErr
	}
	f.specialUpdates = append(f.specialUpdates, sku)
	return nil
}

func (f *fakeStorefront) ListOrders(ctx context.Context, pageSize, page int, status integration.OrderStatus) ([]integration.StorefrontOrder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []integration.StorefrontOrder
	for _, order := range f.newOrders {
		if status == "" || order.Status == status {
			out = append(out, order)
		}
	}
	return out, nil
}

func (f *fakeStorefront) GetOrderByID(ctx context.Context, orderID string) (*integration.StorefrontOrder, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, integration.ErrOrderNotFound
	}
	return &order, nil
}

func (f *fakeStorefront) ListNewOrders(ctx context.Context) ([]integration.StorefrontOrder, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.newOrders, nil
}

var _ integration.StorefrontClient = (*fakeStorefront)(nil)

package integration

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus represents an order status on the storefront.
type OrderStatus string

const (
	// OrderStatusPending indicates an order awaiting payment
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing indicates a paid order awaiting fulfilment
	OrderStatusProcessing OrderStatus = "processing"
)

// String returns the string representation of OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// BillingAddress holds the billing address fields of a storefront order.
type BillingAddress struct {
	Firstname string
	Lastname  string
	Telephone string
	// Street is the first street line; the storefront sends a sequence
	// and only the first element is carried over.
	Street    string
	City      string
	Postcode  string
	CountryID string
}

// OrderItem is a line item of a storefront order. Defaults (quantity 1,
// price 0) are applied at ingestion in the storefront client.
type OrderItem struct {
	SKU        string
	QtyOrdered decimal.Decimal
	Price      decimal.Decimal
}

// StorefrontOrder is the canonical order record pulled from the storefront.
type StorefrontOrder struct {
	// EntityID is the storefront's unique order identifier
	EntityID string
	// Status is the order status on the storefront
	Status OrderStatus
	// CustomerEmail is the buyer's email address
	CustomerEmail string
	// Billing is the billing address
	Billing BillingAddress
	// Items contains the order line items
	Items []OrderItem
}

// Customer is the ERP-bound customer record derived from a storefront order.
type Customer struct {
	Name        string
	Email       string
	Phone       string
	Street      string
	City        string
	Zip         string
	CountryCode string
}

// OrderLine is an ERP-bound sale order line derived from an order item.
type OrderLine struct {
	SKU       string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Customer derives the ERP customer record from the order's billing address.
// The name is the first and last name joined with a single space; a missing
// part does not leave stray whitespace.
func (o *StorefrontOrder) Customer() Customer {
	return Customer{
		Name:        strings.TrimSpace(o.Billing.Firstname + " " + o.Billing.Lastname),
		Email:       o.CustomerEmail,
		Phone:       o.Billing.Telephone,
		Street:      o.Billing.Street,
		City:        o.Billing.City,
		Zip:         o.Billing.Postcode,
		CountryCode: o.Billing.CountryID,
	}
}

// Lines derives the ERP sale order lines from the order items.
func (o *StorefrontOrder) Lines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, OrderLine{
			SKU:       item.SKU,
			Quantity:  item.QtyOrdered,
			UnitPrice: item.Price,
		})
	}
	return lines
}

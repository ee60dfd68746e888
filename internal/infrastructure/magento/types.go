package magento

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// tokenRequest is the admin token endpoint payload
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// stockItemUpdate wraps the stock item payload for PUT .../stockItems/1
type stockItemUpdate struct {
	StockItem stockItem `json:"stockItem"`
}

type stockItem struct {
	Qty       float64 `json:"qty"`
	IsInStock bool    `json:"is_in_stock"`
}

// customAttribute is a Magento EAV attribute value
type customAttribute struct {
	AttributeCode string `json:"attribute_code"`
	Value         string `json:"value"`
}

// productUpdate wraps the product payload for PUT /products/{sku}
type productUpdate struct {
	Product productBody `json:"product"`
}

type productBody struct {
	Price            *float64          `json:"price,omitempty"`
	CustomAttributes []customAttribute `json:"custom_attributes,omitempty"`
}

// magentoProduct is a product as returned by GET /products/{sku}
type magentoProduct struct {
	ID    int64   `json:"id"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// toDomain maps the REST product to the canonical storefront record
func (p *magentoProduct) toDomain() integration.StorefrontProduct {
	return integration.StorefrontProduct{
		ID:    p.ID,
		SKU:   p.SKU,
		Name:  p.Name,
		Price: decimal.NewFromFloat(p.Price),
	}
}

// orderSearchResult is the order list response of GET /orders
type orderSearchResult struct {
	Items      []orderPayload `json:"items"`
	TotalCount int            `json:"total_count"`
}

// orderPayload is an order as returned by the storefront
type orderPayload struct {
	EntityID       int64                 `json:"entity_id"`
	Status         string                `json:"status"`
	CustomerEmail  string                `json:"customer_email"`
	BillingAddress billingAddressPayload `json:"billing_address"`
	Items          []orderItemPayload    `json:"items"`
}

type billingAddressPayload struct {
	Firstname string   `json:"firstname"`
	Lastname  string   `json:"lastname"`
	Telephone string   `json:"telephone"`
	Street    []string `json:"street"`
	City      string   `json:"city"`
	Postcode  string   `json:"postcode"`
	CountryID string   `json:"country_id"`
}

// orderItemPayload is a line item; quantity and price may be absent
type orderItemPayload struct {
	SKU        string   `json:"sku"`
	QtyOrdered *float64 `json:"qty_ordered"`
	Price      *float64 `json:"price"`
}

// toDomain maps the REST order to the canonical order record, applying
// the ingestion defaults (quantity 1, price 0, first street line).
func (o *orderPayload) toDomain() integration.StorefrontOrder {
	street := ""
	if len(o.BillingAddress.Street) > 0 {
		street = o.BillingAddress.Street[0]
	}

	items := make([]integration.OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		qty := decimal.NewFromInt(1)
		if item.QtyOrdered != nil {
			qty = decimal.NewFromFloat(*item.QtyOrdered)
		}
		price := decimal.Zero
		if item.Price != nil {
			price = decimal.NewFromFloat(*item.Price)
		}
		items = append(items, integration.OrderItem{
			SKU:        item.SKU,
			QtyOrdered: qty,
			Price:      price,
		})
	}

	return integration.StorefrontOrder{
		EntityID:      strconv.FormatInt(o.EntityID, 10),
		Status:        integration.OrderStatus(o.Status),
		CustomerEmail: o.CustomerEmail,
		Billing: integration.BillingAddress{
			Firstname: o.BillingAddress.Firstname,
			Lastname:  o.BillingAddress.Lastname,
			Telephone: o.BillingAddress.Telephone,
			Street:    street,
			City:      o.BillingAddress.City,
			Postcode:  o.BillingAddress.Postcode,
			CountryID: o.BillingAddress.CountryID,
		},
		Items: items,
	}
}

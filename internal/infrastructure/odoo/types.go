package odoo

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// rpcRequest is a JSON-RPC 2.0 request envelope
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      string    `json:"id"`
}

// rpcParams addresses a method on one of Odoo's RPC services
// ("common" for authentication, "object" for model operations)
type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is the error payload of a failed JSON-RPC call
type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

var jsonFalse = []byte("false")

// OptionalString decodes Odoo char fields. Odoo serializes unset fields as
// the boolean false rather than null, so a plain string target would fail.
type OptionalString string

// UnmarshalJSON implements json.Unmarshaler
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonFalse) || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = OptionalString(v)
	return nil
}

// OptionalFloat decodes Odoo numeric fields, which are false when unset.
type OptionalFloat float64

// UnmarshalJSON implements json.Unmarshaler
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonFalse) || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = OptionalFloat(v)
	return nil
}

// productRecord is a product.product row as returned by search_read
type productRecord struct {
	ID           int64          `json:"id"`
	Name         OptionalString `json:"name"`
	DefaultCode  OptionalString `json:"default_code"`
	ListPrice    OptionalFloat  `json:"list_price"`
	LstPrice     OptionalFloat  `json:"lst_price"`
	QtyAvailable OptionalFloat  `json:"qty_available"`
	Type         OptionalString `json:"type"`
}

// toDomain maps the Odoo row to the canonical product record
func (r *productRecord) toDomain() integration.Product {
	return integration.Product{
		ID:          r.ID,
		Name:        string(r.Name),
		SKU:         string(r.DefaultCode),
		RetailPrice: decimal.NewFromFloat(float64(r.ListPrice)),
		PromoPrice:  decimal.NewFromFloat(float64(r.LstPrice)),
		Quantity:    decimal.NewFromFloat(float64(r.QtyAvailable)),
		Type:        string(r.Type),
	}
}

// productFields is the field list requested from product.product
var productFields = []string{"name", "default_code", "list_price", "lst_price", "qty_available", "type"}

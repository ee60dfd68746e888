package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the Odoo server (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client implements the ERPClient port against Odoo's JSON-RPC endpoint.
// A session is a uid obtained from common.login; the uid and connectivity
// flag are the only mutable state and are re-established lazily.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.Mutex // Protects uid and connected
	uid       int64
	connected bool
}

// NewClient creates a new Odoo client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// Connect establishes a session against the Odoo server. It is safe to call
// repeatedly; each call performs a fresh login.
func (c *Client) Connect(ctx context.Context) error {
	result, err := c.call(ctx, "common", "login", []any{
		c.config.Database, c.config.Username, c.config.Password,
	})
	if err != nil {
		c.setDisconnected()
		c.logger.Error("Failed to connect to Odoo server",
			zap.String("host", c.config.Host),
			zap.Int("port", c.config.Port),
			zap.Error(err),
		)
		return err
	}

	// login returns the uid on success and false on bad credentials
	var uid int64
	if err := json.Unmarshal(result, &uid); err != nil || uid == 0 {
		c.setDisconnected()
		c.logger.Error("Odoo rejected credentials", zap.String("database", c.config.Database))
		return fmt.Errorf("%w: odoo login rejected for database %s", integration.ErrAuthFailed, c.config.Database)
	}

	c.mu.Lock()
	c.uid = uid
	c.connected = true
	c.mu.Unlock()

	c.logger.Info("Connected to Odoo server",
		zap.String("host", c.config.Host),
		zap.Int("port", c.config.Port),
		zap.String("database", c.config.Database),
	)
	return nil
}

// Connected reports whether a session has been established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) setDisconnected() {
	c.mu.Lock()
	c.uid = 0
	c.connected = false
	c.mu.Unlock()
}

// ensureConnection reconnects lazily if no session is recorded.
func (c *Client) ensureConnection(ctx context.Context) error {
	if c.Connected() {
		return nil
	}
	return c.Connect(ctx)
}

// call performs a raw JSON-RPC request against the given service.
func (c *Client) call(ctx context.Context, service, method string, args []any) (json.RawMessage, error) {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  "call",
		Params: rpcParams{
			Service: service,
			Method:  method,
			Args:    args,
		},
		ID: uuid.NewString(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("odoo: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ServerURL()+"/jsonrpc", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("odoo: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("odoo: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrRequestFailed, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("%w: %s", integration.ErrRequestFailed, rpcResp.Error.Message)
	}

	return rpcResp.Result, nil
}

// executeKw invokes a model method via object.execute_kw, establishing the
// session first if needed.
func (c *Client) executeKw(ctx context.Context, model, method string, args []any, kwargs map[string]any) (json.RawMessage, error) {
	if err := c.ensureConnection(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	uid := c.uid
	c.mu.Unlock()

	params := []any{c.config.Database, uid, c.config.Password, model, method, args}
	if kwargs != nil {
		params = append(params, kwargs)
	}

	return c.call(ctx, "object", "execute_kw", params)
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// GetProductBySKU returns the product whose default_code matches the SKU exactly.
func (c *Client) GetProductBySKU(ctx context.Context, sku string) (*integration.Product, error) {
	result, err := c.executeKw(ctx, "product.product", "search_read",
		[]any{[]any{[]any{"default_code", "=", sku}}},
		map[string]any{"fields": productFields, "limit": 1},
	)
	if err != nil {
		return nil, err
	}

	var records []productRecord
	if err := json.Unmarshal(result, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if len(records) == 0 {
		c.logger.Warn("Product not found in Odoo", zap.String("sku", sku))
		return nil, fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
	}

	product := records[0].toDomain()
	return &product, nil
}

// GetAllProducts returns every product, optionally truncated to limit.
func (c *Client) GetAllProducts(ctx context.Context, limit int) ([]integration.Product, error) {
	kwargs := map[string]any{"fields": productFields}
	if limit > 0 {
		kwargs["limit"] = limit
	}

	result, err := c.executeKw(ctx, "product.product", "search_read", []any{[]any{}}, kwargs)
	if err != nil {
		return nil, err
	}

	var records []productRecord
	if err := json.Unmarshal(result, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	products := make([]integration.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// findProductID resolves a SKU to an ERP product identifier.
func (c *Client) findProductID(ctx context.Context, sku string) (int64, error) {
	result, err := c.executeKw(ctx, "product.product", "search",
		[]any{[]any{[]any{"default_code", "=", sku}}},
		map[string]any{"limit": 1},
	)
	if err != nil {
		return 0, err
	}

	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return 0, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
	}
	return ids[0], nil
}

// ---------------------------------------------------------------------------
// Partner and Country Operations
// ---------------------------------------------------------------------------

// ResolveCountryID resolves an ISO country code to the Odoo country identifier.
// The lookup upper-cases the code so the match is effectively case-insensitive.
func (c *Client) ResolveCountryID(ctx context.Context, code string) (int64, error) {
	result, err := c.executeKw(ctx, "res.country", "search",
		[]any{[]any{[]any{"code", "=", strings.ToUpper(code)}}},
		map[string]any{"limit": 1},
	)
	if err != nil {
		return 0, err
	}

	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return 0, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: code %s", integration.ErrCountryNotFound, code)
	}
	return ids[0], nil
}

// findOrCreatePartner looks up the partner by email, creating it if absent.
// A country link is attached best-effort: an unresolvable code leaves the
// partner without one rather than failing the order.
func (c *Client) findOrCreatePartner(ctx context.Context, customer integration.Customer) (int64, error) {
	result, err := c.executeKw(ctx, "res.partner", "search",
		[]any{[]any{[]any{"email", "=", customer.Email}}},
		map[string]any{"limit": 1},
	)
	if err != nil {
		return 0, err
	}

	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return 0, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}
	if len(ids) > 0 {
		return ids[0], nil
	}

	values := map[string]any{
		"name":   customer.Name,
		"email":  customer.Email,
		"phone":  customer.Phone,
		"street": customer.Street,
		"city":   customer.City,
		"zip":    customer.Zip,
	}
	if customer.CountryCode != "" {
		countryID, err := c.ResolveCountryID(ctx, customer.CountryCode)
		if err != nil {
			c.logger.Warn("Could not resolve country for new partner",
				zap.String("country_code", customer.CountryCode),
				zap.Error(err),
			)
		} else {
			values["country_id"] = countryID
		}
	}

	created, err := c.executeKw(ctx, "res.partner", "create", []any{values}, nil)
	if err != nil {
		return 0, err
	}

	var partnerID int64
	if err := json.Unmarshal(created, &partnerID); err != nil {
		return 0, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	c.logger.Info("Created Odoo partner",
		zap.Int64("partner_id", partnerID),
		zap.String("email", customer.Email),
	)
	return partnerID, nil
}

// ---------------------------------------------------------------------------
// Sale Order Operations
// ---------------------------------------------------------------------------

// CreateSaleOrder creates a sale order for the customer with the given lines.
// Lines whose SKU has no Odoo counterpart are dropped with a warning; if no
// lines resolve, ErrNoOrderLines is returned and nothing is created.
func (c *Client) CreateSaleOrder(ctx context.Context, customer integration.Customer, lines []integration.OrderLine, externalOrderID string) (int64, error) {
	partnerID, err := c.findOrCreatePartner(ctx, customer)
	if err != nil {
		return 0, err
	}

	orderLines := make([]any, 0, len(lines))
	for _, line := range lines {
		productID, err := c.findProductID(ctx, line.SKU)
		if err != nil {
			if errors.Is(err, integration.ErrProductNotFound) {
				c.logger.Warn("Order line SKU not found in Odoo, dropping line",
					zap.String("sku", line.SKU),
					zap.String("external_order_id", externalOrderID),
				)
				continue
			}
			return 0, err
		}

		// Odoo one2many create triple: (0, 0, values)
		orderLines = append(orderLines, []any{0, 0, map[string]any{
			"product_id":      productID,
			"product_uom_qty": line.Quantity.InexactFloat64(),
			"price_unit":      line.UnitPrice.InexactFloat64(),
		}})
	}

	if len(orderLines) == 0 {
		c.logger.Error("No valid order lines found, cannot create sale order",
			zap.String("external_order_id", externalOrderID),
		)
		return 0, fmt.Errorf("%w: external order %s", integration.ErrNoOrderLines, externalOrderID)
	}

	result, err := c.executeKw(ctx, "sale.order", "create", []any{map[string]any{
		"partner_id":       partnerID,
		"client_order_ref": externalOrderID,
		"order_line":       orderLines,
	}}, nil)
	if err != nil {
		return 0, err
	}

	var orderID int64
	if err := json.Unmarshal(result, &orderID); err != nil {
		return 0, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	c.logger.Info("Created Odoo sale order",
		zap.Int64("sale_order_id", orderID),
		zap.String("external_order_id", externalOrderID),
	)
	return orderID, nil
}

// Ensure Client implements the ERPClient port
var _ integration.ERPClient = (*Client)(nil)

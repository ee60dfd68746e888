package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the storefront (10MB)
const maxResponseSize = 10 * 1024 * 1024

// errNotFound marks a 404 from the storefront; callers map it to the
// resource-specific sentinel.
var errNotFound = errors.New("magento: resource not found")

// Client implements the StorefrontClient port against the Magento REST API.
// Admin tokens are cached until TokenLifetime elapses; the refresh is
// serialized so concurrent callers share one token request.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex // Protects token and tokenExpiry
	token       string
	tokenExpiry time.Time
}

// NewClient creates a new Magento client with the given configuration
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

// Authenticate obtains an admin token, reusing the cached one while valid.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.getToken(ctx)
	return err
}

// Authenticated reports whether a non-expired token is cached.
func (c *Client) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != "" && time.Now().Before(c.tokenExpiry)
}

// getToken returns the cached token or requests a fresh one. The lock is
// held across the HTTP call so only one refresh runs at a time.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	body, err := json.Marshal(tokenRequest{
		Username: c.config.Username,
		Password: c.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("magento: failed to encode token request: %w", err)
	}

	endpoint := c.config.BaseURL + "/rest/V1/integration/admin/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("magento: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", integration.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("magento: failed to read token response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: storefront rejected credentials", integration.ErrAuthFailed)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: token request returned HTTP %d", integration.ErrRequestFailed, resp.StatusCode)
	}

	// The token endpoint returns a bare JSON string
	var token string
	if err := json.Unmarshal(respBody, &token); err != nil || token == "" {
		return "", fmt.Errorf("%w: unexpected token response", integration.ErrInvalidResponse)
	}

	c.token = token
	c.tokenExpiry = time.Now().Add(c.config.TokenLifetime)

	c.logger.Info("Obtained Magento admin token",
		zap.Time("expires_at", c.tokenExpiry),
	)
	return c.token, nil
}

// invalidateToken discards the cached token after a 401 so the next call
// re-authenticates.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

// doRequest performs an authenticated REST call and returns the raw body.
// 404 responses surface as errNotFound for the caller to map.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("magento: failed to encode request: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("magento: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("magento: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		c.invalidateToken()
		return nil, fmt.Errorf("%w: token rejected", integration.ErrAuthFailed)
	case resp.StatusCode >= 400:
		c.logger.Warn("Magento request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: %s %s returned HTTP %d", integration.ErrRequestFailed, method, path, resp.StatusCode)
	}

	return respBody, nil
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// GetProductBySKU returns the storefront product with the given SKU.
func (c *Client) GetProductBySKU(ctx context.Context, sku string) (*integration.StorefrontProduct, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/rest/V1/products/"+url.PathEscape(sku), nil, nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
		}
		return nil, err
	}

	var p magentoProduct
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	product := p.toDomain()
	return &product, nil
}

// UpdateStock sets the stock quantity; is_in_stock follows quantity > 0.
func (c *Client) UpdateStock(ctx context.Context, sku string, quantity decimal.Decimal) error {
	payload := stockItemUpdate{
		StockItem: stockItem{
			Qty:       quantity.InexactFloat64(),
			IsInStock: quantity.IsPositive(),
		},
	}

	_, err := c.doRequest(ctx, http.MethodPut, "/rest/V1/products/"+url.PathEscape(sku)+"/stockItems/1", nil, payload)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
		}
		return err
	}

	c.logger.Debug("Updated Magento stock",
		zap.String("sku", sku),
		zap.String("qty", quantity.String()),
	)
	return nil
}

// UpdatePrice sets the regular price.
func (c *Client) UpdatePrice(ctx context.Context, sku string, price decimal.Decimal) error {
	priceValue := price.InexactFloat64()
	payload := productUpdate{
		Product: productBody{Price: &priceValue},
	}

	_, err := c.doRequest(ctx, http.MethodPut, "/rest/V1/products/"+url.PathEscape(sku), nil, payload)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
		}
		return err
	}

	c.logger.Debug("Updated Magento price",
		zap.String("sku", sku),
		zap.String("price", price.String()),
	)
	return nil
}

// UpdateSpecialPrice sets the special price via custom attributes. Date
// bounds are attached only when non-empty.
func (c *Client) UpdateSpecialPrice(ctx context.Context, sku string, specialPrice decimal.Decimal, fromDate, toDate string) error {
	attributes := []customAttribute{
		{AttributeCode: "special_price", Value: specialPrice.String()},
	}
	if fromDate != "" {
		attributes = append(attributes, customAttribute{AttributeCode: "special_from_date", Value: fromDate})
	}
	if toDate != "" {
		attributes = append(attributes, customAttribute{AttributeCode: "special_to_date", Value: toDate})
	}

	payload := productUpdate{
		Product: productBody{CustomAttributes: attributes},
	}

	_, err := c.doRequest(ctx, http.MethodPut, "/rest/V1/products/"+url.PathEscape(sku), nil, payload)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return fmt.Errorf("%w: sku %s", integration.ErrProductNotFound, sku)
		}
		return err
	}

	c.logger.Debug("Updated Magento special price",
		zap.String("sku", sku),
		zap.String("special_price", specialPrice.String()),
	)
	return nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// ListOrders returns one page of orders, optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, pageSize, page int, status integration.OrderStatus) ([]integration.StorefrontOrder, error) {
	query := url.Values{}
	query.Set("searchCriteria[pageSize]", strconv.Itoa(pageSize))
	query.Set("searchCriteria[currentPage]", strconv.Itoa(page))
	if status != "" {
		query.Set("searchCriteria[filterGroups][0][filters][0][field]", "status")
		query.Set("searchCriteria[filterGroups][0][filters][0][value]", status.String())
		query.Set("searchCriteria[filterGroups][0][filters][0][conditionType]", "eq")
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/rest/V1/orders", query, nil)
	if err != nil {
		return nil, err
	}

	var result orderSearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	orders := make([]integration.StorefrontOrder, 0, len(result.Items))
	for i := range result.Items {
		orders = append(orders, result.Items[i].toDomain())
	}
	return orders, nil
}

// GetOrderByID returns the order with the given entity identifier.
func (c *Client) GetOrderByID(ctx context.Context, orderID string) (*integration.StorefrontOrder, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/rest/V1/orders/"+url.PathEscape(orderID), nil, nil)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("%w: order %s", integration.ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	var payload orderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrInvalidResponse, err)
	}

	order := payload.toDomain()
	return &order, nil
}

// ListNewOrders returns pending orders followed by processing orders. A
// failure listing one status is logged and skipped; an error is returned
// only when both listings fail.
func (c *Client) ListNewOrders(ctx context.Context) ([]integration.StorefrontOrder, error) {
	var orders []integration.StorefrontOrder
	var lastErr error
	failures := 0

	for _, status := range []integration.OrderStatus{integration.OrderStatusPending, integration.OrderStatusProcessing} {
		page, err := c.ListOrders(ctx, c.config.OrderPageSize, 1, status)
		if err != nil {
			c.logger.Warn("Failed to list orders by status",
				zap.String("status", status.String()),
				zap.Error(err),
			)
			failures++
			lastErr = err
			continue
		}
		orders = append(orders, page...)
	}

	if failures == 2 {
		return nil, lastErr
	}
	return orders, nil
}

// Ensure Client implements the StorefrontClient port
var _ integration.StorefrontClient = (*Client)(nil)

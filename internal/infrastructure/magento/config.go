package magento

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the Magento REST connection
type Config struct {
	// BaseURL is the storefront base URL without the /rest prefix
	BaseURL string
	// Username is the admin integration login
	Username string
	// Password is the admin integration password
	Password string
	// TokenLifetime is how long an admin token stays valid before a
	// fresh one is requested
	TokenLifetime time.Duration
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// OrderPageSize is the page size used when listing orders
	OrderPageSize int
}

// Errors for Magento configuration
var (
	ErrConfigMissingBaseURL  = errors.New("magento: base url is required")
	ErrConfigMissingUsername = errors.New("magento: username is required")
	ErrConfigMissingPassword = errors.New("magento: password is required")
)

// NewConfig creates a new Magento configuration with defaults
func NewConfig(baseURL, username, password string) *Config {
	return &Config{
		BaseURL:        baseURL,
		Username:       username,
		Password:       password,
		TokenLifetime:  time.Hour,
		TimeoutSeconds: 30,
		OrderPageSize:  50,
	}
}

// Validate validates the Magento configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.Username == "" {
		return ErrConfigMissingUsername
	}
	if c.Password == "" {
		return ErrConfigMissingPassword
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.TokenLifetime <= 0 {
		c.TokenLifetime = time.Hour
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.OrderPageSize <= 0 {
		c.OrderPageSize = 50
	}
	return nil
}

package odoo

import (
	"errors"
	"fmt"
)

// Config holds configuration for the Odoo JSON-RPC connection
type Config struct {
	// Host is the Odoo server hostname or IP
	Host string
	// Port is the Odoo server port
	Port int
	// Database is the Odoo database name
	Database string
	// Username is the Odoo login
	Username string
	// Password is the Odoo password
	Password string
	// UseTLS selects https for the JSON-RPC endpoint
	UseTLS bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for Odoo configuration
var (
	ErrConfigMissingHost     = errors.New("odoo: host is required")
	ErrConfigMissingDatabase = errors.New("odoo: database is required")
	ErrConfigMissingUsername = errors.New("odoo: username is required")
	ErrConfigMissingPassword = errors.New("odoo: password is required")
)

// NewConfig creates a new Odoo configuration with defaults
func NewConfig(host string, port int, database, username, password string) *Config {
	return &Config{
		Host:           host,
		Port:           port,
		Database:       database,
		Username:       username,
		Password:       password,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Odoo configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return ErrConfigMissingHost
	}
	if c.Database == "" {
		return ErrConfigMissingDatabase
	}
	if c.Username == "" {
		return ErrConfigMissingUsername
	}
	if c.Password == "" {
		return ErrConfigMissingPassword
	}
	if c.Port <= 0 {
		c.Port = 8069
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// ServerURL returns the base URL of the Odoo server
func (c *Config) ServerURL() string {
	scheme := "http"
	if c.UseTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Odoo      OdooConfig
	Magento   MagentoConfig
	Sync      SyncConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// OdooConfig holds ERP connection settings
type OdooConfig struct {
	Host           string
	Port           int
	Database       string
	Username       string
	Password       string
	UseTLS         bool
	TimeoutSeconds int
}

// MagentoConfig holds storefront connection settings
type MagentoConfig struct {
	BaseURL        string
	Username       string
	Password       string
	TokenLifetime  time.Duration
	TimeoutSeconds int
}

// SyncConfig holds synchronization behaviour settings
type SyncConfig struct {
	// Throttle is the fixed delay between items in a batch sync
	Throttle time.Duration
	// OrderPageSize is the page size used when listing storefront orders
	OrderPageSize int
	// ProductLimit truncates full product syncs (0 = unbounded)
	ProductLimit int
	// AutoSync enables the periodic background sync scheduler
	AutoSync bool
	// AutoSyncInterval is the delay between scheduled sync cycles
	AutoSyncInterval time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BRIDGE_ prefix (e.g., BRIDGE_ODOO_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Odoo: OdooConfig{
			Host:           v.GetString("odoo.host"),
			Port:           v.GetInt("odoo.port"),
			Database:       v.GetString("odoo.database"),
			Username:       v.GetString("odoo.username"),
			Password:       v.GetString("odoo.password"),
			UseTLS:         v.GetBool("odoo.use_tls"),
			TimeoutSeconds: v.GetInt("odoo.timeout_seconds"),
		},
		Magento: MagentoConfig{
			BaseURL:        v.GetString("magento.base_url"),
			Username:       v.GetString("magento.username"),
			Password:       v.GetString("magento.password"),
			TokenLifetime:  v.GetDuration("magento.token_lifetime"),
			TimeoutSeconds: v.GetInt("magento.timeout_seconds"),
		},
		Sync: SyncConfig{
			Throttle:         v.GetDuration("sync.throttle"),
			OrderPageSize:    v.GetInt("sync.order_page_size"),
			ProductLimit:     v.GetInt("sync.product_limit"),
			AutoSync:         v.GetBool("sync.auto_sync"),
			AutoSyncInterval: v.GetDuration("sync.auto_sync_interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sync-bridge"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8000"
	}
	if cfg.Odoo.Host == "" {
		cfg.Odoo.Host = "localhost"
	}
	if cfg.Odoo.Port == 0 {
		cfg.Odoo.Port = 8069
	}
	if cfg.Odoo.Database == "" {
		cfg.Odoo.Database = "odoo"
	}
	if cfg.Odoo.Username == "" {
		cfg.Odoo.Username = "admin"
	}
	if cfg.Odoo.TimeoutSeconds == 0 {
		cfg.Odoo.TimeoutSeconds = 30
	}
	if cfg.Magento.BaseURL == "" {
		cfg.Magento.BaseURL = "http://localhost"
	}
	if cfg.Magento.Username == "" {
		cfg.Magento.Username = "admin"
	}
	if cfg.Magento.TokenLifetime == 0 {
		cfg.Magento.TokenLifetime = time.Hour
	}
	if cfg.Magento.TimeoutSeconds == 0 {
		cfg.Magento.TimeoutSeconds = 30
	}
	if cfg.Sync.Throttle == 0 {
		cfg.Sync.Throttle = 500 * time.Millisecond
	}
	if cfg.Sync.OrderPageSize == 0 {
		cfg.Sync.OrderPageSize = 50
	}
	if cfg.Sync.AutoSyncInterval == 0 {
		cfg.Sync.AutoSyncInterval = time.Hour
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Batch endpoints answer immediately; long syncs run in background
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "sync-bridge"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Sync.Throttle < 0 {
		return fmt.Errorf("sync.throttle cannot be negative")
	}
	if c.Sync.OrderPageSize <= 0 {
		return fmt.Errorf("sync.order_page_size must be positive")
	}
	if c.Sync.ProductLimit < 0 {
		return fmt.Errorf("sync.product_limit cannot be negative")
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if c.Odoo.Password == "" {
			return fmt.Errorf("odoo.password is required in production")
		}
		if c.Magento.Password == "" {
			return fmt.Errorf("magento.password is required in production")
		}
		if !strings.HasPrefix(c.Magento.BaseURL, "https://") {
			return fmt.Errorf("magento.base_url must use https in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"dex-trades/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	Logging  logging.Config         `mapstructure:"logging"`
	Storage  StorageConfig          `mapstructure:"storage"`
	Provider ProviderConfig         `mapstructure:"provider"`
	External ExternalConfig         `mapstructure:"external"`
	Pricing  PricingConfig          `mapstructure:"pricing"`
	Detector DetectorConfig         `mapstructure:"detector"`
	Chains   map[string]ChainConfig `mapstructure:"chains"`
	Report   ReportConfig           `mapstructure:"report"`
}

// StorageConfig selects and parameterises the price store backend.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"`
	PostgresDSN   string `mapstructure:"postgres_dsn"`
	ClickHouseDSN string `mapstructure:"clickhouse_dsn"`
}

// ProviderConfig covers the hourly history provider.
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Currency       string        `mapstructure:"currency"`
	PageLimit      int           `mapstructure:"page_limit"`
	Pace           time.Duration `mapstructure:"pace"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ExternalConfig captures the secondary quote service.
type ExternalConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// PricingConfig tunes the price resolution chain.
type PricingConfig struct {
	Stablecoins        []string `mapstructure:"stablecoins"`
	MaxDerivationDepth int      `mapstructure:"max_derivation_depth"`
}

// DetectorConfig tunes swap detection.
type DetectorConfig struct {
	NativeDust string `mapstructure:"native_dust"`
}

// Threshold parses the configured dust value. Empty or unparseable values
// yield zero, which callers treat as "use the built-in default".
func (d DetectorConfig) Threshold() decimal.Decimal {
	raw := strings.TrimSpace(d.NativeDust)
	if raw == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// ChainConfig extends a chain's built-in router and selector tables.
type ChainConfig struct {
	Routers   map[string]string `mapstructure:"routers"`
	Selectors []string          `mapstructure:"selectors"`
}

// ReportConfig 描述批次摘要上报参数。
type ReportConfig struct {
	WebhookURL     string        `mapstructure:"webhook_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DEXTRADES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("storage.backend", "memory")

	v.SetDefault("provider.base_url", "https://min-api.cryptocompare.com")
	v.SetDefault("provider.currency", "USD")
	v.SetDefault("provider.page_limit", 2000)
	v.SetDefault("provider.pace", "200ms")
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.request_timeout", "30s")

	v.SetDefault("external.enabled", true)
	v.SetDefault("external.base_url", "https://api.coingecko.com")
	v.SetDefault("external.request_timeout", "10s")
	v.SetDefault("external.user_agent", "dextrades/1.0")

	v.SetDefault("pricing.max_derivation_depth", 4)

	v.SetDefault("detector.native_dust", "0.1")

	v.SetDefault("report.request_timeout", "10s")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn 必须配置")
		}
	case "clickhouse":
		if c.Storage.ClickHouseDSN == "" {
			return fmt.Errorf("storage.clickhouse_dsn 必须配置")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.backend must be one of postgres, clickhouse, memory")
	}
	if c.Provider.PageLimit <= 0 {
		return fmt.Errorf("provider.page_limit must be greater than zero")
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider.max_retries cannot be negative")
	}
	if c.Pricing.MaxDerivationDepth <= 0 {
		return fmt.Errorf("pricing.max_derivation_depth must be greater than zero")
	}
	if raw := strings.TrimSpace(c.Detector.NativeDust); raw != "" {
		dust, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("detector.native_dust must be a decimal number: %w", err)
		}
		if dust.Sign() <= 0 {
			return fmt.Errorf("detector.native_dust must be greater than zero")
		}
	}
	return nil
}

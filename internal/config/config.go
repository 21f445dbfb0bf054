package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Ikkisovi/portifolio-dashboard/internal/core"
	"github.com/spf13/viper"
)

// Config is the full application configuration. The example-data section
// carries every external input of the bundle builder: instrument list, start
// date, base capital, price scale factor, archive location and the benchmark
// symbol.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Example ExampleConfig `mapstructure:"example"`
	Storage StorageConfig `mapstructure:"storage"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`
}

// ExampleConfig configures the example-mode portfolio built from historical
// archives when no live trading backend is attached.
type ExampleConfig struct {
	Tickers           []string `mapstructure:"tickers"`
	Benchmark         string   `mapstructure:"benchmark"`
	BenchmarkRequired bool     `mapstructure:"benchmark_required"`
	StartDate         string   `mapstructure:"start_date"` // YYYY-MM-DD
	BaseCapital       float64  `mapstructure:"base_capital"`
	PriceScale        float64  `mapstructure:"price_scale"`
	ArchiveExt        string   `mapstructure:"archive_ext"` // "zip", "csv.xz", "csv.gz" or "csv"
	MaxBadRows        int      `mapstructure:"max_bad_rows"`
	Currency          string   `mapstructure:"currency"`
}

// Start parses the configured start-date cutoff as a UTC midnight.
func (e ExampleConfig) Start() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", e.StartDate, time.UTC)
}

// StorageConfig selects the archive byte store the reader pulls from.
type StorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults. The example-data defaults
// follow the reference dashboard: a four-stock watchlist allocated equal
// dollar against a SPY benchmark, LEAN-style archives scaled by 10000.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Example: ExampleConfig{
			Tickers:     []string{"MU", "SNDK", "CDE", "RKLB"},
			Benchmark:   "SPY",
			StartDate:   "2024-01-01",
			BaseCapital: 100000,
			PriceScale:  10000,
			ArchiveExt:  "zip",
			MaxBadRows:  100,
			Currency:    "USD",
		},
		Storage: StorageConfig{
			Type: "localfs",
			Path: "data/equity/daily",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if len(c.Example.Tickers) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("example.tickers must name at least one instrument"))
	}
	if c.Example.BaseCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("example.base_capital must be positive, got %f", c.Example.BaseCapital))
	}
	if c.Example.PriceScale <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("example.price_scale must be positive, got %f", c.Example.PriceScale))
	}
	if _, err := c.Example.Start(); err != nil {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("example.start_date must be YYYY-MM-DD: %w", err))
	}
	switch c.Example.ArchiveExt {
	case "zip", "csv.xz", "csv.gz", "csv":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("example.archive_ext must be zip, csv.xz, csv.gz or csv, got %q", c.Example.ArchiveExt))
	}
	if c.Example.MaxBadRows < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("example.max_bad_rows cannot be negative, got %d", c.Example.MaxBadRows))
	}

	switch c.Storage.Type {
	case "localfs":
		if c.Storage.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.path required when type is localfs"))
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("storage.type must be localfs or s3, got %q", c.Storage.Type))
	}

	return nil
}

// Package config loads settings from config.yaml, WAREHOUSE_MAP_* environment
// variables and command-line flags, and sets up the global logger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Geocoder GeocoderConfig `yaml:"geocoder" mapstructure:"geocoder"`
	UI       UIConfig       `yaml:"ui" mapstructure:"ui"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the warehouse and boundary inputs and the sqlite cache.
// A non-empty file setting takes precedence over the matching URL.
type DataConfig struct {
	DBPath         string `yaml:"db_path" mapstructure:"db_path"`
	WarehousesURL  string `yaml:"warehouses_url" mapstructure:"warehouses_url"`
	WarehousesFile string `yaml:"warehouses_file" mapstructure:"warehouses_file"`
	BoundariesURL  string `yaml:"boundaries_url" mapstructure:"boundaries_url"`
	BoundariesFile string `yaml:"boundaries_file" mapstructure:"boundaries_file"`
}

// GeocoderConfig configures the Nominatim gateway.
type GeocoderConfig struct {
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	Contact      string  `yaml:"contact" mapstructure:"contact"`
	RatePerSec   float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	CacheSize    int     `yaml:"cache_size" mapstructure:"cache_size"`
	CacheTTLMins int     `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
}

// Timeout is the per-request HTTP timeout
func (g GeocoderConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// CacheTTL is how long a cached result stays valid
func (g GeocoderConfig) CacheTTL() time.Duration {
	return time.Duration(g.CacheTTLMins) * time.Minute
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Debounce is the pause after the last keystroke before suggestions are fetched
func (u UIConfig) Debounce() time.Duration {
	return time.Duration(u.DebounceMS) * time.Millisecond
}

// LogConfig configures logging. The terminal UI owns stdout, so logs go
// to File; an empty File logs to stderr.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Binding ties a command-line flag to a config key. A flag only overrides
// the key when it was set on the command line.
type Binding struct {
	Key  string
	Flag *pflag.Flag
}

// Load reads configuration from file, environment and flag bindings.
func Load(bindings ...Binding) (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WAREHOUSE_MAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.db_path", filepath.Join("data", "warehouse-map.db"))
	v.SetDefault("data.warehouses_url", "https://raw.githubusercontent.com/Grist-Data-Desk/eto-warehouses/refs/heads/main/eto-warehouses.csv")
	v.SetDefault("data.warehouses_file", "")
	v.SetDefault("data.boundaries_url", "https://www2.census.gov/geo/tiger/GENZ2023/shp/cb_2023_us_state_20m.zip")
	v.SetDefault("data.boundaries_file", "")
	v.SetDefault("geocoder.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoder.user_agent", "Grist EtO Warehouse Map/1.0")
	v.SetDefault("geocoder.contact", "caldern@grist.org")
	v.SetDefault("geocoder.rate_per_sec", 1.0)
	v.SetDefault("geocoder.timeout_secs", 10)
	v.SetDefault("geocoder.cache_size", 256)
	v.SetDefault("geocoder.cache_ttl_mins", 10)
	v.SetDefault("ui.debounce_ms", 400)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join("data", "warehouse-map.log"))

	for _, b := range bindings {
		if b.Flag == nil {
			continue
		}
		if err := v.BindPFlag(b.Key, b.Flag); err != nil {
			return nil, eris.Wrapf(err, "config: bind flag %s", b.Flag.Name)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var problems []string
	if c.Data.DBPath == "" {
		problems = append(problems, "data.db_path is required")
	}
	if c.Data.WarehousesURL == "" && c.Data.WarehousesFile == "" {
		problems = append(problems, "data.warehouses_url or data.warehouses_file is required")
	}
	if c.Data.BoundariesURL == "" && c.Data.BoundariesFile == "" {
		problems = append(problems, "data.boundaries_url or data.boundaries_file is required")
	}
	if c.Geocoder.BaseURL == "" {
		problems = append(problems, "geocoder.base_url is required")
	}
	if c.Geocoder.RatePerSec <= 0 {
		problems = append(problems, "geocoder.rate_per_sec must be positive")
	}
	if c.Geocoder.TimeoutSecs <= 0 {
		problems = append(problems, "geocoder.timeout_secs must be positive")
	}
	if c.UI.DebounceMS < 0 {
		problems = append(problems, "ui.debounce_ms must not be negative")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", c.Log.Format))
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return eris.Wrap(err, "config: create log directory")
		}
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

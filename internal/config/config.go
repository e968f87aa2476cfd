package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// DataConfig locates the dataset and fixes the analytics parameters.
type DataConfig struct {
	// DatasetPath points at the delimited retail dataset. A .xlsx suffix
	// switches the loader to the workbook reader.
	DatasetPath string `yaml:"dataset_path" envconfig:"DATASET_PATH" default:"data/online_retail.csv" validate:"required"`

	// HomeMarket is the country given separated treatment in the
	// revenue-by-country ranking.
	HomeMarket string `yaml:"home_market" envconfig:"HOME_MARKET" default:"United Kingdom" validate:"required"`

	// ExportsDir receives CSV exports of derived results.
	ExportsDir string `yaml:"exports_dir" envconfig:"EXPORTS_DIR" default:"data/exports"`

	// SegmentationSeed fixes the k-means initialization.
	SegmentationSeed int64 `yaml:"segmentation_seed" envconfig:"SEGMENTATION_SEED" default:"42"`

	// Segments is the fixed cluster count for customer segmentation.
	Segments int `yaml:"segments" envconfig:"SEGMENTS" default:"4" validate:"min=1"`
}

// Load builds the configuration: struct defaults and RETAIL_-prefixed
// environment variables first, then the optional YAML file named by
// RETAIL_CONFIG_FILE (config.yaml by default) overlaid on top.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("RETAIL", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	configFile := os.Getenv("RETAIL_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against the struct's validate tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

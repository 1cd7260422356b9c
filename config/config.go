// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"carrier-contracts/ratematrix"
)

// Config holds every setting read at process start
type Config struct {
	Env  string `env:"ENV"  envDefault:"development"`
	Port string `env:"PORT" envDefault:"8080"`

	// APIURL is the base URL of the contract backend
	APIURL string `env:"API_URL" envDefault:"http://localhost:8000"`
	// BaseURL is where this service can reach itself, used by headless Chrome exports
	BaseURL        string        `env:"BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	ZeroIsPlaceholder bool   `env:"ZERO_IS_PLACEHOLDER" envDefault:"true"`
	ZoneOrder         string `env:"ZONE_ORDER"          envDefault:"lexical"`
	DisplayMode       string `env:"DISPLAY_MODE"        envDefault:"flat"`
	FallbackSample    bool   `env:"FALLBACK_SAMPLE"     envDefault:"true"`

	ChromePath string `env:"CHROME_PATH"`

	GoogleCredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	DriveFolderID         string `env:"DRIVE_FOLDER_ID"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	ImportConcurrency     int    `env:"IMPORT_CONCURRENCY" envDefault:"4"`
}

// Load parses the environment into a Config and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	// PORT from some platforms comes with a leading colon
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:" + c.Port
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.ZoneOrder = strings.ToLower(strings.TrimSpace(c.ZoneOrder))
	c.DisplayMode = strings.ToLower(strings.TrimSpace(c.DisplayMode))
}

// Validate checks the values that have a closed set of options
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.APIURL == "" {
		return fmt.Errorf("API_URL cannot be empty")
	}
	switch ratematrix.ZoneOrder(c.ZoneOrder) {
	case ratematrix.ZoneOrderLexical, ratematrix.ZoneOrderNumeric:
	default:
		return fmt.Errorf("ZONE_ORDER must be lexical or numeric, got %q", c.ZoneOrder)
	}
	switch ratematrix.DisplayMode(c.DisplayMode) {
	case ratematrix.DisplayModeFlat, ratematrix.DisplayModeWeightZoneMatrix:
	default:
		return fmt.Errorf("DISPLAY_MODE must be flat or weight_zone_matrix, got %q", c.DisplayMode)
	}
	if c.ImportConcurrency < 1 {
		return fmt.Errorf("IMPORT_CONCURRENCY must be greater than 0")
	}
	return nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr returns the listen address on all interfaces
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// MatrixOptions returns the projector policies selected by the configuration
func (c *Config) MatrixOptions() ratematrix.Options {
	return ratematrix.Options{
		ZeroIsPlaceholder: c.ZeroIsPlaceholder,
		ZoneOrder:         ratematrix.ZoneOrder(c.ZoneOrder),
	}
}

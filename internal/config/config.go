package config

import (
	"fmt"
	"time"
)

// Defaults shared with CLI flag help. They must match the default tags below.
const (
	DefaultWorkerPoolSize = 10
	DefaultRequestTimeout = 30 * time.Second
)

// Config holds all application configuration settings.
type Config struct {
	Environment string `envconfig:"ENV" default:"development"`

	HTTPPort    int           `envconfig:"HTTP_PORT" default:"8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	WorkerPoolSize    int           `envconfig:"WORKER_POOL_SIZE" default:"10"`
	FontConcurrency   int           `envconfig:"FONT_CONCURRENCY" default:"0"`
	RequestTimeout    time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	MaxFontSize       int64         `envconfig:"MAX_FONT_SIZE" default:"20971520"`
	MaxStylesheetSize int64         `envconfig:"MAX_STYLESHEET_SIZE" default:"1048576"`
	UserAgent         string        `envconfig:"USER_AGENT" default:"fontfetch/1.0"`
	BlockPrivateHosts bool          `envconfig:"BLOCK_PRIVATE_HOSTS" default:"false"`

	OutputDir string `envconfig:"OUTPUT_DIR" default:"./fonts"`
	StateFile string `envconfig:"STATE_FILE" default:"./state.json"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Validate checks the configuration for invalid or missing values.
// Returns an error describing the first invalid setting found.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	if c.WorkerPoolSize <= 0 {
		return fmt.Errorf("worker pool size must be positive: %d", c.WorkerPoolSize)
	}

	if c.FontConcurrency < 0 {
		return fmt.Errorf("font concurrency must not be negative: %d", c.FontConcurrency)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive: %s", c.RequestTimeout)
	}

	if c.MaxFontSize <= 0 {
		return fmt.Errorf("max font size must be positive: %d", c.MaxFontSize)
	}

	if c.MaxStylesheetSize <= 0 {
		return fmt.Errorf("max stylesheet size must be positive: %d", c.MaxStylesheetSize)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.StateFile == "" {
		return fmt.Errorf("state file cannot be empty")
	}

	return nil
}

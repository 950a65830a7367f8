// Package config holds the scribe CLI configuration and its YAML loader.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonwraymond/scribe/logging"
	"github.com/jonwraymond/scribe/scribe"
)

// Output formats for recorded histories.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the CLI configuration.
type Config struct {
	// Timeout bounds a script run.
	Timeout time.Duration `yaml:"timeout"`

	// Mode is the default interception mode for scribe.wrap.
	Mode string `yaml:"mode"`

	// Output selects how histories are printed: text or json.
	Output string `yaml:"output"`

	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`

	// Calls logs every completed call at debug level.
	Calls bool `yaml:"calls"`
}

// MetricsConfig configures the prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// MCPConfig names the MCP server implementation.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout: 5 * time.Second,
		Mode:    string(scribe.ModeDelegation),
		Output:  OutputText,
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Metrics: MetricsConfig{
			Namespace: "scribe",
		},
		MCP: MCPConfig{
			Name:    "scribe",
			Version: "dev",
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %v", ErrInvalid, c.Timeout)
	}
	if _, err := scribe.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: unknown output %q", ErrInvalid, c.Output)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Log.Level)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("%w: metrics namespace is required", ErrInvalid)
	}
	if c.MCP.Name == "" {
		return fmt.Errorf("%w: mcp name is required", ErrInvalid)
	}
	return nil
}

// ScribeMode returns the parsed interception mode.
func (c Config) ScribeMode() scribe.Mode {
	m, err := scribe.ParseMode(c.Mode)
	if err != nil {
		return scribe.ModeDelegation
	}
	return m
}

// Logging returns the logging configuration for package logging.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Log.Level)
	cfg.Format = logging.ParseFormat(c.Log.Format)
	return cfg
}

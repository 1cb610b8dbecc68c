package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/housing-advisor/internal/config"
	"github.com/iwvelando/housing-advisor/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxRequestSize  string               `yaml:"maxRequestSize"`
	ShutdownTimeout string               `yaml:"shutdownTimeout"`
	RateLimit       RateLimitConfig      `yaml:"rateLimit"`
	Logging         config.LoggingConfig `yaml:"logging"`

	requestSizeBytes int64
	shutdownTimeout  time.Duration
	rateLimitWindow  time.Duration
}

// RateLimitConfig limits requests per client address. Zero requests disables it.
type RateLimitConfig struct {
	Requests int    `yaml:"requests"`
	Window   string `yaml:"window"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Address:          constants.DefaultServerAddress,
		MaxRequestSize:   fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes),
		ShutdownTimeout:  (constants.DefaultShutdownTimeoutSeconds * time.Second).String(),
		requestSizeBytes: constants.DefaultMaxRequestSizeBytes,
		shutdownTimeout:  constants.DefaultShutdownTimeoutSeconds * time.Second,
	}
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequestSizeBytes returns the configured request body limit in bytes.
func (c *Config) RequestSizeBytes() int64 {
	return c.requestSizeBytes
}

// ShutdownTimeoutDuration bounds graceful shutdown.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return c.shutdownTimeout
}

// RateLimitWindow returns the parsed rate limit window.
func (c *Config) RateLimitWindow() time.Duration {
	return c.rateLimitWindow
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	sizeStr := strings.TrimSpace(c.MaxRequestSize)
	if sizeStr == "" {
		c.requestSizeBytes = constants.DefaultMaxRequestSizeBytes
		c.MaxRequestSize = fmt.Sprintf("%d", constants.DefaultMaxRequestSizeBytes)
	} else {
		bytes, err := ParseSize(sizeStr)
		if err != nil {
			return err
		}
		if bytes <= 0 {
			bytes = constants.DefaultMaxRequestSizeBytes
		}
		c.requestSizeBytes = bytes
	}

	c.shutdownTimeout = constants.DefaultShutdownTimeoutSeconds * time.Second
	if s := strings.TrimSpace(c.ShutdownTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid shutdown timeout %q: %w", s, err)
		}
		if d > 0 {
			c.shutdownTimeout = d
		}
	}

	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("rate limit requests must not be negative, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Requests > 0 {
		window := strings.TrimSpace(c.RateLimit.Window)
		if window == "" {
			window = "1m"
		}
		d, err := time.ParseDuration(window)
		if err != nil {
			return fmt.Errorf("invalid rate limit window %q: %w", window, err)
		}
		if d <= 0 {
			return fmt.Errorf("rate limit window must be positive, got %s", window)
		}
		c.rateLimitWindow = d
	}
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxRequestSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}

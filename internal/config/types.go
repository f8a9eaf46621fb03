package config

import "time"

// Config represents the complete hookwell configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Server    ServerConfig    `yaml:"server"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Store     StoreConfig     `yaml:"store"`
	Admin     AdminConfig     `yaml:"admin,omitempty"`
	RunDir    string          `yaml:"run_dir"`

	// Path is the file the configuration was loaded from; populated by Load.
	Path string `yaml:"-"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	Listen      string `yaml:"listen"`
	MaxBodySize string `yaml:"max_body_size,omitempty"`

	// MaxBodyBytes is MaxBodySize parsed to bytes; populated by Load.
	MaxBodyBytes int64 `yaml:"-"`
}

// WebhookConfig defines signature verification settings.
type WebhookConfig struct {
	// Secret authenticates delivery signatures. Empty disables verification
	// and every event is stored unverified.
	Secret string `yaml:"secret,omitempty"`
}

// RateLimitConfig defines per-client admission settings.
type RateLimitConfig struct {
	MaxRequests int    `yaml:"max_requests"`
	Window      string `yaml:"window"` // e.g., "1m", "30s"

	// WindowDuration is Window parsed; populated by Load.
	WindowDuration time.Duration `yaml:"-"`
}

// StoreConfig defines event retention settings.
type StoreConfig struct {
	Capacity int `yaml:"capacity"`
}

// AdminConfig defines administrative endpoint settings.
type AdminConfig struct {
	// Token guards the administrative clear endpoint. Empty disables the
	// endpoint entirely.
	Token string `yaml:"token,omitempty"`
}

// DefaultMaxBodySize caps request bodies at 1 MB unless configured.
const DefaultMaxBodySize = 1048576

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:     "hookwell",
			LogLevel: "info",
		},
		Server: ServerConfig{
			Listen:       "127.0.0.1:8080",
			MaxBodyBytes: DefaultMaxBodySize,
		},
		RateLimit: RateLimitConfig{
			MaxRequests:    100,
			Window:         "1m",
			WindowDuration: time.Minute,
		},
		Store: StoreConfig{
			Capacity: 1000,
		},
		RunDir: "./data",
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses configuration from a file. configPath may also be a
// directory containing config.yaml. When a .checksums manifest exists next
// to the file, the file's hash is verified before the config is used.
func Load(configPath string) (*Config, error) {
	// Resolve to absolute path for consistent relative path resolution
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	if info.IsDir() {
		// Directory provided - look for config.yaml inside
		absPath = filepath.Join(absPath, "config.yaml")
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but config.yaml not found: %s", absPath)
		}
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Apply environment variable interpolation
	interpolated := interpolateEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyConfigDefaults(&cfg)

	if err := verifyConfigHash(absPath); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.Path = absPath

	return &cfg, nil
}

// DiscoverConfigPath finds the config location by checking standard places.
// Priority order: $HOOKWELL_CONFIG_DIR, ~/.config/hookwell, /etc/hookwell,
// ./config.yaml.
func DiscoverConfigPath() (string, error) {
	// 1. Check environment variable
	if dir := os.Getenv("HOOKWELL_CONFIG_DIR"); dir != "" {
		if _, err := os.Stat(dir); err == nil {
			return dir, nil
		}
	}

	// 2. Check user config directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		userConfigDir := filepath.Join(homeDir, ".config", "hookwell")
		if _, err := os.Stat(userConfigDir); err == nil {
			return userConfigDir, nil
		}
	}

	// 3. Check system config directory
	systemConfigDir := "/etc/hookwell"
	if _, err := os.Stat(systemConfigDir); err == nil {
		return systemConfigDir, nil
	}

	// 4. Fallback to a config file in the current directory
	localConfigPath := "./config.yaml"
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath, nil
	}

	return "", fmt.Errorf("no config found (checked: $HOOKWELL_CONFIG_DIR, ~/.config/hookwell, /etc/hookwell, ./config.yaml)")
}

// verifyConfigHash checks the config file against the .checksums manifest in
// its directory. A missing manifest skips verification; a manifest that does
// not cover the file, or a mismatching hash, is a hard failure.
func verifyConfigHash(configPath string) error {
	dir := filepath.Dir(configPath)

	checksums, err := LoadChecksums(dir)
	if err != nil {
		return nil
	}

	basename := filepath.Base(configPath)
	expectedHash, ok := checksums.Hashes[basename]
	if !ok {
		return fmt.Errorf("config file %s has no hash in checksums at %s\n"+
			"Run: hookwell config lock --config-dir %s", basename, dir, dir)
	}

	if err := VerifyFileHash(configPath, expectedHash); err != nil {
		return fmt.Errorf("config verification failed for %s: %w\n"+
			"This indicates tampering or unauthorized modification.\n"+
			"If you edited this file intentionally, run: hookwell config lock --config-dir %s", configPath, err, dir)
	}

	return nil
}

// applyConfigDefaults merges default values into config where not explicitly set.
func applyConfigDefaults(cfg *Config) {
	defaults := Defaults()

	if cfg.Service.Name == "" {
		cfg.Service.Name = defaults.Service.Name
	}
	if cfg.Service.LogLevel == "" {
		cfg.Service.LogLevel = defaults.Service.LogLevel
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaults.Server.Listen
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = defaults.RateLimit.MaxRequests
	}
	if cfg.RateLimit.Window == "" {
		cfg.RateLimit.Window = defaults.RateLimit.Window
	}
	if cfg.Store.Capacity == 0 {
		cfg.Store.Capacity = defaults.Store.Capacity
	}
	if cfg.RunDir == "" {
		cfg.RunDir = defaults.RunDir
	}
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is (not expanded).
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		// Extract variable name from ${VAR}
		varName := envVarPattern.FindStringSubmatch(match)[1]

		// Look up environment variable
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}

		// If not found, leave the placeholder (will fail validation if required)
		return match
	})
}

// validate performs basic validation and resolves derived fields.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}

	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}

	maxBody, err := parseMaxBodySize(cfg.Server.MaxBodySize)
	if err != nil {
		return fmt.Errorf("server.max_body_size: %w", err)
	}
	cfg.Server.MaxBodyBytes = maxBody

	// Check for unresolved env vars in secret-bearing fields (security: no
	// secrets leaked in logs).
	if err := checkUnresolvedEnvVar("webhook.secret", cfg.Webhook.Secret); err != nil {
		return err
	}
	if err := checkUnresolvedEnvVar("admin.token", cfg.Admin.Token); err != nil {
		return err
	}

	if cfg.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("rate_limit.max_requests must be positive")
	}

	window, err := time.ParseDuration(cfg.RateLimit.Window)
	if err != nil {
		return fmt.Errorf("rate_limit.window: invalid duration %q: %w", cfg.RateLimit.Window, err)
	}
	if window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive (got %q)", cfg.RateLimit.Window)
	}
	cfg.RateLimit.WindowDuration = window

	if cfg.Store.Capacity < 0 {
		return fmt.Errorf("store.capacity must not be negative")
	}

	if cfg.RunDir == "" {
		return fmt.Errorf("run_dir is required")
	}

	return nil
}

func checkUnresolvedEnvVar(field, value string) error {
	if !envVarPattern.MatchString(value) {
		return nil
	}
	matches := envVarPattern.FindStringSubmatch(value)
	if len(matches) > 1 {
		return fmt.Errorf("%s: environment variable ${%s} is not set", field, matches[1])
	}
	return fmt.Errorf("%s: unresolved environment variable", field)
}

// parseMaxBodySize parses size strings like "1MB", "2048576", "512KB" to bytes.
// Returns DefaultMaxBodySize if empty.
func parseMaxBodySize(size string) (int64, error) {
	if size == "" {
		return DefaultMaxBodySize, nil
	}

	// Handle unit suffixes (KB, MB, GB)
	upper := strings.ToUpper(size)
	multiplier := int64(1)

	if strings.HasSuffix(upper, "KB") {
		multiplier = 1024
		size = strings.TrimSuffix(upper, "KB")
	} else if strings.HasSuffix(upper, "MB") {
		multiplier = 1024 * 1024
		size = strings.TrimSuffix(upper, "MB")
	} else if strings.HasSuffix(upper, "GB") {
		multiplier = 1024 * 1024 * 1024
		size = strings.TrimSuffix(upper, "GB")
	}

	// Parse numeric value
	value, err := strconv.ParseInt(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	result := value * multiplier
	if result < 0 { // Check for overflow
		return 0, fmt.Errorf("size too large")
	}

	return result, nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		wantErr bool
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid config",
			yaml: `
webhook:
  secret: shh
rate_limit:
  max_requests: 5
  window: 30s
store:
  capacity: 50
`,
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Webhook.Secret != "shh" {
					t.Error("webhook.secret not parsed")
				}
				if cfg.RateLimit.MaxRequests != 5 {
					t.Error("rate_limit.max_requests not parsed")
				}
				if cfg.RateLimit.WindowDuration != 30*time.Second {
					t.Errorf("WindowDuration = %v, want 30s", cfg.RateLimit.WindowDuration)
				}
				if cfg.Store.Capacity != 50 {
					t.Error("store.capacity not parsed")
				}
				// Check defaults applied
				if cfg.Service.Name != "hookwell" {
					t.Error("default service.name not applied")
				}
				if cfg.Server.Listen != "127.0.0.1:8080" {
					t.Error("default server.listen not applied")
				}
				if cfg.Server.MaxBodyBytes != DefaultMaxBodySize {
					t.Errorf("MaxBodyBytes = %d, want default %d", cfg.Server.MaxBodyBytes, DefaultMaxBodySize)
				}
			},
		},
		{
			name:    "empty config gets full defaults",
			yaml:    "",
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Service.LogLevel != "info" {
					t.Error("default log_level not applied")
				}
				if cfg.RateLimit.MaxRequests != 100 {
					t.Error("default max_requests not applied")
				}
				if cfg.RateLimit.WindowDuration != time.Minute {
					t.Error("default window not applied")
				}
				if cfg.Store.Capacity != 1000 {
					t.Error("default capacity not applied")
				}
				if cfg.Webhook.Secret != "" {
					t.Error("secret should default to empty (verification disabled)")
				}
				if cfg.RunDir != "./data" {
					t.Error("default run_dir not applied")
				}
			},
		},
		{
			name: "env var interpolation",
			yaml: `
webhook:
  secret: ${HOOKWELL_TEST_SECRET}
admin:
  token: ${HOOKWELL_TEST_TOKEN}
`,
			env: map[string]string{
				"HOOKWELL_TEST_SECRET": "secret123",
				"HOOKWELL_TEST_TOKEN":  "tok456",
			},
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Webhook.Secret != "secret123" {
					t.Errorf("env var not interpolated in webhook.secret: %s", cfg.Webhook.Secret)
				}
				if cfg.Admin.Token != "tok456" {
					t.Errorf("env var not interpolated in admin.token: %s", cfg.Admin.Token)
				}
			},
		},
		{
			name: "missing env var in secret fails validation",
			yaml: `
webhook:
  secret: ${HOOKWELL_UNSET_VAR}
`,
			env:     map[string]string{}, // HOOKWELL_UNSET_VAR not set
			wantErr: true,
		},
		{
			name: "missing env var in admin token fails validation",
			yaml: `
admin:
  token: ${HOOKWELL_UNSET_TOKEN}
`,
			wantErr: true,
		},
		{
			name: "invalid log level",
			yaml: `
service:
  log_level: invalid
`,
			wantErr: true,
		},
		{
			name: "invalid rate limit window",
			yaml: `
rate_limit:
  max_requests: 10
  window: not-a-duration
`,
			wantErr: true,
		},
		{
			name: "negative window",
			yaml: `
rate_limit:
  window: -5s
`,
			wantErr: true,
		},
		{
			name: "negative max requests",
			yaml: `
rate_limit:
  max_requests: -1
`,
			wantErr: true,
		},
		{
			name: "negative capacity",
			yaml: `
store:
  capacity: -10
`,
			wantErr: true,
		},
		{
			name: "max body size with unit suffix",
			yaml: `
server:
  listen: 0.0.0.0:9000
  max_body_size: 512KB
`,
			wantErr: false,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Server.Listen != "0.0.0.0:9000" {
					t.Error("server.listen not parsed")
				}
				if cfg.Server.MaxBodyBytes != 512*1024 {
					t.Errorf("MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, 512*1024)
				}
			},
		},
		{
			name: "invalid max body size",
			yaml: `
server:
  max_body_size: lots
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set up environment
			for k, v := range tt.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}

			// Create temp config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")
			if err := os.WriteFile(configPath, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("store:\n  capacity: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// Passing the directory resolves config.yaml inside it.
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load(dir) failed: %v", err)
	}
	if cfg.Store.Capacity != 7 {
		t.Errorf("capacity = %d, want 7", cfg.Store.Capacity)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() succeeded for missing file, want error")
	}
}

func TestLoadHashVerification(t *testing.T) {
	t.Run("matching manifest passes", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("store:\n  capacity: 3\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := GenerateChecksums(tmpDir, []string{"config.yaml"}); err != nil {
			t.Fatalf("GenerateChecksums() failed: %v", err)
		}

		if _, err := Load(configPath); err != nil {
			t.Fatalf("Load() failed with valid checksums: %v", err)
		}
	})

	t.Run("tampered file fails", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("store:\n  capacity: 3\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := GenerateChecksums(tmpDir, []string{"config.yaml"}); err != nil {
			t.Fatalf("GenerateChecksums() failed: %v", err)
		}

		// Edit after locking
		if err := os.WriteFile(configPath, []byte("store:\n  capacity: 9999\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(configPath); err == nil {
			t.Fatal("Load() succeeded with tampered config, want error")
		}
	})

	t.Run("no manifest skips verification", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("store:\n  capacity: 3\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := Load(configPath); err != nil {
			t.Fatalf("Load() failed without checksums: %v", err)
		}
	})
}

func TestInterpolateEnv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		env   map[string]string
		want  string
	}{
		{
			name:  "simple replacement",
			input: "secret: ${HOOKWELL_TEST_A}",
			env:   map[string]string{"HOOKWELL_TEST_A": "abc"},
			want:  "secret: abc",
		},
		{
			name:  "multiple vars",
			input: "${HOOKWELL_TEST_U}:${HOOKWELL_TEST_P}@${HOOKWELL_TEST_H}",
			env: map[string]string{
				"HOOKWELL_TEST_U": "admin",
				"HOOKWELL_TEST_P": "secret",
				"HOOKWELL_TEST_H": "localhost",
			},
			want: "admin:secret@localhost",
		},
		{
			name:  "undefined var unchanged",
			input: "key: ${HOOKWELL_TEST_UNDEFINED}",
			env:   map[string]string{},
			want:  "key: ${HOOKWELL_TEST_UNDEFINED}",
		},
		{
			name:  "no vars",
			input: "plain text",
			env:   map[string]string{},
			want:  "plain text",
		},
		{
			name:  "dollar without braces unchanged",
			input: "cost: $5",
			env:   map[string]string{},
			want:  "cost: $5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}

			if got := interpolateEnv(tt.input); got != tt.want {
				t.Errorf("interpolateEnv(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDiscoverConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	os.Setenv("HOOKWELL_CONFIG_DIR", tmpDir)
	defer os.Unsetenv("HOOKWELL_CONFIG_DIR")

	got, err := DiscoverConfigPath()
	if err != nil {
		t.Fatalf("DiscoverConfigPath() failed: %v", err)
	}
	if got != tmpDir {
		t.Errorf("DiscoverConfigPath() = %q, want %q", got, tmpDir)
	}
}

func TestParseMaxBodySize(t *testing.T) {
	tests := []struct {
		name    string
		size    string
		want    int64
		wantErr bool
	}{
		{"empty uses default", "", DefaultMaxBodySize, false},
		{"plain bytes", "2048", 2048, false},
		{"kilobytes", "512KB", 512 * 1024, false},
		{"megabytes", "2MB", 2 * 1024 * 1024, false},
		{"gigabytes", "1GB", 1024 * 1024 * 1024, false},
		{"lowercase suffix", "1mb", 1024 * 1024, false},
		{"not a number", "many", 0, true},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMaxBodySize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMaxBodySize(%q) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseMaxBodySize(%q) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

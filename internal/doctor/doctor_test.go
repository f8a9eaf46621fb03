package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hookwell/hookwell/internal/config"
)

func validConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Service.Name = "hookwell"
	cfg.Server.Listen = "127.0.0.1:8080"
	cfg.Server.MaxBodyBytes = config.DefaultMaxBodySize
	cfg.Webhook.Secret = "0123456789abcdef0123456789abcdef"
	cfg.RateLimit.MaxRequests = 100
	cfg.RateLimit.Window = "1m"
	cfg.RateLimit.WindowDuration = time.Minute
	cfg.Store.Capacity = 1000
	cfg.RunDir = "./data"
	return cfg
}

func assertHasError(t *testing.T, r *Result, category, substring string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Category == category && strings.Contains(e.Message, substring) {
			return
		}
	}
	t.Errorf("expected error in category %q containing %q, got %+v", category, substring, r.Errors)
}

func assertHasWarning(t *testing.T, r *Result, category, substring string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Category == category && strings.Contains(w.Message, substring) {
			return
		}
	}
	t.Errorf("expected warning in category %q containing %q, got %+v", category, substring, r.Warnings)
}

func TestValidateValidConfig(t *testing.T) {
	t.Parallel()

	r := New(validConfig()).Validate()

	if !r.Valid {
		t.Fatalf("expected valid config, got errors: %+v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", r.Warnings)
	}
}

func TestValidateInvalidListenAddress(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Listen = "not an address"

	r := New(cfg).Validate()

	if r.Valid {
		t.Fatal("expected invalid result")
	}
	assertHasError(t, r, "server", "invalid listen address")
}

func TestValidatePublicBindWithoutSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Listen = "0.0.0.0:8080"
	cfg.Webhook.Secret = ""

	r := New(cfg).Validate()

	if !r.Valid {
		t.Fatalf("public bind should be a warning, not an error: %+v", r.Errors)
	}
	assertHasWarning(t, r, "security", "all interfaces")
}

func TestValidateWarnMissingSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Webhook.Secret = ""

	r := New(cfg).Validate()

	if !r.Valid {
		t.Fatalf("missing secret should not invalidate config: %+v", r.Errors)
	}
	assertHasWarning(t, r, "security", "stored unverified")
}

func TestValidateWarnShortSecret(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Webhook.Secret = "short"

	r := New(cfg).Validate()

	assertHasWarning(t, r, "security", "at least 16")
}

func TestValidateWarnAdminTokenReuse(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Admin.Token = cfg.Webhook.Secret

	r := New(cfg).Validate()

	assertHasWarning(t, r, "security", "distinct values")
}

func TestValidateWarnShortAdminToken(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Admin.Token = "tiny"

	r := New(cfg).Validate()

	assertHasWarning(t, r, "security", "admin token is only")
}

func TestValidateEmptyAdminTokenNotFlagged(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Admin.Token = ""

	r := New(cfg).Validate()

	for _, w := range r.Warnings {
		if w.Field == "admin.token" {
			t.Errorf("empty admin token should not be flagged, got %+v", w)
		}
	}
}

func TestValidateWarnShortWindow(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RateLimit.Window = "100ms"
	cfg.RateLimit.WindowDuration = 100 * time.Millisecond

	r := New(cfg).Validate()

	assertHasWarning(t, r, "rate_limit", "shorter than one second")
}

func TestValidateWarnZeroCapacity(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Store.Capacity = 0

	r := New(cfg).Validate()

	assertHasWarning(t, r, "store", "evicted immediately")
}

func TestValidateRunDirIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notadir")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.RunDir = path

	r := New(cfg).Validate()

	if r.Valid {
		t.Fatal("expected invalid result")
	}
	assertHasError(t, r, "run_dir", "not a directory")
}

func TestValidateMissingRunDirAccepted(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.RunDir = filepath.Join(t.TempDir(), "does", "not", "exist")

	r := New(cfg).Validate()

	if !r.Valid {
		t.Fatalf("missing run dir should be accepted, got %+v", r.Errors)
	}
}

func TestValidateWarnUnlockedConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("service:\n  name: hookwell\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Path = path

	r := New(cfg).Validate()

	if !r.Valid {
		t.Fatalf("unlocked config should be a warning, not an error: %+v", r.Errors)
	}
	assertHasWarning(t, r, "integrity", "config lock")
}

func TestValidateLockedConfigFileNotFlagged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("service:\n  name: hookwell\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := config.GenerateChecksums(dir, []string{"config.yaml"}); err != nil {
		t.Fatalf("GenerateChecksums() failed: %v", err)
	}

	cfg := validConfig()
	cfg.Path = path

	r := New(cfg).Validate()

	if !r.Valid {
		t.Fatalf("locked config should be valid: %+v", r.Errors)
	}
	for _, w := range r.Warnings {
		if w.Category == "integrity" {
			t.Errorf("locked config should not be flagged, got %+v", w)
		}
	}
}

func TestValidateModifiedLockedConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("service:\n  name: hookwell\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := config.GenerateChecksums(dir, []string{"config.yaml"}); err != nil {
		t.Fatalf("GenerateChecksums() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("service:\n  name: tampered\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := validConfig()
	cfg.Path = path

	r := New(cfg).Validate()

	if r.Valid {
		t.Fatal("expected invalid result")
	}
	assertHasError(t, r, "integrity", "hash mismatch")
}

func TestFormatHumanValid(t *testing.T) {
	t.Parallel()

	out := FormatHuman(&Result{Valid: true})

	if out != "Configuration valid.\n" {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestFormatHumanValidWithWarnings(t *testing.T) {
	t.Parallel()

	r := &Result{
		Valid: true,
		Warnings: []Issue{
			{Category: "security", Field: "webhook.secret", Message: "no webhook secret configured"},
		},
	}

	out := FormatHuman(r)

	if !strings.Contains(out, "Configuration valid (1 warning(s))") {
		t.Errorf("missing warning count: %q", out)
	}
	if !strings.Contains(out, "WARN  [security] webhook.secret: no webhook secret configured") {
		t.Errorf("missing warning line: %q", out)
	}
}

func TestFormatHumanErrors(t *testing.T) {
	t.Parallel()

	r := &Result{
		Valid: false,
		Errors: []Issue{
			{Category: "server", Field: "server.listen", Message: "invalid listen address"},
		},
		Warnings: []Issue{
			{Category: "store", Message: "capacity is 0"},
		},
	}

	out := FormatHuman(r)

	if !strings.Contains(out, "Configuration invalid (1 error(s), 1 warning(s))") {
		t.Errorf("missing summary: %q", out)
	}
	if !strings.Contains(out, "ERROR [server] server.listen: invalid listen address") {
		t.Errorf("missing error line: %q", out)
	}
	if !strings.Contains(out, "WARN  [store] capacity is 0") {
		t.Errorf("missing warning line: %q", out)
	}
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	r := &Result{
		Valid:  false,
		Errors: []Issue{{Category: "server", Field: "server.listen", Message: "bad"}},
	}

	out, err := FormatJSON(r)
	if err != nil {
		t.Fatal(err)
	}

	var decoded Result
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Valid {
		t.Error("expected valid=false")
	}
	if len(decoded.Errors) != 1 || decoded.Errors[0].Field != "server.listen" {
		t.Errorf("unexpected errors: %+v", decoded.Errors)
	}
}

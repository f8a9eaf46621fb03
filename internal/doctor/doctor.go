// Package doctor validates hookwell configuration beyond load-time checks.
package doctor

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hookwell/hookwell/internal/config"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor inspects a loaded configuration for operational problems that
// load-time validation accepts.
type Doctor struct {
	cfg *config.Config
}

// New creates a Doctor from a loaded config.
func New(cfg *config.Config) *Doctor {
	return &Doctor{cfg: cfg}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateListen(r)
	d.validateRunDir(r)
	d.checkIntegrity(r)
	d.warnSignatureSetup(r)
	d.warnAdminSetup(r)
	d.warnRateLimit(r)
	d.warnStoreCapacity(r)
	d.warnBodyLimit(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

// validateListen checks that the listen address is usable.
func (d *Doctor) validateListen(r *Result) {
	host, port, err := net.SplitHostPort(d.cfg.Server.Listen)
	if err != nil {
		d.addError(r, "server", "server.listen",
			fmt.Sprintf("invalid listen address %q: %v", d.cfg.Server.Listen, err))
		return
	}
	if port == "" {
		d.addError(r, "server", "server.listen",
			fmt.Sprintf("listen address %q has no port", d.cfg.Server.Listen))
		return
	}
	if isPublicBind(host) && d.cfg.Webhook.Secret == "" {
		d.addWarning(r, "security", "server.listen",
			fmt.Sprintf("listening on all interfaces (%q) without a webhook secret; deliveries cannot be verified", d.cfg.Server.Listen))
	}
}

func isPublicBind(host string) bool {
	return host == "" || host == "0.0.0.0" || host == "::"
}

// validateRunDir checks that the run directory can hold the PID lock.
// A missing directory is fine; it is created on start.
func (d *Doctor) validateRunDir(r *Result) {
	info, err := os.Stat(d.cfg.RunDir)
	if err != nil {
		return
	}
	if !info.IsDir() {
		d.addError(r, "run_dir", "run_dir",
			fmt.Sprintf("%s exists but is not a directory", d.cfg.RunDir))
	}
}

// checkIntegrity reports the lock state of the file the settings were
// loaded from. Configs not loaded from a file are skipped.
func (d *Doctor) checkIntegrity(r *Result) {
	if d.cfg.Path == "" {
		return
	}
	res, err := config.VerifyIntegrity(d.cfg.Path)
	if err != nil {
		d.addWarning(r, "integrity", "", fmt.Sprintf("integrity check skipped: %v", err))
		return
	}
	for _, msg := range res.Errors {
		d.addError(r, "integrity", "", msg)
	}
	for _, msg := range res.Warnings {
		d.addWarning(r, "integrity", "", msg)
	}
}

// warnSignatureSetup flags missing or weak webhook secrets.
func (d *Doctor) warnSignatureSetup(r *Result) {
	secret := d.cfg.Webhook.Secret
	if secret == "" {
		d.addWarning(r, "security", "webhook.secret",
			"no webhook secret configured; every delivery will be stored unverified")
		return
	}
	if len(secret) < 16 {
		d.addWarning(r, "security", "webhook.secret",
			fmt.Sprintf("webhook secret is only %d characters; use at least 16", len(secret)))
	}
}

// warnAdminSetup flags weak or reused admin tokens. An empty token simply
// disables the admin endpoint and is not flagged.
func (d *Doctor) warnAdminSetup(r *Result) {
	token := d.cfg.Admin.Token
	if token == "" {
		return
	}
	if len(token) < 16 {
		d.addWarning(r, "security", "admin.token",
			fmt.Sprintf("admin token is only %d characters; use at least 16", len(token)))
	}
	if token == d.cfg.Webhook.Secret {
		d.addWarning(r, "security", "admin.token",
			"admin token matches the webhook secret; use distinct values")
	}
}

// warnRateLimit flags limiter settings that give little protection.
func (d *Doctor) warnRateLimit(r *Result) {
	if d.cfg.RateLimit.WindowDuration > 0 && d.cfg.RateLimit.WindowDuration < time.Second {
		d.addWarning(r, "rate_limit", "rate_limit.window",
			fmt.Sprintf("window %q is shorter than one second; clients are effectively unlimited", d.cfg.RateLimit.Window))
	}
	if d.cfg.RateLimit.MaxRequests > 100000 {
		d.addWarning(r, "rate_limit", "rate_limit.max_requests",
			fmt.Sprintf("budget of %d requests per window provides little protection", d.cfg.RateLimit.MaxRequests))
	}
}

// warnStoreCapacity flags degenerate retention settings.
func (d *Doctor) warnStoreCapacity(r *Result) {
	if d.cfg.Store.Capacity == 0 {
		d.addWarning(r, "store", "store.capacity",
			"capacity is 0; every accepted delivery is evicted immediately")
	}
	if d.cfg.Store.Capacity > 1000000 {
		d.addWarning(r, "store", "store.capacity",
			fmt.Sprintf("capacity %d is very large; events are held in memory", d.cfg.Store.Capacity))
	}
}

// warnBodyLimit flags oversized request body limits.
func (d *Doctor) warnBodyLimit(r *Result) {
	const sixteenMB = 16 * 1024 * 1024
	if d.cfg.Server.MaxBodyBytes > sixteenMB {
		d.addWarning(r, "server", "server.max_body_size",
			fmt.Sprintf("max body size of %d bytes is very large; payloads are buffered in memory", d.cfg.Server.MaxBodyBytes))
	}
}

// FormatHuman returns a human-readable validation report.
func FormatHuman(r *Result) string {
	var b strings.Builder

	if r.Valid && len(r.Warnings) == 0 {
		b.WriteString("Configuration valid.\n")
		return b.String()
	}

	if r.Valid && len(r.Warnings) > 0 {
		b.WriteString("Configuration valid")
		fmt.Fprintf(&b, " (%d warning(s))\n", len(r.Warnings))
	}

	if !r.Valid {
		fmt.Fprintf(&b, "Configuration invalid (%d error(s), %d warning(s))\n", len(r.Errors), len(r.Warnings))
	}

	for _, e := range r.Errors {
		if e.Field != "" {
			fmt.Fprintf(&b, "  ERROR [%s] %s: %s\n", e.Category, e.Field, e.Message)
		} else {
			fmt.Fprintf(&b, "  ERROR [%s] %s\n", e.Category, e.Message)
		}
	}
	for _, w := range r.Warnings {
		if w.Field != "" {
			fmt.Fprintf(&b, "  WARN  [%s] %s: %s\n", w.Category, w.Field, w.Message)
		} else {
			fmt.Fprintf(&b, "  WARN  [%s] %s\n", w.Category, w.Message)
		}
	}

	return b.String()
}

// FormatJSON returns the result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

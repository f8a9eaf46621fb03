package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/hookwell/hookwell/internal/api"
	"github.com/hookwell/hookwell/internal/config"
	"github.com/hookwell/hookwell/internal/doctor"
	"github.com/hookwell/hookwell/internal/events"
	"github.com/hookwell/hookwell/internal/intake"
	"github.com/hookwell/hookwell/internal/lock"
	"github.com/hookwell/hookwell/internal/log"
	"github.com/hookwell/hookwell/internal/ratelimit"
	"github.com/hookwell/hookwell/internal/signature"
	"github.com/hookwell/hookwell/internal/store"
	"github.com/hookwell/hookwell/internal/tui/watch"
)

// Build metadata. Overridden at link time via -ldflags, with module build
// info as a fallback.
var (
	version   = "0.1.0"
	gitCommit = ""
	buildDate = ""
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	command := cliArgs[0]
	args := cliArgs[1:]

	switch command {
	case "system":
		return runSystemNoun(args)
	case "config":
		return runConfigNoun(args)

	// Shortcuts for the common actions.
	case "start":
		return runStart(args)
	case "status":
		return runSystemStatus(args)
	case "watch":
		return runWatch(args)
	case "check":
		return runConfigCheck(args)

	case "version", "--version", "-v":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}
}

func isHelpToken(arg string) bool {
	return arg == "help" || arg == "--help" || arg == "-h"
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if isHelpToken(arg) {
			return true
		}
	}
	return false
}

func runSystemNoun(args []string) int {
	if len(args) < 1 {
		printSystemUsage()
		return 1
	}

	action := args[0]
	actionArgs := args[1:]

	if isHelpToken(action) {
		printSystemUsage()
		return 0
	}

	switch action {
	case "start":
		if hasHelpFlag(actionArgs) {
			printSystemStartHelp()
			return 0
		}
		return runStart(actionArgs)
	case "status":
		if hasHelpFlag(actionArgs) {
			printSystemStatusHelp()
			return 0
		}
		return runSystemStatus(actionArgs)
	case "watch":
		if hasHelpFlag(actionArgs) {
			printSystemWatchHelp()
			return 0
		}
		return runWatch(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown system action: %s\n\n", action)
		printSystemUsage()
		return 1
	}
}

func runConfigNoun(args []string) int {
	if len(args) < 1 {
		printConfigUsage()
		return 1
	}

	action := args[0]
	actionArgs := args[1:]

	if isHelpToken(action) {
		printConfigUsage()
		return 0
	}

	switch action {
	case "check":
		if hasHelpFlag(actionArgs) {
			printConfigCheckHelp()
			return 0
		}
		return runConfigCheck(actionArgs)
	case "show":
		if hasHelpFlag(actionArgs) {
			printConfigShowHelp()
			return 0
		}
		return runConfigShow(actionArgs)
	case "get":
		if hasHelpFlag(actionArgs) {
			printConfigGetHelp()
			return 0
		}
		return runConfigGet(actionArgs)
	case "set":
		if hasHelpFlag(actionArgs) {
			printConfigSetHelp()
			return 0
		}
		return runConfigSet(actionArgs)
	case "lock", "hash-update":
		if hasHelpFlag(actionArgs) {
			printConfigLockHelp()
			return 0
		}
		return runConfigLock(actionArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config action: %s\n\n", action)
		printConfigUsage()
		return 1
	}
}

// runStart boots the intake service and blocks until a signal or a server
// failure.
func runStart(args []string) int {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	fs.Parse(args)

	resolvedPath := *configPath
	if resolvedPath == "" {
		discovered, err := config.DiscoverConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		resolvedPath = discovered
		fmt.Fprintf(os.Stderr, "Using discovered config: %s\n", resolvedPath)
	}

	cfg, err := config.Load(resolvedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log.Setup(cfg.Service.LogLevel)
	logger := log.Get()

	logger.Info("hookwell starting", "version", version, "config", cfg.Path)

	if err := os.MkdirAll(cfg.RunDir, 0o755); err != nil {
		logger.Error("failed to create run directory", "path", cfg.RunDir, "error", err)
		return 1
	}

	pidLock, err := lock.Acquire(getPIDLockPath(cfg))
	if err != nil {
		logger.Error("failed to acquire PID lock", "error", err)
		return 1
	}
	defer pidLock.Release()
	logger.Info("acquired PID lock", "path", pidLock.Path())

	if cfg.Webhook.Secret == "" {
		logger.Warn("no webhook secret configured; deliveries will be stored unverified")
	}

	limiter := ratelimit.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowDuration)
	verifier := signature.NewVerifier(cfg.Webhook.Secret)
	eventStore := store.New(cfg.Store.Capacity)
	hub := events.NewHub(256)
	guard := intake.New(limiter, verifier, eventStore, hub, log.WithComponent("intake"))

	server := api.New(api.Config{
		Listen:       cfg.Server.Listen,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		AdminToken:   cfg.Admin.Token,
	}, guard, eventStore, hub, log.WithComponent("api"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && err != context.Canceled {
			errCh <- err
		}
	}()

	logger.Info("API server enabled",
		"listen", cfg.Server.Listen,
		"capacity", cfg.Store.Capacity,
		"rate_limit_max", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window)
	if cfg.Admin.Token != "" {
		logger.Info("admin endpoint enabled")
	}
	logger.Info("hookwell running (press Ctrl+C to stop)")

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
		cancel()
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		cancel()
		return 1
	}

	logger.Info("hookwell stopped")
	return 0
}

func getPIDLockPath(cfg *config.Config) string {
	return filepath.Join(cfg.RunDir, "hookwell.pid")
}

// runWatch attaches the live dashboard to a running service.
func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	apiURL := fs.String("api-url", "http://localhost:8080", "Base URL of the hookwell API")
	fs.Parse(args)

	m := watch.New(*apiURL)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type statusCheck struct {
	Name      string `json:"name"`
	OK        bool   `json:"ok"`
	Detail    string `json:"detail,omitempty"`
	ActivePID int    `json:"active_pid,omitempty"`
}

type statusReport struct {
	Healthy bool          `json:"healthy"`
	Checks  []statusCheck `json:"checks"`
}

// runSystemStatus reports offline health: config, listen address, run
// directory, and whether another instance holds the PID lock.
func runSystemStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	report := buildStatusReport(*configPath, *configDir)

	if *jsonOut {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render status: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
	} else {
		for _, c := range report.Checks {
			state := "OK"
			if !c.OK {
				state = "FAIL"
			}
			if c.Detail != "" {
				fmt.Printf("  %s: %s (%s)\n", c.Name, state, c.Detail)
			} else {
				fmt.Printf("  %s: %s\n", c.Name, state)
			}
		}
		if report.Healthy {
			fmt.Println("Status: HEALTHY")
		} else {
			fmt.Println("Status: UNHEALTHY")
		}
	}

	if !report.Healthy {
		return 1
	}
	return 0
}

func buildStatusReport(configPath, configDir string) statusReport {
	var report statusReport

	resolved, _, err := resolveConfigTarget(configPath, configDir)
	var cfg *config.Config
	if err == nil {
		cfg, err = config.Load(resolved)
	}
	if err != nil {
		report.Checks = append(report.Checks,
			statusCheck{Name: "config_load", OK: false, Detail: err.Error()},
			statusCheck{Name: "listen_addr", OK: false, Detail: "config unavailable"},
			statusCheck{Name: "run_dir", OK: false, Detail: "config unavailable"},
			statusCheck{Name: "pid_lock", OK: false, Detail: "config unavailable"},
		)
		return report
	}

	report.Checks = append(report.Checks,
		statusCheck{Name: "config_load", OK: true, Detail: cfg.Path},
		checkListenAddr(cfg),
		checkRunDir(cfg),
		checkPIDLock(cfg),
	)

	report.Healthy = true
	for _, c := range report.Checks {
		if !c.OK {
			report.Healthy = false
			break
		}
	}
	return report
}

func checkListenAddr(cfg *config.Config) statusCheck {
	if _, _, err := net.SplitHostPort(cfg.Server.Listen); err != nil {
		return statusCheck{Name: "listen_addr", OK: false, Detail: err.Error()}
	}
	return statusCheck{Name: "listen_addr", OK: true, Detail: cfg.Server.Listen}
}

func checkRunDir(cfg *config.Config) statusCheck {
	info, err := os.Stat(cfg.RunDir)
	if err != nil {
		return statusCheck{Name: "run_dir", OK: true, Detail: "created on start"}
	}
	if !info.IsDir() {
		return statusCheck{Name: "run_dir", OK: false, Detail: "exists but is not a directory"}
	}
	return statusCheck{Name: "run_dir", OK: true, Detail: cfg.RunDir}
}

func checkPIDLock(cfg *config.Config) statusCheck {
	st, err := lock.Inspect(getPIDLockPath(cfg))
	if err != nil {
		return statusCheck{Name: "pid_lock", OK: true, Detail: fmt.Sprintf("lock unreadable: %v", err)}
	}

	switch st.State {
	case lock.StateHeld:
		return statusCheck{
			Name:      "pid_lock",
			OK:        false,
			Detail:    fmt.Sprintf("service already running (pid %d)", st.PID),
			ActivePID: st.PID,
		}
	case lock.StateStale:
		if st.PID > 0 {
			return statusCheck{Name: "pid_lock", OK: true, Detail: fmt.Sprintf("stale lock from pid %d", st.PID)}
		}
		return statusCheck{Name: "pid_lock", OK: true, Detail: "stale lock (unreadable pid)"}
	default:
		return statusCheck{Name: "pid_lock", OK: true, Detail: "no active lock"}
	}
}

// runConfigCheck validates configuration beyond load-time checks.
func runConfigCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	strict := fs.Bool("strict", false, "Treat warnings as errors")
	format := fs.String("format", "human", "Output format: human or json")
	jsonOut := fs.Bool("json", false, "Shorthand for --format json")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *jsonOut {
		*format = "json"
	}

	cfg, err := loadConfigForTool(*configPath, *configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	result := doctor.New(cfg).Validate()

	switch *format {
	case "json":
		out, err := doctor.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render result: %v\n", err)
			return 1
		}
		fmt.Println(out)
	case "human":
		fmt.Print(doctor.FormatHuman(result))
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s (use human or json)\n", *format)
		return 1
	}

	if !result.Valid {
		return 1
	}
	if *strict && len(result.Warnings) > 0 {
		return 2
	}
	return 0
}

// runConfigShow prints the resolved configuration with secrets redacted.
func runConfigShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	cfg, err := loadConfigForTool(*configPath, *configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	redacted := redactConfig(cfg)

	if *jsonOut {
		data, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render config: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	data, err := yaml.Marshal(redacted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render config: %v\n", err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

// redactConfig returns a copy safe for display.
func redactConfig(cfg *config.Config) *config.Config {
	copied := *cfg
	if copied.Webhook.Secret != "" {
		copied.Webhook.Secret = "[redacted]"
	}
	if copied.Admin.Token != "" {
		copied.Admin.Token = "[redacted]"
	}
	return &copied
}

// runConfigGet reads one value by dot path. Output is not redacted; this is
// the deliberate way to read a secret back out of the config.
func runConfigGet(args []string) int {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hookwell config get [flags] <path>")
		return 1
	}

	cfg, err := loadConfigForTool(*configPath, *configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	value, err := cfg.GetPath(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *jsonOut {
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render value: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	data, err := yaml.Marshal(value)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render value: %v\n", err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

// runConfigSet changes one value by dot path. The key=value pair may appear
// anywhere among the flags.
func runConfigSet(args []string) int {
	var kvPair string
	flagArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if kvPair == "" && !strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			kvPair = arg
			continue
		}
		flagArgs = append(flagArgs, arg)
	}

	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	dryRun := fs.Bool("dry-run", false, "Validate the change without writing")
	apply := fs.Bool("apply", false, "Write the change to the config file")
	if err := fs.Parse(flagArgs); err != nil {
		return 1
	}

	if kvPair == "" && fs.NArg() > 0 {
		kvPair = fs.Arg(0)
	}
	if kvPair == "" || !strings.Contains(kvPair, "=") {
		fmt.Fprintln(os.Stderr, "Usage: hookwell config set [flags] <path>=<value>")
		return 1
	}

	if *dryRun == *apply {
		fmt.Fprintln(os.Stderr, "Specify exactly one of --dry-run or --apply")
		return 1
	}

	parts := strings.SplitN(kvPair, "=", 2)
	key, value := parts[0], parts[1]

	cfg, err := loadConfigForTool(*configPath, *configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *dryRun {
		if err := cfg.SetPath(key, value, false); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			return 1
		}
		fmt.Printf("Dry-run: would set %q to %q\n", key, value)
		fmt.Println("Status: Configuration check PASSED.")
		return 0
	}

	if err := cfg.SetPath(key, value, true); err != nil {
		fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
		return 1
	}
	fmt.Printf("Successfully set %q to %q\n", key, value)
	return 0
}

// runConfigLock writes the .checksums manifest next to the config file so
// Load can detect tampering.
func runConfigLock(args []string) int {
	fs := flag.NewFlagSet("lock", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config file or directory")
	configDir := fs.String("config-dir", "", "Path to config directory")
	dryRun := fs.Bool("dry-run", false, "Compute hashes without writing .checksums")
	verbose := fs.Bool("verbose", false, "Print per-file hash detail")
	verboseShort := fs.Bool("v", false, "Print per-file hash detail (shorthand)")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	showDetail := *verbose || *verboseShort

	resolved, dir, err := resolveConfigTarget(*configPath, *configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	files := []string{filepath.Base(resolved)}
	report, err := config.GenerateChecksumsWithReport(dir, files, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate checksums: %v\n", err)
		return 1
	}

	if showDetail {
		fmt.Printf("Processing directory: %s\n", report.ConfigDir)
		for _, f := range report.Files {
			fmt.Printf("  HASH %s: %s\n", f.Filename, f.Hash)
		}
		if *dryRun {
			fmt.Printf("  DRY-RUN .checksums: %s\n", report.ChecksumPath)
		} else {
			fmt.Printf("  WROTE .checksums: %s\n", report.ChecksumPath)
		}
	}

	if *dryRun {
		fmt.Println("Dry run completed")
		return 0
	}
	fmt.Println("Successfully locked configuration")
	return 0
}

// resolveConfigTarget resolves the --config/--config-dir pair to a config
// file path and its directory. Only one of the two may be set; with
// neither, discovery runs.
func resolveConfigTarget(configPath, configDir string) (string, string, error) {
	if configPath != "" && configDir != "" {
		return "", "", fmt.Errorf("use only one of --config or --config-dir")
	}

	target := configPath
	if configDir != "" {
		target = configDir
	}
	if target == "" {
		discovered, err := config.DiscoverConfigPath()
		if err != nil {
			return "", "", err
		}
		target = discovered
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve config path %q: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", "", fmt.Errorf("config path not found: %s", abs)
	}

	if info.IsDir() {
		file := filepath.Join(abs, "config.yaml")
		if _, err := os.Stat(file); err != nil {
			return "", "", fmt.Errorf("directory provided but config.yaml not found: %s", file)
		}
		return file, abs, nil
	}

	return abs, filepath.Dir(abs), nil
}

func loadConfigForTool(configPath, configDir string) (*config.Config, error) {
	resolved, _, err := resolveConfigTarget(configPath, configDir)
	if err != nil {
		return nil, err
	}
	return config.Load(resolved)
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	info := currentVersionInfo()

	if *jsonOut {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render version info: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("hookwell %s\n", info.Version)
	if info.Commit != "" {
		fmt.Printf("  commit: %s\n", info.Commit)
	}
	if info.BuildTime != "" {
		fmt.Printf("  built_at: %s\n", info.BuildTime)
	}
	return 0
}

func currentVersionInfo() versionInfo {
	info := versionInfo{Version: version}

	commit := gitCommit
	if commit == "" {
		commit = readBuildSetting("vcs.revision")
	}
	info.Commit = shortenCommit(commit)

	builtAt := buildDate
	if builtAt == "" {
		builtAt = readBuildSetting("vcs.time")
	}
	info.BuildTime = normalizeBuildTimeUTC(builtAt)

	return info
}

func shortenCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

// normalizeBuildTimeUTC renders build timestamps in UTC RFC3339. Values
// that do not parse pass through untouched.
func normalizeBuildTimeUTC(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(time.RFC3339)
}

func readBuildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func printUsage() {
	fmt.Println(`hookwell - webhook intake service

Usage:
  hookwell <noun> <action> [flags]

Core Resources (Nouns):
  system      Service lifecycle and health
  config      Configuration management

System Actions:
  hookwell system start       Start the webhook intake service
  hookwell system status      Report offline service health
  hookwell system watch       Live terminal dashboard

Config Actions:
  hookwell config check       Validate configuration
  hookwell config show        Print the resolved configuration (redacted)
  hookwell config get         Read a configuration value by dot path
  hookwell config set         Change a configuration value by dot path
  hookwell config lock        Write the .checksums tamper manifest

Shortcuts:
  hookwell start              Alias for 'system start'
  hookwell status             Alias for 'system status'
  hookwell watch              Alias for 'system watch'
  hookwell check              Alias for 'config check'

Other Commands:
  hookwell version            Show version information
  hookwell help               Show this help

Run 'hookwell <noun> help' for details on a noun's actions.`)
}

func printSystemUsage() {
	fmt.Println(`Usage: hookwell system <action> [flags]

Actions:
  start       Start the webhook intake service
  status      Report offline service health
  watch       Live terminal dashboard

Run 'hookwell system <action> --help' for action flags.`)
}

func printConfigUsage() {
	fmt.Println(`Usage: hookwell config <action> [flags]

Actions:
  check       Validate configuration and report warnings
  show        Print the resolved configuration (secrets redacted)
  get         Read a configuration value by dot path
  set         Change a configuration value by dot path
  lock        Write the .checksums tamper manifest

Run 'hookwell config <action> --help' for action flags.`)
}

func printSystemStartHelp() {
	fmt.Println(`Usage: hookwell system start [flags]

Start the webhook intake service and block until SIGINT or SIGTERM.

Flags:
  --config string   Path to config file or directory (default: discovered)`)
}

func printSystemStatusHelp() {
	fmt.Println(`Usage: hookwell system status [flags]

Report offline health: config load, listen address, run directory, and
whether another instance holds the PID lock. Exits 1 when unhealthy.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --json                Output as JSON`)
}

func printSystemWatchHelp() {
	fmt.Println(`Usage: hookwell system watch [flags]

Attach a live terminal dashboard to a running service. Streams deliveries
over /events and polls /healthz.

Flags:
  --api-url string   Base URL of the hookwell API (default "http://localhost:8080")`)
}

func printConfigCheckHelp() {
	fmt.Println(`Usage: hookwell config check [flags]

Validate configuration beyond load-time checks. Exits 0 when valid, 1 on
errors, 2 when --strict and warnings exist.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --strict              Treat warnings as errors
  --format string       Output format: human or json (default "human")
  --json                Shorthand for --format json`)
}

func printConfigShowHelp() {
	fmt.Println(`Usage: hookwell config show [flags]

Print the resolved configuration with defaults applied. The webhook secret
and admin token are redacted.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --json                Output as JSON`)
}

func printConfigGetHelp() {
	fmt.Println(`Usage: hookwell config get [flags] <path>

Read one configuration value by dot path, e.g. 'server.listen' or
'rate_limit.max_requests'. Output is not redacted.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --json                Output as JSON`)
}

func printConfigSetHelp() {
	fmt.Println(`Usage: hookwell config set [flags] <path>=<value>

Change one configuration value by dot path. The candidate file is validated
before anything is written; --apply keeps a .bak of the original and
refreshes the .checksums manifest when one exists.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --dry-run             Validate the change without writing
  --apply               Write the change to the config file`)
}

func printConfigLockHelp() {
	fmt.Println(`Usage: hookwell config lock [flags]

Hash the config file with BLAKE3 and write the .checksums manifest next to
it. Load refuses a config whose hash no longer matches.

Flags:
  --config string       Path to config file or directory
  --config-dir string   Path to config directory
  --dry-run             Compute hashes without writing .checksums
  --verbose, -v         Print per-file hash detail`)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/ehunter/skycast/internal/config"
	"github.com/ehunter/skycast/internal/constants"
)

// verifyCheck is one line of the setup report.
type verifyCheck struct {
	Name     string `json:"name"`
	Status   string `json:"status"` // pass | warn | fail | skip
	Detail   string `json:"detail,omitempty"`
	Critical bool   `json:"critical,omitempty"`
}

type verifyReport struct {
	App       string        `json:"app"`
	Version   string        `json:"version"`
	Timestamp time.Time     `json:"timestamp"`
	Passed    int           `json:"passed"`
	Warnings  int           `json:"warnings"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Checks    []verifyCheck `json:"checks"`
}

type VerifyCmd struct {
	Server         string        `help:"Probe only this endpoint (openweather|team|maps)." enum:",openweather,team,maps" default:""`
	SkipPackages   bool          `help:"Skip the integration key checks."`
	SkipServers    bool          `help:"Skip the remote endpoint checks."`
	FixIssues      bool          `help:"Create the config file and data directory when missing."`
	InstallMissing bool          `help:"Initialize storage and apply pending migrations."`
	Timeout        time.Duration `help:"Per-probe timeout." default:"10s"`
	RetryCount     int           `help:"Extra attempts for failing endpoint probes." default:"1"`
	ExportReport   string        `help:"Write a JSON report to this path." type:"path"`
	ConfigPath     string        `help:"Verify this config file instead of the active one." type:"path"`
}

func (c *VerifyCmd) Validate() error {
	if c.RetryCount < 0 {
		return fmt.Errorf("retry count cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

func (c *VerifyCmd) Run(ctx *Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Verifying %s setup...\n\n", constants.AppName)

	v := &verifier{sigCtx: sigCtx}

	// Check 1: config file parses
	v.run("config file", true, func() (string, string) {
		return c.checkConfig(ctx)
	})

	// Check 2: data directory
	v.run("data directory", true, func() (string, string) {
		return c.checkDataDir(ctx)
	})

	// Check 3: database + schema
	v.run("database", true, func() (string, string) {
		return c.checkDatabase(ctx)
	})

	// Check 4: integration keys
	v.run("integration keys", false, func() (string, string) {
		if c.SkipPackages {
			return "skip", "skipped by flag"
		}
		return c.checkKeys(ctx)
	})

	// Check 5: remote endpoints
	for _, ep := range []string{"openweather", "team", "maps"} {
		ep := ep
		v.run(ep+" endpoint", true, func() (string, string) {
			if c.SkipServers {
				return "skip", "skipped by flag"
			}
			if c.Server != "" && c.Server != ep {
				return "skip", "not selected"
			}
			return c.checkEndpoint(sigCtx, ctx, ep)
		})
	}

	// Check 6: no second instance fighting over the database
	v.run("running instances", false, func() (string, string) {
		return checkDuplicateInstance()
	})

	fmt.Printf("\nSummary: %d/%d checks passed", v.passed, len(v.checks)-v.skipped)
	if v.warnings > 0 {
		fmt.Printf(", %d warning(s)", v.warnings)
	}
	fmt.Println()

	if c.ExportReport != "" {
		if err := v.export(c.ExportReport); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", c.ExportReport)
	}

	if v.failed > 0 {
		return fmt.Errorf("%d check(s) failed", v.failed)
	}
	return nil
}

// verifier accumulates results and prints them as they land.
type verifier struct {
	sigCtx   context.Context
	checks   []verifyCheck
	passed   int
	warnings int
	failed   int
	skipped  int
}

func (v *verifier) run(name string, critical bool, fn func() (status, detail string)) {
	select {
	case <-v.sigCtx.Done():
		fmt.Println("\nInterrupted.")
		os.Exit(constants.ExitInterrupt)
	default:
	}

	status, detail := fn()
	v.checks = append(v.checks, verifyCheck{
		Name:     name,
		Status:   status,
		Detail:   detail,
		Critical: critical && status == "fail",
	})

	switch status {
	case "pass":
		v.passed++
		fmt.Printf("✓ %s: %s\n", name, detail)
	case "warn":
		v.warnings++
		fmt.Printf("⚠ %s: %s\n", name, detail)
	case "fail":
		v.failed++
		fmt.Printf("❌ %s: %s\n", name, detail)
	case "skip":
		v.skipped++
		fmt.Printf("⊘ %s: %s\n", name, detail)
	}
}

func (v *verifier) export(path string) error {
	report := verifyReport{
		App:       constants.AppName,
		Version:   constants.Version,
		Timestamp: time.Now().UTC(),
		Passed:    v.passed,
		Warnings:  v.warnings,
		Failed:    v.failed,
		Skipped:   v.skipped,
		Checks:    v.checks,
	}
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (c *VerifyCmd) checkConfig(ctx *Context) (string, string) {
	path := ctx.ConfigPath
	if c.ConfigPath != "" {
		path = c.ConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !c.FixIssues {
			return "warn", fmt.Sprintf("%s not found, defaults apply ('skycast init' or --fix-issues writes one)", path)
		}
		if err := ctx.Config.Write(path); err != nil {
			return "fail", fmt.Sprintf("could not write %s: %v", path, err)
		}
		return "pass", fmt.Sprintf("wrote %s", path)
	}

	// Re-parsing catches files edited since startup.
	if _, err := config.Load(path); err != nil {
		return "fail", err.Error()
	}
	return "pass", path
}

func (c *VerifyCmd) checkDataDir(ctx *Context) (string, string) {
	if _, err := os.Stat(ctx.Config.DataDir); os.IsNotExist(err) {
		if !c.FixIssues {
			return "fail", fmt.Sprintf("%s does not exist (run 'skycast init' or pass --fix-issues)", ctx.Config.DataDir)
		}
		if err := ctx.Config.EnsureDataDir(); err != nil {
			return "fail", fmt.Sprintf("could not create %s: %v", ctx.Config.DataDir, err)
		}
		return "pass", fmt.Sprintf("created %s", ctx.Config.DataDir)
	}
	if err := checkDataDir(ctx.Config); err != nil {
		return "fail", err.Error()
	}
	return "pass", ctx.Config.DataDir
}

func (c *VerifyCmd) checkDatabase(ctx *Context) (string, string) {
	if err := ctx.Store.Load(); err != nil {
		if !c.InstallMissing {
			return "fail", err.Error()
		}
		if err := ctx.Store.Init(); err != nil {
			return "fail", fmt.Sprintf("initialization failed: %v", err)
		}
		return "pass", "initialized storage"
	}

	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return "fail", err.Error()
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return "fail", fmt.Sprintf("failed to read schema version: %v", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return "fail", fmt.Sprintf("failed to read latest version: %v", err)
	}

	if current < latest {
		if !c.InstallMissing {
			return "fail", fmt.Sprintf("%d migration(s) pending (run 'skycast migrate' or pass --install-missing)", latest-current)
		}
		if _, err := runner.ApplyMigrations(func(string) {}); err != nil {
			return "fail", fmt.Sprintf("migration failed: %v", err)
		}
		return "pass", fmt.Sprintf("applied %d migration(s)", latest-current)
	}
	return "pass", fmt.Sprintf("schema version %d", current)
}

func (c *VerifyCmd) checkKeys(ctx *Context) (string, string) {
	var missing []string
	if ctx.Config.ResolveSecret(config.SecretOpenWeather) == "" {
		missing = append(missing, "openweather")
	}
	if ctx.Config.ResolveSecret(config.SecretGemini) == "" && ctx.Config.ResolveSecret(config.SecretOpenAI) == "" {
		missing = append(missing, "gemini/openai")
	}
	if ctx.Config.ResolveSecret(config.SecretMaps) == "" {
		missing = append(missing, "maps")
	}

	if len(missing) == 0 {
		return "pass", "all integrations configured"
	}
	return "warn", fmt.Sprintf("not set: %s (features degrade gracefully)", strings.Join(missing, ", "))
}

func (c *VerifyCmd) checkEndpoint(sigCtx context.Context, ctx *Context, name string) (string, string) {
	switch name {
	case "openweather":
		key := ctx.Config.ResolveSecret(config.SecretOpenWeather)
		if key == "" {
			return "skip", "no API key, nothing to probe"
		}
		q := url.Values{"q": {constants.DefaultCity}, "appid": {key}}
		target := constants.OpenWeatherBaseURL + "/weather?" + q.Encode()
		return c.probe(sigCtx, target, func(code int) (string, string) {
			switch code {
			case http.StatusOK:
				return "pass", "reachable, key accepted"
			case http.StatusUnauthorized:
				return "fail", "reachable but the key was rejected"
			default:
				return "fail", fmt.Sprintf("unexpected status %d", code)
			}
		})
	case "team":
		if ctx.Config.TeamCSVURL == "" {
			return "skip", "no team CSV URL configured"
		}
		return c.probe(sigCtx, ctx.Config.TeamCSVURL, func(code int) (string, string) {
			if code == http.StatusOK {
				return "pass", "reachable"
			}
			return "fail", fmt.Sprintf("unexpected status %d", code)
		})
	case "maps":
		key := ctx.Config.ResolveSecret(config.SecretMaps)
		if key == "" {
			return "skip", "no API key, nothing to probe"
		}
		q := url.Values{"address": {constants.DefaultCity}, "key": {key}}
		target := constants.MapsBaseURL + "/geocode/json?" + q.Encode()
		return c.probe(sigCtx, target, func(code int) (string, string) {
			if code == http.StatusOK {
				return "pass", "reachable"
			}
			return "fail", fmt.Sprintf("unexpected status %d", code)
		})
	}
	return "skip", "unknown endpoint"
}

// probe GETs the target, retrying transport errors up to RetryCount times.
// HTTP status handling is the caller's business via classify.
func (c *VerifyCmd) probe(sigCtx context.Context, target string, classify func(int) (string, string)) (string, string) {
	client := &http.Client{Timeout: c.Timeout}

	var lastErr error
	for attempt := 0; attempt <= c.RetryCount; attempt++ {
		req, err := http.NewRequestWithContext(sigCtx, http.MethodGet, target, nil)
		if err != nil {
			return "fail", err.Error()
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()
		return classify(resp.StatusCode)
	}
	return "fail", fmt.Sprintf("unreachable after %d attempt(s): %v", c.RetryCount+1, lastErr)
}

// checkDuplicateInstance scans the process table for another running copy;
// two dashboards sharing one SQLite file invites lock contention.
func checkDuplicateInstance() (string, string) {
	procs, err := ps.Processes()
	if err != nil {
		return "skip", fmt.Sprintf("could not list processes: %v", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		exe := strings.TrimSuffix(strings.ToLower(p.Executable()), ".exe")
		if exe == constants.AppName && p.Pid() != self {
			return "warn", fmt.Sprintf("another %s instance is running (pid %d)", constants.AppName, p.Pid())
		}
	}
	return "pass", "no other instances"
}

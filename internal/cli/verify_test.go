package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/config"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/journal"
	"github.com/ehunter/skycast/internal/storage/sqlite"
)

func TestVerifyCmdValidate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     VerifyCmd
		wantErr bool
	}{
		{"defaults", VerifyCmd{Timeout: 10 * time.Second, RetryCount: 1}, false},
		{"zero retries", VerifyCmd{Timeout: time.Second, RetryCount: 0}, false},
		{"negative retries", VerifyCmd{Timeout: time.Second, RetryCount: -1}, true},
		{"zero timeout", VerifyCmd{Timeout: 0, RetryCount: 1}, true},
	}

	for _, tt := range tests {
		err := tt.cmd.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err=%v, wantErr=%v", tt.name, err, tt.wantErr)
		}
	}
}

func TestVerifyCmdRunOffline(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	reportPath := filepath.Join(t.TempDir(), "report.json")
	cmd := &VerifyCmd{
		SkipServers:  true,
		SkipPackages: true,
		Timeout:      5 * time.Second,
		ExportReport: reportPath,
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("verify failed on a healthy setup: %v", err)
	}

	raw, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var report verifyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if report.App != constants.AppName {
		t.Errorf("report app = %q, want %q", report.App, constants.AppName)
	}
	if report.Failed != 0 {
		t.Errorf("healthy setup reported %d failures: %+v", report.Failed, report.Checks)
	}
	// config, data dir, database, keys, three endpoints, instances.
	if len(report.Checks) != 8 {
		t.Errorf("expected 8 checks, got %d", len(report.Checks))
	}
}

func TestVerifyCmdFixIssuesWritesConfig(t *testing.T) {
	ctx, cleanup := setupTestCLI(t)
	defer cleanup()

	cmd := &VerifyCmd{
		SkipServers:  true,
		SkipPackages: true,
		FixIssues:    true,
		Timeout:      5 * time.Second,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("verify --fix-issues failed: %v", err)
	}

	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		t.Errorf("config file was not written: %v", err)
	}
}

func TestVerifyCmdUninitializedStorageFails(t *testing.T) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "journal.db"))

	ctx := &Context{
		Config:     &config.Config{DataDir: tempDir},
		ConfigPath: filepath.Join(tempDir, "skycast.toml"),
		Store:      store,
		Journal:    journal.New(store),
	}

	cmd := &VerifyCmd{
		SkipServers:  true,
		SkipPackages: true,
		Timeout:      5 * time.Second,
	}
	err := cmd.Run(ctx)
	if err == nil {
		t.Fatal("expected failure for uninitialized storage")
	}
	if !strings.Contains(err.Error(), "check(s) failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVerifyCmdInstallMissingInitializes(t *testing.T) {
	tempDir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(tempDir, "journal.db"))
	defer store.Close()

	ctx := &Context{
		Config:     &config.Config{DataDir: tempDir},
		ConfigPath: filepath.Join(tempDir, "skycast.toml"),
		Store:      store,
		Journal:    journal.New(store),
	}

	cmd := &VerifyCmd{
		SkipServers:    true,
		SkipPackages:   true,
		InstallMissing: true,
		Timeout:        5 * time.Second,
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("verify --install-missing failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(tempDir, "journal.db")); err != nil {
		t.Errorf("database was not initialized: %v", err)
	}
}

func TestCheckDuplicateInstance(t *testing.T) {
	// The test binary is not named skycast, so this never fails; it may warn
	// on a developer machine with a live dashboard.
	status, detail := checkDuplicateInstance()
	if status == "fail" {
		t.Errorf("duplicate instance check failed: %s", detail)
	}
}

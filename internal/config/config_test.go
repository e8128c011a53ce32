package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ehunter/skycast/internal/keyring"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Units != "metric" {
		t.Errorf("Units = %q, want metric", cfg.Units)
	}
	if cfg.TeamCSVURL == "" {
		t.Error("TeamCSVURL default not applied")
	}
	if !strings.HasSuffix(cfg.DB, "journal.db") {
		t.Errorf("DB default = %q, want *journal.db", cfg.DB)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skycast.toml")
	body := `
openweather_api_key = "file-key"
units = "imperial"
default_city = "Oslo"
data_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenWeatherAPIKey != "file-key" {
		t.Errorf("OpenWeatherAPIKey = %q, want file-key", cfg.OpenWeatherAPIKey)
	}
	if cfg.Units != "imperial" {
		t.Errorf("Units = %q, want imperial", cfg.Units)
	}
	if cfg.DefaultCity != "Oslo" {
		t.Errorf("DefaultCity = %q, want Oslo", cfg.DefaultCity)
	}
	if cfg.DB != filepath.Join(dir, "journal.db") {
		t.Errorf("DB = %q, want under data dir", cfg.DB)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skycast.toml")
	if err := os.WriteFile(path, []byte(`openweather_api_key = "file-key"`), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("SKYCAST_UNITS", "imperial")
	t.Setenv("SKYCAST_DATA_DIR", dir)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenWeatherAPIKey != "env-key" {
		t.Errorf("OpenWeatherAPIKey = %q, want env-key", cfg.OpenWeatherAPIKey)
	}
	if cfg.Units != "imperial" {
		t.Errorf("Units = %q, want imperial", cfg.Units)
	}
}

func TestValidateRejectsBadUnits(t *testing.T) {
	cfg := &Config{Units: "kelvin"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted invalid units")
	}
}

func TestResolveSecretPrefersConfig(t *testing.T) {
	gokeyring.MockInit()
	if err := keyring.Set(keyring.KeyGemini, "ring-key"); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{GeminiAPIKey: "cfg-key"}
	if got := cfg.ResolveSecret(SecretGemini); got != "cfg-key" {
		t.Errorf("ResolveSecret() = %q, want cfg-key", got)
	}

	cfg.GeminiAPIKey = ""
	if got := cfg.ResolveSecret(SecretGemini); got != "ring-key" {
		t.Errorf("ResolveSecret() = %q, want ring-key", got)
	}
}

func TestResolveSecretMissingIsEmpty(t *testing.T) {
	gokeyring.MockInit()
	cfg := &Config{}
	if got := cfg.ResolveSecret(SecretMaps); got != "" {
		t.Errorf("ResolveSecret() = %q, want empty", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "skycast.toml")

	in := &Config{
		OpenWeatherAPIKey: "k",
		Units:             "metric",
		DefaultCity:       "Lisbon",
		DataDir:           dir,
	}
	if err := in.Write(path); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Write failed: %v", err)
	}
	if out.DefaultCity != "Lisbon" {
		t.Errorf("DefaultCity = %q, want Lisbon", out.DefaultCity)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}

	got := ExpandHome("~/x/y")
	want := filepath.Join(home, "x", "y")
	if got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() modified absolute path: %q", got)
	}
}

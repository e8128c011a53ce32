package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/keyring"
	"github.com/ehunter/skycast/internal/logger"
)

// Config holds every user-tunable knob. Values resolve in order: file,
// environment, keyring (secrets only). A missing file is not an error.
type Config struct {
	OpenWeatherAPIKey string `toml:"openweather_api_key"`
	GeminiAPIKey      string `toml:"gemini_api_key"`
	OpenAIAPIKey      string `toml:"openai_api_key"`
	GitHubToken       string `toml:"github_token"`
	MapsAPIKey        string `toml:"maps_api_key"`

	Units       string `toml:"units"`
	DefaultCity string `toml:"default_city"`
	DB          string `toml:"db"`
	DataDir     string `toml:"data_dir"`
	TeamCSVURL  string `toml:"team_csv_url"`
	Debug       bool   `toml:"debug"`
}

// Load reads the config file at path (or the default location when path is
// empty), merges environment overrides, and fills in defaults. A .env file in
// the working directory is honored first, matching how the dashboard has
// always been configured.
func Load(path string) (*Config, error) {
	// Best effort; developers keep keys in .env, production uses the keyring.
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)

	var cfg Config
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults + environment only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.FromENV()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromENV overlays environment variables onto the config. API keys use the
// plain names the original .env files carried; app-level settings use the
// SKYCAST_ prefix.
func (c *Config) FromENV() {
	overlay(&c.OpenWeatherAPIKey, "OPENWEATHER_API_KEY")
	overlay(&c.GeminiAPIKey, "GEMINI_API_KEY")
	overlay(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	overlay(&c.GitHubToken, "GITHUB_TOKEN")
	overlay(&c.MapsAPIKey, "GOOGLE_MAPS_API_KEY")

	overlay(&c.Units, "SKYCAST_UNITS")
	overlay(&c.DefaultCity, "SKYCAST_DEFAULT_CITY")
	overlay(&c.DB, "SKYCAST_DB")
	overlay(&c.DataDir, "SKYCAST_DATA_DIR")
	overlay(&c.TeamCSVURL, "SKYCAST_TEAM_CSV_URL")

	if v := os.Getenv("SKYCAST_DEBUG"); v != "" {
		c.Debug = v == "1" || strings.EqualFold(v, "true")
	}
}

func overlay(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Units == "" {
		c.Units = string(constants.UnitsMetric)
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	c.DataDir = ExpandHome(c.DataDir)
	if c.DB == "" {
		c.DB = filepath.Join(c.DataDir, constants.JournalDBFile)
	} else if !strings.HasPrefix(c.DB, "postgres://") && !strings.HasPrefix(c.DB, "postgresql://") {
		c.DB = ExpandHome(c.DB)
	}
	if c.TeamCSVURL == "" {
		c.TeamCSVURL = constants.DefaultTeamCSVURL
	}
}

// Validate rejects values no component could act on.
func (c *Config) Validate() error {
	switch constants.Units(c.Units) {
	case constants.UnitsMetric, constants.UnitsImperial:
	default:
		return fmt.Errorf("invalid units %q (want metric or imperial)", c.Units)
	}
	return nil
}

// Secret names accepted by ResolveSecret.
const (
	SecretOpenWeather = keyring.KeyOpenWeather
	SecretGemini      = keyring.KeyGemini
	SecretOpenAI      = keyring.KeyOpenAI
	SecretGitHub      = keyring.KeyGitHub
	SecretMaps        = keyring.KeyMaps
)

// ResolveSecret returns the named API key, falling back to the OS keyring
// when neither the file nor the environment provided one. Absence is not an
// error: callers degrade to offline/fallback behavior.
func (c *Config) ResolveSecret(name string) string {
	var fromCfg string
	switch name {
	case SecretOpenWeather:
		fromCfg = c.OpenWeatherAPIKey
	case SecretGemini:
		fromCfg = c.GeminiAPIKey
	case SecretOpenAI:
		fromCfg = c.OpenAIAPIKey
	case SecretGitHub:
		fromCfg = c.GitHubToken
	case SecretMaps:
		fromCfg = c.MapsAPIKey
	}
	if fromCfg != "" {
		return fromCfg
	}

	val, err := keyring.Get(name)
	if err != nil {
		if err != keyring.ErrNotFound {
			logger.Debug("keyring lookup failed", "secret", name, "error", err)
		}
		return ""
	}
	return val
}

// EnsureDataDir creates the data directory tree if needed.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, constants.DefaultDBPerms)
}

// TeamCachePath is where the team-city JSON cache lives.
func (c *Config) TeamCachePath() string {
	return filepath.Join(c.DataDir, constants.TeamCacheFile)
}

// Write persists the config as TOML, creating parent directories as needed.
// Used by `skycast init`.
func (c *Config) Write(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), constants.DefaultDBPerms); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return ExpandHome(constants.DefaultConfigPath)
}

// DefaultDataDir returns the default data directory location.
func DefaultDataDir() string {
	return ExpandHome(constants.DefaultDataDir)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}

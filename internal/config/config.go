// Package config resolves runtime settings from three layers: built-in
// defaults, an optional config.yaml in the state directory, and
// FOCUSFLOW_* environment variables, each overriding the one before.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultConfigYAML = `# focusflow configuration
# database_path: ""        # defaults to <state dir>/focusflow.db
speech_enabled: true
desktop_notifications: true
refresh_minutes: 5

assist:
  base_url: https://api.openai.com/v1/chat/completions
  api_key: ""
  model: gpt-3.5-turbo
`

type AssistConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type Config struct {
	StateDir             string       `yaml:"-"`
	DatabasePath         string       `yaml:"database_path"`
	SpeechEnabled        bool         `yaml:"speech_enabled"`
	DesktopNotifications bool         `yaml:"desktop_notifications"`
	RefreshMinutes       int          `yaml:"refresh_minutes"`
	Assist               AssistConfig `yaml:"assist"`
}

func Default(stateDir string) Config {
	return Config{
		StateDir:             stateDir,
		DatabasePath:         filepath.Join(stateDir, "focusflow.db"),
		SpeechEnabled:        true,
		DesktopNotifications: true,
		RefreshMinutes:       5,
		Assist: AssistConfig{
			BaseURL: "https://api.openai.com/v1/chat/completions",
			Model:   "gpt-3.5-turbo",
		},
	}
}

// DefaultStateDir is ~/.focusflow, falling back to the working
// directory when the home directory cannot be resolved.
func DefaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusflow"
	}
	return filepath.Join(home, ".focusflow")
}

// Load resolves the full configuration for stateDir, creating the
// state directory and a commented default config.yaml on first run.
func Load(stateDir string) (Config, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("config: ensure state dir: %w", err)
	}

	cfg := Default(stateDir)
	path := filepath.Join(stateDir, "config.yaml")

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if writeErr := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); writeErr != nil {
			return Config{}, fmt.Errorf("config: write default config: %w", writeErr)
		}
	case err != nil:
		return Config{}, fmt.Errorf("config: read config: %w", err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.StateDir = stateDir
		if cfg.DatabasePath == "" {
			cfg.DatabasePath = filepath.Join(stateDir, "focusflow.db")
		}
	}

	return FromEnv(cfg), nil
}

// FromEnv applies FOCUSFLOW_* environment overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvBool("FOCUSFLOW_SPEECH"); ok {
		cfg.SpeechEnabled = v
	}
	if v, ok := getEnvBool("FOCUSFLOW_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("FOCUSFLOW_REFRESH_MINUTES"); ok && v > 0 {
		cfg.RefreshMinutes = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_ASSIST_BASE_URL")); v != "" {
		cfg.Assist.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_ASSIST_API_KEY")); v != "" {
		cfg.Assist.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("FOCUSFLOW_ASSIST_MODEL")); v != "" {
		cfg.Assist.Model = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

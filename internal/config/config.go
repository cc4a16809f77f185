// Package config loads portal configuration.
//
// Precedence, highest first:
//   - PORTAL_* environment variables
//   - the YAML file at $XDG_CONFIG_HOME/portal/config.yaml (or PORTAL_CONFIG)
//   - built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/honphysics/portal/internal/outline"
	"gopkg.in/yaml.v3"
)

// OutlineConfig holds classifier policy.
type OutlineConfig struct {
	// TitleColonExclusion keeps lines containing a colon from becoming
	// implicit headings.
	TitleColonExclusion bool `yaml:"title_colon_exclusion"`
}

// TerminalConfig maps terminal cells to the pixel distances used by swipe
// detection.
type TerminalConfig struct {
	CellWidthPx  int `yaml:"cell_width_px,omitempty"`
	CellHeightPx int `yaml:"cell_height_px,omitempty"`
}

// WatchConfig controls live lesson reload.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms,omitempty"`
}

// Config is the top-level portal configuration.
type Config struct {
	DBPath     string `yaml:"db,omitempty"`
	ContentDir string `yaml:"content,omitempty"`
	// HistoryPath holds command bar history. "-" disables it.
	HistoryPath string         `yaml:"history,omitempty"`
	PageURL     string         `yaml:"page_url,omitempty"`
	LogEvents   bool           `yaml:"log_events,omitempty"`
	NoBrowser   bool           `yaml:"no_browser,omitempty"`
	Outline     OutlineConfig  `yaml:"outline"`
	Terminal    TerminalConfig `yaml:"terminal,omitempty"`
	Watch       WatchConfig    `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults. Paths are left
// empty and filled by Load.
func DefaultConfig() Config {
	return Config{
		Outline:  OutlineConfig{TitleColonExclusion: true},
		Terminal: TerminalConfig{CellWidthPx: 8, CellHeightPx: 16},
		Watch:    WatchConfig{DebounceMs: 150},
	}
}

// ConfigDir returns the XDG config directory for the portal.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "portal")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "portal")
}

// ConfigPath returns the config file path. PORTAL_CONFIG overrides the XDG
// location.
func ConfigPath() string {
	if p := os.Getenv("PORTAL_CONFIG"); p != "" {
		return p
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Terminal.CellWidthPx <= 0 {
		cfg.Terminal.CellWidthPx = DefaultConfig().Terminal.CellWidthPx
	}
	if cfg.Terminal.CellHeightPx <= 0 {
		cfg.Terminal.CellHeightPx = DefaultConfig().Terminal.CellHeightPx
	}
	return cfg, nil
}

// Load reads the config file, applies environment overrides and resolves
// default paths.
func Load() (Config, error) {
	cfg, err := LoadFrom(ConfigPath())
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := resolvePaths(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Classifier returns the outline classifier for the configured policy.
func (c Config) Classifier() outline.Classifier {
	return outline.Classifier{AllowColonTitles: !c.Outline.TitleColonExclusion}
}

// applyEnv overlays PORTAL_* variables. Unparseable values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PORTAL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PORTAL_CONTENT"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("PORTAL_HISTORY"); v != "" {
		cfg.HistoryPath = v
	}
	if v := os.Getenv("PORTAL_PAGE_URL"); v != "" {
		cfg.PageURL = v
	}
	if v := os.Getenv("PORTAL_LOG_EVENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogEvents = b
		}
	}
	if v := os.Getenv("PORTAL_NO_BROWSER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoBrowser = b
		}
	}
	if v := os.Getenv("PORTAL_TITLE_COLON_EXCLUSION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Outline.TitleColonExclusion = b
		}
	}
	applyPositiveInt(&cfg.Terminal.CellWidthPx, "PORTAL_CELL_WIDTH_PX")
	applyPositiveInt(&cfg.Terminal.CellHeightPx, "PORTAL_CELL_HEIGHT_PX")
	applyPositiveInt(&cfg.Watch.DebounceMs, "PORTAL_WATCH_DEBOUNCE_MS")
}

func applyPositiveInt(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

// resolvePaths fills unset paths: the database and history live in
// ~/.portal, content is ./content during development and ~/.portal/content
// otherwise.
func resolvePaths(cfg *Config) error {
	noHistory := cfg.HistoryPath == "-"
	if noHistory {
		cfg.HistoryPath = ""
	}
	if cfg.DBPath != "" && cfg.ContentDir != "" && (cfg.HistoryPath != "" || noHistory) {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(home, ".portal", "portal.db")
	}
	if cfg.HistoryPath == "" && !noHistory {
		cfg.HistoryPath = filepath.Join(home, ".portal", "history")
	}
	if cfg.ContentDir == "" {
		if stat, err := os.Stat("./content"); err == nil && stat.IsDir() {
			cfg.ContentDir = "./content"
		} else {
			cfg.ContentDir = filepath.Join(home, ".portal", "content")
		}
	}
	return nil
}

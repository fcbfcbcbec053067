package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/slotboard/internal/endpoint"
	"github.com/five82/slotboard/internal/grid"
)

// Config captures slotboard's settings.
type Config struct {
	// APIURL is the backend base the user typed; empty means auto-detect.
	APIURL string
	// PageURL stands in for the page the controller is served from. Its scheme
	// and hostname seed the auto-detected base.
	PageURL      string
	Days         string
	ProbeTimeout time.Duration
	LogLevel     string
	LogFile      string
	// Path is the resolved config file location, whether or not it exists.
	Path string
}

const (
	defaultConfigPath = "~/.config/slotboard/config.toml"
	defaultLogFile    = "~/.local/state/slotboard/slotboard.log"
	defaultPageURL    = "http://localhost"
	defaultLogLevel   = "info"

	envPrefix = "SLOTBOARD_"
)

var defaultDays = grid.Presets[0]

// Load locates and parses the config, falling back to defaults when missing.
// SLOTBOARD_* environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw struct {
		APIURL       string `toml:"api_url"`
		PageURL      string `toml:"page_url"`
		Days         string `toml:"days"`
		ProbeTimeout string `toml:"probe_timeout"`
		LogLevel     string `toml:"log_level"`
		LogFile      string `toml:"log_file"`
	}

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	overrides, err := loadEnv()
	if err != nil {
		return Config{}, err
	}
	for key, dst := range map[string]*string{
		"api_url":       &raw.APIURL,
		"page_url":      &raw.PageURL,
		"days":          &raw.Days,
		"probe_timeout": &raw.ProbeTimeout,
		"log_level":     &raw.LogLevel,
		"log_file":      &raw.LogFile,
	} {
		if overrides.Exists(key) {
			*dst = overrides.String(key)
		}
	}

	cfg := Config{
		APIURL:       strings.TrimSpace(raw.APIURL),
		PageURL:      strings.TrimSpace(raw.PageURL),
		Days:         strings.TrimSpace(raw.Days),
		ProbeTimeout: endpoint.DefaultProbeTimeout,
		LogLevel:     strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		LogFile:      strings.TrimSpace(raw.LogFile),
		Path:         resolved,
	}
	if cfg.PageURL == "" {
		cfg.PageURL = defaultPageURL
	}
	if len(grid.ParseDays(cfg.Days)) == 0 {
		cfg.Days = defaultDays
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	if timeout := strings.TrimSpace(raw.ProbeTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse probe_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("probe_timeout must be positive, got %s", d)
		}
		cfg.ProbeTimeout = d
	}

	return cfg, nil
}

// DetectedBase returns the auto-detected backend base for PageURL.
func (c Config) DetectedBase() string {
	return endpoint.DetectBase(c.PageURL)
}

// PageIsFile reports whether PageURL points at a local file, which cannot
// yield a usable backend host.
func (c Config) PageIsFile() bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.PageURL)), "file:")
}

// DayList returns Days split into the day axis.
func (c Config) DayList() []string {
	return grid.ParseDays(c.Days)
}

func loadEnv() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}
	return k, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

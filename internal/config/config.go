// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for shellmind.
//
// Configuration file locations (in order of precedence):
//   - SHELLMIND_* environment variables
//   - $SHELLMIND_HOME/config.toml (default ~/.shellmind/config.toml)
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/util"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultHost is the address of a stock local Ollama install.
	DefaultHost = "http://127.0.0.1:11434"

	// DefaultTheme selects the built-in palette.
	DefaultTheme = "default"

	// MinSpeed and MaxSpeed bound typewriter_speed. 0 reveals replies at once.
	MinSpeed = 0
	MaxSpeed = 10

	// APIOllama talks to the native Ollama endpoints.
	APIOllama = "ollama"
	// APIOpenAI talks to any OpenAI-compatible /v1 endpoint.
	APIOpenAI = "openai"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config represents the complete shellmind configuration.
type Config struct {
	// OllamaHost is the base URL of the model server.
	OllamaHost string `toml:"ollama_host" json:"ollama_host"`

	// ModelName is the default model. Empty means "ask the user".
	ModelName string `toml:"model_name" json:"model_name"`

	// TypewriterSpeed is 0 (instant) through 10 (fastest animated reveal).
	TypewriterSpeed int `toml:"typewriter_speed" json:"typewriter_speed"`

	// Theme names a palette file in the themes directory, or "default".
	Theme string `toml:"theme" json:"theme"`

	// API selects the gateway backend: "ollama" or "openai".
	API string `toml:"api" json:"api"`

	// RenderMarkdown re-renders finished assistant replies as markdown.
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown"`

	// RequestTimeout bounds one model round trip, as a Go duration string.
	RequestTimeout string `toml:"request_timeout" json:"request_timeout"`

	// LogLevel is the debug log level (debug, info, warn, error, disabled).
	LogLevel string `toml:"log_level" json:"log_level"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		OllamaHost:      DefaultHost,
		ModelName:       "",
		TypewriterSpeed: 1,
		Theme:           DefaultTheme,
		API:             APIOllama,
		RenderMarkdown:  false,
		RequestTimeout:  "5m",
		LogLevel:        "info",
	}
}

// Timeout returns RequestTimeout as a duration, falling back to the default
// when the stored value does not parse.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(Default().RequestTimeout)
	}
	return d
}

// Clone returns a copy of the configuration. Config holds only value fields.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the TOML file at path over the defaults and applies environment
// overrides. A missing file is not an error. On any error the returned Config
// is still usable: it holds the defaults plus whatever could be applied, and
// fields that fail validation are reset to their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			cfg = Default()
			_ = cfg.ApplyEnvOverrides()
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			cfg.resetInvalid(verrs)
		}
		return cfg, fmt.Errorf("invalid config, defaults restored: %w", err)
	}
	return cfg, nil
}

// resetInvalid restores the default of every field named in errs.
func (c *Config) resetInvalid(errs ValidateErrors) {
	d := Default()
	for _, e := range errs {
		switch e.Field {
		case "ollama_host":
			c.OllamaHost = d.OllamaHost
		case "typewriter_speed":
			c.TypewriterSpeed = d.TypewriterSpeed
		case "api":
			c.API = d.API
		case "request_timeout":
			c.RequestTimeout = d.RequestTimeout
		case "log_level":
			c.LogLevel = d.LogLevel
		}
	}
}

// LoadTOML decodes path into cfg. Keys absent from the file keep the values
// already present in cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	fillDefaults(cfg)
	return nil
}

// fillDefaults replaces empty strings with their defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if strings.TrimSpace(cfg.OllamaHost) == "" {
		cfg.OllamaHost = defaults.OllamaHost
	}
	if strings.TrimSpace(cfg.Theme) == "" {
		cfg.Theme = defaults.Theme
	}
	if cfg.API == "" {
		cfg.API = defaults.API
	}
	if cfg.RequestTimeout == "" {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes cfg to path atomically, with a short header comment.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# shellmind configuration file")
	fmt.Fprintln(&buf, "# Written from the Config menu - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateHost(c.OllamaHost); err != nil {
		errs = append(errs, *err)
	}

	if c.TypewriterSpeed < MinSpeed || c.TypewriterSpeed > MaxSpeed {
		errs = append(errs, ValidationError{
			Field:   "typewriter_speed",
			Message: fmt.Sprintf("must be between %d and %d, got %d", MinSpeed, MaxSpeed, c.TypewriterSpeed),
		})
	}

	switch c.API {
	case APIOllama, APIOpenAI:
	default:
		errs = append(errs, ValidationError{
			Field:   "api",
			Message: fmt.Sprintf("invalid api '%s', must be one of: %s, %s", c.API, APIOllama, APIOpenAI),
		})
	}

	if d, err := time.ParseDuration(c.RequestTimeout); err != nil || d <= 0 {
		errs = append(errs, ValidationError{
			Field:   "request_timeout",
			Message: fmt.Sprintf("invalid duration '%s'", c.RequestTimeout),
		})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid level '%s'", c.LogLevel),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateHost(host string) *ValidationError {
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		return &ValidationError{Field: "ollama_host", Message: "must start with http:// or https://"}
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return &ValidationError{Field: "ollama_host", Message: fmt.Sprintf("invalid URL '%s'", host)}
	}
	return nil
}

// =============================================================================
// UI SETTERS
// =============================================================================

// SetHost validates and stores a host typed into the Config menu.
func (c *Config) SetHost(raw string) error {
	host := strings.TrimSpace(raw)
	if err := validateHost(host); err != nil {
		return *err
	}
	c.OllamaHost = strings.TrimRight(host, "/")
	return nil
}

// SetSpeedString parses and stores a typewriter speed typed into the Config menu.
func (c *Config) SetSpeedString(raw string) error {
	speed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return ValidationError{Field: "typewriter_speed", Message: "must be a whole number"}
	}
	if speed < MinSpeed || speed > MaxSpeed {
		return ValidationError{
			Field:   "typewriter_speed",
			Message: fmt.Sprintf("must be between %d and %d", MinSpeed, MaxSpeed),
		}
	}
	c.TypewriterSpeed = speed
	return nil
}

// SetModel stores the default model name.
func (c *Config) SetModel(name string) {
	c.ModelName = strings.TrimSpace(name)
}

// SetTheme stores the theme name, mapping blank to the default theme.
func (c *Config) SetTheme(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTheme
	}
	c.Theme = name
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides lists the supported environment variables. Unset variables
// leave the corresponding Config field untouched.
type envOverrides struct {
	OllamaHost      string `env:"SHELLMIND_OLLAMA_HOST"`
	Model           string `env:"SHELLMIND_MODEL"`
	TypewriterSpeed *int   `env:"SHELLMIND_TYPEWRITER_SPEED"`
	Theme           string `env:"SHELLMIND_THEME"`
	API             string `env:"SHELLMIND_API"`
	LogLevel        string `env:"SHELLMIND_LOG_LEVEL"`
}

// ApplyEnvOverrides applies SHELLMIND_* environment variables to c.
//
// Supported variables:
//   - SHELLMIND_OLLAMA_HOST: overrides ollama_host
//   - SHELLMIND_MODEL: overrides model_name
//   - SHELLMIND_TYPEWRITER_SPEED: overrides typewriter_speed
//   - SHELLMIND_THEME: overrides theme
//   - SHELLMIND_API: overrides api
//   - SHELLMIND_LOG_LEVEL: overrides log_level
func (c *Config) ApplyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}

	if o.OllamaHost != "" {
		c.OllamaHost = o.OllamaHost
	}
	if o.Model != "" {
		c.ModelName = o.Model
	}
	if o.TypewriterSpeed != nil {
		c.TypewriterSpeed = *o.TypewriterSpeed
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.API != "" {
		c.API = strings.ToLower(o.API)
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	return nil
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// Paths holds every on-disk location shellmind uses.
type Paths struct {
	Root       string
	ConfigFile string
	HistoryDir string
	DetailsDir string
	ThemesDir  string
	LogFile    string
}

// PathsAt lays out the standard file tree below root.
func PathsAt(root string) Paths {
	return Paths{
		Root:       root,
		ConfigFile: filepath.Join(root, "config.toml"),
		HistoryDir: filepath.Join(root, "history"),
		DetailsDir: filepath.Join(root, "history_details"),
		ThemesDir:  filepath.Join(root, "themes"),
		LogFile:    filepath.Join(root, "debug.log"),
	}
}

// ResolvePaths returns the paths below SHELLMIND_HOME, or ~/.shellmind.
func ResolvePaths() (Paths, error) {
	if root := os.Getenv("SHELLMIND_HOME"); root != "" {
		return PathsAt(root), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("could not determine home directory: %w", err)
	}
	return PathsAt(filepath.Join(home, ".shellmind")), nil
}

// Ensure creates the root, history and themes directories.
func (p Paths) Ensure() error {
	var errs []error
	for _, dir := range []string{p.Root, p.HistoryDir, p.DetailsDir, p.ThemesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

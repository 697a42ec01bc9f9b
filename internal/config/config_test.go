// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
model_name = "llama3"
typewriter_speed = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "llama3", cfg.ModelName)
	assert.Equal(t, 0, cfg.TypewriterSpeed, "explicit 0 must survive")
	assert.Equal(t, DefaultHost, cfg.OllamaHost)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestLoad_BlankStringsFilled(t *testing.T) {
	path := writeConfig(t, `
ollama_host = ""
theme = " "
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultHost, cfg.OllamaHost)
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
ollama_host = "localhost:11434"
model_name = "llama3"
typewriter_speed = 42
`)
	cfg, err := Load(path)
	require.Error(t, err)
	require.NotNil(t, cfg)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	assert.Equal(t, DefaultHost, cfg.OllamaHost)
	assert.Equal(t, Default().TypewriterSpeed, cfg.TypewriterSpeed)
	assert.Equal(t, "llama3", cfg.ModelName, "valid fields are kept")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesResetEachField(t *testing.T) {
	path := writeConfig(t, `
api = "grpc"
request_timeout = "soon"
log_level = "loud"
theme = "amber"
`)
	cfg, err := Load(path)
	require.Error(t, err)

	d := Default()
	assert.Equal(t, d.API, cfg.API)
	assert.Equal(t, d.RequestTimeout, cfg.RequestTimeout)
	assert.Equal(t, d.LogLevel, cfg.LogLevel)
	assert.Equal(t, "amber", cfg.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_CorruptFileFallsBack(t *testing.T) {
	path := writeConfig(t, "this is = = not toml")
	cfg, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, DefaultHost, cfg.OllamaHost)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, `typewriter_sped = 3`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typewriter_sped")
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.ModelName = "mistral"
	cfg.TypewriterSpeed = 7
	cfg.Theme = "amber"
	cfg.RenderMarkdown = true
	require.NoError(t, SaveTOML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# shellmind configuration file")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no scheme", func(c *Config) { c.OllamaHost = "127.0.0.1:11434" }, "ollama_host"},
		{"ftp scheme", func(c *Config) { c.OllamaHost = "ftp://host" }, "ollama_host"},
		{"speed low", func(c *Config) { c.TypewriterSpeed = -1 }, "typewriter_speed"},
		{"speed high", func(c *Config) { c.TypewriterSpeed = 11 }, "typewriter_speed"},
		{"api", func(c *Config) { c.API = "grpc" }, "api"},
		{"timeout", func(c *Config) { c.RequestTimeout = "soon" }, "request_timeout"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestSetHost(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetHost("  https://llm.local:8443/ "))
	assert.Equal(t, "https://llm.local:8443", cfg.OllamaHost)

	err := cfg.SetHost("llm.local")
	require.Error(t, err)
	assert.Equal(t, "https://llm.local:8443", cfg.OllamaHost, "rejected input must not be stored")

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ollama_host", verr.Field)
}

func TestSetSpeedString(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"10", 10, false},
		{" 5 ", 5, false},
		{"11", 0, true},
		{"-1", 0, true},
		{"fast", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := Default()
			err := cfg.SetSpeedString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 1, cfg.TypewriterSpeed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.TypewriterSpeed)
		})
	}
}

func TestSetTheme(t *testing.T) {
	cfg := Default()
	cfg.SetTheme("matrix")
	assert.Equal(t, "matrix", cfg.Theme)
	cfg.SetTheme("  ")
	assert.Equal(t, DefaultTheme, cfg.Theme)
}

func TestTimeout(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 5*time.Minute, cfg.Timeout())

	cfg.RequestTimeout = "30s"
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	cfg.RequestTimeout = "garbage"
	assert.Equal(t, 5*time.Minute, cfg.Timeout())
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SHELLMIND_OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("SHELLMIND_MODEL", "phi3")
	t.Setenv("SHELLMIND_TYPEWRITER_SPEED", "0")
	t.Setenv("SHELLMIND_API", "OpenAI")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnvOverrides())

	assert.Equal(t, "http://gpu-box:11434", cfg.OllamaHost)
	assert.Equal(t, "phi3", cfg.ModelName)
	assert.Equal(t, 0, cfg.TypewriterSpeed)
	assert.Equal(t, APIOpenAI, cfg.API)
	assert.Equal(t, DefaultTheme, cfg.Theme, "unset variables leave fields alone")
}

func TestApplyEnvOverrides_BadInt(t *testing.T) {
	t.Setenv("SHELLMIND_TYPEWRITER_SPEED", "quick")

	cfg := Default()
	assert.Error(t, cfg.ApplyEnvOverrides())
	assert.Equal(t, 1, cfg.TypewriterSpeed)
}

// =============================================================================
// PATH TESTS
// =============================================================================

func TestResolvePaths_HomeOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SHELLMIND_HOME", root)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "config.toml"), paths.ConfigFile)
	assert.Equal(t, filepath.Join(root, "history"), paths.HistoryDir)
	assert.Equal(t, filepath.Join(root, "history_details"), paths.DetailsDir)

	require.NoError(t, paths.Ensure())
	for _, dir := range []string{paths.HistoryDir, paths.DetailsDir, paths.ThemesDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for shellmind.
//
// # Key Types
//
//   - Config: the persisted settings (host, model, typewriter speed, theme)
//   - Paths: the on-disk layout below the shellmind home directory
//   - ValidationError: one rejected field, shown inline by the Config menu
//
// # Configuration Precedence
//
//   - Environment variables (SHELLMIND_*)
//   - $SHELLMIND_HOME/config.toml
//   - Built-in defaults
//
// # Usage
//
//	paths, err := config.ResolvePaths()
//	cfg, err := config.Load(paths.ConfigFile)
//	if err := cfg.SetSpeedString(input); err != nil {
//	    // show err inline and re-prompt
//	}
//	err = config.SaveTOML(cfg, paths.ConfigFile)
package config

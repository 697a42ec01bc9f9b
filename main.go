// shellmind - a retro terminal chat for local models.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/jeranaias/shellmind/internal/config"
	"github.com/jeranaias/shellmind/internal/gateway"
	"github.com/jeranaias/shellmind/internal/logging"
	"github.com/jeranaias/shellmind/internal/storage"
	"github.com/jeranaias/shellmind/internal/ui/app"
	"github.com/jeranaias/shellmind/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

const (
	// watchDebounce coalesces bursts of history file events.
	watchDebounce = 250 * time.Millisecond

	// probeTimeout bounds the startup reachability check.
	probeTimeout = 3 * time.Second
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "shellmind: standard output is not a terminal")
		os.Exit(1)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running shellmind: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}
	if err := paths.Ensure(); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// Problems past this point are shown in the UI instead of aborting.
	var warnings []string

	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		warnings = append(warnings, err.Error())
	}

	log, closer, err := openLog(paths.LogFile, cfg.LogLevel)
	if err != nil {
		warnings = append(warnings, err.Error())
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Info().Str("version", Version).Str("commit", GitCommit).Str("root", paths.Root).Msg("starting")

	theme, err := styles.LoadTheme(paths.ThemesDir, cfg.Theme)
	if err != nil {
		log.Warn().Err(err).Str("theme", cfg.Theme).Msg("using default theme")
		warnings = append(warnings, err.Error())
	}

	gw, err := gateway.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Str("api", cfg.API).Msg("no model gateway")
		warnings = append(warnings, "Model server: "+err.Error())
	} else if msg := probe(gw, cfg.OllamaHost); msg != "" {
		warnings = append(warnings, msg)
	}

	store := storage.NewStore(paths.HistoryDir, paths.DetailsDir, log)

	watcher, err := storage.NewWatcher(watchDebounce, log, paths.HistoryDir, paths.DetailsDir)
	if err != nil {
		log.Warn().Err(err).Msg("history watcher unavailable")
		warnings = append(warnings, "History will not refresh live: "+err.Error())
	} else {
		defer watcher.Close()
	}

	m := app.New(app.Deps{
		Config:     cfg,
		Paths:      paths,
		Store:      store,
		Theme:      theme,
		Log:        log,
		Gateway:    gw,
		NewGateway: gateway.New,
		Watcher:    watcher,
		Warnings:   warnings,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return err
	}
	log.Info().Msg("exiting")
	return nil
}

// openLog opens the debug log. An unknown level falls back to info so the
// log is still written.
func openLog(path, level string) (zerolog.Logger, io.Closer, error) {
	log, closer, err := logging.New(path, level)
	if err == nil {
		return log, closer, nil
	}
	fallback, closer, ferr := logging.New(path, "info")
	if ferr != nil {
		return logging.Nop(), nil, ferr
	}
	fallback.Warn().Err(err).Msg("log level ignored")
	return fallback, closer, err
}

// probe checks that the model server answers, for backends that support it.
// It returns a warning, or "" when the server is up.
func probe(gw gateway.Gateway, host string) string {
	p, ok := gw.(gateway.Prober)
	if !ok {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := p.CheckRunning(ctx); err != nil {
		return "Model server at " + host + ": " + err.Error()
	}
	return ""
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// =============================================================================
// HISTORY WATCHER
// =============================================================================

// Watcher reports changes to the history directories so an open history
// listing can refresh itself. Bursts of events are coalesced into one
// notification per debounce window.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	changes  chan struct{}
	log      zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher watches dirs. Missing directories are created first so the
// watch can be established on a fresh install.
func NewWatcher(debounce time.Duration, log zerolog.Logger, dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fw.Close()
			return nil, err
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		watcher:  fw,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		log:      log.With().Str("component", "watcher").Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
	go w.processEvents()
	return w, nil
}

// Changes delivers one value per coalesced burst. It is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.cancel()
	return w.watcher.Close()
}

// relevant filters out temp files written by AtomicWriteFile.
func relevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || !strings.HasSuffix(base, fileExt) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// processEvents runs until Close and owns the changes channel.
func (w *Watcher) processEvents() {
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("history changed")
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already pending.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")
		}
	}
}

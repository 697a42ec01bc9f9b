// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for shellmind.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/util"
)

const (
	fileExt  = ".json"
	idPrefix = "chat_"
)

// =============================================================================
// STORE
// =============================================================================

// Store owns the two history directories: transcripts and their metadata
// sidecars. Files in both share the same name.
type Store struct {
	historyDir string
	detailsDir string
	log        zerolog.Logger

	// now is swapped in tests to pin identifiers and create dates.
	now func() time.Time
}

// NewStore creates a store over historyDir and detailsDir. The directories
// are created lazily on first write.
func NewStore(historyDir, detailsDir string, log zerolog.Logger) *Store {
	return &Store{
		historyDir: historyDir,
		detailsDir: detailsDir,
		log:        log.With().Str("component", "storage").Logger(),
		now:        time.Now,
	}
}

// HistoryDir returns the transcript directory.
func (s *Store) HistoryDir() string {
	return s.historyDir
}

// transcriptPath returns the transcript path for an identifier.
func (s *Store) transcriptPath(id string) string {
	return filepath.Join(s.historyDir, id+fileExt)
}

// metadataPath returns the sidecar path for an identifier.
func (s *Store) metadataPath(id string) string {
	return filepath.Join(s.detailsDir, id+fileExt)
}

// mintID returns a time-based identifier no existing transcript uses.
func (s *Store) mintID() string {
	ts := s.now().Unix()
	for {
		id := idPrefix + strconv.FormatInt(ts, 10)
		if _, err := os.Stat(s.transcriptPath(id)); err != nil {
			return id
		}
		ts++
	}
}

// =============================================================================
// FILE I/O
// =============================================================================

func (s *Store) writeMessages(id string, msgs []model.Message) error {
	if msgs == nil {
		msgs = []model.Message{}
	}
	path := s.transcriptPath(id)
	data, err := json.MarshalIndent(msgs, "", "    ")
	if err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (s *Store) readMessages(id string) ([]model.Message, error) {
	path := s.transcriptPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}

	var msgs []model.Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, &FormatError{ID: id, Err: err}
	}
	for i, m := range msgs {
		if _, err := model.ParseRole(string(m.Role)); err != nil {
			return nil, &FormatError{ID: id, Err: fmt.Errorf("message %d: %w", i, err)}
		}
	}
	return msgs, nil
}

func (s *Store) writeMetadata(id string, md model.Metadata) error {
	path := s.metadataPath(id)
	data, err := json.MarshalIndent(md, "", "    ")
	if err != nil {
		return &StorageError{Op: "encode", Path: path, Err: err}
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// readMetadata returns the sidecar for id. ok is false when the sidecar is
// missing or unreadable.
func (s *Store) readMetadata(id string) (model.Metadata, bool) {
	data, err := os.ReadFile(s.metadataPath(id))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("id", id).Msg("metadata unreadable")
		}
		return model.Metadata{}, false
	}
	var md model.Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		s.log.Warn().Err(err).Str("id", id).Msg("metadata corrupt")
		return model.Metadata{}, false
	}
	return md, true
}

// =============================================================================
// LIST OPERATIONS
// =============================================================================

type savedFile struct {
	id      string
	modTime time.Time
}

func (s *Store) savedFiles() ([]savedFile, error) {
	entries, err := os.ReadDir(s.historyDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StorageError{Op: "list", Path: s.historyDir, Err: err}
	}

	files := make([]savedFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Deleted between ReadDir and Info.
			continue
		}
		files = append(files, savedFile{id: strings.TrimSuffix(name, fileExt), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].modTime.Equal(files[j].modTime) {
			return files[i].modTime.After(files[j].modTime)
		}
		return files[i].id > files[j].id
	})
	return files, nil
}

// ListSaved returns every stored conversation identifier, most recently
// modified transcript first.
func (s *Store) ListSaved() ([]string, error) {
	files, err := s.savedFiles()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.id
	}
	return ids, nil
}

// Summary is one row of the history menu.
type Summary struct {
	ID       string
	Model    string
	Name     string
	Created  string
	Modified time.Time
}

// DisplayName returns Name, or "NO NAME" when unset.
func (s Summary) DisplayName() string {
	if s.Name == "" {
		return "NO NAME"
	}
	return s.Name
}

// Summaries returns history rows in ListSaved order, reading sidecars only.
func (s *Store) Summaries() ([]Summary, error) {
	files, err := s.savedFiles()
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(files))
	for _, f := range files {
		row := Summary{ID: f.id, Modified: f.modTime, Model: "unknown", Created: "unknown"}
		if md, ok := s.readMetadata(f.id); ok {
			if md.ModelName != "" {
				row.Model = md.ModelName
			}
			if md.CreateDate != "" {
				row.Created = md.CreateDate
			}
			row.Name = md.Name
		}
		out = append(out, row)
	}
	return out, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"

	"github.com/jeranaias/shellmind/internal/model"
	"github.com/jeranaias/shellmind/internal/util"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript binds a Conversation to its files in a Store. Every append is
// persisted immediately. A Transcript is used from the UI goroutine only.
type Transcript struct {
	store   *Store
	conv    *model.Conversation
	deleted bool
}

// New starts an empty, not yet persisted conversation for modelName.
func (s *Store) New(modelName string) *Transcript {
	return &Transcript{store: s, conv: model.NewConversation(modelName)}
}

// Open hydrates a saved conversation: messages first, then best-effort
// metadata.
func (s *Store) Open(id string) (*Transcript, error) {
	t := s.New("")
	if err := t.Load(id); err != nil {
		return nil, err
	}
	t.LoadMetadata(id)
	return t, nil
}

// Conversation returns the underlying conversation.
func (t *Transcript) Conversation() *model.Conversation {
	return t.conv
}

// ID returns the backing identifier, empty before the first persist.
func (t *Transcript) ID() string {
	return t.conv.ID
}

// Messages returns a copy of the message history.
func (t *Transcript) Messages() []model.Message {
	return t.conv.Messages()
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return t.conv.Len()
}

// Append adds a message and persists the transcript. The message stays in
// memory even when persisting fails.
func (t *Transcript) Append(role model.Role, content string) error {
	t.conv.Append(model.Message{Role: role, Content: content})
	return t.Persist()
}

// Persist writes the full message list, minting an identifier and writing
// the initial metadata on first use. After Delete it writes nothing.
func (t *Transcript) Persist() error {
	if t.deleted {
		return nil
	}
	if t.conv.ID == "" {
		t.conv.ID = t.store.mintID()
		t.conv.Created = t.store.now()
		if err := t.store.writeMetadata(t.conv.ID, t.conv.Metadata()); err != nil {
			t.store.log.Error().Err(err).Str("id", t.conv.ID).Msg("initial metadata write failed")
			// The transcript write below decides the result.
		}
		t.store.log.Info().Str("id", t.conv.ID).Str("model", t.conv.Model).Msg("conversation created")
	}

	if err := t.store.writeMessages(t.conv.ID, t.conv.Messages()); err != nil {
		t.store.log.Error().Err(err).Str("id", t.conv.ID).Msg("persist failed")
		return err
	}
	t.store.log.Debug().Str("id", t.conv.ID).Int("messages", t.conv.Len()).Msg("persisted")
	return nil
}

// Load replaces the in-memory messages with the transcript stored under id
// and adopts id as the backing identifier.
func (t *Transcript) Load(id string) error {
	msgs, err := t.store.readMessages(id)
	if err != nil {
		return err
	}
	t.conv.Replace(msgs)
	t.conv.ID = id
	return nil
}

// LoadMetadata applies the sidecar stored under id. A missing or corrupt
// sidecar keeps the current values.
func (t *Transcript) LoadMetadata(id string) {
	if md, ok := t.store.readMetadata(id); ok {
		t.conv.ApplyMetadata(md)
	}
}

// Rename sets the display name and writes the metadata immediately. Before
// the first persist the name is only held in memory; the first persist
// writes it.
func (t *Transcript) Rename(name string) error {
	t.conv.Name = name
	if t.conv.ID == "" || t.deleted {
		return nil
	}
	if err := t.store.writeMetadata(t.conv.ID, t.conv.Metadata()); err != nil {
		t.store.log.Error().Err(err).Str("id", t.conv.ID).Msg("rename failed")
		return err
	}
	t.store.log.Info().Str("id", t.conv.ID).Str("name", name).Msg("conversation renamed")
	return nil
}

// Delete removes the transcript and its sidecar. Deleting twice, or deleting
// a conversation that was never persisted, is not an error. Later appends
// stay in memory only, so a reply landing after the delete cannot bring the
// files back.
func (t *Transcript) Delete() error {
	if t.conv.ID == "" {
		t.deleted = true
		return nil
	}
	var errs []error
	for _, path := range []string{t.store.transcriptPath(t.conv.ID), t.store.metadataPath(t.conv.ID)} {
		if err := util.RemoveIfExists(path); err != nil {
			errs = append(errs, &StorageError{Op: "delete", Path: path, Err: err})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	t.deleted = true
	t.store.log.Info().Str("id", t.conv.ID).Msg("conversation deleted")
	return nil
}

// Deleted reports whether Delete has succeeded.
func (t *Transcript) Deleted() bool {
	return t.deleted
}

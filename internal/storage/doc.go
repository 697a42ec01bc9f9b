// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides conversation persistence for shellmind.
//
// Each conversation is two JSON files with the same name, chat_<unix>.json:
// the transcript (an array of {role, content}) under the history directory,
// and a {model_name, name, create_date} sidecar under history_details.
//
// # Key Types
//
//   - Store: owns the directories, lists saved conversations
//   - Transcript: one conversation bound to its files; persists on append
//   - Watcher: fsnotify-based change notification for the history menu
//   - StorageError, NotFoundError, FormatError: the failure taxonomy
//
// # Usage
//
//	store := storage.NewStore(paths.HistoryDir, paths.DetailsDir, log)
//	t := store.New("llama3")
//	if err := t.Append(model.RoleUser, "hello"); err != nil {
//	    // non-fatal: show a status line, the message stays in memory
//	}
//	ids, _ := store.ListSaved() // newest first
package storage

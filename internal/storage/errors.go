// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// Sentinel errors for errors.Is checks.
var (
	// ErrNotFound matches any NotFoundError.
	ErrNotFound = errors.New("conversation not found")

	// ErrFormat matches any FormatError.
	ErrFormat = errors.New("conversation file is not a valid transcript")
)

// StorageError reports a failed read or write of a history file. The
// transcript stays in memory; callers surface this as a status message.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a resume target with no transcript file.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation %s not found", e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FormatError reports a transcript that does not decode as a message list.
type FormatError struct {
	ID  string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("conversation %s is corrupt: %v", e.ID, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is matches ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the shellmind packages.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe replace via temp file, fsync and rename
//   - RemoveIfExists: idempotent delete
//
// Display Width (go-runewidth):
//   - TruncateWidth, PadWidth: column-aware cut and pad for menu rows
//   - WrapWidth: hard wrap for the chat render surface
//
// # Usage
//
//	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
//		return err
//	}
//	row := util.PadWidth(title, 40)
package util

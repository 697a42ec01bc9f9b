// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultThemeName selects the built-in palette.
const DefaultThemeName = "default"

// Palette entry names used by the UI.
const (
	EntryNormalBorder  = "normal_linebox_border"
	EntryFocusBorder   = "focus_linebox_border"
	EntryMenuVoice     = "menu_voice"
	EntryMenuSelected  = "menu_selected"
	EntryNormalContent = "normal_content"
	EntryWho           = "who"
	EntryAIMessage     = "ai_message"
	EntryUserMessage   = "user_message"
	EntryDivider       = "divider"
	EntryChatModel     = "chat_model_style"
	EntryStatus        = "status"
	EntryError         = "error"
)

// PaletteEntry is one named style in a palette.
type PaletteEntry struct {
	Name       string `toml:"name" json:"name"`
	Foreground string `toml:"foreground" json:"foreground"`
	Background string `toml:"background" json:"background"`
	Attributes string `toml:"attributes" json:"attributes"`
}

// Palette is an ordered list of entries. Later entries win on name clashes.
type Palette []PaletteEntry

// DefaultPalette returns the built-in palette.
func DefaultPalette() Palette {
	return Palette{
		{Name: EntryNormalBorder, Foreground: "dark gray"},
		{Name: EntryFocusBorder, Foreground: "light magenta"},
		{Name: EntryMenuVoice, Foreground: "white"},
		{Name: EntryMenuSelected, Foreground: "black", Background: "light cyan", Attributes: "bold"},
		{Name: EntryNormalContent, Foreground: "white"},
		{Name: EntryWho, Foreground: "light cyan", Attributes: "bold"},
		{Name: EntryAIMessage, Foreground: "white"},
		{Name: EntryUserMessage, Foreground: "light gray"},
		{Name: EntryDivider, Foreground: "dark gray"},
		{Name: EntryChatModel, Foreground: "yellow", Attributes: "bold"},
		{Name: EntryStatus, Foreground: "light magenta"},
		{Name: EntryError, Foreground: "light red", Attributes: "bold"},
	}
}

// Lookup returns the entry with the given name.
func (p Palette) Lookup(name string) (PaletteEntry, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Name == name {
			return p[i], true
		}
	}
	return PaletteEntry{}, false
}

// Merge overlays entries onto base. An entry replaces the base entry of the
// same name in place; unknown names are appended. Nameless entries are
// skipped and empty colors become the terminal default.
func Merge(base Palette, overlay []PaletteEntry) Palette {
	out := make(Palette, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.Name] = i
	}
	for _, e := range overlay {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if e.Foreground == "" {
			e.Foreground = ColorDefault
		}
		if e.Background == "" {
			e.Background = ColorDefault
		}
		if i, ok := index[e.Name]; ok {
			out[i] = e
			continue
		}
		index[e.Name] = len(out)
		out = append(out, e)
	}
	return out
}

// Validate checks every color and attribute in the palette.
func (p Palette) Validate() error {
	var errs []error
	for _, e := range p {
		if _, _, err := ParseColor(e.Foreground); err != nil {
			errs = append(errs, fmt.Errorf("%s foreground: %w", e.Name, err))
		}
		if _, _, err := ParseColor(e.Background); err != nil {
			errs = append(errs, fmt.Errorf("%s background: %w", e.Name, err))
		}
		if _, err := applyAttributes(emptyStyle(), e.Attributes); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ErrThemeNotFound is returned when no file exists for a theme name.
var ErrThemeNotFound = errors.New("theme not found")

// ThemeError reports a theme file that could not be used.
type ThemeError struct {
	Name string
	Path string
	Err  error
}

func (e *ThemeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("theme %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("theme %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *ThemeError) Unwrap() error { return e.Err }

type themeFile struct {
	Palette []PaletteEntry `toml:"palette" json:"palette"`
}

// LoadPalette resolves a theme name to a palette merged over the default.
// The palette is always usable: "default", a missing file, or an invalid
// file yield DefaultPalette, with a non-nil error for the latter two.
func LoadPalette(themesDir, name string) (Palette, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == DefaultThemeName {
		return DefaultPalette(), nil
	}
	path, err := findThemeFile(themesDir, name)
	if err != nil {
		return DefaultPalette(), &ThemeError{Name: name, Err: err}
	}
	entries, err := readThemeFile(path)
	if err != nil {
		return DefaultPalette(), &ThemeError{Name: name, Path: path, Err: err}
	}
	merged := Merge(DefaultPalette(), entries)
	if err := merged.Validate(); err != nil {
		return DefaultPalette(), &ThemeError{Name: name, Path: path, Err: err}
	}
	return merged, nil
}

func findThemeFile(dir, name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid theme name %q", name)
	}
	for _, ext := range []string{".toml", ".json"} {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrThemeNotFound
}

func readThemeFile(path string) ([]PaletteEntry, error) {
	var tf themeFile
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &tf); err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &tf); err != nil {
			return nil, err
		}
	}
	return tf.Palette, nil
}

// ListThemes returns "default" followed by the sorted theme names found in
// dir. A missing directory lists only the default.
func ListThemes(dir string) []string {
	names := []string{DefaultThemeName}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	seen := map[string]bool{DefaultThemeName: true}
	var found []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".toml" && ext != ".json" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		found = append(found, name)
	}
	sort.Strings(found)
	return append(names, found...)
}

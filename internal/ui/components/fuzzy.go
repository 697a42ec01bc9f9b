// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sort"
	"strings"
	"unicode"
)

// Score weights for FuzzyMatch.
const (
	scoreMatch       = 1
	scoreConsecutive = 5
	scoreStart       = 10
	scoreBoundary    = 7
	scoreExactCase   = 2
)

// FuzzyMatch reports whether every rune of query appears in target in
// order, ignoring case, and scores the match. Consecutive runes, word
// boundaries and a match at the start of target score higher. Shorter
// targets win ties.
func FuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	q := []rune(query)
	t := []rune(target)
	lq := []rune(strings.ToLower(query))
	lt := []rune(strings.ToLower(target))
	if len(lq) > len(lt) {
		return 0, false
	}

	qi, last := 0, -1
	for ti := 0; ti < len(lt) && qi < len(lq); ti++ {
		if lt[ti] != lq[qi] {
			continue
		}
		s := scoreMatch
		if last == ti-1 {
			s += scoreConsecutive
		}
		if ti == 0 {
			s += scoreStart
		}
		if isWordBoundary(lt, t, ti) {
			s += scoreBoundary
		}
		if ti < len(t) && qi < len(q) && t[ti] == q[qi] {
			s += scoreExactCase
		}
		score += s
		last = ti
		qi++
	}

	if qi != len(lq) {
		return 0, false
	}
	return score - len(lt)/4, true
}

// isWordBoundary is true at the start of target, after a separator, and on
// a lower-to-upper case change in the original text.
func isWordBoundary(lower, orig []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	if pos >= len(lower) {
		return false
	}
	switch lower[pos-1] {
	case ' ', '/', '-', '_', '.', ':':
		return true
	}
	if pos < len(orig) && unicode.IsLower(orig[pos-1]) && unicode.IsUpper(orig[pos]) {
		return true
	}
	return false
}

// Rank returns the indexes of targets matching query, best first. Equal
// scores keep their original order.
func Rank(query string, targets []string) []int {
	type scored struct {
		index int
		score int
	}
	var hits []scored
	for i, target := range targets {
		if s, ok := FuzzyMatch(query, target); ok {
			hits = append(hits, scored{index: i, score: s})
		}
	}
	if query != "" {
		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].score > hits[j].score
		})
	}

	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.index
	}
	return out
}

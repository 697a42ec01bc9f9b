// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"reflect"
	"testing"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		query, target string
		want          bool
	}{
		{"", "anything", true},
		{"ll", "llama3", true},
		{"l3", "llama3", true},
		{"LLA", "llama3", true},
		{"mst", "mistral", true},
		{"xyz", "mistral", false},
		{"llama3x", "llama3", false},
		{"ab", "ba", false},
	}
	for _, tc := range tests {
		if _, got := FuzzyMatch(tc.query, tc.target); got != tc.want {
			t.Errorf("FuzzyMatch(%q, %q) matched = %v, want %v", tc.query, tc.target, got, tc.want)
		}
	}
}

func TestFuzzyMatchPrefersConsecutiveAndStart(t *testing.T) {
	prefix, _ := FuzzyMatch("mis", "mistral")
	scattered, _ := FuzzyMatch("mis", "macintosh")
	if prefix <= scattered {
		t.Errorf("prefix score %d should beat scattered score %d", prefix, scattered)
	}

	boundary, _ := FuzzyMatch("c", "code-llama")
	inner, _ := FuzzyMatch("c", "mixtral-coder")
	if boundary <= inner {
		t.Errorf("start score %d should beat boundary score %d", boundary, inner)
	}
}

func TestRank(t *testing.T) {
	targets := []string{"mistral", "llama3", "macintosh", "phi3"}

	got := Rank("mis", targets)
	want := []int{0, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank(mis) = %v, want %v", got, want)
	}

	all := Rank("", targets)
	if !reflect.DeepEqual(all, []int{0, 1, 2, 3}) {
		t.Errorf("Rank(\"\") = %v, want original order", all)
	}

	if none := Rank("zzz", targets); len(none) != 0 {
		t.Errorf("Rank(zzz) = %v, want empty", none)
	}
}

// Flashpoint Archive
// Copyright (c) 2026 The Flashpoint Archive Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Flashpoint Archive.
//
// Flashpoint Archive is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Flashpoint Archive is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Flashpoint Archive.  If not, see <http://www.gnu.org/licenses/>.

package search

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// wordGen generates a plain alphanumeric word with no operator characters,
// safe to embed unquoted in a DSL token.
func wordGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9]{0,12}`)
}

func stringKeyGen() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"library", "title", "developer", "publisher", "series", "tag", "platform"})
}

// TestPropertyParseNeverPanics throws arbitrary text at the parser and only
// requires that it returns without panicking and always yields a Descriptor.
func TestPropertyParseNeverPanics(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "input")
		res := Parse(in, nil)
		if res == nil || res.Descriptor == nil {
			t.Fatal("Parse must always return a non-nil Descriptor")
		}
	})
}

// TestPropertyParseKeyValueRoundTrips checks that a single well-formed
// `key:value` whitelist term lands in the field the key names, with the
// value preserved verbatim.
func TestPropertyParseKeyValueRoundTrips(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		key := stringKeyGen().Draw(t, "key")
		value := wordGen().Draw(t, "value")

		res := Parse(key+":"+value, nil)
		f := res.Descriptor.Filter

		got := fieldSlice(&f.Whitelist, key)
		if len(got) != 1 || got[0] != value {
			t.Fatalf("key:value %q:%q did not round-trip, got %v", key, value, got)
		}
	})
}

// TestPropertyParseNegativePrefixRoutesToBlacklist checks that a leading
// `-` always moves a key:value term from whitelist to blacklist.
func TestPropertyParseNegativePrefixRoutesToBlacklist(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		key := stringKeyGen().Draw(t, "key")
		value := wordGen().Draw(t, "value")

		res := Parse("-"+key+":"+value, nil)
		f := res.Descriptor.Filter

		if len(fieldSlice(&f.Whitelist, key)) != 0 {
			t.Fatal("negative-prefixed term leaked into whitelist")
		}
		got := fieldSlice(&f.Blacklist, key)
		if len(got) != 1 || got[0] != value {
			t.Fatalf("-%s:%s did not land in blacklist, got %v", key, value, got)
		}
	})
}

// TestPropertyParsePlaytimeDurationIsAdditive checks that an hours+minutes
// suffix sums to the expected number of seconds, for any non-negative
// integer magnitudes.
func TestPropertyParsePlaytimeDurationIsAdditive(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		hours := rapid.IntRange(0, 999).Draw(t, "hours")
		minutes := rapid.IntRange(0, 59).Draw(t, "minutes")

		res := Parse(fmt.Sprintf("playtime>%dh%dm", hours, minutes), nil)
		f := res.Descriptor.Filter

		want := float64(hours*3600 + minutes*60)
		got, ok := f.HigherThan[FieldPlaytime]
		if !ok {
			t.Fatalf("expected higher-than.playtime to be set for %dh%dm", hours, minutes)
		}
		if got != want {
			t.Fatalf("playtime>%dh%dm: want %v seconds, got %v", hours, minutes, want, got)
		}
	})
}

// TestPropertyParseQuotedValuePreservesInternalOperators checks that a
// quoted value keeps any embedded colon/dash/equals characters literal.
func TestPropertyParseQuotedValuePreservesInternalOperators(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		key := stringKeyGen().Draw(t, "key")
		inner := rapid.StringMatching(`[a-zA-Z0-9:=_ -]{1,20}`).Draw(t, "inner")

		res := Parse(key+`:"`+inner+`"`, nil)
		f := res.Descriptor.Filter

		got := fieldSlice(&f.Whitelist, key)
		if len(got) != 1 || got[0] != inner {
			t.Fatalf("quoted value %q not preserved, got %v", inner, got)
		}
	})
}

func fieldSlice(fb *FieldFilter, key string) []string {
	switch key {
	case "library":
		return fb.Library
	case "title":
		return fb.Title
	case "developer":
		return fb.Developer
	case "publisher":
		return fb.Publisher
	case "series":
		return fb.Series
	case "tag":
		return fb.Tags
	case "platform":
		return fb.Platforms
	default:
		return fb.Generic
	}
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Shorthands(t *testing.T) {
	res := Parse(`#Action -!Flash @"armor games"`, nil)
	f := res.Descriptor.Filter
	assert.Equal(t, []string{"Action"}, f.Whitelist.Tags)
	assert.Equal(t, []string{"Flash"}, f.Blacklist.Platforms)
	assert.Equal(t, []string{"armor games"}, f.Whitelist.Developer)
}

func TestParse_QuotedColonPreservedAndEmptyValueForcesExact(t *testing.T) {
	res := Parse(`series:"sonic:hedgehog" -developer:""`, nil)
	f := res.Descriptor.Filter
	assert.Equal(t, []string{"sonic:hedgehog"}, f.Whitelist.Series)
	assert.Equal(t, []string{""}, f.ExactBlacklist.Developer)
	assert.Empty(t, f.Blacklist.Developer)
}

func TestParse_ComparisonOperators(t *testing.T) {
	res := Parse(`playtime>1h30m tags=3`, nil)
	f := res.Descriptor.Filter
	require.Contains(t, f.HigherThan, FieldPlaytime)
	assert.InDelta(t, 5400, f.HigherThan[FieldPlaytime], 0.001)
	require.Contains(t, f.EqualTo, FieldTagCount)
	assert.InDelta(t, 3, f.EqualTo[FieldTagCount], 0.001)
}

func TestParse_DemotesExactPrefixWithoutColonToGenericText(t *testing.T) {
	res := Parse(`=standalone`, nil)
	f := res.Descriptor.Filter
	assert.Empty(t, f.ExactWhitelist.Generic)
	assert.Equal(t, []string{"=standalone"}, f.Whitelist.Generic)
}

func TestParse_UnknownKeyFallsThroughToGenericText(t *testing.T) {
	res := Parse(`bogus:value`, nil)
	f := res.Descriptor.Filter
	assert.Equal(t, []string{"bogus:value"}, f.Whitelist.Generic)
	assert.NotEmpty(t, res.Warnings)
}

func TestParse_BrokenQuoteConsumesToEndOfInput(t *testing.T) {
	res := Parse(`developer:"unterminated and more`, nil)
	f := res.Descriptor.Filter
	require.Len(t, f.Whitelist.Developer, 1)
	assert.Equal(t, `"unterminated and more`, f.Whitelist.Developer[0])
}

func TestParse_BooleanField(t *testing.T) {
	res := Parse(`installed=true`, nil)
	f := res.Descriptor.Filter
	require.Contains(t, f.BoolComp, FieldInstalled)
	assert.True(t, f.BoolComp[FieldInstalled])
}

func TestParse_NeverErrorsOnGarbageInput(t *testing.T) {
	inputs := []string{"", `"""`, `---`, `:::`, `@#!=-`, "\t\n  "}
	for _, in := range inputs {
		res := Parse(in, nil)
		assert.NotNil(t, res.Descriptor)
	}
}

func TestParse_ExtensionFieldRouting(t *testing.T) {
	lookup := stubExtLookup{
		"rating": ExtFieldDef{ExtensionID: "ext1", Key: "rating", ValueType: ExtNumber},
	}
	res := Parse(`rating>4`, lookup)
	f := res.Descriptor.Filter
	require.Len(t, f.Ext, 1)
	assert.Equal(t, "ext1", f.Ext[0].Field.ExtensionID)
	assert.Equal(t, CompareGt, f.Ext[0].Op)
	require.NotNil(t, f.Ext[0].Num)
	assert.InDelta(t, 4, *f.Ext[0].Num, 0.001)
}

type stubExtLookup map[string]ExtFieldDef

func (s stubExtLookup) Lookup(key string) (ExtFieldDef, bool) {
	def, ok := s[key]
	return def, ok
}

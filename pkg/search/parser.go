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
	"strconv"
	"strings"
)

// ParseResult is what Parse returns: the compiled descriptor, plus any
// non-fatal notes about input the parser could not make sense of. Parse
// itself never fails - unparsable terms degrade to generic text - so
// Warnings exists purely for callers that want to surface "did you mean"
// diagnostics to a user.
type ParseResult struct {
	Descriptor *Descriptor
	Warnings   []string
}

// builtin string field keys, recognised case-insensitively.
const (
	keyLibrary   = "library"
	keyTitle     = "title"
	keyDeveloper = "developer"
	keyPublisher = "publisher"
	keySeries    = "series"
	keyTag       = "tag"
	keyPlatform  = "platform"
)

// builtin numeric/time field keys.
const (
	keyPlaytime  = "playtime"
	keyPlayCount = "playcount"
	keyTags      = "tags"
	keyPlatforms = "platforms"
	keyAddApps   = "addapps"
	keyGameData  = "gamedata"
	keyLastPlay  = "lastplayed"
)

const keyInstalled = "installed"

var numericFields = map[string]NumericField{
	keyPlaytime:  FieldPlaytime,
	keyPlayCount: FieldPlayCount,
	keyTags:      FieldTagCount,
	keyPlatforms: FieldPlatformCount,
	keyAddApps:   FieldAddApps,
	keyGameData:  FieldGameData,
	keyLastPlay:  FieldLastPlayed,
}

var boolFields = map[string]BoolField{
	keyInstalled: FieldInstalled,
}

// timeUnitFields are the numeric fields whose values accept duration
// suffixes (s, m, h, d) instead of a bare number.
var timeUnitFields = map[NumericField]bool{
	FieldPlaytime:    true,
	FieldLastPlayed:  true,
}

// Parse converts one line of free text into a Descriptor. It never
// returns an error: every token produces either a structured filter term
// or a generic-text term in the bucket its -/= prefixes select. exts may be nil, in which case no
// extension keys are recognised and every unknown key falls through to
// the generic bucket.
func Parse(input string, exts ExtensionLookup) *ParseResult {
	if exts == nil {
		exts = NopExtensionLookup{}
	}
	d := NewDescriptor()
	res := &ParseResult{Descriptor: d}

	for _, tok := range tokenize(input) {
		parseToken(tok, d.Filter, exts, res)
	}
	return res
}

// tokenize splits input on whitespace, except that a token containing an
// unterminated `"` opens a quoted span absorbing subsequent whitespace
// and tokens literally until a closing `"` is seen (or input ends, per
// the documented "broken quotes consume to end-of-input" failure mode).
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false
	hasContent := false

	flush := func() {
		if hasContent {
			tokens = append(tokens, cur.String())
			cur.Reset()
			hasContent = false
		}
	}

	for _, r := range input {
		if inQuote {
			cur.WriteRune(r)
			if r == '"' {
				inQuote = false
			}
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			flush()
			continue
		}
		cur.WriteRune(r)
		hasContent = true
		if r == '"' {
			inQuote = true
		}
	}
	flush()
	return tokens
}

// stripQuotes removes one layer of enclosing double quotes, if both the
// first and last rune of s are `"`. A lone or unterminated quote rune is
// left as-is rather than mangled.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// firstUnquoted returns the index of the first rune in s that is one of
// cutset, scanning only outside any quoted span. It is used to find the
// key/value separator without being fooled by separators that occur
// inside a quoted value (e.g. `series:"sonic:hedgehog"`).
func firstUnquoted(s string, cutset string) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		if strings.IndexByte(cutset, c) >= 0 {
			return i
		}
	}
	return -1
}

func parseToken(tok string, root *Filter, exts ExtensionLookup, res *ParseResult) {
	if tok == "" {
		return
	}

	negative := false
	exact := false

	if strings.HasPrefix(tok, "-") {
		negative = true
		tok = tok[1:]
	}
	hadExactPrefix := false
	if strings.HasPrefix(tok, "=") {
		exact = true
		hadExactPrefix = true
		tok = tok[1:]
	}

	// Shorthand prefixes imply both key and value; no further key
	// splitting is attempted once one fires.
	var shorthandKey string
	if tok != "" {
		switch tok[0] {
		case '#':
			shorthandKey = keyTag
			tok = tok[1:]
		case '!':
			shorthandKey = keyPlatform
			tok = tok[1:]
		case '@':
			shorthandKey = keyDeveloper
			tok = tok[1:]
		}
	}

	if shorthandKey != "" {
		value := stripQuotes(tok)
		routeStringTerm(root, shorthandKey, value, negative, forceExactOnEmpty(exact, value))
		return
	}

	// key:value form - the separator must appear before any quote opens.
	if idx := firstUnquoted(tok, ":"); idx >= 0 {
		key := strings.ToLower(tok[:idx])
		value := stripQuotes(tok[idx+1:])
		if routeKeyedTerm(root, key, value, negative, exact, exts, res) {
			return
		}
		// unrecognised key: value falls through to generic bucket below,
		// carrying the whole original (key:value) text as typed by the user.
		res.Warnings = append(res.Warnings, "unknown key \""+key+"\" treated as generic text")
		tok = tok[:idx] + ":" + tok[idx+1:]
	} else if idx := firstUnquoted(tok, "><="); idx >= 0 {
		key := strings.ToLower(tok[:idx])
		op := tok[idx]
		value := stripQuotes(tok[idx+1:])
		if routeComparisonTerm(root, key, op, value, exts, res) {
			return
		}
		res.Warnings = append(res.Warnings, "unknown comparison key \""+key+"\" treated as generic text")
	}

	// Generic term. If `=` was a stripped prefix but no field was
	// recognised, it is demoted back onto the literal text.
	value := stripQuotes(tok)
	if hadExactPrefix {
		exact = false
		value = "=" + value
	}
	routeStringTerm(root, "", value, negative, forceExactOnEmpty(exact, value))
}

// forceExactOnEmpty implements the rule that an explicitly empty value
// (`key:""`) always compares by equality: a substring LIKE '%%' against
// an empty string matches every row, which would make a blacklist or
// whitelist of "" meaningless under substring semantics.
func forceExactOnEmpty(exact bool, value string) bool {
	if value == "" {
		return true
	}
	return exact
}

// routeKeyedTerm handles an explicit `key:value` term. It returns false
// if key is not a recognised string field or registered extension
// string field, signalling the caller to fall back to a generic term.
func routeKeyedTerm(root *Filter, key, value string, negative, exact bool, exts ExtensionLookup, res *ParseResult) bool {
	switch key {
	case keyLibrary, keyTitle, keyDeveloper, keyPublisher, keySeries, keyTag, keyPlatform:
		routeStringTerm(root, key, value, negative, forceExactOnEmpty(exact, value))
		return true
	}
	if def, ok := exts.Lookup(key); ok && def.ValueType == ExtString {
		root.Ext = append(root.Ext, ExtValue{
			Field: ExtField{ExtensionID: def.ExtensionID, Key: def.Key},
			Str:   strPtr(value),
			Op:    CompareEq,
		})
		return true
	}
	return false
}

// routeComparisonTerm handles `key>value`, `key<value`, `key=value`
// forms against numeric, boolean, or extension fields.
func routeComparisonTerm(root *Filter, key string, op byte, value string, exts ExtensionLookup, res *ParseResult) bool {
	if nf, ok := numericFields[key]; ok {
		num, ok := parseNumericValue(nf, value)
		if !ok {
			res.Warnings = append(res.Warnings, "unparsable numeric value \""+value+"\" for key \""+key+"\"")
			return false
		}
		switch op {
		case '>':
			root.HigherThan[nf] = num
		case '<':
			root.LowerThan[nf] = num
		case '=':
			root.EqualTo[nf] = num
		}
		return true
	}
	if bf, ok := boolFields[key]; ok {
		b, ok := parseBoolValue(value)
		if !ok {
			res.Warnings = append(res.Warnings, "unparsable boolean value \""+value+"\" for key \""+key+"\"")
			return false
		}
		root.BoolComp[bf] = b
		return true
	}
	if def, ok := exts.Lookup(key); ok {
		ev := ExtValue{Field: ExtField{ExtensionID: def.ExtensionID, Key: def.Key}}
		switch op {
		case '>':
			ev.Op = CompareGt
		case '<':
			ev.Op = CompareLt
		default:
			ev.Op = CompareEq
		}
		switch def.ValueType {
		case ExtNumber:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return false
			}
			ev.Num = &n
		case ExtBool:
			b, ok := parseBoolValue(value)
			if !ok {
				return false
			}
			ev.Bool = &b
		default:
			ev.Str = strPtr(value)
		}
		root.Ext = append(root.Ext, ev)
		return true
	}
	return false
}

// routeStringTerm places value into the correct one of the four
// polarity buckets for field key (key=="" meaning the generic bucket).
func routeStringTerm(root *Filter, key, value string, negative, exact bool) {
	var bucket *FieldFilter
	switch {
	case !negative && !exact:
		bucket = &root.Whitelist
	case negative && !exact:
		bucket = &root.Blacklist
	case !negative && exact:
		bucket = &root.ExactWhitelist
	default:
		bucket = &root.ExactBlacklist
	}
	switch key {
	case keyLibrary:
		bucket.Library = append(bucket.Library, value)
	case keyTitle:
		bucket.Title = append(bucket.Title, value)
	case keyDeveloper:
		bucket.Developer = append(bucket.Developer, value)
	case keyPublisher:
		bucket.Publisher = append(bucket.Publisher, value)
	case keySeries:
		bucket.Series = append(bucket.Series, value)
	case keyTag:
		bucket.Tags = append(bucket.Tags, value)
	case keyPlatform:
		bucket.Platforms = append(bucket.Platforms, value)
	default:
		bucket.Generic = append(bucket.Generic, value)
	}
}

func parseBoolValue(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// parseNumericValue parses value as a bare float, or, for the
// time-unit-bearing fields, as an additive duration like "1h30m" (s, m,
// h, d suffixes), returning the total in seconds.
func parseNumericValue(field NumericField, value string) (float64, bool) {
	if timeUnitFields[field] {
		if seconds, ok := parseDurationSuffixed(value); ok {
			return seconds, true
		}
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDurationSuffixed parses strings of the form "1h30m", "90s", "2d"
// into a total number of seconds. It requires at least one recognised
// unit suffix; a plain number without any suffix is not accepted here so
// callers can fall back to treating it as a bare numeric value.
func parseDurationSuffixed(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}
	var total float64
	var numStart int
	foundUnit := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= '0' && c <= '9' {
			continue
		}
		unit := c
		numPart := value[numStart:i]
		if numPart == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(numPart, 64)
		if err != nil {
			return 0, false
		}
		switch unit {
		case 's':
			total += n
		case 'm':
			total += n * 60
		case 'h':
			total += n * 3600
		case 'd':
			total += n * 86400
		default:
			return 0, false
		}
		foundUnit = true
		numStart = i + 1
	}
	if numStart != len(value) {
		return 0, false
	}
	if !foundUnit {
		return 0, false
	}
	return total, true
}

func strPtr(s string) *string { return &s }

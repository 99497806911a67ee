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

// Package search holds the language-neutral representation of a catalog
// query (Descriptor), the free-text DSL parser that produces one, and the
// compiler that lowers it to a parameterised SQL statement. None of this
// package touches a database connection; it only builds strings and values.
package search

// SortColumn is the enumeration of order-by columns a Descriptor may name.
type SortColumn int

const (
	SortTitle SortColumn = iota
	SortRandom
	SortDateAdded
	SortDateModified
	SortReleaseDate
	SortSeries
	SortDeveloper
	SortPublisher
	SortLastPlayed
	SortPlaytime
	SortCustomOrder
)

// Direction is the ordering direction for a non-random sort.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Order is the descriptor's sort column and direction.
type Order struct {
	Column    SortColumn
	Direction Direction
}

// Offset is a keyset pagination cursor: the order column's value for the
// last row of the previous page, plus the (title, id) tie-break pair that
// makes the triple comparison deterministic under duplicate order values.
type Offset struct {
	Value string
	Title string
	ID    string
}

// LoadRelations controls which per-title relation collections the result
// loader populates. An unset flag means the corresponding field is left
// nil on the returned Title, not emptied - callers can tell "not loaded"
// from "loaded and empty".
type LoadRelations struct {
	Tags              bool
	Platforms         bool
	PayloadManifests  bool
	AuxiliaryLaunchers bool
}

// UnboundedLimit is the sentinel the compiler treats as "no limit". The
// original implementation used a handful of different large literals for
// this (see the Open Question decisions in DESIGN.md); this port
// standardises on one.
const UnboundedLimit = 99999999999

// FieldFilter is one of the four polarity buckets (whitelist, blacklist,
// exact-whitelist, exact-blacklist) for the scalar/multi-value fields a
// Filter can constrain. A nil or empty slice means "field not used".
type FieldFilter struct {
	Generic    []string
	Library    []string
	Title      []string
	Developer  []string
	Publisher  []string
	Series     []string
	Tags       []string
	Platforms  []string
}

// IsEmpty reports whether every field of the FieldFilter is unset.
func (f *FieldFilter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return len(f.Generic) == 0 && len(f.Library) == 0 && len(f.Title) == 0 &&
		len(f.Developer) == 0 && len(f.Publisher) == 0 && len(f.Series) == 0 &&
		len(f.Tags) == 0 && len(f.Platforms) == 0
}

// NumericField names a comparable numeric field recognised by the DSL's
// comparison operators (>, <, =).
type NumericField int

const (
	FieldPlaytime NumericField = iota
	FieldPlayCount
	FieldTagCount
	FieldPlatformCount
	FieldAddApps
	FieldGameData
	FieldLastPlayed
)

// BoolField names a boolean-valued field recognised by the DSL.
type BoolField int

const (
	FieldInstalled BoolField = iota
)

// ExtField identifies a caller-registered extension field: which extension
// it belongs to, and the field key within that extension (see the
// Extension Registry in package archive).
type ExtField struct {
	ExtensionID string
	Key         string
}

// ExtValue is a typed value bound to an ExtField in a Filter.
type ExtValue struct {
	Field ExtField
	// exactly one of these is meaningful, selected by the extension's
	// declared value type.
	Str  *string
	Bool *bool
	Num  *float64
	// Op is the comparison operator used for Num/Str comparisons; for
	// boolean and equality-only fields it is always CompareEq.
	Op CompareOp
}

// CompareOp is a numeric/extension-field comparison operator.
type CompareOp int

const (
	CompareEq CompareOp = iota
	CompareGt
	CompareLt
)

// Filter is one recursive node of the boolean filter tree. The eight
// maps/lists of spec.md §4.2 are represented here as typed fields rather
// than maps-of-maps, since Go's struct fields give the same "one list per
// field" shape with compile-time field names.
type Filter struct {
	Whitelist      FieldFilter
	Blacklist      FieldFilter
	ExactWhitelist FieldFilter
	ExactBlacklist FieldFilter

	HigherThan map[NumericField]float64
	LowerThan  map[NumericField]float64
	EqualTo    map[NumericField]float64
	BoolComp   map[BoolField]bool
	Ext        []ExtValue

	Subfilters []*Filter

	// MatchAny selects OR semantics across every populated field and
	// every subfilter at this level (AND is the default, MatchAny=false).
	MatchAny bool
}

// NewFilter returns an empty, AND-mode Filter node.
func NewFilter() *Filter {
	return &Filter{
		HigherThan: map[NumericField]float64{},
		LowerThan:  map[NumericField]float64{},
		EqualTo:    map[NumericField]float64{},
		BoolComp:   map[BoolField]bool{},
	}
}

// IsEmpty reports whether this node constrains anything at all; a node
// with any subfilter counts as non-empty, even if that subfilter is empty. Per spec.md §8, match_any=true over a wholly empty
// filter tree must still match every row, so callers compiling WHERE
// clauses need to be able to distinguish "empty" from "one empty clause".
func (f *Filter) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.Whitelist.IsEmpty() && f.Blacklist.IsEmpty() &&
		f.ExactWhitelist.IsEmpty() && f.ExactBlacklist.IsEmpty() &&
		len(f.HigherThan) == 0 && len(f.LowerThan) == 0 && len(f.EqualTo) == 0 &&
		len(f.BoolComp) == 0 && len(f.Ext) == 0 && len(f.Subfilters) == 0
}

// MergeFilters ANDs two filter trees together by nesting both as
// subfilters of a fresh, non-match-any parent. Grounded on the original
// implementation's merge_game_filters helper (see SPEC_FULL.md).
func MergeFilters(a, b *Filter) *Filter {
	merged := NewFilter()
	merged.MatchAny = false
	if a != nil {
		merged.Subfilters = append(merged.Subfilters, a)
	}
	if b != nil {
		merged.Subfilters = append(merged.Subfilters, b)
	}
	return merged
}

// Descriptor is the compiled, in-memory representation of a search: a
// filter tree, relation-load flags, ordering, pagination cursor, limit,
// slim-column flag and optional tag-filter-index selector.
type Descriptor struct {
	Filter        *Filter
	LoadRelations LoadRelations
	Order         Order
	Offset        *Offset
	Limit         int64
	Slim          bool

	// WithTagFilter, when non-empty, forces use of the precomputed
	// tag-filter index for this (canonicalised) denylist - see package
	// archive's tag-filter index manager.
	WithTagFilter []string
}

// NewDescriptor returns a Descriptor with the documented defaults: title
// order ascending, no cursor, a generous but bounded default limit, full
// (non-slim) columns, and no relations loaded.
func NewDescriptor() *Descriptor {
	return &Descriptor{
		Filter: NewFilter(),
		Order:  Order{Column: SortTitle, Direction: Asc},
		Limit:  1000,
	}
}

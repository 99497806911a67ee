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
	"strings"
)

// Intent selects which of the compiler's six statement shapes to produce
// from the same Descriptor.
type Intent int

const (
	Count Intent = iota
	FetchFull
	FetchSlim
	FetchPageBoundaries
	PopulateTagFilterIndex
	FetchRandom
)

const (
	colID          = "title.id"
	colTitle       = "title.title"
	colAltTitles   = "title.alternate_titles"
	colSeries      = "title.series"
	colDeveloper   = "title.developer"
	colPublisher   = "title.publisher"
	colLibrary     = "title.library"
	colPlatformStr = "title.platforms_str"
	colPrimaryPlat = "title.primary_platform"
	colTagStr      = "title.tags_str"
	colPlaytime    = "title.playtime_seconds"
	colPlayCount   = "title.play_counter"
	colLastPlayed  = "title.last_played"
	colDateAdded   = "title.date_added"
	colDateModif   = "title.date_modified"
	colReleaseDate = "title.release_date"
)

var slimColumns = []string{
	colID, colTitle, colSeries, colDeveloper, colPublisher,
	colPlatformStr, colPrimaryPlat, colTagStr, colLibrary,
}

var fullColumns = append(append([]string{}, slimColumns...),
	colAltTitles, colPlaytime, colPlayCount, colLastPlayed,
	colDateAdded, colDateModif, colReleaseDate,
	"title.status", "title.play_mode", "title.application_path",
	"title.launch_command", "title.active_data_id",
	"title.broken", "title.extreme", "title.original_description",
	"title.source", "title.language", "title.version",
)

// Compile lowers a Descriptor into SQL text plus an ordered Param list
// for the given Intent. It fails only when the Order names a sort column
// the compiler does not recognise, or when intent is not one of the six
// Intent values.
func Compile(d *Descriptor, intent Intent) (string, []Param, error) {
	var b strings.Builder
	var params []Param

	whereSQL, whereParams, err := compileWhere(d)
	if err != nil {
		return "", nil, err
	}

	switch intent {
	case Count:
		b.WriteString("SELECT COUNT(*) FROM title")
		writeJoins(&b, d, false)
		b.WriteString(" WHERE ")
		b.WriteString(whereSQL)
		params = whereParams

	case PopulateTagFilterIndex:
		b.WriteString("INSERT INTO tag_filter_index (id) SELECT title.id FROM title")
		writeJoins(&b, d, false)
		b.WriteString(" WHERE ")
		b.WriteString(whereSQL)
		params = whereParams

	case FetchFull, FetchSlim:
		cols := fullColumns
		if intent == FetchSlim {
			cols = slimColumns
		}
		b.WriteString("SELECT ")
		b.WriteString(strings.Join(cols, ", "))
		b.WriteString(" FROM title")
		needsCustomOrderJoin := d.Order.Column == SortCustomOrder
		writeJoins(&b, d, needsCustomOrderJoin)
		b.WriteString(" WHERE ")
		b.WriteString(whereSQL)
		params = whereParams

		orderSQL, err := orderClause(d.Order)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(orderSQL)

		b.WriteString(fmt.Sprintf(" LIMIT %d", clampLimit(d.Limit)))

	case FetchRandom:
		cols := fullColumns
		b.WriteString("SELECT ")
		b.WriteString(strings.Join(cols, ", "))
		b.WriteString(" FROM title")
		writeJoins(&b, d, false)
		b.WriteString(" WHERE ")
		b.WriteString(whereSQL)
		params = whereParams
		b.WriteString(" ORDER BY RANDOM()")
		b.WriteString(fmt.Sprintf(" LIMIT %d", clampLimit(d.Limit)))

	case FetchPageBoundaries:
		needsCustomOrderJoin := d.Order.Column == SortCustomOrder
		orderSQL, err := orderClause(d.Order)
		if err != nil {
			return "", nil, err
		}
		b.WriteString("SELECT sub.id FROM (SELECT title.id AS id, ROW_NUMBER() OVER (ORDER BY ")
		b.WriteString(orderSQL)
		b.WriteString(") AS rn FROM title")
		writeJoins(&b, d, needsCustomOrderJoin)
		b.WriteString(" WHERE ")
		b.WriteString(whereSQL)
		b.WriteString(") sub WHERE sub.rn % ? = 0")
		params = append(append([]Param{}, whereParams...), ScalarParam(clampLimit(d.Limit)))

	default:
		return "", nil, fmt.Errorf("search: unknown intent %d", intent)
	}

	return b.String(), params, nil
}

func clampLimit(limit int64) int64 {
	if limit < 0 {
		return 0
	}
	return limit
}

// writeJoins appends the tag-filter-index INNER JOIN (if the descriptor
// requests it) and the custom-order LEFT JOIN (if requested) to b.
func writeJoins(b *strings.Builder, d *Descriptor, customOrder bool) {
	if len(d.WithTagFilter) > 0 {
		b.WriteString(" INNER JOIN tag_filter_index ON title.id = tag_filter_index.id")
	}
	if customOrder {
		b.WriteString(" LEFT JOIN custom_id_order ON custom_id_order.title_id = title.id")
	}
}

// compileWhere builds the full WHERE-clause body: the filter tree,
// ANDed with the keyset offset comparison when one is present. Offset
// params are emitted first so their position in the param slice matches
// the position of their placeholders in the generated text.
func compileWhere(d *Descriptor) (string, []Param, error) {
	var clauses []string
	var params []Param

	if d.Offset != nil {
		orderCol, err := sortColumnName(d.Order.Column)
		if err != nil {
			return "", nil, err
		}
		op := ">"
		if d.Order.Direction == Desc {
			op = "<"
		}
		clauses = append(clauses, fmt.Sprintf("(%s, %s, %s) %s (?, ?, ?)", orderCol, colTitle, colID, op))
		params = append(params, ScalarParam(d.Offset.Value), ScalarParam(d.Offset.Title), ScalarParam(d.Offset.ID))
	}

	filterSQL, filterParams := compileFilter(d.Filter)
	clauses = append(clauses, filterSQL)
	params = append(params, filterParams...)

	return strings.Join(clauses, " AND "), params, nil
}

func sortColumnName(c SortColumn) (string, error) {
	switch c {
	case SortTitle:
		return colTitle, nil
	case SortDateAdded:
		return colDateAdded, nil
	case SortDateModified:
		return colDateModif, nil
	case SortReleaseDate:
		return colReleaseDate, nil
	case SortSeries:
		return colSeries, nil
	case SortDeveloper:
		return colDeveloper, nil
	case SortPublisher:
		return colPublisher, nil
	case SortLastPlayed:
		return colLastPlayed, nil
	case SortPlaytime:
		return colPlaytime, nil
	case SortCustomOrder:
		return "custom_id_order.ord", nil
	case SortRandom:
		return "RANDOM()", nil
	default:
		return "", &UnsupportedSortError{Column: c}
	}
}

// UnsupportedSortError is returned when a Descriptor names an order
// column the compiler does not recognise.
type UnsupportedSortError struct {
	Column SortColumn
}

func (e *UnsupportedSortError) Error() string {
	return fmt.Sprintf("search: unsupported sort column %d", e.Column)
}

func orderClause(o Order) (string, error) {
	if o.Column == SortRandom {
		return "RANDOM()", nil
	}
	col, err := sortColumnName(o.Column)
	if err != nil {
		return "", err
	}
	dir := "ASC"
	if o.Direction == Desc {
		dir = "DESC"
	}
	if o.Column == SortTitle {
		return fmt.Sprintf("%s %s, %s %s", col, dir, colID, dir), nil
	}
	if o.Column == SortCustomOrder {
		return fmt.Sprintf("%s %s NULLS LAST, %s %s, %s %s", col, dir, colTitle, dir, colID, dir), nil
	}
	return fmt.Sprintf("%s %s, %s %s, %s %s", col, dir, colTitle, dir, colID, dir), nil
}

// compileFilter recursively lowers a Filter node (and its subfilters)
// into a parenthesised boolean SQL fragment plus its parameter list. An
// entirely empty filter compiles to "1=1" regardless of MatchAny, so
// that a match_any=true search over an empty tree still returns every
// row rather than the empty disjunction's natural "false".
func compileFilter(f *Filter) (string, []Param) {
	if f.IsEmpty() {
		return "1=1", nil
	}

	var clauses []string
	var params []Param
	add := func(sql string, p ...Param) {
		clauses = append(clauses, sql)
		params = append(params, p...)
	}

	// Scalar + multi-column field clauses, one polarity bucket at a time.
	compileBucket(&f.Whitelist, false, false, f.MatchAny, add)
	compileBucket(&f.Blacklist, true, false, f.MatchAny, add)
	compileBucket(&f.ExactWhitelist, false, true, f.MatchAny, add)
	compileBucket(&f.ExactBlacklist, true, true, f.MatchAny, add)

	for field, v := range f.HigherThan {
		add(fmt.Sprintf("%s > ?", numericColumn(field)), ScalarParam(v))
	}
	for field, v := range f.LowerThan {
		add(fmt.Sprintf("%s < ?", numericColumn(field)), ScalarParam(v))
	}
	for field, v := range f.EqualTo {
		add(fmt.Sprintf("%s = ?", numericColumn(field)), ScalarParam(v))
	}
	for field, v := range f.BoolComp {
		add(fmt.Sprintf("%s = ?", boolColumn(field)), ScalarParam(v))
	}
	for _, ev := range f.Ext {
		add(extClause(ev))
	}

	for _, sub := range f.Subfilters {
		subSQL, subParams := compileFilter(sub)
		add("(" + subSQL + ")")
		params = append(params, subParams...)
	}

	joiner := " AND "
	if f.MatchAny {
		joiner = " OR "
	}
	return strings.Join(clauses, joiner), params
}

// compileBucket appends one clause per populated field in fb to add,
// using the scalar/multi-column/tag-platform shape appropriate to field
// and the (negative, exact) polarity already selected by the caller via
// which bucket (Whitelist/Blacklist/ExactWhitelist/ExactBlacklist) it
// passed in.
func compileBucket(fb *FieldFilter, negative, exact, matchAny bool, add func(string, ...Param)) {
	for _, v := range fb.Generic {
		sql, _ := titleLikeClause(negative, exact)
		add(sql, ScalarParam(likeValue(v, exact)), ScalarParam(likeValue(v, exact)))
	}
	for _, v := range fb.Title {
		sql, _ := titleLikeClause(negative, exact)
		add(sql, ScalarParam(likeValue(v, exact)), ScalarParam(likeValue(v, exact)))
	}
	for _, v := range fb.Library {
		add(scalarClause(colLibrary, negative, exact), ScalarParam(likeValue(v, exact)))
	}
	for _, v := range fb.Developer {
		add(scalarClause(colDeveloper, negative, exact), ScalarParam(likeValue(v, exact)))
	}
	for _, v := range fb.Publisher {
		add(scalarClause(colPublisher, negative, exact), ScalarParam(likeValue(v, exact)))
	}
	for _, v := range fb.Series {
		add(scalarClause(colSeries, negative, exact), ScalarParam(likeValue(v, exact)))
	}
	if len(fb.Tags) > 0 {
		add(tagPlatformClause("tag", fb.Tags, negative, exact, matchAny))
	}
	if len(fb.Platforms) > 0 {
		add(tagPlatformClause("platform", fb.Platforms, negative, exact, matchAny))
	}
}

func likeValue(v string, exact bool) string {
	if exact {
		return v
	}
	return "%" + v + "%"
}

func scalarClause(col string, negative, exact bool) string {
	switch {
	case !negative && !exact:
		return col + " LIKE ?"
	case negative && !exact:
		return col + " NOT LIKE ?"
	case !negative && exact:
		return col + " = ?"
	default:
		return col + " != ?"
	}
}

func titleLikeClause(negative, exact bool) (string, []Param) {
	op := "LIKE"
	if exact {
		op = "="
	}
	inner := fmt.Sprintf("(%s %s ? OR %s %s ?)", colTitle, op, colAltTitles, op)
	if negative {
		return "NOT " + inner, nil
	}
	return inner, nil
}

// tagPlatformClause implements spec.md §4.3 rule 3 for a whitelist or
// blacklist of tag/platform names against the alias tables:
//   - match_any=true, exact:    one array-bound `name IN carray(?)` clause.
//   - match_any=false (AND):    one nested `id IN …` sub-select per name,
//     ANDed together, regardless of exact/substring.
//   - match_any=true, substring: one sub-select with a per-name LIKE ORed
//     inside it.
func tagPlatformClause(kind string, names []string, negative, exact, matchAny bool) (string, []Param) {
	junction := "title_tag"
	aliasTable := "tag_alias"
	idCol := "tag_id"
	if kind == "platform" {
		junction = "title_platform"
		aliasTable = "platform_alias"
		idCol = "platform_id"
	}
	inOrNotIn := "IN"
	if negative {
		inOrNotIn = "NOT IN"
	}

	if matchAny && exact {
		sql := fmt.Sprintf(
			"title.id %s (SELECT title_id FROM %s WHERE %s IN (SELECT %s FROM %s WHERE name IN (carray(?))))",
			inOrNotIn, junction, idCol, idCol, aliasTable,
		)
		return sql, []Param{ArrayParam(names)}
	}

	if !matchAny {
		var parts []string
		var params []Param
		for _, n := range names {
			cmp, val := "= ?", n
			if !exact {
				cmp, val = "LIKE ?", "%"+n+"%"
			}
			parts = append(parts, fmt.Sprintf(
				"title.id %s (SELECT title_id FROM %s WHERE %s IN (SELECT %s FROM %s WHERE name %s))",
				inOrNotIn, junction, idCol, idCol, aliasTable, cmp,
			))
			params = append(params, ScalarParam(val))
		}
		return "(" + strings.Join(parts, " AND ") + ")", params
	}

	var inner []string
	var params []Param
	for _, n := range names {
		inner = append(inner, "name LIKE ?")
		params = append(params, ScalarParam("%"+n+"%"))
	}
	sql := fmt.Sprintf(
		"title.id %s (SELECT title_id FROM %s WHERE %s IN (SELECT %s FROM %s WHERE %s))",
		inOrNotIn, junction, idCol, idCol, aliasTable, strings.Join(inner, " OR "),
	)
	return sql, params
}

func numericColumn(f NumericField) string {
	switch f {
	case FieldPlaytime:
		return colPlaytime
	case FieldPlayCount:
		return colPlayCount
	case FieldLastPlayed:
		return colLastPlayed
	case FieldTagCount:
		return "(SELECT COUNT(*) FROM title_tag WHERE title_tag.title_id = title.id)"
	case FieldPlatformCount:
		return "(SELECT COUNT(*) FROM title_platform WHERE title_platform.title_id = title.id)"
	case FieldAddApps:
		return "(SELECT COUNT(*) FROM auxiliary_launcher WHERE auxiliary_launcher.title_id = title.id)"
	case FieldGameData:
		return "(SELECT COUNT(*) FROM payload_manifest WHERE payload_manifest.title_id = title.id)"
	default:
		return colPlaytime
	}
}

func boolColumn(f BoolField) string {
	switch f {
	case FieldInstalled:
		return "title.installed"
	default:
		return "title.installed"
	}
}

func extClause(ev ExtValue) (string, []Param) {
	path := fmt.Sprintf("json_extract(title.ext_%s, '$.%s')", ev.Field.ExtensionID, ev.Field.Key)
	op := "="
	switch ev.Op {
	case CompareGt:
		op = ">"
	case CompareLt:
		op = "<"
	}
	switch {
	case ev.Str != nil:
		return fmt.Sprintf("%s %s ?", path, op), []Param{ScalarParam(*ev.Str)}
	case ev.Bool != nil:
		return fmt.Sprintf("%s %s ?", path, op), []Param{ScalarParam(*ev.Bool)}
	case ev.Num != nil:
		return fmt.Sprintf("%s %s ?", path, op), []Param{ScalarParam(*ev.Num)}
	default:
		return "1=1", nil
	}
}

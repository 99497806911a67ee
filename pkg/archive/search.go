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

package archive

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// Page is one page of search results plus the cursor a caller passes
// back as the next Descriptor's Offset to continue past it.
type Page struct {
	Titles  []Title
	Next    *search.Offset
	HasMore bool
}

// ParseQuery runs the DSL parser against text, routing any extension:
// keys through the engine's own registry.
func (e *Engine) ParseQuery(text string) *search.ParseResult {
	return search.Parse(text, e.exts)
}

// compileAndExec is the single choke point every read-side search entry
// point funnels through: it resolves a tag-filter-index join first (if
// the descriptor asks for one), then compiles and runs the statement.
func (e *Engine) compileAndExec(ctx context.Context, d *search.Descriptor, intent search.Intent) (*sql.Rows, error) {
	if len(d.WithTagFilter) > 0 {
		if err := e.EnsureTagFilterIndex(ctx, d.WithTagFilter); err != nil {
			return nil, err
		}
	}

	sqlText, params, err := search.Compile(d, intent)
	if err != nil {
		var unsupported *search.UnsupportedSortError
		if errors.As(err, &unsupported) {
			return nil, newError(UnsupportedSort, err.Error(), err)
		}
		return nil, wrapStorage(err)
	}

	rows, err := e.reader().QueryContext(ctx, sqlText, search.Values(params)...)
	if err != nil {
		return nil, wrapStorage(err)
	}
	return rows, nil
}

// Search runs d with FetchFull or FetchSlim (per d.Slim), loads any
// relations d.LoadRelations asks for, and reports whether a further page
// exists by requesting one extra row beyond the descriptor's own limit.
func (e *Engine) Search(ctx context.Context, d *search.Descriptor) (*Page, error) {
	intent := search.FetchFull
	if d.Slim {
		intent = search.FetchSlim
	}

	probe := *d
	probe.Limit = d.Limit + 1
	rows, err := e.compileAndExec(ctx, &probe, intent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []Title
	for rows.Next() {
		var t Title
		if d.Slim {
			t, err = scanSlim(rows)
		} else {
			t, err = scanFull(rows)
		}
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage(err)
	}

	hasMore := int64(len(titles)) > d.Limit
	if hasMore {
		titles = titles[:d.Limit]
	}

	titles, err = e.loadRelations(ctx, titles, d.LoadRelations)
	if err != nil {
		return nil, err
	}

	page := &Page{Titles: titles, HasMore: hasMore}
	if hasMore && len(titles) > 0 {
		last := titles[len(titles)-1]
		page.Next = &search.Offset{Value: sortValue(d.Order.Column, last), Title: last.Name, ID: last.ID}
	}
	return page, nil
}

// Count returns the total number of rows d's filter matches, ignoring
// order, limit and offset.
func (e *Engine) Count(ctx context.Context, d *search.Descriptor) (int64, error) {
	rows, err := e.compileAndExec(ctx, d, search.Count)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	if !rows.Next() {
		return 0, wrapStorage(rows.Err())
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, wrapStorage(err)
	}
	return n, nil
}

// PageBoundaries returns the id of every row at a page boundary under
// d's current order and page size, for building a jump-to-page control
// without walking every intervening page.
func (e *Engine) PageBoundaries(ctx context.Context, d *search.Descriptor) ([]string, error) {
	rows, err := e.compileAndExec(ctx, d, search.FetchPageBoundaries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapStorage(err)
		}
		ids = append(ids, id)
	}
	return ids, wrapStorage(rows.Err())
}

// Random returns up to d.Limit titles chosen at random from d's filter.
func (e *Engine) Random(ctx context.Context, d *search.Descriptor) ([]Title, error) {
	rows, err := e.compileAndExec(ctx, d, search.FetchRandom)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []Title
	for rows.Next() {
		t, err := scanFull(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStorage(err)
	}
	return e.loadRelations(ctx, titles, d.LoadRelations)
}

// FetchByTag is a convenience entry point that ANDs an exact-match tag
// filter onto d's existing filter tree and searches, grounded on the
// original implementation's merge_game_filters helper.
func (e *Engine) FetchByTag(ctx context.Context, d *search.Descriptor, tagName string) (*Page, error) {
	tagFilter := search.NewFilter()
	tagFilter.ExactWhitelist.Tags = []string{tagName}

	merged := *d
	merged.Filter = search.MergeFilters(d.Filter, tagFilter)
	return e.Search(ctx, &merged)
}

// fullSelectByID mirrors the search compiler's fullColumns column order,
// with installed appended - a one-row-at-a-time lookup has no reason to
// leave it unpopulated the way a page of search results does.
const fullSelectByID = `SELECT
	title.id, title.title, title.series, title.developer, title.publisher,
	title.platforms_str, title.primary_platform, title.tags_str, title.library,
	title.alternate_titles, title.playtime_seconds, title.play_counter, title.last_played,
	title.date_added, title.date_modified, title.release_date,
	title.status, title.play_mode, title.application_path,
	title.launch_command, title.active_data_id,
	title.broken, title.extreme, title.original_description,
	title.source, title.language, title.version, title.installed
	FROM title WHERE title.id = ?`

// FetchOne returns the single title identified by id, or NotFound.
func (e *Engine) FetchOne(ctx context.Context, id string) (*Title, error) {
	rows, err := e.reader().QueryContext(ctx, fullSelectByID, id)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, wrapStorage(err)
		}
		return nil, newError(NotFound, "title not found: "+id, nil)
	}

	var t Title
	var broken, extreme, installed int
	err = rows.Scan(
		&t.ID, &t.Name, &t.Series, &t.Developer, &t.Publisher,
		&t.PlatformsStr, &t.PrimaryPlatform, &t.TagsStr, &t.Library,
		&t.AlternateTitles, &t.PlaytimeSeconds, &t.PlayCounter, &t.LastPlayed,
		&t.DateAdded, &t.DateModified, &t.ReleaseDate,
		&t.Status, &t.PlayMode, &t.ApplicationPath,
		&t.LaunchCommand, &t.ActiveDataID,
		&broken, &extreme, &t.OriginalDescription,
		&t.Source, &t.Language, &t.Version, &installed,
	)
	if err != nil {
		return nil, wrapStorage(err)
	}
	t.Broken, t.Extreme, t.Installed = broken != 0, extreme != 0, installed != 0
	return &t, nil
}

func sortValue(col search.SortColumn, t Title) string {
	switch col {
	case search.SortDateAdded:
		return t.DateAdded
	case search.SortDateModified:
		return t.DateModified
	case search.SortReleaseDate:
		return t.ReleaseDate
	case search.SortSeries:
		return t.Series
	case search.SortDeveloper:
		return t.Developer
	case search.SortPublisher:
		return t.Publisher
	case search.SortLastPlayed:
		return t.LastPlayed
	case search.SortPlaytime:
		return strconv.FormatInt(t.PlaytimeSeconds, 10)
	default:
		return t.Name
	}
}

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
)

// PopulateTagFilterIndex forces a tag-filter index rebuild against
// deniedTags regardless of the current dirty bit or fingerprint. Host
// bindings expose this as an explicit maintenance action; ordinary
// searches rebuild lazily through EnsureTagFilterIndex instead.
func (e *Engine) PopulateTagFilterIndex(ctx context.Context, deniedTags []string) error {
	fp := fingerprint(deniedTags)
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		return e.rebuildTagFilterIndex(ctx, tx, deniedTags, fp)
	})
}

// Optimize runs SQLite's own housekeeping: ANALYZE to refresh the query
// planner's statistics, REINDEX to rebuild every index, and VACUUM to
// compact the file. It holds the write mutex for the whole pass since
// VACUUM requires no other transaction be in flight.
func (e *Engine) Optimize(ctx context.Context) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	for _, stmt := range []string{"ANALYZE", "REINDEX", "VACUUM"} {
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			return wrapStorage(err)
		}
	}
	return nil
}

// DistinctLibraries returns every distinct, non-empty library bucket
// name present in the catalog, for UI facet population.
func (e *Engine) DistinctLibraries(ctx context.Context) ([]string, error) {
	return e.distinctColumn(ctx, "library")
}

// DistinctStatuses returns every distinct, non-empty status value.
func (e *Engine) DistinctStatuses(ctx context.Context) ([]string, error) {
	return e.distinctColumn(ctx, "status")
}

// DistinctPlayModes returns every distinct, non-empty play_mode value.
func (e *Engine) DistinctPlayModes(ctx context.Context) ([]string, error) {
	return e.distinctColumn(ctx, "play_mode")
}

// DistinctApplicationPaths returns every distinct, non-empty
// application_path value, for legacy-launcher facet UIs.
func (e *Engine) DistinctApplicationPaths(ctx context.Context) ([]string, error) {
	return e.distinctColumn(ctx, "application_path")
}

func (e *Engine) distinctColumn(ctx context.Context, col string) ([]string, error) {
	rows, err := e.reader().QueryContext(ctx,
		`SELECT DISTINCT `+col+` FROM title WHERE `+col+` != '' ORDER BY `+col)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, wrapStorage(err)
		}
		out = append(out, v)
	}
	return out, wrapStorage(rows.Err())
}

// fixupActivePayloadPointers repoints active_data_id at each title's most
// recently added payload manifest wherever it is still the unset
// sentinel (-1) but at least one manifest now exists. Run at the end of
// a bulk games sync so newly-ingested titles don't sit with a dangling
// pointer until something happens to touch them individually.
func (e *Engine) fixupActivePayloadPointers(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE title
		SET active_data_id = (
			SELECT pm.id FROM payload_manifest pm
			WHERE pm.title_id = title.id
			ORDER BY pm.date_added DESC, pm.id DESC
			LIMIT 1
		)
		WHERE active_data_id = -1
		  AND EXISTS (SELECT 1 FROM payload_manifest pm WHERE pm.title_id = title.id)`)
	return wrapStorage(err)
}

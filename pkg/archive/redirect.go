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

// AddRedirect records that sourceID (a retired or merged title id) now
// resolves to destinationID, so old links and saves keep working.
func (e *Engine) AddRedirect(ctx context.Context, sourceID, destinationID string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO redirect (source_id, destination_id) VALUES (?, ?)`,
			sourceID, destinationID)
		return wrapStorage(err)
	})
}

// ResolveRedirect follows a redirect chain from id to its final
// destination, returning id unchanged if it has no redirect. Chains are
// expected to be short; this follows up to 16 hops before giving up to
// avoid spinning on a cycle left by a bad sync.
func (e *Engine) ResolveRedirect(ctx context.Context, id string) (string, error) {
	current := id
	for i := 0; i < 16; i++ {
		var dest string
		err := e.reader().QueryRowContext(ctx,
			`SELECT destination_id FROM redirect WHERE source_id = ?`, current).Scan(&dest)
		if err == sql.ErrNoRows {
			return current, nil
		}
		if err != nil {
			return "", wrapStorage(err)
		}
		current = dest
	}
	return current, nil
}

// RemoveRedirect deletes a single redirect entry.
func (e *Engine) RemoveRedirect(ctx context.Context, sourceID string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM redirect WHERE source_id = ?`, sourceID)
		return wrapStorage(err)
	})
}

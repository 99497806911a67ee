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

// SetCustomOrder assigns titleID an explicit position in the custom sort
// order the search package's SortCustomOrder column reads from.
func (e *Engine) SetCustomOrder(ctx context.Context, titleID string, position int64) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO custom_id_order (title_id, ord) VALUES (?, ?)
			 ON CONFLICT(title_id) DO UPDATE SET ord = excluded.ord`,
			titleID, position)
		return wrapStorage(err)
	})
}

// ClearCustomOrder removes titleID's explicit position, dropping it back
// to the tail of the custom order (NULLs sort last, see compiler.go).
func (e *Engine) ClearCustomOrder(ctx context.Context, titleID string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM custom_id_order WHERE title_id = ?`, titleID)
		return wrapStorage(err)
	})
}

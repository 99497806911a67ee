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

// AddPlaytime increments a title's playtime_seconds and play_counter and
// stamps last_played with the engine's current time.
func (e *Engine) AddPlaytime(ctx context.Context, titleID string, seconds int64) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE title
			SET playtime_seconds = playtime_seconds + ?,
			    play_counter = play_counter + 1,
			    last_played = ?
			WHERE id = ?`, seconds, now, titleID)
		if err != nil {
			return wrapStorage(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return newError(NotFound, "title not found: "+titleID, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: titleID})
	return nil
}

// ClearPlaytime resets playtime/play-count/last-played for a single
// title. ClearAllPlaytime does the same across the whole catalog.
func (e *Engine) ClearPlaytime(ctx context.Context, titleID string) error {
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE title SET playtime_seconds = 0, play_counter = 0, last_played = ''
			WHERE id = ?`, titleID)
		return wrapStorage(err)
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: titleID})
	return nil
}

// ClearAllPlaytime resets playtime tracking across every title.
func (e *Engine) ClearAllPlaytime(ctx context.Context) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE title SET playtime_seconds = 0, play_counter = 0, last_played = ''`)
		return wrapStorage(err)
	})
}

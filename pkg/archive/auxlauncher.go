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

	"github.com/google/uuid"
)

// AuxiliaryLauncher is an alternate way to launch a title (a level
// editor, a server component) alongside its primary application_path.
type AuxiliaryLauncher struct {
	ID              string
	TitleID         string
	Name            string
	ApplicationPath string
	LaunchCommand   string
	AutoRunBefore   bool
	WaitForExit     bool
}

// AddAuxiliaryLauncher inserts a new auxiliary launcher for titleID.
func (e *Engine) AddAuxiliaryLauncher(ctx context.Context, a *AuxiliaryLauncher) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO auxiliary_launcher (
				id, title_id, name, application_path, launch_command, auto_run_before, wait_for_exit
			) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.TitleID, a.Name, a.ApplicationPath, a.LaunchCommand,
			boolToInt(a.AutoRunBefore), boolToInt(a.WaitForExit))
		return wrapStorage(err)
	})
}

// RemoveAuxiliaryLauncher deletes a single auxiliary launcher by id.
func (e *Engine) RemoveAuxiliaryLauncher(ctx context.Context, id string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM auxiliary_launcher WHERE id = ?`, id)
		return wrapStorage(err)
	})
}

// auxiliaryLaunchersForTitles bulk-loads every auxiliary launcher for
// titleIDs, keyed by title id, for the result loader.
func (e *Engine) auxiliaryLaunchersForTitles(ctx context.Context, tx queryable, titleIDs []string) (map[string][]AuxiliaryLauncher, error) {
	if len(titleIDs) == 0 {
		return nil, nil
	}
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title_id, name, application_path, launch_command, auto_run_before, wait_for_exit
		FROM auxiliary_launcher WHERE title_id IN (carray(?))`, titleIDs)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	out := map[string][]AuxiliaryLauncher{}
	for rows.Next() {
		var a AuxiliaryLauncher
		var autoRun, waitExit int
		if err := rows.Scan(&a.ID, &a.TitleID, &a.Name, &a.ApplicationPath, &a.LaunchCommand,
			&autoRun, &waitExit); err != nil {
			return nil, wrapStorage(err)
		}
		a.AutoRunBefore, a.WaitForExit = autoRun != 0, waitExit != 0
		out[a.TitleID] = append(out[a.TitleID], a)
	}
	return out, wrapStorage(rows.Err())
}

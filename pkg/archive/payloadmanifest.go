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

// PayloadManifest records one downloadable/installable payload for a
// title: where it came from, its integrity hash, and whether it is
// currently present on disk.
type PayloadManifest struct {
	ID              int64
	TitleID         string
	Title           string
	DateAdded       string
	SHA256          string
	CRC32           int64
	PresentOnDisk   bool
	Size            int64
	Path            *string
	Parameters      *string
	ApplicationPath string
	LaunchCommand   string
}

// AddPayloadManifest inserts a manifest row for titleID.
func (e *Engine) AddPayloadManifest(ctx context.Context, m *PayloadManifest) (int64, error) {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if m.DateAdded == "" {
		m.DateAdded = now
	}
	var id int64
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO payload_manifest (
				title_id, title, date_added, sha256, crc32, present_on_disk,
				size, path, parameters, application_path, launch_command
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.TitleID, m.Title, m.DateAdded, m.SHA256, m.CRC32, boolToInt(m.PresentOnDisk),
			m.Size, m.Path, m.Parameters, m.ApplicationPath, m.LaunchCommand)
		if err != nil {
			return wrapStorage(err)
		}
		id, err = res.LastInsertId()
		return wrapStorage(err)
	})
	return id, err
}

// SetPayloadPresence flips present_on_disk for a manifest, used when a
// sync pass discovers a payload has appeared or vanished locally.
func (e *Engine) SetPayloadPresence(ctx context.Context, manifestID int64, present bool) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE payload_manifest SET present_on_disk = ? WHERE id = ?`, boolToInt(present), manifestID)
		return wrapStorage(err)
	})
}

// payloadManifestsForTitles bulk-loads every manifest belonging to any of
// titleIDs, keyed by title id, for the result loader.
func (e *Engine) payloadManifestsForTitles(ctx context.Context, tx queryable, titleIDs []string) (map[string][]PayloadManifest, error) {
	if len(titleIDs) == 0 {
		return nil, nil
	}
	rows, err := tx.QueryContext(ctx, `
		SELECT id, title_id, title, date_added, sha256, crc32, present_on_disk,
		       size, path, parameters, application_path, launch_command
		FROM payload_manifest WHERE title_id IN (carray(?))`, titleIDs)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	out := map[string][]PayloadManifest{}
	for rows.Next() {
		var m PayloadManifest
		var present int
		if err := rows.Scan(&m.ID, &m.TitleID, &m.Title, &m.DateAdded, &m.SHA256, &m.CRC32,
			&present, &m.Size, &m.Path, &m.Parameters, &m.ApplicationPath, &m.LaunchCommand); err != nil {
			return nil, wrapStorage(err)
		}
		m.PresentOnDisk = present != 0
		out[m.TitleID] = append(out[m.TitleID], m)
	}
	return out, wrapStorage(rows.Err())
}

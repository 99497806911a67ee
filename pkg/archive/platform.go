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
	"strings"
)

// Platform mirrors Tag's alias-set shape but carries no category or
// description; platforms are purely a name with aliases.
type Platform struct {
	ID      int64
	Aliases []string
	Primary string
}

// CreatePlatform inserts a new platform with its primary alias.
func (e *Engine) CreatePlatform(ctx context.Context, primaryName string) (int64, error) {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	var id int64
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO platform (date_modified) VALUES (?)`, now)
		if err != nil {
			return wrapStorage(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return wrapStorage(err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO platform_alias (platform_id, name, primary_alias) VALUES (?, ?, 1)`, id, primaryName)
		return wrapStorage(err)
	})
	return id, err
}

// AddPlatformAlias attaches a non-primary alias name to an existing
// platform. Returns ConflictingAlias if the name already names a
// different platform.
func (e *Engine) AddPlatformAlias(ctx context.Context, platformID int64, name string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT platform_id FROM platform_alias WHERE name = ?`, name).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO platform_alias (platform_id, name, primary_alias) VALUES (?, ?, 0)`, platformID, name)
			return wrapStorage(err)
		case err != nil:
			return wrapStorage(err)
		case existing != platformID:
			return newError(ConflictingAlias, "alias already belongs to another platform: "+name, nil)
		default:
			return nil
		}
	})
}

// MergePlatforms folds srcID's alias set and title links into destID,
// then deletes the now-empty source platform.
func (e *Engine) MergePlatforms(ctx context.Context, srcID, destID int64) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE platform_alias SET platform_id = ?, primary_alias = 0 WHERE platform_id = ?`, destID, srcID); err != nil {
			return wrapStorage(err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO title_platform (title_id, platform_id)
			SELECT title_id, ? FROM title_platform WHERE platform_id = ?`, destID, srcID); err != nil {
			return wrapStorage(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM title_platform WHERE platform_id = ?`, srcID); err != nil {
			return wrapStorage(err)
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM platform WHERE id = ?`, srcID)
		return wrapStorage(err)
	})
}

func resolveOrCreatePlatform(ctx context.Context, tx *sql.Tx, now, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT platform_id FROM platform_alias WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, wrapStorage(err)
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO platform (date_modified) VALUES (?)`, now)
	if err != nil {
		return 0, wrapStorage(err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, wrapStorage(err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO platform_alias (platform_id, name, primary_alias) VALUES (?, ?, 1)`, id, name)
	return id, wrapStorage(err)
}

// linkPlatforms replaces title_platform membership for titleID with
// platformNames, rewriting the denormalised platforms_str/primary_platform
// columns the search compiler and result loader read directly.
func (e *Engine) linkPlatforms(ctx context.Context, tx *sql.Tx, titleID string, platformNames []string) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if _, err := tx.ExecContext(ctx, `DELETE FROM title_platform WHERE title_id = ?`, titleID); err != nil {
		return wrapStorage(err)
	}
	for _, name := range platformNames {
		platID, err := resolveOrCreatePlatform(ctx, tx, now, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO title_platform (title_id, platform_id) VALUES (?, ?)`, titleID, platID); err != nil {
			return wrapStorage(err)
		}
	}
	primary := ""
	if len(platformNames) > 0 {
		primary = platformNames[0]
	}
	_, err := tx.ExecContext(ctx,
		`UPDATE title SET platforms_str = ?, primary_platform = ? WHERE id = ?`,
		strings.Join(platformNames, "; "), primary, titleID)
	return wrapStorage(err)
}

// ReplacePlatforms is the public entry point for changing a title's
// platform membership outside of CreateTitle.
func (e *Engine) ReplacePlatforms(ctx context.Context, titleID string, platformNames []string) error {
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		return e.linkPlatforms(ctx, tx, titleID, platformNames)
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: titleID})
	return nil
}

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

// Tag is a denormalised category membership: one or more alias names
// pointing at a single tag row, one of which is flagged primary.
type Tag struct {
	ID          int64
	CategoryID  int64
	Description string
	Aliases     []string
	Primary     string
}

// CreateTag inserts a new tag with its primary alias under categoryID.
func (e *Engine) CreateTag(ctx context.Context, categoryID int64, primaryName, description string) (int64, error) {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	var id int64
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tag (category_id, description, date_modified) VALUES (?, ?, ?)`,
			categoryID, description, now)
		if err != nil {
			return wrapStorage(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return wrapStorage(err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO tag_alias (tag_id, name, primary_alias) VALUES (?, ?, 1)`, id, primaryName)
		if err != nil {
			return wrapStorage(err)
		}
		return nil
	})
	return id, err
}

// AddTagAlias attaches a non-primary alias name to an existing tag.
// Returns ConflictingAlias if the name already names a different tag.
func (e *Engine) AddTagAlias(ctx context.Context, tagID int64, name string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		var existing int64
		err := tx.QueryRowContext(ctx, `SELECT tag_id FROM tag_alias WHERE name = ?`, name).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO tag_alias (tag_id, name, primary_alias) VALUES (?, ?, 0)`, tagID, name)
			return wrapStorage(err)
		case err != nil:
			return wrapStorage(err)
		case existing != tagID:
			return newError(ConflictingAlias, "alias already belongs to another tag: "+name, nil)
		default:
			return nil
		}
	})
}

// MergeTags folds srcID's alias set and title links into destID, then
// deletes the now-empty source tag. Used when a host discovers two tag
// rows describe the same thing.
func (e *Engine) MergeTags(ctx context.Context, srcID, destID int64) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tag_alias SET tag_id = ?, primary_alias = 0 WHERE tag_id = ?`, destID, srcID); err != nil {
			return wrapStorage(err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO title_tag (title_id, tag_id)
			SELECT title_id, ? FROM title_tag WHERE tag_id = ?`, destID, srcID); err != nil {
			return wrapStorage(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM title_tag WHERE tag_id = ?`, srcID); err != nil {
			return wrapStorage(err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tag WHERE id = ?`, srcID); err != nil {
			return wrapStorage(err)
		}
		return e.MarkDirty(ctx, tx)
	})
}

// resolveOrCreateTag looks a tag name up by alias, creating a new tag
// (category 1, the default "Genre"-style bucket left to callers to seed)
// when no alias matches.
func resolveOrCreateTag(ctx context.Context, tx *sql.Tx, now, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT tag_id FROM tag_alias WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, wrapStorage(err)
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tag (category_id, description, date_modified) VALUES (1, '', ?)`, now)
	if err != nil {
		return 0, wrapStorage(err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, wrapStorage(err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO tag_alias (tag_id, name, primary_alias) VALUES (?, ?, 1)`, id, name)
	return id, wrapStorage(err)
}

// linkTags replaces title_tag membership for titleID with tagNames,
// resolving or creating each name and rewriting the denormalised
// tags_str column the search compiler reads at query time.
func (e *Engine) linkTags(ctx context.Context, tx *sql.Tx, titleID string, tagNames []string) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if _, err := tx.ExecContext(ctx, `DELETE FROM title_tag WHERE title_id = ?`, titleID); err != nil {
		return wrapStorage(err)
	}
	for _, name := range tagNames {
		tagID, err := resolveOrCreateTag(ctx, tx, now, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO title_tag (title_id, tag_id) VALUES (?, ?)`, titleID, tagID); err != nil {
			return wrapStorage(err)
		}
	}
	_, err := tx.ExecContext(ctx, `UPDATE title SET tags_str = ? WHERE id = ?`,
		strings.Join(tagNames, "; "), titleID)
	return wrapStorage(err)
}

// ReplaceTags is the public entry point for changing a title's tag
// membership outside of CreateTitle.
func (e *Engine) ReplaceTags(ctx context.Context, titleID string, tagNames []string) error {
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		if err := e.linkTags(ctx, tx, titleID, tagNames); err != nil {
			return err
		}
		return e.MarkDirty(ctx, tx)
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: titleID})
	return nil
}

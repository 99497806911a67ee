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

// RemoteCategory, RemoteTag and RemotePlatform are the shapes a bulk sync
// feed is expected to hand the engine - enough to upsert by name without
// the caller needing to know local row ids.
type RemoteCategory struct {
	Name        string
	Color       string
	Description string
}

type RemoteTag struct {
	PrimaryName  string
	Aliases      []string
	CategoryName string
	Description  string
}

type RemotePlatform struct {
	PrimaryName string
	Aliases     []string
}

// RemoteGame is the flattened shape of one remote catalog entry: the
// title's scalar fields plus its tag/platform membership by name.
type RemoteGame struct {
	ID        string
	Title     Title
	TagNames  []string
	PlatNames []string
}

// ApplyRemoteCategories upserts categories by name.
func (e *Engine) ApplyRemoteCategories(ctx context.Context, cats []RemoteCategory) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		for _, c := range cats {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO tag_category (name, color, description) VALUES (?, ?, ?)
				ON CONFLICT(name) DO UPDATE SET color = excluded.color, description = excluded.description`,
				c.Name, c.Color, c.Description)
			if err != nil {
				return wrapStorage(err)
			}
		}
		return nil
	})
}

// ApplyRemoteTags upserts tags by primary alias, attaching any
// additional aliases and resolving the category by name.
func (e *Engine) ApplyRemoteTags(ctx context.Context, tags []RemoteTag) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		for _, rt := range tags {
			var categoryID int64 = 1
			if rt.CategoryName != "" {
				if err := tx.QueryRowContext(ctx,
					`SELECT id FROM tag_category WHERE name = ?`, rt.CategoryName).Scan(&categoryID); err != nil && err != sql.ErrNoRows {
					return wrapStorage(err)
				}
			}

			var tagID int64
			err := tx.QueryRowContext(ctx, `SELECT tag_id FROM tag_alias WHERE name = ?`, rt.PrimaryName).Scan(&tagID)
			switch {
			case err == sql.ErrNoRows:
				res, err := tx.ExecContext(ctx,
					`INSERT INTO tag (category_id, description, date_modified) VALUES (?, ?, ?)`,
					categoryID, rt.Description, now)
				if err != nil {
					return wrapStorage(err)
				}
				tagID, err = res.LastInsertId()
				if err != nil {
					return wrapStorage(err)
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO tag_alias (tag_id, name, primary_alias) VALUES (?, ?, 1)`,
					tagID, rt.PrimaryName); err != nil {
					return wrapStorage(err)
				}
			case err != nil:
				return wrapStorage(err)
			default:
				if _, err := tx.ExecContext(ctx,
					`UPDATE tag SET category_id = ?, description = ?, date_modified = ? WHERE id = ?`,
					categoryID, rt.Description, now, tagID); err != nil {
					return wrapStorage(err)
				}
			}

			for _, alias := range rt.Aliases {
				if _, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO tag_alias (tag_id, name, primary_alias) VALUES (?, ?, 0)`,
					tagID, alias); err != nil {
					return wrapStorage(err)
				}
			}
		}
		return nil
	})
}

// ApplyRemotePlatforms upserts platforms by primary alias, mirroring
// ApplyRemoteTags.
func (e *Engine) ApplyRemotePlatforms(ctx context.Context, platforms []RemotePlatform) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		for _, rp := range platforms {
			var platID int64
			err := tx.QueryRowContext(ctx, `SELECT platform_id FROM platform_alias WHERE name = ?`, rp.PrimaryName).Scan(&platID)
			if err == sql.ErrNoRows {
				res, err := tx.ExecContext(ctx, `INSERT INTO platform (date_modified) VALUES (?)`, now)
				if err != nil {
					return wrapStorage(err)
				}
				platID, err = res.LastInsertId()
				if err != nil {
					return wrapStorage(err)
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO platform_alias (platform_id, name, primary_alias) VALUES (?, ?, 1)`,
					platID, rp.PrimaryName); err != nil {
					return wrapStorage(err)
				}
			} else if err != nil {
				return wrapStorage(err)
			}

			for _, alias := range rp.Aliases {
				if _, err := tx.ExecContext(ctx,
					`INSERT OR IGNORE INTO platform_alias (platform_id, name, primary_alias) VALUES (?, ?, 0)`,
					platID, alias); err != nil {
					return wrapStorage(err)
				}
			}
		}
		return nil
	})
}

// ApplyRemoteGames upserts a batch of remote titles and their tag/
// platform membership in one transaction, then repoints any dangling
// active_data_id sentinels left over from the ingest.
func (e *Engine) ApplyRemoteGames(ctx context.Context, games []RemoteGame) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		for _, g := range games {
			t := g.Title
			t.ID = g.ID
			t.DateModified = now
			if t.DateAdded == "" {
				t.DateAdded = now
			}
			t.TagsStr = strings.Join(g.TagNames, "; ")
			t.PlatformsStr = strings.Join(g.PlatNames, "; ")
			if len(g.PlatNames) > 0 {
				t.PrimaryPlatform = g.PlatNames[0]
			}

			_, err := tx.ExecContext(ctx, `
				INSERT INTO title (
					id, title, alternate_titles, series, developer, publisher, library,
					release_date, original_description, status, play_mode, source,
					language, version, application_path, launch_command,
					primary_platform, platforms_str, tags_str,
					playtime_seconds, play_counter, last_played,
					date_added, date_modified, active_data_id, installed, broken, extreme
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					title = excluded.title, alternate_titles = excluded.alternate_titles,
					series = excluded.series, developer = excluded.developer,
					publisher = excluded.publisher, library = excluded.library,
					release_date = excluded.release_date,
					original_description = excluded.original_description,
					status = excluded.status, play_mode = excluded.play_mode,
					source = excluded.source, language = excluded.language,
					version = excluded.version,
					application_path = excluded.application_path,
					launch_command = excluded.launch_command,
					primary_platform = excluded.primary_platform,
					platforms_str = excluded.platforms_str, tags_str = excluded.tags_str,
					date_modified = excluded.date_modified,
					broken = excluded.broken, extreme = excluded.extreme`,
				t.ID, t.Name, t.AlternateTitles, t.Series, t.Developer, t.Publisher, t.Library,
				t.ReleaseDate, t.OriginalDescription, t.Status, t.PlayMode, t.Source,
				t.Language, t.Version, t.ApplicationPath, t.LaunchCommand,
				t.PrimaryPlatform, t.PlatformsStr, t.TagsStr,
				t.PlaytimeSeconds, t.PlayCounter, t.LastPlayed,
				t.DateAdded, t.DateModified, t.ActiveDataID,
				boolToInt(t.Installed), boolToInt(t.Broken), boolToInt(t.Extreme))
			if err != nil {
				return wrapStorage(err)
			}

			if err := e.linkTags(ctx, tx, t.ID, g.TagNames); err != nil {
				return err
			}
			if err := e.linkPlatforms(ctx, tx, t.ID, g.PlatNames); err != nil {
				return err
			}
		}

		if err := e.fixupActivePayloadPointers(ctx, tx); err != nil {
			return err
		}
		return e.MarkDirty(ctx, tx)
	})
}

// ApplyRemoteDeletedGames deletes every title in ids, cascading through
// the same row cleanup DeleteTitle performs. Unlike DeleteTitle it
// publishes no EventTitleDeleted.
func (e *Engine) ApplyRemoteDeletedGames(ctx context.Context, ids []string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		stmts := []string{
			"DELETE FROM title_tag WHERE title_id IN (carray(?))",
			"DELETE FROM title_platform WHERE title_id IN (carray(?))",
			"DELETE FROM payload_manifest WHERE title_id IN (carray(?))",
			"DELETE FROM auxiliary_launcher WHERE title_id IN (carray(?))",
			"DELETE FROM custom_id_order WHERE title_id IN (carray(?))",
			"DELETE FROM redirect WHERE destination_id IN (carray(?))",
			"DELETE FROM title WHERE id IN (carray(?))",
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, ids); err != nil {
				return wrapStorage(err)
			}
		}
		return e.MarkDirty(ctx, tx)
	})
}

// ApplyRemoteRedirects upserts a batch of source->destination redirects.
func (e *Engine) ApplyRemoteRedirects(ctx context.Context, redirects map[string]string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		for src, dest := range redirects {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR REPLACE INTO redirect (source_id, destination_id) VALUES (?, ?)`, src, dest); err != nil {
				return wrapStorage(err)
			}
		}
		return nil
	})
}

// SuggestTags returns up to limit tag alias names whose text contains
// prefix, for type-ahead UIs. Grounded on the same substring-match shape
// the query compiler uses for non-exact tag clauses.
func (e *Engine) SuggestTags(ctx context.Context, prefix string, limit int) ([]string, error) {
	rows, err := e.reader().QueryContext(ctx,
		`SELECT DISTINCT name FROM tag_alias WHERE name LIKE ? ORDER BY name LIMIT ?`,
		"%"+prefix+"%", limit)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, wrapStorage(err)
		}
		out = append(out, name)
	}
	return out, wrapStorage(rows.Err())
}

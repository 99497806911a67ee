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

	"github.com/google/uuid"
)

// Title is one catalog entry. The Slim variant of a search only populates
// the fields slimColumns covers; the rest are left at their zero value,
// not read from the row.
type Title struct {
	ID                  string
	Name                string
	AlternateTitles     string
	Series              string
	Developer           string
	Publisher           string
	Library             string
	PlatformsStr        string
	PrimaryPlatform     string
	TagsStr             string

	ReleaseDate         string
	OriginalDescription string
	Status              string
	PlayMode            string
	Source              string
	Language            string
	Version             string
	ApplicationPath     string
	LaunchCommand       string
	PlaytimeSeconds     int64
	PlayCounter         int64
	LastPlayed          string
	DateAdded           string
	DateModified        string
	ActiveDataID        int64
	Installed           bool
	Broken              bool
	Extreme             bool

	// Relations, populated only when the corresponding LoadRelations
	// flag was set on the Descriptor; nil means "not loaded".
	Tags               []string
	Platforms          []string
	PayloadManifests   []PayloadManifest
	AuxiliaryLaunchers []AuxiliaryLauncher
}

// scanSlim reads a row produced by the search package's slimColumns list,
// in that exact order.
func scanSlim(rows *sql.Rows) (Title, error) {
	var t Title
	err := rows.Scan(&t.ID, &t.Name, &t.Series, &t.Developer, &t.Publisher,
		&t.PlatformsStr, &t.PrimaryPlatform, &t.TagsStr, &t.Library)
	return t, wrapStorage(err)
}

// scanFull reads a row produced by the search package's fullColumns list,
// in that exact order (slimColumns fields first, then the extended set).
func scanFull(rows *sql.Rows) (Title, error) {
	var t Title
	var broken, extreme int
	// fullColumns does not select installed - the DSL only ever uses it
	// in WHERE clauses (boolColumn), never as an output column - so it
	// is left at its zero value here and must be fetched via FetchOne
	// or a dedicated lookup when a caller actually needs it.
	err := rows.Scan(
		&t.ID, &t.Name, &t.Series, &t.Developer, &t.Publisher,
		&t.PlatformsStr, &t.PrimaryPlatform, &t.TagsStr, &t.Library,
		&t.AlternateTitles, &t.PlaytimeSeconds, &t.PlayCounter, &t.LastPlayed,
		&t.DateAdded, &t.DateModified, &t.ReleaseDate,
		&t.Status, &t.PlayMode, &t.ApplicationPath,
		&t.LaunchCommand, &t.ActiveDataID,
		&broken, &extreme, &t.OriginalDescription,
		&t.Source, &t.Language, &t.Version,
	)
	if err != nil {
		return Title{}, wrapStorage(err)
	}
	t.Broken, t.Extreme = broken != 0, extreme != 0
	return t, nil
}

// NewTitle returns a Title with a fresh id and the documented defaults
// (library "arcade", active_data_id unset per spec.md §9's sentinel).
func NewTitle() *Title {
	return &Title{
		ID:            uuid.NewString(),
		Library:       "arcade",
		ActiveDataID:  -1,
	}
}

// CreateTitle inserts a new title row and publishes EventTitleChanged.
// TagNames/PlatformNames are resolved through their alias tables and
// linked via title_tag/title_platform; unknown names are created.
func (e *Engine) CreateTitle(ctx context.Context, t *Title, tagNames, platformNames []string) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	if t.DateAdded == "" {
		t.DateAdded = now
	}
	t.DateModified = now

	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		if err := e.linkTags(ctx, tx, t.ID, tagNames); err != nil {
			return err
		}
		if err := e.linkPlatforms(ctx, tx, t.ID, platformNames); err != nil {
			return err
		}
		t.TagsStr = strings.Join(tagNames, "; ")
		t.PlatformsStr = strings.Join(platformNames, "; ")
		if len(platformNames) > 0 {
			t.PrimaryPlatform = platformNames[0]
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO title (
				id, title, alternate_titles, series, developer, publisher, library,
				release_date, original_description, status, play_mode, source,
				language, version, application_path, launch_command,
				primary_platform, platforms_str, tags_str,
				playtime_seconds, play_counter, last_played,
				date_added, date_modified, active_data_id, installed, broken, extreme
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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
		return e.MarkDirty(ctx, tx)
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: t.ID})
	return nil
}

// TitlePatch holds the subset of a title's scalar fields a caller wants
// to change; nil means "leave as-is". Tag/platform membership is updated
// separately through ReplaceTags/ReplacePlatforms.
type TitlePatch struct {
	Name                *string
	Series              *string
	Developer           *string
	Publisher           *string
	Library             *string
	ReleaseDate         *string
	OriginalDescription *string
	Status              *string
	PlayMode            *string
	ApplicationPath     *string
	LaunchCommand       *string
	Installed           *bool
	Broken              *bool
	Extreme             *bool
}

// UpdateTitle applies a partial patch to an existing title row.
func (e *Engine) UpdateTitle(ctx context.Context, id string, patch TitlePatch) error {
	now := e.clock.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.Name != nil {
		add("title", *patch.Name)
	}
	if patch.Series != nil {
		add("series", *patch.Series)
	}
	if patch.Developer != nil {
		add("developer", *patch.Developer)
	}
	if patch.Publisher != nil {
		add("publisher", *patch.Publisher)
	}
	if patch.Library != nil {
		add("library", *patch.Library)
	}
	if patch.ReleaseDate != nil {
		add("release_date", *patch.ReleaseDate)
	}
	if patch.OriginalDescription != nil {
		add("original_description", *patch.OriginalDescription)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.PlayMode != nil {
		add("play_mode", *patch.PlayMode)
	}
	if patch.ApplicationPath != nil {
		add("application_path", *patch.ApplicationPath)
	}
	if patch.LaunchCommand != nil {
		add("launch_command", *patch.LaunchCommand)
	}
	if patch.Installed != nil {
		add("installed", boolToInt(*patch.Installed))
	}
	if patch.Broken != nil {
		add("broken", boolToInt(*patch.Broken))
	}
	if patch.Extreme != nil {
		add("extreme", boolToInt(*patch.Extreme))
	}
	add("date_modified", now)
	args = append(args, id)

	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE title SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return wrapStorage(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return newError(NotFound, "title not found: "+id, nil)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleChanged, ID: id})
	return nil
}

// DeleteTitle removes a title and every row that references it
// (tag/platform links, payload manifests, auxiliary launchers, custom
// order, redirects pointing at it).
func (e *Engine) DeleteTitle(ctx context.Context, id string) error {
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		stmts := []string{
			"DELETE FROM title_tag WHERE title_id = ?",
			"DELETE FROM title_platform WHERE title_id = ?",
			"DELETE FROM payload_manifest WHERE title_id = ?",
			"DELETE FROM auxiliary_launcher WHERE title_id = ?",
			"DELETE FROM custom_id_order WHERE title_id = ?",
			"DELETE FROM redirect WHERE destination_id = ?",
			"DELETE FROM title WHERE id = ?",
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
				return wrapStorage(err)
			}
		}
		return e.MarkDirty(ctx, tx)
	})
	if err != nil {
		return err
	}
	e.publish(Event{Kind: EventTitleDeleted, ID: id})
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

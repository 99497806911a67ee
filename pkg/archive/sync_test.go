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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRemoteCategories_UpsertsByName(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemoteCategories(ctx, []RemoteCategory{
		{Name: "Action", Color: "#f00", Description: "fast"},
	}))
	require.NoError(t, eng.ApplyRemoteCategories(ctx, []RemoteCategory{
		{Name: "Action", Color: "#0f0", Description: "faster"},
	}))

	var color, desc string
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT color, description FROM tag_category WHERE name = ?`, "Action").Scan(&color, &desc))
	assert.Equal(t, "#0f0", color)
	assert.Equal(t, "faster", desc)
}

func TestApplyRemoteTags_CreatesThenUpdatesAndAttachesAliases(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemoteTags(ctx, []RemoteTag{
		{PrimaryName: "Shooter", Aliases: []string{"Shmup"}, Description: "v1"},
	}))
	require.NoError(t, eng.ApplyRemoteTags(ctx, []RemoteTag{
		{PrimaryName: "Shooter", Aliases: []string{"Bullet Hell"}, Description: "v2"},
	}))

	var tagID int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT tag_id FROM tag_alias WHERE name = ?`, "Shooter").Scan(&tagID))

	var desc string
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT description FROM tag WHERE id = ?`, tagID).Scan(&desc))
	assert.Equal(t, "v2", desc)

	for _, alias := range []string{"Shmup", "Bullet Hell"} {
		var owner int64
		require.NoError(t, eng.db.QueryRowContext(ctx,
			`SELECT tag_id FROM tag_alias WHERE name = ?`, alias).Scan(&owner))
		assert.Equal(t, tagID, owner)
	}
}

func TestApplyRemotePlatforms_CreatesAndAttachesAliases(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemotePlatforms(ctx, []RemotePlatform{
		{PrimaryName: "Flash", Aliases: []string{"Adobe Flash"}},
	}))

	var platID int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT platform_id FROM platform_alias WHERE name = ?`, "Flash").Scan(&platID))

	var owner int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT platform_id FROM platform_alias WHERE name = ?`, "Adobe Flash").Scan(&owner))
	assert.Equal(t, platID, owner)
}

func TestApplyRemoteGames_UpsertsTitleAndLinksTagsAndPlatforms(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemoteGames(ctx, []RemoteGame{
		{
			ID:        "remote-1",
			Title:     Title{Name: "Remote Game"},
			TagNames:  []string{"racing"},
			PlatNames: []string{"Flash"},
		},
	}))

	got, err := eng.FetchOne(ctx, "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "Remote Game", got.Name)
	assert.Equal(t, "racing", got.TagsStr)
	assert.Equal(t, "Flash", got.PrimaryPlatform)
	assert.NotEmpty(t, got.DateAdded)

	require.NoError(t, eng.ApplyRemoteGames(ctx, []RemoteGame{
		{ID: "remote-1", Title: Title{Name: "Remote Game Renamed"}},
	}))
	got2, err := eng.FetchOne(ctx, "remote-1")
	require.NoError(t, err)
	assert.Equal(t, "Remote Game Renamed", got2.Name)
	assert.Equal(t, got.DateAdded, got2.DateAdded, "date_added must not be overwritten on update")
}

func TestApplyRemoteRedirects_UpsertsSourceToDestination(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemoteRedirects(ctx, map[string]string{"old-id": "new-id"}))

	var dest string
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT destination_id FROM redirect WHERE source_id = ?`, "old-id").Scan(&dest))
	assert.Equal(t, "new-id", dest)
}

func TestSuggestTags_MatchesSubstringCaseInsensitively(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.ApplyRemoteTags(ctx, []RemoteTag{
		{PrimaryName: "Platformer"},
		{PrimaryName: "Puzzle"},
	}))

	got, err := eng.SuggestTags(ctx, "platform", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Platformer"}, got)
}

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

func TestCreateTag_AddAlias_DetectsConflict(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	id, err := eng.CreateTag(ctx, 1, "Platformer", "")
	require.NoError(t, err)

	other, err := eng.CreateTag(ctx, 1, "Puzzle", "")
	require.NoError(t, err)

	require.NoError(t, eng.AddTagAlias(ctx, id, "Platforming"))

	err = eng.AddTagAlias(ctx, other, "Platforming")
	assert.True(t, Is(err, ConflictingAlias))
}

func TestMergeTags_MovesAliasesAndTitleLinks(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, []string{"Shmup"}, nil))

	var srcID int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT tag_id FROM tag_alias WHERE name = ?`, "Shmup").Scan(&srcID))

	destID, err := eng.CreateTag(ctx, 1, "Bullet Hell", "")
	require.NoError(t, err)

	require.NoError(t, eng.MergeTags(ctx, srcID, destID))

	var aliasOwner int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT tag_id FROM tag_alias WHERE name = ?`, "Shmup").Scan(&aliasOwner))
	assert.Equal(t, destID, aliasOwner, "merged alias should now belong to destID")

	var linkedTagID int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT tag_id FROM title_tag WHERE title_id = ?`, tt.ID).Scan(&linkedTagID))
	assert.Equal(t, destID, linkedTagID, "title's tag link should have moved to destID")

	var srcCount int
	require.NoError(t, eng.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tag WHERE id = ?`, srcID).Scan(&srcCount))
	assert.Zero(t, srcCount, "source tag row should be deleted")
}

func TestReplaceTags_RewritesDenormalisedColumn(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, []string{"a", "b"}, nil))
	require.NoError(t, eng.ReplaceTags(ctx, tt.ID, []string{"c"}))

	got, err := eng.FetchOne(ctx, tt.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", got.TagsStr)
}

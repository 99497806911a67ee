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

func TestPopulateTagFilterIndex_ForcesRebuildEvenWhenClean(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	denied := NewTitle()
	denied.Name = "Denied"
	require.NoError(t, eng.CreateTitle(ctx, denied, []string{"violence"}, nil))

	require.NoError(t, eng.EnsureTagFilterIndex(ctx, []string{"violence"}))
	require.NoError(t, eng.PopulateTagFilterIndex(ctx, []string{"violence"}))

	var n int
	require.NoError(t, eng.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tag_filter_index WHERE id = ?", denied.ID).Scan(&n))
	assert.Zero(t, n)
}

func TestDistinctLibraries_ExcludesEmptyAndDuplicates(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	a := NewTitle()
	a.Library = "arcade"
	require.NoError(t, eng.CreateTitle(ctx, a, nil, nil))

	b := NewTitle()
	b.Library = "arcade"
	require.NoError(t, eng.CreateTitle(ctx, b, nil, nil))

	c := NewTitle()
	c.Library = "theatre"
	require.NoError(t, eng.CreateTitle(ctx, c, nil, nil))

	got, err := eng.DistinctLibraries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"arcade", "theatre"}, got)
}

func TestFixupActivePayloadPointers_RepointsUnsetSentinelAfterRemoteSync(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, nil, nil))
	assert.Equal(t, int64(-1), tt.ActiveDataID)

	manifestID, err := eng.AddPayloadManifest(ctx, &PayloadManifest{TitleID: tt.ID})
	require.NoError(t, err)

	// ApplyRemoteGames runs fixupActivePayloadPointers at the end of its
	// transaction, even for a title it didn't itself touch.
	require.NoError(t, eng.ApplyRemoteGames(ctx, nil))

	got, err := eng.FetchOne(ctx, tt.ID)
	require.NoError(t, err)
	assert.Equal(t, manifestID, got.ActiveDataID)
}

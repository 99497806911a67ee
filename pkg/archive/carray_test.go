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

//go:build sqlite_carray

// This file exercises every query path that relies on mattn/go-sqlite3's
// carray(?) table-valued function (see doc.go). It only builds under
// -tags sqlite_carray so `go test ./...` still passes for anyone who
// hasn't wired that driver feature in yet.
package archive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

func TestLoadRelations_BulkLoadsManifestsAndLaunchersViaCarray(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, nil, nil))

	_, err := eng.AddPayloadManifest(ctx, &PayloadManifest{TitleID: tt.ID, Title: "main"})
	require.NoError(t, err)
	require.NoError(t, eng.AddAuxiliaryLauncher(ctx, &AuxiliaryLauncher{TitleID: tt.ID, Name: "editor"}))

	d := search.NewDescriptor()
	d.LoadRelations.PayloadManifests = true
	d.LoadRelations.AuxiliaryLaunchers = true
	page, err := eng.Search(ctx, d)
	require.NoError(t, err)
	require.Len(t, page.Titles, 1)
	require.Len(t, page.Titles[0].PayloadManifests, 1)
	assert.Equal(t, "main", page.Titles[0].PayloadManifests[0].Title)
	require.Len(t, page.Titles[0].AuxiliaryLaunchers, 1)
	assert.Equal(t, "editor", page.Titles[0].AuxiliaryLaunchers[0].Name)
}

func TestLoadRelations_ZeroRowsYieldsEmptySliceNotNil(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, nil, nil))

	d := search.NewDescriptor()
	d.LoadRelations.PayloadManifests = true
	d.LoadRelations.AuxiliaryLaunchers = true
	page, err := eng.Search(ctx, d)
	require.NoError(t, err)
	require.Len(t, page.Titles, 1)

	assert.NotNil(t, page.Titles[0].PayloadManifests, "flag set with zero matching rows must yield an empty slice, not nil")
	assert.Empty(t, page.Titles[0].PayloadManifests)
	assert.NotNil(t, page.Titles[0].AuxiliaryLaunchers, "flag set with zero matching rows must yield an empty slice, not nil")
	assert.Empty(t, page.Titles[0].AuxiliaryLaunchers)
}

func TestApplyRemoteDeletedGames_CascadesThroughRelatedTables(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	require.NoError(t, eng.CreateTitle(ctx, tt, []string{"racing"}, []string{"Flash"}))
	_, err := eng.AddPayloadManifest(ctx, &PayloadManifest{TitleID: tt.ID})
	require.NoError(t, err)
	require.NoError(t, eng.AddAuxiliaryLauncher(ctx, &AuxiliaryLauncher{TitleID: tt.ID, Name: "editor"}))
	require.NoError(t, eng.SetCustomOrder(ctx, tt.ID, 1))

	require.NoError(t, eng.ApplyRemoteDeletedGames(ctx, []string{tt.ID}))

	_, err = eng.FetchOne(ctx, tt.ID)
	assert.True(t, Is(err, NotFound))

	for _, table := range []string{"title_tag", "title_platform", "payload_manifest", "auxiliary_launcher", "custom_id_order"} {
		var n int
		require.NoError(t, eng.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM "+table+" WHERE title_id = ?", tt.ID).Scan(&n))
		assert.Zero(t, n, "table %s should have no rows left for the deleted title", table)
	}
}

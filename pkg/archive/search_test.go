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

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

func seedTitles(t *testing.T, eng *Engine, names ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range names {
		tt := NewTitle()
		tt.Name = name
		require.NoError(t, eng.CreateTitle(ctx, tt, nil, nil))
	}
}

func TestSearch_FiltersByTitleWhitelist(t *testing.T) {
	eng, _ := newTestEngine(t)
	seedTitles(t, eng, "Zap Racer", "Zap Fighter", "Other Game")

	d := search.NewDescriptor()
	d.Filter.Whitelist.Title = []string{"zap"}

	page, err := eng.Search(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, page.Titles, 2)
}

func TestSearch_ReportsHasMoreAcrossPages(t *testing.T) {
	eng, _ := newTestEngine(t)
	seedTitles(t, eng, "A", "B", "C")

	d := search.NewDescriptor()
	d.Limit = 2

	page, err := eng.Search(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, page.Titles, 2)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.Next)

	d.Offset = page.Next
	page2, err := eng.Search(context.Background(), d)
	require.NoError(t, err)
	assert.Len(t, page2.Titles, 1)
	assert.False(t, page2.HasMore)
}

func TestSearch_SlimOnlyPopulatesSlimColumns(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	tt := NewTitle()
	tt.Name = "Slim Test"
	tt.Status = "Playable"
	require.NoError(t, eng.CreateTitle(ctx, tt, nil, nil))

	d := search.NewDescriptor()
	d.Slim = true
	page, err := eng.Search(ctx, d)
	require.NoError(t, err)
	require.Len(t, page.Titles, 1)
	assert.Equal(t, "Slim Test", page.Titles[0].Name)
	assert.Empty(t, page.Titles[0].Status, "slim scan must not populate fields outside slimColumns")
}

func TestCount_MatchesFilterRegardlessOfLimit(t *testing.T) {
	eng, _ := newTestEngine(t)
	seedTitles(t, eng, "A", "B", "C")

	d := search.NewDescriptor()
	d.Limit = 1
	n, err := eng.Count(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestFetchByTag_MergesExactTagFilterOntoExistingDescriptor(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	a := NewTitle()
	a.Name = "Tagged"
	require.NoError(t, eng.CreateTitle(ctx, a, []string{"racing"}, nil))

	b := NewTitle()
	b.Name = "Untagged"
	require.NoError(t, eng.CreateTitle(ctx, b, nil, nil))

	d := search.NewDescriptor()
	page, err := eng.FetchByTag(ctx, d, "racing")
	require.NoError(t, err)
	require.Len(t, page.Titles, 1)
	assert.Equal(t, "Tagged", page.Titles[0].Name)
}

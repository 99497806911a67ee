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

func TestCreateCategory_ThenListReturnsItSorted(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.CreateCategory(ctx, "Genre", "#123456", "genre-based grouping")
	require.NoError(t, err)
	_, err = eng.CreateCategory(ctx, "Feature", "#abcdef", "")
	require.NoError(t, err)

	cats, err := eng.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Feature", cats[0].Name)
	assert.Equal(t, "Genre", cats[1].Name)
}

func TestRenameCategory_UpdatesName(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	id, err := eng.CreateCategory(ctx, "Old Name", "", "")
	require.NoError(t, err)
	require.NoError(t, eng.RenameCategory(ctx, id, "New Name"))

	cats, err := eng.ListCategories(ctx)
	require.NoError(t, err)
	found := false
	for _, c := range cats {
		if c.ID == id {
			found = true
			assert.Equal(t, "New Name", c.Name)
		}
	}
	assert.True(t, found)
}

func TestRenameCategory_UnknownIDReturnsNotFound(t *testing.T) {
	eng, _ := newTestEngine(t)
	err := eng.RenameCategory(context.Background(), 999999, "x")
	assert.True(t, Is(err, NotFound))
}

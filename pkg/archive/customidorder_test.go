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

func TestSetCustomOrder_InsertsThenOverwritesOnConflict(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.SetCustomOrder(ctx, "title-1", 5))
	require.NoError(t, eng.SetCustomOrder(ctx, "title-1", 9))

	var ord int64
	require.NoError(t, eng.db.QueryRowContext(ctx,
		"SELECT ord FROM custom_id_order WHERE title_id = ?", "title-1").Scan(&ord))
	assert.Equal(t, int64(9), ord)
}

func TestClearCustomOrder_RemovesRow(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.SetCustomOrder(ctx, "title-1", 5))
	require.NoError(t, eng.ClearCustomOrder(ctx, "title-1"))

	var n int
	require.NoError(t, eng.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM custom_id_order WHERE title_id = ?", "title-1").Scan(&n))
	assert.Zero(t, n)
}

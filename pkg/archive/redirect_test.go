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

func TestResolveRedirect_UnredirectedIDReturnsItself(t *testing.T) {
	eng, _ := newTestEngine(t)
	got, err := eng.ResolveRedirect(context.Background(), "never-redirected")
	require.NoError(t, err)
	assert.Equal(t, "never-redirected", got)
}

func TestResolveRedirect_FollowsChainToFinalDestination(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.AddRedirect(ctx, "a", "b"))
	require.NoError(t, eng.AddRedirect(ctx, "b", "c"))

	got, err := eng.ResolveRedirect(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "c", got)
}

func TestResolveRedirect_BreaksOutOfCycles(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.AddRedirect(ctx, "a", "b"))
	require.NoError(t, eng.AddRedirect(ctx, "b", "a"))

	_, err := eng.ResolveRedirect(ctx, "a")
	require.NoError(t, err, "cycle must be bounded, not an infinite loop or an error")
}

func TestRemoveRedirect_DropsEntry(t *testing.T) {
	eng, _ := newTestEngine(t)
	ctx := context.Background()

	require.NoError(t, eng.AddRedirect(ctx, "a", "b"))
	require.NoError(t, eng.RemoveRedirect(ctx, "a"))

	got, err := eng.ResolveRedirect(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got)
}

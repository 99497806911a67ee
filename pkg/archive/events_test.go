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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishDeliversToAllSubscribers(t *testing.T) {
	b := newEventBus()
	ch1, id1 := b.Subscribe(1)
	ch2, id2 := b.Subscribe(1)
	defer b.Unsubscribe(id1)
	defer b.Unsubscribe(id2)

	b.publish(Event{Kind: EventSyncCompleted})

	ev1 := <-ch1
	ev2 := <-ch2
	assert.Equal(t, EventSyncCompleted, ev1.Kind)
	assert.Equal(t, EventSyncCompleted, ev2.Kind)
}

func TestEventBus_PublishDropsForFullBuffer(t *testing.T) {
	b := newEventBus()
	ch, id := b.Subscribe(1)
	defer b.Unsubscribe(id)

	b.publish(Event{Kind: EventTitleChanged, ID: "first"})
	b.publish(Event{Kind: EventTitleChanged, ID: "second"})

	got := <-ch
	assert.Equal(t, "first", got.ID, "second publish should have been dropped, not queued")

	select {
	case <-ch:
		t.Fatal("expected no second event, buffer should have dropped it")
	default:
	}
}

func TestEventBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := newEventBus()
	_, id := b.Subscribe(1)
	b.Unsubscribe(id)
	assert.NotPanics(t, func() { b.Unsubscribe(id) })
}

func TestEventBus_SubscribeAfterCloseReturnsClosedChannel(t *testing.T) {
	b := newEventBus()
	b.close()

	ch, _ := b.Subscribe(1)
	_, ok := <-ch
	require.False(t, ok)
}

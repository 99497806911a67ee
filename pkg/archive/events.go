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

import "github.com/sasha-s/go-deadlock"

// EventKind is the category of a catalog change event.
type EventKind int

const (
	EventTitleChanged EventKind = iota
	EventTitleDeleted
	EventTagFilterIndexRebuilt
	EventSyncCompleted
)

// Event is one catalog change notification. ID is the affected title's
// id, empty for engine-wide events (e.g. EventTagFilterIndexRebuilt).
type Event struct {
	Kind EventKind
	ID   string
}

// eventBus is a process-wide, in-engine broadcaster: the single-title
// mutations (CreateTitle, UpdateTitle, DeleteTitle, ReplaceTags,
// ReplacePlatforms, AddPlaytime, ClearPlaytime) publish one Event here.
// Other mutations (bulk sync, merges, ClearAllPlaytime, tag-filter
// rebuilds, among others) publish nothing, and no code path publishes
// EventTagFilterIndexRebuilt or EventSyncCompleted.
// Any number of hosts (a UI, a sync daemon) can subscribe to watch
// the catalog change live. Sends are non-blocking - a slow subscriber
// drops events rather than stalling a write.
type eventBus struct {
	mu          deadlock.Mutex
	subscribers map[int]chan Event
	nextID      int
	closed      bool
}

func newEventBus() *eventBus {
	return &eventBus{subscribers: map[int]chan Event{}}
}

// Subscribe registers a new listener and returns its channel plus a handle
// for Unsubscribe. bufferSize bounds how many unread events queue before
// the bus starts dropping for this subscriber.
func (b *eventBus) Subscribe(bufferSize int) (<-chan Event, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, bufferSize)
	if b.closed {
		close(ch)
		return ch, id
	}
	b.subscribers[id] = ch
	return ch, id
}

// Unsubscribe removes and closes a subscriber's channel. Safe to call more
// than once with the same id.
func (b *eventBus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

func (b *eventBus) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *eventBus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}

// Subscribe exposes the engine's event bus to hosts.
func (e *Engine) Subscribe(bufferSize int) (<-chan Event, int) {
	return e.events.Subscribe(bufferSize)
}

// Unsubscribe releases a subscription obtained from Subscribe.
func (e *Engine) Unsubscribe(id int) {
	e.events.Unsubscribe(id)
}

func (e *Engine) publish(ev Event) {
	e.events.publish(ev)
}

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

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/olahol/melody"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
)

type eventMessage struct {
	Kind archive.EventKind `json:"kind"`
	ID   string            `json:"id,omitempty"`
}

// relayEvents subscribes to the engine's event bus and broadcasts every
// published event to every connected websocket session, mirroring the
// teacher's broadcastNotifications goroutine in pkg/api/server.go. It
// runs until ctx is cancelled.
func relayEvents(ctx context.Context, eng *archive.Engine, m *melody.Melody) {
	events, subID := eng.Subscribe(64)
	defer eng.Unsubscribe(subID)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(eventMessage{Kind: ev.Kind, ID: ev.ID})
			if err != nil {
				continue
			}
			_ = m.Broadcast(data)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	_ = s.melody.HandleRequest(w, r)
}

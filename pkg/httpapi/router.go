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

// Package httpapi is the thin HTTP/websocket frontend over pkg/archive:
// a chi router exposing search/CRUD/facet endpoints as JSON, plus a
// melody websocket that relays the engine's event log to connected
// clients, mirroring the shape of the teacher's pkg/api/server.go.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/olahol/melody"
	"github.com/rs/zerolog"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
)

// Server holds the engine and websocket session manager the router's
// handlers close over.
type Server struct {
	eng    *archive.Engine
	melody *melody.Melody
	log    zerolog.Logger
	router http.Handler
}

// NewServer builds a Server with its router fully wired. allowedOrigins
// is passed straight to the CORS middleware, as the teacher does with
// its own locally-computed origin list.
func NewServer(eng *archive.Engine, log zerolog.Logger, allowedOrigins []string) *Server {
	s := &Server{eng: eng, melody: melody.New(), log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/titles", s.handleSearch)
		r.Get("/titles/count", s.handleCount)
		r.Get("/titles/random", s.handleRandom)
		r.Post("/titles", s.handleCreateTitle)
		r.Get("/titles/{id}", s.handleFetchOne)
		r.Patch("/titles/{id}", s.handleUpdateTitle)
		r.Delete("/titles/{id}", s.handleDeleteTitle)
		r.Post("/titles/{id}/tags", s.handleReplaceTags)
		r.Post("/titles/{id}/platforms", s.handleReplacePlatforms)
		r.Post("/titles/{id}/playtime", s.handleAddPlaytime)

		r.Get("/facets/libraries", s.distinctHandler(s.eng.DistinctLibraries))
		r.Get("/facets/statuses", s.distinctHandler(s.eng.DistinctStatuses))
		r.Get("/facets/play-modes", s.distinctHandler(s.eng.DistinctPlayModes))
		r.Get("/facets/application-paths", s.distinctHandler(s.eng.DistinctApplicationPaths))
		r.Get("/tags/suggest", s.handleSuggestTags)

		r.Get("/events", s.handleWebSocket)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves the API on port until ctx is cancelled, then shuts down
// gracefully, mirroring the teacher's own Start function in
// pkg/api/server.go (listen in a goroutine, shut down on context
// cancellation). A listen error is returned directly; no readiness
// signal is sent.
func (s *Server) Start(ctx context.Context, port int) error {
	go relayEvents(ctx, s.eng, s.melody)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info().Int("port", port).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down HTTP server")
	case err := <-serveErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// handleSearch parses the q query parameter as a DSL string and runs it
// through the engine, applying the paging/relation query params on top
// of whatever the DSL itself produced.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := s.eng.ParseQuery(q.Get("q"))
	d := result.Descriptor

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			d.Limit = n
		}
	}
	if q.Get("slim") == "1" || q.Get("slim") == "true" {
		d.Slim = true
	}
	d.LoadRelations.Tags = q.Get("with_tags") == "1"
	d.LoadRelations.Platforms = q.Get("with_platforms") == "1"
	d.LoadRelations.PayloadManifests = q.Get("with_payloads") == "1"
	d.LoadRelations.AuxiliaryLaunchers = q.Get("with_launchers") == "1"

	if v, t, id := q.Get("cursor_value"), q.Get("cursor_title"), q.Get("cursor_id"); v != "" || id != "" {
		d.Offset = &search.Offset{Value: v, Title: t, ID: id}
	}

	page, err := s.eng.Search(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleCount mirrors handleSearch's query parsing for the total-count
// entry point, ignoring paging/relation flags since Count disregards them.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	result := s.eng.ParseQuery(r.URL.Query().Get("q"))
	n, err := s.eng.Count(r.Context(), result.Descriptor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Count int64 `json:"count"`
	}{n})
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := s.eng.ParseQuery(q.Get("q"))
	d := result.Descriptor
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			d.Limit = n
		}
	}
	titles, err := s.eng.Random(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, titles)
}

func (s *Server) handleFetchOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := s.eng.FetchOne(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type createTitleRequest struct {
	Title     archive.Title `json:"title"`
	Tags      []string      `json:"tags"`
	Platforms []string      `json:"platforms"`
}

func (s *Server) handleCreateTitle(w http.ResponseWriter, r *http.Request) {
	var req createTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	t := archive.NewTitle()
	t.Name = req.Title.Name
	t.AlternateTitles = req.Title.AlternateTitles
	t.Series = req.Title.Series
	t.Developer = req.Title.Developer
	t.Publisher = req.Title.Publisher
	if req.Title.Library != "" {
		t.Library = req.Title.Library
	}
	t.ReleaseDate = req.Title.ReleaseDate
	t.OriginalDescription = req.Title.OriginalDescription
	t.Status = req.Title.Status
	t.PlayMode = req.Title.PlayMode
	t.Source = req.Title.Source
	t.Language = req.Title.Language
	t.Version = req.Title.Version
	t.ApplicationPath = req.Title.ApplicationPath
	t.LaunchCommand = req.Title.LaunchCommand

	if err := s.eng.CreateTitle(r.Context(), t, req.Tags, req.Platforms); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch archive.TitlePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if err := s.eng.UpdateTitle(r.Context(), id, patch); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTitle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.eng.DeleteTitle(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if err := s.eng.ReplaceTags(r.Context(), id, names); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplacePlatforms(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if err := s.eng.ReplacePlatforms(r.Context(), id, names); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlaytime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body struct {
		Seconds int64 `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}
	if err := s.eng.AddPlaytime(r.Context(), id, body.Seconds); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

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

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates an archive.Error's Kind into an HTTP status and
// writes a uniform {"error": "..."} body. Anything not recognised as an
// *archive.Error falls back to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case archive.Is(err, archive.NotFound):
		status = http.StatusNotFound
	case archive.Is(err, archive.ConflictingAlias):
		status = http.StatusConflict
	case archive.Is(err, archive.UnsupportedSort):
		status = http.StatusBadRequest
	case archive.Is(err, archive.Cancelled):
		status = http.StatusRequestTimeout
	case archive.Is(err, archive.TransactionBusy):
		status = http.StatusServiceUnavailable
	case archive.Is(err, archive.NotInitialised):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

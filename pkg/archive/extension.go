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
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// extensionRegistry lets a host bind arbitrary per-title JSON data onto the
// catalog (a caller-defined "extension") and make individual keys within
// it searchable through the DSL. Each registered extension gets its own
// title.ext_<id> JSON column; each of its fields gets a DSL search-key
// routed to that column via json_extract (see compiler.go's extClause).
//
// It implements search.ExtensionLookup so the parser can route ext: terms
// without importing this package.
type extensionRegistry struct {
	e *Engine

	mu     sync.RWMutex
	fields map[string]search.ExtFieldDef // search key -> field def
	known  map[string]bool               // extension id -> column already added
}

func newExtensionRegistry(e *Engine) *extensionRegistry {
	return &extensionRegistry{
		e:      e,
		fields: map[string]search.ExtFieldDef{},
		known:  map[string]bool{},
	}
}

// extensionIDPattern restricts extension ids to what is safe to splice
// directly into an ALTER TABLE/column-name position: SQLite has no way to
// parameterise an identifier, so this is the registry's only defence
// against a malformed id reaching raw SQL.
var extensionIDPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// FieldDef describes one searchable field within an extension's JSON blob.
type FieldDef struct {
	SearchKey string
	JSONKey   string
	ValueType search.ExtValueType
}

// Register adds an extension's searchable fields, creating its backing
// column on first use. Calling Register again for the same extension id
// adds or replaces its field definitions without re-altering the table.
func (e *Engine) Register(ctx context.Context, extensionID string, fields []FieldDef) error {
	if !extensionIDPattern.MatchString(extensionID) {
		return newError(StorageFailure, fmt.Sprintf("invalid extension id %q", extensionID), nil)
	}

	reg := e.exts
	reg.mu.Lock()
	needsColumn := !reg.known[extensionID]
	reg.mu.Unlock()

	if needsColumn {
		if err := e.withWrite(ctx, func(tx *sql.Tx) error {
			col := "ext_" + extensionID
			_, err := tx.ExecContext(ctx,
				fmt.Sprintf(`ALTER TABLE title ADD COLUMN %s TEXT NOT NULL DEFAULT '{}'`, col))
			if err != nil {
				// SQLite has no IF NOT EXISTS for ALTER TABLE ADD COLUMN;
				// a duplicate-column error means a prior Register already
				// won this race and is not itself a failure.
				if isDuplicateColumn(err) {
					return nil
				}
				return wrapStorage(err)
			}
			return nil
		}); err != nil {
			return err
		}
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.known[extensionID] = true
	for _, f := range fields {
		reg.fields[f.SearchKey] = search.ExtFieldDef{
			ExtensionID: extensionID,
			Key:         f.JSONKey,
			ValueType:   f.ValueType,
		}
	}
	return nil
}

// Lookup implements search.ExtensionLookup.
func (r *extensionRegistry) Lookup(searchKey string) (search.ExtFieldDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.fields[searchKey]
	return def, ok
}

// ExtensionLookup exposes the engine's registry to callers of
// search.Parse (e.g. the Search bridge in search.go).
func (e *Engine) ExtensionLookup() search.ExtensionLookup {
	return e.exts
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}

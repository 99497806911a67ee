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

// Package archive is the catalog engine: mounting a store, running
// search/CRUD/bulk-sync operations against it, and maintaining the
// tag-filter index and event log that sit alongside it. Package search
// supplies the DSL parser, descriptor and compiler this package drives
// against an actual *sql.DB.
package archive

import (
	"context"
	"database/sql"

	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/singleflight"
)

// sqliteConnParams mirrors the teacher's write-optimised WAL DSN, except
// foreign key enforcement is left off (spec.md §6: bulk-ingest needs to
// reorder rows freely without tripping FK checks).
const sqliteConnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000" +
	"&_foreign_keys=OFF&_cache_size=-65536&_temp_store=MEMORY"

// Engine is the mounted catalog store plus everything the core needs to
// serve searches and mutations against it.
type Engine struct {
	db     *sql.DB
	clock  clockwork.Clock
	log    zerolog.Logger
	path   string

	// writeMu is the process-wide write-serialisation mutex (spec.md
	// §5): every mutating entry point holds it for the duration of its
	// transaction. go-deadlock instead of sync.Mutex so a stuck writer
	// surfaces a diagnostic instead of hanging invisibly.
	writeMu deadlock.Mutex

	tagFilter *tagFilterIndex
	exts      *extensionRegistry
	events    *eventBus

	sf singleflight.Group
}

// Option configures Open.
type Option func(*Engine)

// WithClock overrides the engine's clock; tests use this to control
// DateAdded/DateModified/LastPlayed stamping deterministically.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger overrides the engine's zerolog.Logger; defaults to a
// disabled logger if never set.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// Open mounts a store at path (":memory:" for a fresh in-memory
// instance), runs the migration chain, and returns a ready Engine.
func Open(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	dsn := path + sqliteConnParams
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, wrapStorage(err)
	}
	// The write-serialisation mutex already keeps writers to one at a
	// time; a single pooled connection keeps SQLite's own file lock from
	// fighting the driver's connection pool over the same guarantee.
	db.SetMaxOpenConns(1)

	e := &Engine{
		db:    db,
		path:  path,
		clock: clockwork.NewRealClock(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := migrateUp(db, e.log); err != nil {
		_ = db.Close()
		return nil, wrapStorage(err)
	}

	e.tagFilter = newTagFilterIndex(e)
	e.exts = newExtensionRegistry(e)
	e.events = newEventBus()

	return e, nil
}

// Close releases the underlying connection pool.
func (e *Engine) Close() error {
	e.events.close()
	return e.db.Close()
}

// withWrite serialises mutating operations behind the process-wide write
// mutex and wraps the body in a single transaction, committed on success
// and rolled back on any error or panic.
func (e *Engine) withWrite(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapStorage(err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if ctx.Err() != nil {
			return newError(Cancelled, "operation cancelled", ctx.Err())
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapStorage(err)
	}
	return nil
}

// queryable is satisfied by both *sql.DB and *sql.Tx, letting read-side
// helpers run either against the pool directly or inside an in-flight
// write transaction (e.g. the tag-filter index rebuild called from a
// mutating entry point).
type queryable interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (e *Engine) reader() queryable { return e.db }

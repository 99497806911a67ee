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
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var migrationMutex sync.Mutex

// gooseLogAdapter redirects goose's own log lines onto the engine's
// zerolog.Logger instead of stdout.
type gooseLogAdapter struct {
	log zerolog.Logger
}

func (a *gooseLogAdapter) Printf(format string, v ...any) {
	a.log.Info().Msgf(format, v...)
}

func (a *gooseLogAdapter) Fatalf(format string, v ...any) {
	a.log.Fatal().Msgf(format, v...)
}

// migrateUp runs the embedded migration chain against db. It serialises
// on a package-level mutex because goose keeps its base filesystem and
// dialect as global state; concurrent Engines migrating different stores
// would otherwise race on that global.
func migrateUp(db *sql.DB, log zerolog.Logger) error {
	migrationMutex.Lock()
	defer migrationMutex.Unlock()

	goose.SetLogger(&gooseLogAdapter{log: log})
	goose.SetBaseFS(migrationFiles)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("archive: setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("archive: running migrations: %w", err)
	}
	return nil
}

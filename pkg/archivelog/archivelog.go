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

// Package archivelog builds the zerolog.Logger the engine and its host
// bindings share: rotated via lumberjack, optionally duplicated onto
// extra writers a host supplies (stderr, a UI console, etc).
package archivelog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Dir is the directory the rotating log file is written into.
	Dir string
	// FileName defaults to "flarchive.log" when empty.
	FileName string
	// Extra writers additionally receive every log line (e.g. os.Stderr
	// for a CLI host, or a websocket relay for a UI host).
	Extra []io.Writer
	// Debug lowers the minimum level from info to trace.
	Debug bool
}

// New builds a ready-to-use zerolog.Logger per Options.
func New(opts Options) (zerolog.Logger, error) {
	fileName := opts.FileName
	if fileName == "" {
		fileName = "flarchive.log"
	}
	if err := os.MkdirAll(opts.Dir, 0o750); err != nil {
		return zerolog.Logger{}, err
	}

	writers := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, fileName),
		MaxSize:    10,
		MaxBackups: 3,
	}}
	writers = append(writers, opts.Extra...)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.TraceLevel
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(level).
		With().Timestamp().Caller().Logger()
	return logger, nil
}

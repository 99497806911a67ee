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

// Command flarchive-server runs the HTTP/websocket frontend over a
// mounted catalog store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
	"github.com/FlashpointProject/flashpoint-archive/pkg/archivelog"
	"github.com/FlashpointProject/flashpoint-archive/pkg/config"
	"github.com/FlashpointProject/flashpoint-archive/pkg/httpapi"
)

func main() {
	storePath := flag.String("store", "flarchive.sqlite", "path to the catalog store")
	configDir := flag.String("config-dir", ".", "directory holding flarchive.toml")
	logDir := flag.String("log-dir", ".", "directory to write flarchive-server.log")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log, err := archivelog.New(archivelog.Options{
		Dir:      *logDir,
		FileName: "flarchive-server.log",
		Debug:    *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error setting up logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(*configDir, config.Defaults)
	if err != nil {
		log.Error().Err(err).Msg("error loading config")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eng, err := archive.Open(ctx, *storePath, archive.WithLogger(log))
	if err != nil {
		log.Error().Err(err).Msg("error opening catalog store")
		os.Exit(1)
	}
	defer func() { _ = eng.Close() }()

	allowedOrigins := []string{
		fmt.Sprintf("http://localhost:%d", cfg.APIPort()),
		fmt.Sprintf("http://127.0.0.1:%d", cfg.APIPort()),
	}
	srv := httpapi.NewServer(eng, log, allowedOrigins)

	if err := srv.Start(ctx, cfg.APIPort()); err != nil {
		log.Error().Err(err).Msg("HTTP server error")
		os.Exit(1)
	}
}

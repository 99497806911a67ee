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

// Command flarchive-dump exports the titles matching a DSL query as
// either JSON or CSV, for offline backups or spreadsheet review.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// dumpRow is the flattened, CSV-friendly projection of a Title; gocsv
// marshals struct tags directly, so nested relation slices are excluded
// here and only available in the JSON format.
type dumpRow struct {
	ID              string `csv:"id"`
	Title           string `csv:"title"`
	Series          string `csv:"series"`
	Developer       string `csv:"developer"`
	Publisher       string `csv:"publisher"`
	Library         string `csv:"library"`
	Platforms       string `csv:"platforms"`
	Tags            string `csv:"tags"`
	Status          string `csv:"status"`
	PlayMode        string `csv:"play_mode"`
	ReleaseDate     string `csv:"release_date"`
	DateAdded       string `csv:"date_added"`
	DateModified    string `csv:"date_modified"`
	PlaytimeSeconds int64  `csv:"playtime_seconds"`
	Broken          bool   `csv:"broken"`
	Extreme         bool   `csv:"extreme"`
}

func toDumpRow(t archive.Title) dumpRow {
	return dumpRow{
		ID:              t.ID,
		Title:           t.Name,
		Series:          t.Series,
		Developer:       t.Developer,
		Publisher:       t.Publisher,
		Library:         t.Library,
		Platforms:       t.PlatformsStr,
		Tags:            t.TagsStr,
		Status:          t.Status,
		PlayMode:        t.PlayMode,
		ReleaseDate:     t.ReleaseDate,
		DateAdded:       t.DateAdded,
		DateModified:    t.DateModified,
		PlaytimeSeconds: t.PlaytimeSeconds,
		Broken:          t.Broken,
		Extreme:         t.Extreme,
	}
}

func main() {
	storePath := flag.String("store", "flarchive.sqlite", "path to the catalog store")
	query := flag.String("query", "", "DSL query selecting which titles to dump (empty matches everything)")
	format := flag.String("format", "json", "output format: json or csv")
	outPath := flag.String("out", "", "output file path (defaults to stdout)")
	flag.Parse()

	ctx := context.Background()
	eng, err := archive.Open(ctx, *storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = eng.Close() }()

	result := eng.ParseQuery(*query)
	d := result.Descriptor
	d.Limit = search.UnboundedLimit

	page, err := eng.Search(ctx, d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running query: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	switch *format {
	case "csv":
		rows := make([]dumpRow, len(page.Titles))
		for i, t := range page.Titles {
			rows[i] = toDumpRow(t)
		}
		if err := gocsv.MarshalFile(&rows, out); err != nil {
			fmt.Fprintf(os.Stderr, "error writing csv: %v\n", err)
			os.Exit(1)
		}
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(page.Titles); err != nil {
			fmt.Fprintf(os.Stderr, "error writing json: %v\n", err)
			os.Exit(1)
		}
	}
}

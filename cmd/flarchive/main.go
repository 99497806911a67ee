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

// Command flarchive is a local CLI over a catalog store: run one-shot
// queries and maintenance actions without standing up the HTTP frontend.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/FlashpointProject/flashpoint-archive/pkg/archive"
)

const appVersion = "0.1.0"

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func main() {
	storePath := flag.String("store", "flarchive.sqlite", "path to the catalog store")
	query := flag.String("query", "", "run a DSL search query and print the page as JSON")
	count := flag.String("count", "", "print the total row count for a DSL query")
	random := flag.Int("random", 0, "print N titles chosen at random")
	suggestTags := flag.String("suggest-tags", "", "print up to 20 tag suggestions for a prefix")
	rebuildTagFilter := flag.String("rebuild-tag-filter", "", "force-rebuild the tag-filter index for a comma-separated denylist")
	optimize := flag.Bool("optimize", false, "run ANALYZE/REINDEX/VACUUM against the store")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("flarchive v%s\n", appVersion)
		os.Exit(0)
	}

	ctx := context.Background()
	eng, err := archive.Open(ctx, *storePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = eng.Close() }()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	switch {
	case isFlagPassed("query"):
		result := eng.ParseQuery(*query)
		page, err := eng.Search(ctx, result.Descriptor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error running query: %v\n", err)
			os.Exit(1)
		}
		_ = enc.Encode(page)
	case isFlagPassed("count"):
		result := eng.ParseQuery(*count)
		n, err := eng.Count(ctx, result.Descriptor)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error counting: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(n)
	case *random > 0:
		d := eng.ParseQuery("").Descriptor
		d.Limit = int64(*random)
		titles, err := eng.Random(ctx, d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error sampling: %v\n", err)
			os.Exit(1)
		}
		_ = enc.Encode(titles)
	case isFlagPassed("suggest-tags"):
		names, err := eng.SuggestTags(ctx, *suggestTags, 20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error suggesting tags: %v\n", err)
			os.Exit(1)
		}
		_ = enc.Encode(names)
	case isFlagPassed("rebuild-tag-filter"):
		denied := strings.Split(*rebuildTagFilter, ",")
		if err := eng.PopulateTagFilterIndex(ctx, denied); err != nil {
			fmt.Fprintf(os.Stderr, "error rebuilding tag-filter index: %v\n", err)
			os.Exit(1)
		}
	case *optimize:
		if err := eng.Optimize(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error optimizing store: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

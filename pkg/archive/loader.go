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
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// loadRelations fills in the relation fields of titles according to
// rel: tags/platforms come from the denormalised _str columns already on
// the row (cheap, no second query), while manifests and launchers need a
// bulk follow-up query. The two follow-ups run concurrently since
// neither depends on the other.
func (e *Engine) loadRelations(ctx context.Context, titles []Title, rel search.LoadRelations) ([]Title, error) {
	if rel.Tags {
		for i := range titles {
			titles[i].Tags = splitDenorm(titles[i].TagsStr)
		}
	}
	if rel.Platforms {
		for i := range titles {
			titles[i].Platforms = splitDenorm(titles[i].PlatformsStr)
		}
	}
	if !rel.PayloadManifests && !rel.AuxiliaryLaunchers {
		return titles, nil
	}

	ids := make([]string, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	var manifests map[string][]PayloadManifest
	var launchers map[string][]AuxiliaryLauncher

	g, gctx := errgroup.WithContext(ctx)
	if rel.PayloadManifests {
		g.Go(func() error {
			var err error
			manifests, err = e.payloadManifestsForTitles(gctx, e.reader(), ids)
			return err
		})
	}
	if rel.AuxiliaryLaunchers {
		g.Go(func() error {
			var err error
			launchers, err = e.auxiliaryLaunchersForTitles(gctx, e.reader(), ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range titles {
		if rel.PayloadManifests {
			if v, ok := manifests[titles[i].ID]; ok {
				titles[i].PayloadManifests = v
			} else {
				titles[i].PayloadManifests = []PayloadManifest{}
			}
		}
		if rel.AuxiliaryLaunchers {
			if v, ok := launchers[titles[i].ID]; ok {
				titles[i].AuxiliaryLaunchers = v
			} else {
				titles[i].AuxiliaryLaunchers = []AuxiliaryLauncher{}
			}
		}
	}
	return titles, nil
}

// splitDenorm splits a "; "-joined denormalised column back into its
// member names. An empty string means zero members, not one empty one.
func splitDenorm(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "; ")
}

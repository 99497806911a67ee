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
	"sort"
	"strings"

	"github.com/FlashpointProject/flashpoint-archive/pkg/search"
)

// tagFilterIndex maintains the tag_filter_index materialisation: a table
// of title ids that pass a fixed denylist of excluded tags, kept around
// so repeated searches under the same denylist don't re-evaluate the
// tag exclusion on every page. A fingerprint identifies which denylist the
// current contents were built against; any mismatch (or the dirty bit
// from a mutating write) forces a rebuild before the index is trusted.
type tagFilterIndex struct {
	e *Engine
}

func newTagFilterIndex(e *Engine) *tagFilterIndex {
	return &tagFilterIndex{e: e}
}

// fingerprint canonicalises a denylist into a stable, order-independent
// string: lower-cased, sorted, semicolon-joined. Two denylists that name
// the same tags in a different order must hash to the same fingerprint.
func fingerprint(deniedTags []string) string {
	names := make([]string, len(deniedTags))
	for i, t := range deniedTags {
		names[i] = strings.ToLower(strings.TrimSpace(t))
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}

// MarkDirty flags the tag-filter index as stale. Entity mutations that
// can change which titles carry a denied tag call this instead of
// rebuilding inline, so a burst of writes pays for one rebuild, not one
// per write.
func (e *Engine) MarkDirty(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `UPDATE tag_filter_index_info SET dirty = 1`)
	if err != nil {
		return wrapStorage(err)
	}
	return nil
}

// EnsureTagFilterIndex rebuilds the tag_filter_index table if it is dirty
// or was last built against a different denylist than deniedTags.
// Concurrent callers requesting the same denylist collapse onto a single
// rebuild via singleflight; callers requesting different denylists still
// serialise through the write mutex.
func (e *Engine) EnsureTagFilterIndex(ctx context.Context, deniedTags []string) error {
	fp := fingerprint(deniedTags)

	_, err, _ := e.sf.Do("tagfilter:"+fp, func() (any, error) {
		return nil, e.withWrite(ctx, func(tx *sql.Tx) error {
			var currentFP string
			var dirty bool
			row := tx.QueryRowContext(ctx, `SELECT fingerprint, dirty FROM tag_filter_index_info LIMIT 1`)
			if err := row.Scan(&currentFP, &dirty); err != nil {
				return wrapStorage(err)
			}
			if !dirty && currentFP == fp {
				return nil
			}
			return e.rebuildTagFilterIndex(ctx, tx, deniedTags, fp)
		})
	})
	return err
}

func (e *Engine) rebuildTagFilterIndex(ctx context.Context, tx *sql.Tx, deniedTags []string, fp string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tag_filter_index`); err != nil {
		return wrapStorage(err)
	}

	d := search.NewDescriptor()
	d.Filter.Blacklist.Tags = deniedTags
	sqlText, params, err := search.Compile(d, search.PopulateTagFilterIndex)
	if err != nil {
		return wrapStorage(err)
	}
	if _, err := tx.ExecContext(ctx, sqlText, search.Values(params)...); err != nil {
		return wrapStorage(err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE tag_filter_index_info SET fingerprint = ?, dirty = 0`, fp); err != nil {
		return wrapStorage(err)
	}
	return nil
}

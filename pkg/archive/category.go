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
)

// Category groups tags for display (e.g. "Genre", "Platform Feature").
type Category struct {
	ID          int64
	Name        string
	Color       string
	Description string
}

// CreateCategory inserts a new tag category.
func (e *Engine) CreateCategory(ctx context.Context, name, color, description string) (int64, error) {
	var id int64
	err := e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tag_category (name, color, description) VALUES (?, ?, ?)`, name, color, description)
		if err != nil {
			return wrapStorage(err)
		}
		id, err = res.LastInsertId()
		return wrapStorage(err)
	})
	return id, err
}

// RenameCategory updates a category's display name.
func (e *Engine) RenameCategory(ctx context.Context, id int64, name string) error {
	return e.withWrite(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE tag_category SET name = ? WHERE id = ?`, name, id)
		if err != nil {
			return wrapStorage(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return newError(NotFound, "category not found", nil)
		}
		return nil
	})
}

// ListCategories returns every tag category.
func (e *Engine) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := e.reader().QueryContext(ctx, `SELECT id, name, color, description FROM tag_category ORDER BY name`)
	if err != nil {
		return nil, wrapStorage(err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Description); err != nil {
			return nil, wrapStorage(err)
		}
		out = append(out, c)
	}
	return out, wrapStorage(rows.Err())
}

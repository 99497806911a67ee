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

package search

import "fmt"

// Param is one bound parameter in a compiled statement's argument list. It
// is either a single scalar or a typed array bound through SQLite's
// carray(?) table-valued function - the Go-side equivalent of the
// original implementation's rarray(?) placeholder (see SPEC_FULL.md).
//
// Exactly one of the fields is populated; Array is non-nil only for
// parameters meant to be bound against a `carray(?)` clause.
type Param struct {
	Scalar any
	Array  []string
}

// ScalarParam wraps a single bound value.
func ScalarParam(v any) Param {
	return Param{Scalar: v}
}

// ArrayParam wraps a list bound as a carray(?) argument.
func ArrayParam(v []string) Param {
	return Param{Array: v}
}

// IsArray reports whether p is an array-bound parameter.
func (p Param) IsArray() bool {
	return p.Array != nil
}

// Value returns the driver-facing value for this parameter: the scalar
// itself, or the raw string slice for an array parameter (go-sqlite3's
// carray support, built with the sqlite_carray tag, accepts []string
// directly as a bound argument).
func (p Param) Value() any {
	if p.IsArray() {
		return p.Array
	}
	return p.Scalar
}

func (p Param) String() string {
	if p.IsArray() {
		return fmt.Sprintf("%v", p.Array)
	}
	return fmt.Sprintf("%v", p.Scalar)
}

// Values flattens a Param slice into driver-ready arguments, in order.
func Values(params []Param) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p.Value()
	}
	return out
}

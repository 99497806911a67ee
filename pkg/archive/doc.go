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

// This package's array-bound IN-clause queries (bulk payload/launcher
// lookups, remote-deleted-games cleanup, and any search whose filter
// has match-any exact tag or platform terms) use mattn/go-sqlite3's carray(?) table-valued function. Binaries that
// import this package must be built with `-tags sqlite_carray` for that
// driver feature to be compiled in; without the tag, any query using
// carray(?) fails at prepare time with "no such table function: carray".
package archive

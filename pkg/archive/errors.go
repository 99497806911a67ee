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
	"errors"
	"fmt"
)

// Kind is the closed taxonomy of error categories the engine returns.
type Kind int

const (
	StorageFailure Kind = iota
	NotInitialised
	NotFound
	ConflictingAlias
	UnsupportedSort
	Cancelled
	TransactionBusy
)

func (k Kind) String() string {
	switch k {
	case NotInitialised:
		return "not initialised"
	case StorageFailure:
		return "storage failure"
	case NotFound:
		return "not found"
	case ConflictingAlias:
		return "conflicting alias"
	case UnsupportedSort:
		return "unsupported sort"
	case Cancelled:
		return "cancelled"
	case TransactionBusy:
		return "transaction busy"
	default:
		return "unknown"
	}
}

// Error is the engine's uniform error type: a Kind plus an optional
// wrapped cause (typically a *sql.Error or driver error).
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// Is reports whether err is an *Error of the given Kind, unwrapping as
// errors.As would. Callers check kinds with archive.Is(err, archive.NotFound)
// rather than a sentinel value, since the underlying cause varies.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	return newError(StorageFailure, "storage operation failed", err)
}

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

// ExtValueType is the declared value type of a registered extension field.
type ExtValueType int

const (
	ExtString ExtValueType = iota
	ExtBool
	ExtNumber
)

// ExtFieldDef is what the parser needs to know about a registered
// extension field in order to route a DSL term into the Ext bucket
// instead of the generic-text bucket.
type ExtFieldDef struct {
	ExtensionID string
	Key         string
	ValueType   ExtValueType
}

// ExtensionLookup resolves a DSL search-key to a registered extension
// field. Package archive's extension registry implements this; package
// search never constructs or owns a registry itself, to keep the DSL
// parser free of any database dependency.
type ExtensionLookup interface {
	Lookup(searchKey string) (ExtFieldDef, bool)
}

// NopExtensionLookup never resolves anything. It is the default used by
// Parse when the caller has no extensions registered.
type NopExtensionLookup struct{}

func (NopExtensionLookup) Lookup(string) (ExtFieldDef, bool) { return ExtFieldDef{}, false }

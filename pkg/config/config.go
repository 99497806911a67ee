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

// Package config loads the engine's own settings: store path, SQLite
// pragmas, busy timeout, tag-filter-index rebuild behaviour, and the
// extension bootstrap list. It follows the "hardcoded defaults plus
// optional TOML file" shape used throughout the rest of the stack.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const SchemaVersion = 1

const CfgFile = "flarchive.toml"

// Values is the on-disk shape of the engine config file.
type Values struct {
	ConfigSchema int      `toml:"config_schema"`
	StorePath    string   `toml:"store_path"`
	BusyTimeout  int      `toml:"busy_timeout_ms"`
	WALMode      bool     `toml:"wal_mode"`
	AutoRebuildTagFilter bool `toml:"auto_rebuild_tag_filter"`
	Extensions   []string `toml:"extensions,omitempty,multiline"`
	DebugLogging bool     `toml:"debug_logging"`
	APIPort      int      `toml:"api_port"`
}

// Defaults mirrors the rest of the stack's BaseDefaults convention: a
// ready-to-use Values the caller can override piecemeal before passing
// to New.
var Defaults = Values{
	ConfigSchema:         SchemaVersion,
	StorePath:            "flarchive.sqlite",
	BusyTimeout:          5000,
	WALMode:              true,
	AutoRebuildTagFilter: true,
	APIPort:              8980,
}

// Instance is a loaded, mutex-guarded config; safe for concurrent reads
// via its accessor methods while a write-path reload replaces vals.
type Instance struct {
	mu      sync.RWMutex
	cfgPath string
	vals    Values
}

// New loads (or creates, with Defaults) the config file under configDir.
func New(configDir string, defaults Values) (*Instance, error) {
	cfgPath := filepath.Join(configDir, CfgFile)
	inst := &Instance{cfgPath: cfgPath, vals: defaults}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o750); err != nil {
			return nil, fmt.Errorf("config: creating config directory: %w", err)
		}
		if err := inst.Save(); err != nil {
			return nil, err
		}
		return inst, nil
	}

	if err := inst.Load(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Load re-reads the config file from disk, replacing the in-memory values.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("config: reading config file: %w", err)
	}

	var vals Values
	if err := toml.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("config: unmarshalling config: %w", err)
	}
	if vals.ConfigSchema != SchemaVersion {
		return errors.New("config: schema version mismatch")
	}
	c.vals = vals
	return nil
}

// Save writes the current in-memory values back to disk.
func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("config: marshalling config: %w", err)
	}
	return os.WriteFile(c.cfgPath, data, 0o640)
}

func (c *Instance) StorePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.StorePath
}

func (c *Instance) BusyTimeoutMS() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.BusyTimeout
}

func (c *Instance) WALMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.WALMode
}

func (c *Instance) AutoRebuildTagFilter() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.AutoRebuildTagFilter
}

func (c *Instance) Extensions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.vals.Extensions...)
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.APIPort
}

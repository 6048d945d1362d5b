/*
 * config.go, part of refprep.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package config reads the refprep configuration file, a TOML file that
// provides defaults for the command-line options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Hydrogen handling modes.
const (
	HydrogensKeep   = "keep"
	HydrogensRemove = "remove"
)

// Config holds every setting that can come from the configuration file.
type Config struct {
	Monomers      string   `toml:"monomers,omitempty"`
	Lib           []string `toml:"lib,omitempty"`
	Low           []string `toml:"low,omitempty"`
	AutoLink      bool     `toml:"auto_link"`
	AutoLigand    bool     `toml:"auto_ligand"`
	AutoCis       bool     `toml:"auto_cis"`
	SearchRadius  float64  `toml:"search_radius"`
	ContactCutoff float64  `toml:"contact_cutoff"`
	Hydrogens     string   `toml:"hydrogens"`
	Workers       int      `toml:"workers"`
}

// Default returns the settings used when there is no configuration file.
func Default() Config {
	return Config{
		AutoCis:       true,
		SearchRadius:  5.0,
		ContactCutoff: 3.5,
		Hydrogens:     HydrogensKeep,
		Workers:       1,
	}
}

// DefaultPath returns ~/.refprep/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".refprep", "config.toml"), nil
}

// Load reads the configuration file at path over the defaults. An empty path
// means DefaultPath, which is allowed not to exist; an explicit path must.
// Unknown keys are an error.
func Load(path string) (Config, error) {
	c := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return c, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, fmt.Errorf("config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the ranges of the numeric settings and the hydrogen mode.
func (c Config) Validate() error {
	if c.SearchRadius <= 0 {
		return fmt.Errorf("search_radius must be positive, got %g", c.SearchRadius)
	}
	if c.ContactCutoff <= 0 || c.ContactCutoff > c.SearchRadius {
		return fmt.Errorf("contact_cutoff must be positive and not larger than search_radius, got %g", c.ContactCutoff)
	}
	if c.Hydrogens != HydrogensKeep && c.Hydrogens != HydrogensRemove {
		return fmt.Errorf("hydrogens must be %q or %q, got %q", HydrogensKeep, HydrogensRemove, c.Hydrogens)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers can't be negative, got %d", c.Workers)
	}
	return nil
}

// Save writes c to path, creating its directory if needed.
func Save(path string, c Config) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

/*
 * resolve.go, part of refprep.
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

// Package resolve finds a definition for every residue name of a model,
// looking at the user's libraries, the installed monomer library and the
// fallback libraries, in that order of priority.
package resolve

import (
	"fmt"
	"strings"

	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/monlib"
)

// EmbeddedSource is the override value that stands for the monomer blocks
// of the input structure document.
const EmbeddedSource = "+"

// Loader reads the definitions in a library file.
type Loader func(path string) ([]*monlib.ChemComp, error)

// UserLoader reads a library file given by the user.
func UserLoader(path string) ([]*monlib.ChemComp, error) {
	return monlib.ReadFile(path, monlib.User)
}

// Request describes what to resolve and where to look.
type Request struct {
	Names     []string      //residue names needing definitions
	Overrides []string      //library files, highest priority first. EmbeddedSource is allowed.
	Fallbacks []string      //library files used only for names nothing else defines
	Installed monlib.Source //may be nil
	Embedded  *cif.Document //the input structure document, may be nil
	Loader    Loader        //nil means UserLoader
}

// Result is the outcome of a resolution. Unmet keeps the order of the
// requested names.
type Result struct {
	Library  *monlib.Library
	Unmet    []string
	Warnings []string
	Notes    []string //progress messages
}

func (R *Result) warnf(format string, args ...any) {
	R.Warnings = append(R.Warnings, fmt.Sprintf(format, args...))
}

func (R *Result) notef(format string, args ...any) {
	R.Notes = append(R.Notes, fmt.Sprintf(format, args...))
}

// unique returns names without repetitions, keeping the first occurrence.
func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	ret := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		ret = append(ret, n)
	}
	return ret
}

// Resolve builds a new library for req.Names. Every override contributes
// all its definitions; the installed source is asked only for the names
// still missing after that, and the fallbacks can only fill names still
// missing after the installed source. Read errors become warnings.
func Resolve(req Request) Result {
	load := req.Loader
	if load == nil {
		load = UserLoader
	}
	names := unique(req.Names)
	res := Result{Library: monlib.NewLibrary()}
	for _, path := range req.Overrides {
		var ccs []*monlib.ChemComp
		if path == EmbeddedSource {
			if req.Embedded == nil {
				res.warnf("no structure document to read embedded monomers from")
				continue
			}
			res.notef("Reading monomers embedded in %s...", req.Embedded.Source)
			c, err := monlib.ReadChemComps(req.Embedded, monlib.Embedded)
			if err != nil {
				res.warnf("%v", err)
				continue
			}
			ccs = c
		} else {
			res.notef("Reading user's library %s...", path)
			c, err := load(path)
			if err != nil {
				res.warnf("%v", err)
				continue
			}
			ccs = c
		}
		for _, cc := range ccs {
			res.Library.Add(cc)
		}
	}
	if len(req.Overrides) > 0 {
		res.notef("Monomers read so far: %s", strings.Join(res.Library.Names(), " "))
	}
	if missing := res.Library.Missing(names); len(missing) > 0 && req.Installed != nil {
		ccs, err := req.Installed.Lookup(missing)
		if err != nil {
			res.warnf("%v", err)
		}
		for _, cc := range ccs {
			res.Library.Add(cc)
		}
	}
	for _, path := range req.Fallbacks {
		missing := res.Library.Missing(names)
		if len(missing) == 0 {
			break
		}
		ccs, err := load(path)
		if err != nil {
			res.warnf("%v", err)
			continue
		}
		want := make(map[string]bool, len(missing))
		for _, n := range missing {
			want[n] = true
		}
		for _, cc := range ccs {
			if want[cc.ID] && res.Library.Add(cc) {
				res.notef("Using %s from %s", cc.ID, path)
			}
		}
	}
	res.Unmet = res.Library.Missing(names)
	return res
}

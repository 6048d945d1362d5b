/*
 * installed.go, part of refprep.
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

package monlib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/refprep/internal/zio"
)

// Source is anything that can provide monomer definitions by name.
// Lookup returns the definitions it found. When some names could not be
// provided the error lists them, and the definitions found are still
// returned.
type Source interface {
	Lookup(names []string) ([]*ChemComp, error)
}

// InstalledLibrary is a monomer library directory in the CCP4 layout, where
// the definition of NAME lives in DIR/n/NAME.cif, n being the lowercase
// first character of the name.
type InstalledLibrary struct {
	Dir string
}

// NewInstalled returns the library rooted at dir. It fails if dir is not a
// directory.
func NewInstalled(dir string) (*InstalledLibrary, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, Error{message: err.Error(), filename: dir, deco: []string{"NewInstalled"}, critical: true}
	}
	if !fi.IsDir() {
		return nil, Error{message: "not a directory", filename: dir, deco: []string{"NewInstalled"}, critical: true}
	}
	return &InstalledLibrary{Dir: dir}, nil
}

var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// RelativePath returns the path of the definition of name inside the
// library, without compression extension. Names that are reserved file
// names on Windows are stored as NAME_NAME.cif.
func RelativePath(name string) string {
	if name == "" {
		return ""
	}
	base := name
	if windowsReserved[strings.ToUpper(name)] {
		base = name + "_" + name
	}
	return filepath.Join(strings.ToLower(name[:1]), base+".cif")
}

// Path returns the file holding the definition of name, trying the plain
// file first and then the .gz and .zst variants. The second value is false
// if none exists.
func (I *InstalledLibrary) Path(name string) (string, bool) {
	rel := RelativePath(name)
	if rel == "" {
		return "", false
	}
	p := filepath.Join(I.Dir, rel)
	for _, ext := range []string{"", zio.GzipExt, zio.ZstdExt} {
		if zio.Exists(p + ext) {
			return p + ext, true
		}
	}
	return "", false
}

// Lookup reads the definition of each name. Names without a file, or whose
// file has no block for them, are collected in the returned error.
func (I *InstalledLibrary) Lookup(names []string) ([]*ChemComp, error) {
	ret := make([]*ChemComp, 0, len(names))
	missing := make([]string, 0)
	var problems []string
	for _, n := range names {
		p, ok := I.Path(n)
		if !ok {
			missing = append(missing, n)
			continue
		}
		ccs, err := ReadFile(p, Installed)
		if err != nil {
			missing = append(missing, n)
			problems = append(problems, err.Error())
			continue
		}
		var found *ChemComp
		for _, cc := range ccs {
			if cc.ID == n {
				found = cc
				break
			}
		}
		if found == nil {
			missing = append(missing, n)
			problems = append(problems, p+": no definition of "+n)
			continue
		}
		ret = append(ret, found)
	}
	if len(missing) == 0 {
		return ret, nil
	}
	msg := "monomers not found in the library: " + strings.Join(missing, " ")
	if len(problems) > 0 {
		msg += " (" + strings.Join(problems, "; ") + ")"
	}
	return ret, Error{message: msg, filename: I.Dir, deco: []string{"Lookup"}, missing: missing, critical: len(ret) == 0}
}

// Lookup makes a Library usable as a Source.
func (L *Library) Lookup(names []string) ([]*ChemComp, error) {
	ret := make([]*ChemComp, 0, len(names))
	missing := L.Missing(names)
	for _, n := range names {
		if cc := L.Get(n); cc != nil {
			ret = append(ret, cc)
		}
	}
	if len(missing) > 0 {
		return ret, Error{message: "monomers not found: " + strings.Join(missing, " "), deco: []string{"Lookup"}, missing: missing}
	}
	return ret, nil
}

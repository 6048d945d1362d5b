/*
 * chemcomp.go, part of refprep.
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

// Package monlib holds chemical component (monomer) definitions, the library
// of definitions resolved for a model, and the sources they are read from.
package monlib

import (
	"sort"
)

// Origin tells where a definition came from.
type Origin int

const (
	Installed Origin = iota //the installed monomer library
	User                    //a library file given by the user
	Embedded                //monomer blocks of the input structure document
	AdHoc                   //synthesized from the model coordinates
)

func (O Origin) String() string {
	switch O {
	case Installed:
		return "installed"
	case User:
		return "user"
	case Embedded:
		return "embedded"
	case AdHoc:
		return "ad-hoc"
	}
	return "unknown"
}

// ParseOrigin is the inverse of Origin.String. The second value is false for
// unknown strings.
func ParseOrigin(s string) (Origin, bool) {
	for _, o := range []Origin{Installed, User, Embedded, AdHoc} {
		if o.String() == s {
			return o, true
		}
	}
	return Installed, false
}

// CompAtom is an atom of a chemical component.
type CompAtom struct {
	ID         string
	Symbol     string
	EnergyType string
	Charge     float64
}

// Bond is a bond restraint, with the ideal length and its esd in A.
type Bond struct {
	Atom1, Atom2 string
	Type         string
	Value, ESD   float64
}

// Angle is an angle restraint with the vertex in Atom2, values in degrees.
type Angle struct {
	Atom1, Atom2, Atom3 string
	Value, ESD          float64
}

// ChemComp is the geometric definition of a chemical component.
type ChemComp struct {
	ID     string
	Name   string
	Group  string
	Origin Origin
	Atoms  []CompAtom
	Bonds  []Bond
	Angles []Angle
}

// Atom returns the atom with the given id, or nil.
func (C *ChemComp) Atom(id string) *CompAtom {
	for i := range C.Atoms {
		if C.Atoms[i].ID == id {
			return &C.Atoms[i]
		}
	}
	return nil
}

// Library is a set of definitions keyed by component id. Once a name is in
// the library its definition is never replaced.
type Library struct {
	comps map[string]*ChemComp
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{comps: make(map[string]*ChemComp)}
}

// Add inserts cc unless a definition with the same id is already present,
// and reports whether it did.
func (L *Library) Add(cc *ChemComp) bool {
	if cc == nil || cc.ID == "" {
		return false
	}
	if _, ok := L.comps[cc.ID]; ok {
		return false
	}
	L.comps[cc.ID] = cc
	return true
}

// Has reports whether name has a definition.
func (L *Library) Has(name string) bool {
	_, ok := L.comps[name]
	return ok
}

// Get returns the definition of name, or nil.
func (L *Library) Get(name string) *ChemComp {
	return L.comps[name]
}

// Len returns the number of definitions.
func (L *Library) Len() int {
	return len(L.comps)
}

// Names returns the ids in the library, sorted.
func (L *Library) Names() []string {
	names := make([]string, 0, len(L.comps))
	for k := range L.comps {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names, in the given order, that have no definition.
func (L *Library) Missing(names []string) []string {
	ret := make([]string, 0)
	for _, n := range names {
		if !L.Has(n) {
			ret = append(ret, n)
		}
	}
	return ret
}

/*
 * bonds.go, part of refprep.
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

package chem

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

// Bond is a covalent bond between the atoms with indexes I and J of a list.
type Bond struct {
	Index int
	I, J  int
	At1   *Atom
	At2   *Atom
	Dist  float64
}

// AssignBonds assigns bonds to a list of atoms based on a simple distance
// criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
// Atoms with more bonds than their element allows lose their longest ones.
// It is meant for single residues; the cost grows quadratically.
func AssignBonds(atoms []*Atom) ([]*Bond, error) {
	bonds := make([]*Bond, 0, len(atoms))
	perAtom := make([][]*Bond, len(atoms))
	for i, at1 := range atoms {
		cov1 := at1.CovRad()
		if cov1 == 0 {
			return nil, CError{message: fmt.Sprintf("Couldn't find the covalent radii for %s %s", at1.Symbol, at1.Name), deco: []string{"AssignBonds"}}
		}
		for j := i + 1; j < len(atoms); j++ {
			at2 := atoms[j]
			cov2 := at2.CovRad()
			if cov2 == 0 {
				return nil, CError{message: fmt.Sprintf("Couldn't find the covalent radii for %s %s", at2.Symbol, at2.Name), deco: []string{"AssignBonds"}}
			}
			d := r3.Norm(r3.Sub(at2.Pos, at1.Pos))
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &Bond{Index: len(bonds), I: i, J: j, At1: at1, At2: at2, Dist: d}
				bonds = append(bonds, b)
				perAtom[i] = append(perAtom[i], b)
				perAtom[j] = append(perAtom[j], b)
			}
		}
	}
	//Now we check that no atom has too many bonds.
	removed := make(map[int]bool)
	for i, at := range atoms {
		max := MaxBonds(at.Symbol)
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		alive := make([]*Bond, 0, len(perAtom[i]))
		for _, b := range perAtom[i] {
			if !removed[b.Index] {
				alive = append(alive, b)
			}
		}
		sort.SliceStable(alive, func(a, b int) bool { return alive[a].Dist < alive[b].Dist })
		for len(alive) > max {
			removed[alive[len(alive)-1].Index] = true //we remove the longest bond
			alive = alive[:len(alive)-1]
		}
	}
	ret := make([]*Bond, 0, len(bonds))
	for _, b := range bonds {
		if !removed[b.Index] {
			b.Index = len(ret)
			ret = append(ret, b)
		}
	}
	return ret, nil
}

/*
 * geometric.go, part of refprep.
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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Deg2Rad and Rad2Deg convert between degrees and radians.
const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

// Peptide geometry used to decide whether two residues are linked.
const (
	maxPeptideBond = 2.0
	cisOmegaLimit  = 30.0 //degrees
)

// Dihedral calculates the dihedral, in radians, between the points a, b, c,
// d, where the first plane is defined by abc and the second by bcd.
func Dihedral(a, b, c, d r3.Vec) float64 {
	//bma=b minus a
	bma := r3.Sub(b, a)
	cmb := r3.Sub(c, b)
	dmc := r3.Sub(d, c)
	bmascaled := r3.Scale(r3.Norm(cmb), bma)
	first := r3.Dot(bmascaled, r3.Cross(cmb, dmc))
	v1 := r3.Cross(bma, cmb)
	v2 := r3.Cross(cmb, dmc)
	second := r3.Dot(v1, v2)
	return math.Atan2(first, second)
}

// Angle returns the angle, in radians, a-b-c with vertex b.
func Angle(a, b, c r3.Vec) float64 {
	u := r3.Sub(a, b)
	v := r3.Sub(c, b)
	nu, nv := r3.Norm(u), r3.Norm(v)
	if nu == 0 || nv == 0 {
		return 0
	}
	cos := r3.Dot(u, v) / (nu * nv)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}

// Omega returns the peptide omega dihedral, in degrees, between residue prev
// and residue next, and false if the residues are not linked by a peptide
// bond or lack the atoms to compute it.
func Omega(prev, next *Residue) (float64, bool) {
	ca1 := prev.Find("CA", 0)
	c := prev.Find("C", 0)
	n := next.Find("N", 0)
	ca2 := next.Find("CA", 0)
	if ca1 == nil || c == nil || n == nil || ca2 == nil {
		return 0, false
	}
	if r3.Norm(r3.Sub(n.Pos, c.Pos)) > maxPeptideBond {
		return 0, false
	}
	return Dihedral(ca1.Pos, c.Pos, n.Pos, ca2.Pos) * Rad2Deg, true
}

// AssignCisFlags sets Residue.IsCis on every residue whose peptide bond to
// the previous residue of the chain is cis, and clears it on all others. It
// returns the number of cis peptides found.
func AssignCisFlags(m *Model) int {
	n := 0
	for _, ch := range m.Chains {
		for i, r := range ch.Residues {
			r.IsCis = false
			if i == 0 {
				continue
			}
			omega, ok := Omega(ch.Residues[i-1], r)
			if ok && math.Abs(omega) < cisOmegaLimit {
				r.IsCis = true
				n++
			}
		}
	}
	return n
}

// RemoveHydrogens deletes every H and D atom from the model and returns the
// number of atoms removed. Residues left without atoms are kept.
func RemoveHydrogens(m *Model) int {
	removed := 0
	for _, ch := range m.Chains {
		for _, r := range ch.Residues {
			kept := r.Atoms[:0]
			for _, a := range r.Atoms {
				if a.IsHydrogen() {
					removed++
					continue
				}
				kept = append(kept, a)
			}
			r.Atoms = kept
		}
	}
	return removed
}

// BoundingBox returns the minimum and maximum corners of the model.
// Both are zero for an empty model.
func BoundingBox(m *Model) (r3.Vec, r3.Vec) {
	first := true
	var lo, hi r3.Vec
	for cra := range m.Atoms() {
		p := cra.Atom.Pos
		if first {
			lo, hi = p, p
			first = false
			continue
		}
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return lo, hi
}

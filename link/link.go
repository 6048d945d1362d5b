/*
 * link.go, part of refprep.
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

// Package link detects covalent bonds between residues that are not declared
// in the connection table of a structure.
package link

import (
	"fmt"
	"iter"
	"math"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/neighbor"
)

// Default parameters of a Detector.
const (
	DefaultSearchRadius     = 5.0
	DefaultContactCutoff    = 3.5
	DefaultTolerance        = 0.5
	DefaultSpecialPosCutoff = 0.8
)

// NamePrefix starts the name of every connection the detector creates.
const NamePrefix = "added"

// ContactFilter selects, from all the pairs of a neighbor search, the
// contacts that could be bonds between different residues.
type ContactFilter struct {
	Cutoff           float64 //maximum distance
	SpecialPosCutoff float64 //an atom closer than this to its own image is on a special position
	MinOccupancy     float64
}

// Filter lazily yields the pairs of seq that pass the filter: within Cutoff,
// not in the same or in sequence-adjacent residues of the same chain of the
// same asymmetric unit, not an atom and its image on a special position,
// not in different alternative conformations, and with both occupancies at
// least MinOccupancy.
func (F ContactFilter) Filter(seq iter.Seq[neighbor.Pair]) iter.Seq[neighbor.Pair] {
	c2 := F.Cutoff * F.Cutoff
	sp2 := F.SpecialPosCutoff * F.SpecialPosCutoff
	return func(yield func(neighbor.Pair) bool) {
		for p := range seq {
			if p.DistSq > c2 {
				continue
			}
			if p.SameAsu() && p.A.Chain == p.B.Chain && abs(p.A.ResIdx-p.B.ResIdx) <= 1 {
				continue
			}
			if p.I == p.J && p.DistSq < sp2 {
				continue
			}
			a, b := p.A.Atom, p.B.Atom
			if a.AltLoc != 0 && b.AltLoc != 0 && a.AltLoc != b.AltLoc {
				continue
			}
			if a.Occupancy < F.MinOccupancy || b.Occupancy < F.MinOccupancy {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Candidate is a contact that passed the filter, with the bond threshold and
// whether it was turned into a connection.
type Candidate struct {
	Pair      neighbor.Pair
	Threshold float64 //sum of covalent radii plus the tolerance
	Existing  bool    //the structure already has this connection
	Accepted  bool
	Image     string  //image of the second atom, as in 2_565
}

// Dist returns the contact distance.
func (C Candidate) Dist() float64 {
	return C.Pair.Dist()
}

// Detector finds contacts shorter than the sum of the covalent radii of the
// atoms plus a tolerance.
type Detector struct {
	SearchRadius     float64
	ContactCutoff    float64
	Tolerance        float64
	MinOccupancy     float64
	SpecialPosCutoff float64
	Workers          int
}

// NewDetector returns a Detector with the default parameters.
func NewDetector() *Detector {
	return &Detector{
		SearchRadius:     DefaultSearchRadius,
		ContactCutoff:    DefaultContactCutoff,
		Tolerance:        DefaultTolerance,
		SpecialPosCutoff: DefaultSpecialPosCutoff,
		Workers:          1,
	}
}

func (D *Detector) check() error {
	if D.SearchRadius <= 0 || D.ContactCutoff <= 0 {
		return Error{message: fmt.Sprintf("search radius (%g) and contact cutoff (%g) must be positive", D.SearchRadius, D.ContactCutoff), deco: []string{"check"}, critical: true}
	}
	if D.ContactCutoff > D.SearchRadius {
		return Error{message: fmt.Sprintf("contact cutoff %g is larger than the search radius %g", D.ContactCutoff, D.SearchRadius), deco: []string{"check"}, critical: true}
	}
	return nil
}

// Threshold returns the largest distance at which atoms a and b are
// considered bonded.
func (D *Detector) Threshold(a, b *chem.Atom) float64 {
	return (a.CovRad() + b.CovRad()) + D.Tolerance
}

// Candidates returns every contact of m that passed the filter, in the
// order of the neighbor search, telling which ones are new bonds.
func (D *Detector) Candidates(m *chem.Model, st *chem.Structure) ([]Candidate, error) {
	if err := D.check(); err != nil {
		return nil, errDecorate(err, "Candidates")
	}
	ix, err := neighbor.Build(m, st.Cell, D.SearchRadius, neighbor.Options{Workers: D.Workers})
	if err != nil {
		return nil, errDecorate(err, "Candidates")
	}
	filter := ContactFilter{Cutoff: D.ContactCutoff, SpecialPosCutoff: D.SpecialPosCutoff, MinOccupancy: D.MinOccupancy}
	ret := make([]Candidate, 0)
	for p := range filter.Filter(ix.Pairs()) {
		t := D.Threshold(p.A.Atom, p.B.Atom)
		c := Candidate{Pair: p, Threshold: t, Image: ix.Images()[p.Image].String()}
		if st.FindConnection(p.A.Address(), p.B.Address()) != nil {
			c.Existing = true
		} else {
			c.Accepted = p.DistSq <= t*t
		}
		ret = append(ret, c)
	}
	return ret, nil
}

// Detect returns the new connections of m not already in st, in discovery
// order. Names are NamePrefix plus the lowest counter that makes them unique
// in st. st is not modified.
func (D *Detector) Detect(m *chem.Model, st *chem.Structure) ([]chem.Connection, error) {
	cands, err := D.Candidates(m, st)
	if err != nil {
		return nil, errDecorate(err, "Detect")
	}
	return Connections(cands, st), nil
}

// Connections builds the connections for the accepted candidates.
func Connections(cands []Candidate, st *chem.Structure) []chem.Connection {
	used := make(map[string]bool)
	counter := 0
	ret := make([]chem.Connection, 0)
	for _, c := range cands {
		if !c.Accepted {
			continue
		}
		var name string
		for {
			counter++
			name = fmt.Sprintf("%s%d", NamePrefix, counter)
			if !used[name] && !st.HasConnectionName(name) {
				break
			}
		}
		used[name] = true
		asu, image := chem.AsuSame, ""
		if !c.Pair.SameAsu() {
			asu, image = chem.AsuDifferent, c.Image
		}
		ret = append(ret, chem.Connection{
			Name:     name,
			Type:     chem.Covale,
			Asu:      asu,
			Partner1: c.Pair.A.Address(),
			Partner2: c.Pair.B.Address(),
			Distance: math.Sqrt(c.Pair.DistSq),
			Image:    image,
		})
	}
	return ret
}

// DetectAndAppend is like Detect, but also appends the new connections to
// st.Connections.
func (D *Detector) DetectAndAppend(m *chem.Model, st *chem.Structure) ([]chem.Connection, error) {
	conns, err := D.Detect(m, st)
	if err != nil {
		return nil, errDecorate(err, "DetectAndAppend")
	}
	st.Connections = append(st.Connections, conns...)
	return conns, nil
}

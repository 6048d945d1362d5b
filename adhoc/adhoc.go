/*
 * adhoc.go, part of refprep.
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

// Package adhoc builds monomer definitions from the coordinates of the model
// itself, for residues no library defines.
package adhoc

import (
	"fmt"
	"sort"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/monlib"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Default esds given to the observed geometry.
const (
	DefaultBondESD  = 0.02 //A
	DefaultAngleESD = 3.0  //degrees
)

// Warnings emitted whenever definitions are synthesized.
const (
	WarnAdHoc     = "Using ad-hoc restraints for missing monomers."
	WarnDedicated = "Restraints generated by a dedicated program would be better."
)

// Inferrer derives a definition, with bonds and angles, from one residue.
// It may return warnings about the result.
type Inferrer interface {
	Infer(res *chem.Residue) (*monlib.ChemComp, []string, error)
}

// DistanceInferrer bonds atoms closer than the sum of their covalent radii
// plus a tolerance, and takes every observed bond length and angle as ideal.
type DistanceInferrer struct {
	BondESD  float64
	AngleESD float64
}

// NewDistanceInferrer returns a DistanceInferrer with the default esds.
func NewDistanceInferrer() *DistanceInferrer {
	return &DistanceInferrer{BondESD: DefaultBondESD, AngleESD: DefaultAngleESD}
}

// conformer returns the atoms of the first conformer of res: those without
// altloc plus those with the first altloc found.
func conformer(res *chem.Residue) []*chem.Atom {
	var alt byte
	ret := make([]*chem.Atom, 0, len(res.Atoms))
	for _, a := range res.Atoms {
		if a.AltLoc != 0 {
			if alt == 0 {
				alt = a.AltLoc
			}
			if a.AltLoc != alt {
				continue
			}
		}
		ret = append(ret, a)
	}
	return ret
}

// Infer implements Inferrer.
func (D *DistanceInferrer) Infer(res *chem.Residue) (*monlib.ChemComp, []string, error) {
	atoms := conformer(res)
	if len(atoms) == 0 {
		return nil, nil, fmt.Errorf("residue %s %s has no atoms", res.Name, res.SeqStr())
	}
	bonds, err := chem.AssignBonds(atoms)
	if err != nil {
		return nil, nil, fmt.Errorf("residue %s %s: %w", res.Name, res.SeqStr(), err)
	}
	cc := &monlib.ChemComp{ID: res.Name, Name: res.Name, Group: "non-polymer", Origin: monlib.AdHoc}
	for _, a := range atoms {
		cc.Atoms = append(cc.Atoms, monlib.CompAtom{ID: a.Name, Symbol: a.Symbol, EnergyType: a.Symbol, Charge: a.Charge})
	}
	g := simple.NewUndirectedGraph()
	for i := range atoms {
		g.AddNode(simple.Node(i))
	}
	for _, b := range bonds {
		g.SetEdge(g.NewEdge(simple.Node(b.I), simple.Node(b.J)))
		cc.Bonds = append(cc.Bonds, monlib.Bond{Atom1: b.At1.Name, Atom2: b.At2.Name, Type: "single", Value: b.Dist, ESD: D.BondESD})
	}
	for i, center := range atoms {
		nb := neighbors(g, int64(i))
		for x := 0; x < len(nb); x++ {
			for y := x + 1; y < len(nb); y++ {
				a, c := atoms[nb[x]], atoms[nb[y]]
				cc.Angles = append(cc.Angles, monlib.Angle{
					Atom1: a.Name, Atom2: center.Name, Atom3: c.Name,
					Value: chem.Angle(a.Pos, center.Pos, c.Pos) * chem.Rad2Deg,
					ESD:   D.AngleESD,
				})
			}
		}
	}
	var warnings []string
	if n := len(topo.ConnectedComponents(g)); n > 1 {
		warnings = append(warnings, fmt.Sprintf("ad-hoc definition of %s has %d disconnected fragments", res.Name, n))
	}
	return cc, warnings, nil
}

// neighbors returns the ids of the nodes bonded to id, sorted.
func neighbors(g graph.Undirected, id int64) []int {
	nodes := graph.NodesOf(g.From(id))
	ret := make([]int, len(nodes))
	for i, n := range nodes {
		ret[i] = int(n.ID())
	}
	sort.Ints(ret)
	return ret
}

// SelectTemplate returns the residue called name with the most atoms in m.
// Ties go to the first one in traversal order. It returns nil if there is no
// such residue.
func SelectTemplate(name string, m *chem.Model) *chem.Residue {
	var best *chem.Residue
	for _, ch := range m.Chains {
		for _, r := range ch.Residues {
			if r.Name != name {
				continue
			}
			if best == nil || len(r.Atoms) > len(best.Atoms) {
				best = r
			}
		}
	}
	return best
}

// Synthesize builds an ad-hoc definition for each unmet name, from its
// template residue in m. Names with no residue in m, or whose inference
// fails, are returned in stillUnmet. inf may be nil, meaning a
// DistanceInferrer with the default esds.
func Synthesize(unmet []string, m *chem.Model, inf Inferrer) (defs []*monlib.ChemComp, stillUnmet []string, warnings []string) {
	if len(unmet) == 0 {
		return nil, nil, nil
	}
	if inf == nil {
		inf = NewDistanceInferrer()
	}
	warnings = append(warnings, WarnAdHoc, WarnDedicated)
	for _, name := range unmet {
		tmpl := SelectTemplate(name, m)
		if tmpl == nil {
			stillUnmet = append(stillUnmet, name)
			warnings = append(warnings, fmt.Sprintf("no residue named %s in the model to build a definition from", name))
			continue
		}
		cc, w, err := inf.Infer(tmpl)
		warnings = append(warnings, w...)
		if err != nil {
			stillUnmet = append(stillUnmet, name)
			warnings = append(warnings, fmt.Sprintf("couldn't build a definition for %s: %v", name, err))
			continue
		}
		cc.ID = name
		cc.Origin = monlib.AdHoc
		defs = append(defs, cc)
	}
	return defs, stillUnmet, warnings
}

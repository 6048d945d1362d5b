/*
 * link_test.go, part of refprep.
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

package link

import (
	"slices"
	"testing"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/neighbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func atom(name, symbol string, x, y, z float64) *chem.Atom {
	return &chem.Atom{Name: name, Symbol: symbol, Pos: r3.Vec{X: x, Y: y, Z: z}, Occupancy: 1}
}

func residue(name string, seq int, atoms ...*chem.Atom) *chem.Residue {
	return &chem.Residue{Name: name, SeqID: seq, Atoms: atoms}
}

func structure(chains ...*chem.Chain) *chem.Structure {
	return &chem.Structure{Name: "test", Models: []*chem.Model{{Number: 1, Chains: chains}}}
}

// sgLig returns a CYS SG and a ligand carbon d A apart, in different chains.
func sgLig(d float64) *chem.Structure {
	a := &chem.Chain{Name: "A", Residues: []*chem.Residue{residue("CYS", 1, atom("SG", "S", 0, 0, 0))}}
	b := &chem.Chain{Name: "B", Residues: []*chem.Residue{residue("LIG", 1, atom("C1", "C", d, 0, 0))}}
	return structure(a, b)
}

func threshold(s1, s2 string) float64 {
	return (chem.CovalentRadius(s1) + chem.CovalentRadius(s2)) + DefaultTolerance
}

func TestThresholdBoundary(t *testing.T) {
	limit := threshold("S", "C")
	st := sgLig(limit)
	conns, err := NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	c := conns[0]
	assert.Equal(t, "added1", c.Name)
	assert.Equal(t, chem.Covale, c.Type)
	assert.Equal(t, chem.AsuSame, c.Asu)
	assert.Equal(t, "SG", c.Partner1.AtomName)
	assert.Equal(t, "LIG", c.Partner2.ResName)
	assert.InDelta(t, limit, c.Distance, 1e-12)
	assert.Empty(t, st.Connections)

	st = sgLig(limit + 0.00001)
	conns, err = NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestDetectAndAppendIsIdempotent(t *testing.T) {
	st := sgLig(1.8)
	d := NewDetector()
	conns, err := d.DetectAndAppend(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	require.Len(t, st.Connections, 1)

	again, err := d.DetectAndAppend(st.Models[0], st)
	require.NoError(t, err)
	assert.Empty(t, again)
	assert.Len(t, st.Connections, 1)

	cands, err := d.Candidates(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.True(t, cands[0].Existing)
	assert.False(t, cands[0].Accepted)
}

func TestExistingConnectionInEitherOrder(t *testing.T) {
	st := sgLig(1.8)
	st.Connections = []chem.Connection{{
		Name:     "covale1",
		Type:     chem.Covale,
		Partner1: chem.AtomAddress{Chain: "b", SeqID: 1, ResName: "lig", AtomName: "c1"},
		Partner2: chem.AtomAddress{Chain: "A", SeqID: 1, ResName: "CYS", AtomName: "SG"},
	}}
	conns, err := NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestAdjacentResiduesAreIgnored(t *testing.T) {
	ch := &chem.Chain{Name: "A", Residues: []*chem.Residue{
		residue("ALA", 1, atom("C", "C", 0, 0, 0)),
		residue("ALA", 2, atom("N", "N", 1.33, 0, 0), atom("CA", "C", 1.33, 5, 0)),
		residue("CYS", 3, atom("SG", "S", 1.33, 6.8, 0)),
		residue("CYS", 4, atom("SG", "S", 0, -2.0, 0)),
	}}
	st := structure(ch)
	conns, err := NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	//only residue 1 to residue 4 qualifies: 2-3 are adjacent and the
	//peptide bond 1-2 too
	require.Len(t, conns, 1)
	assert.Equal(t, 1, conns[0].Partner1.SeqID)
	assert.Equal(t, 4, conns[0].Partner2.SeqID)
}

func TestUniqueNames(t *testing.T) {
	st := sgLig(1.8)
	st.Models[0].Chains = append(st.Models[0].Chains, &chem.Chain{Name: "C", Residues: []*chem.Residue{
		residue("CYS", 1, atom("SG", "S", 20, 0, 0)),
		residue("GLY", 5, atom("CA", "C", 50, 50, 50)),
		residue("LIG", 2, atom("C1", "C", 21.7, 0, 0)),
	}})
	st.Connections = []chem.Connection{{Name: "ADDED1", Type: chem.MetalC,
		Partner1: chem.AtomAddress{Chain: "Z", SeqID: 1, ResName: "ZN", AtomName: "ZN"},
		Partner2: chem.AtomAddress{Chain: "Z", SeqID: 2, ResName: "HIS", AtomName: "NE2"}}}
	conns, err := NewDetector().DetectAndAppend(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "added2", conns[0].Name)
	assert.Equal(t, "added3", conns[1].Name)
	assert.Len(t, st.Connections, 3)
}

func TestAltlocAndOccupancy(t *testing.T) {
	st := sgLig(1.8)
	m := st.Models[0]
	sg := m.Chains[0].Residues[0].Atoms[0]
	c1 := m.Chains[1].Residues[0].Atoms[0]
	sg.AltLoc, c1.AltLoc = 'A', 'B'
	conns, err := NewDetector().Detect(m, st)
	require.NoError(t, err)
	assert.Empty(t, conns)

	c1.AltLoc = 'A'
	c1.Occupancy = 0.3
	d := NewDetector()
	d.MinOccupancy = 0.5
	conns, err = d.Detect(m, st)
	require.NoError(t, err)
	assert.Empty(t, conns)

	d.MinOccupancy = 0.3
	conns, err = d.Detect(m, st)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, byte('A'), conns[0].Partner1.AltLoc)
}

func twofold(t *testing.T) chem.UnitCell {
	op, err := chem.ParseSymOp("-x,-y,z")
	require.NoError(t, err)
	return chem.UnitCell{A: 40, B: 40, C: 40, Alpha: 90, Beta: 90, Gamma: 90, Ops: []chem.SymOp{chem.IdentityOp, op}}
}

func TestSymmetryLinkAndSpecialPosition(t *testing.T) {
	//SG 0.9 A from a two-fold axis: bonded to its own image
	st := structure(&chem.Chain{Name: "A", Residues: []*chem.Residue{residue("CYS", 7, atom("SG", "S", 0.9, 0, 20))}})
	st.Cell = twofold(t)
	conns, err := NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, chem.AsuDifferent, conns[0].Asu)
	assert.Equal(t, "2_555", conns[0].Image)
	assert.True(t, conns[0].Partner1.EqualFold(conns[0].Partner2))
	assert.InDelta(t, 1.8, conns[0].Distance, 1e-9)

	//on the axis, or nearly so, the image is the atom itself
	st.Models[0].Chains[0].Residues[0].Atoms[0].Pos = r3.Vec{X: 0.25, Y: 0, Z: 20}
	conns, err = NewDetector().Detect(st.Models[0], st)
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestCrossCellImageIsOfPartner2(t *testing.T) {
	cell := chem.UnitCell{A: 10, B: 10, C: 10, Alpha: 90, Beta: 90, Gamma: 90, Ops: []chem.SymOp{chem.IdentityOp}}
	for _, c := range []struct {
		xa, xb float64
		image  string
	}{
		{9.0, 0.5, "1_655"},
		{0.5, 9.0, "1_455"},
	} {
		st := structure(
			&chem.Chain{Name: "A", Residues: []*chem.Residue{residue("CYS", 1, atom("SG", "S", c.xa, 5, 5))}},
			&chem.Chain{Name: "B", Residues: []*chem.Residue{residue("CYS", 1, atom("SG", "S", c.xb, 5, 5))}},
		)
		st.Cell = cell
		conns, err := NewDetector().Detect(st.Models[0], st)
		require.NoError(t, err)
		require.Len(t, conns, 1)
		assert.Equal(t, "A", conns[0].Partner1.Chain)
		assert.Equal(t, chem.AsuDifferent, conns[0].Asu)
		assert.Equal(t, c.image, conns[0].Image)
		assert.InDelta(t, 1.5, conns[0].Distance, 1e-9)
	}
}

func TestFilter(t *testing.T) {
	st := sgLig(3.0)
	ix, err := neighbor.Build(st.Models[0], st.Cell, 5, neighbor.Options{})
	require.NoError(t, err)
	assert.Len(t, slices.Collect(ContactFilter{Cutoff: 3.5}.Filter(ix.Pairs())), 1)
	assert.Empty(t, slices.Collect(ContactFilter{Cutoff: 2.9}.Filter(ix.Pairs())))

	cands, err := NewDetector().Candidates(st.Models[0], st)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.False(t, cands[0].Accepted)
	assert.InDelta(t, threshold("S", "C"), cands[0].Threshold, 1e-12)
}

func TestDetectorParameters(t *testing.T) {
	st := sgLig(1.8)
	d := NewDetector()
	d.ContactCutoff = 6
	_, err := d.Detect(st.Models[0], st)
	assert.Error(t, err)
	d = NewDetector()
	d.SearchRadius = 0
	_, err = d.Detect(st.Models[0], st)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	cands := []Candidate{
		{Pair: neighbor.Pair{DistSq: 4}, Accepted: true},
		{Pair: neighbor.Pair{DistSq: 9}},
		{Pair: neighbor.Pair{DistSq: 16}, Existing: true},
	}
	s := Summarize(cands)
	assert.Equal(t, 3, s.N)
	assert.Equal(t, 1, s.Accepted)
	assert.Equal(t, 1, s.Existing)
	assert.InDelta(t, 2, s.Min, 1e-12)
	assert.InDelta(t, 4, s.Max, 1e-12)
	assert.InDelta(t, 3, s.Mean, 1e-12)
	assert.InDelta(t, 1, s.Std, 1e-12)
	require.NotNil(t, s.Hist)
	assert.Equal(t, 3.0, s.Hist.Sum())
	h := s.Hist.View()
	require.Len(t, h, 9)
	assert.Equal(t, 1.0, h[4])
	assert.Equal(t, 1.0, h[6])
	assert.Equal(t, 1.0, h[8])
	assert.Equal(t, 0.0, Summarize(cands[:1]).Std)
}

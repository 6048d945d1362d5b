/*
 * mmcif_test.go, part of refprep.
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

package mmcif

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/monlib"
	"github.com/rmera/refprep/prepare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func prepared(t *testing.T) *prepare.Prepared {
	t.Helper()
	op, err := chem.ParseSymOp("-x,y+1/2,-z")
	require.NoError(t, err)
	m := &chem.Model{Number: 1, Chains: []*chem.Chain{
		{Name: "A", Residues: []*chem.Residue{
			{Name: "ALA", SeqID: 1, Atoms: []*chem.Atom{{Name: "CA", Symbol: "C", Pos: r3.Vec{X: 1, Y: 2, Z: 3}, Occupancy: 1, Bfactor: 20}}},
			{Name: "PRO", SeqID: 2, ICode: 'A', IsCis: true, Atoms: []*chem.Atom{{Name: "N", Symbol: "N", AltLoc: 'B', Pos: r3.Vec{X: 2.5, Y: 2, Z: 3}, Occupancy: 0.5}}},
		}},
		{Name: "B", Residues: []*chem.Residue{
			{Name: "XYZ", SeqID: 101, Het: true, Atoms: []*chem.Atom{{Name: "C1'", Symbol: "C", Pos: r3.Vec{X: -4}, Occupancy: 1}}},
		}},
	}}
	st := &chem.Structure{
		Name:   "my model",
		Models: []*chem.Model{m},
		Cell:   chem.UnitCell{A: 30, B: 40, C: 50, Alpha: 90, Beta: 100, Gamma: 90, Ops: []chem.SymOp{chem.IdentityOp, op}},
		Connections: []chem.Connection{{
			Name: "added1", Type: chem.Covale, Asu: chem.AsuDifferent, Image: "2_565", Distance: 1.8,
			Partner1: chem.AtomAddress{Chain: "A", ResName: "ALA", SeqID: 1, AtomName: "CA"},
			Partner2: chem.AtomAddress{Chain: "B", ResName: "XYZ", SeqID: 101, AtomName: "C1'"},
		}},
	}
	lib := monlib.NewLibrary()
	lib.Add(&monlib.ChemComp{ID: "ALA", Name: "ALANINE", Group: "L-peptide", Origin: monlib.Installed,
		Atoms: []monlib.CompAtom{{ID: "CA", Symbol: "C", EnergyType: "CH1"}}})
	lib.Add(&monlib.ChemComp{ID: "XYZ", Name: "XYZ", Group: "non-polymer", Origin: monlib.AdHoc,
		Atoms:  []monlib.CompAtom{{ID: "C1'", Symbol: "C", EnergyType: "C"}, {ID: "O1", Symbol: "O", EnergyType: "O"}, {ID: "O2", Symbol: "O", EnergyType: "O"}},
		Bonds:  []monlib.Bond{{Atom1: "C1'", Atom2: "O1", Type: "single", Value: 1.234, ESD: 0.02}},
		Angles: []monlib.Angle{{Atom1: "O1", Atom2: "C1'", Atom3: "O2", Value: 120.5, ESD: 3}}})
	return &prepare.Prepared{Structure: st, Model: m, Library: lib}
}

func TestWriteRoundTrip(t *testing.T) {
	p := prepared(t)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "data_my_model\n"))

	doc, err := cif.Read(strings.NewReader(out), "out.cif")
	require.NoError(t, err)
	st, err := chem.StructureFromDoc(doc)
	require.NoError(t, err)
	require.Len(t, st.Models, 1)
	m := st.Models[0]
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, []string{"ALA", "PRO", "XYZ"}, m.ResidueNames())
	pro := m.Chains[0].Residues[1]
	assert.Equal(t, byte('A'), pro.ICode)
	assert.Equal(t, byte('B'), pro.Atoms[0].AltLoc)
	assert.InDelta(t, 0.5, pro.Atoms[0].Occupancy, 1e-9)
	assert.True(t, m.Chains[1].Residues[0].Het)

	assert.InDelta(t, 100, st.Cell.Beta, 1e-9)
	require.Len(t, st.Cell.Ops, 2)
	assert.Equal(t, p.Structure.Cell.Ops[1], st.Cell.Ops[1])

	require.Len(t, st.Connections, 1)
	c := st.Connections[0]
	assert.Equal(t, "added1", c.Name)
	assert.Equal(t, chem.AsuDifferent, c.Asu)
	assert.Equal(t, "2_565", c.Image)
	assert.Equal(t, "C1'", c.Partner2.AtomName)
	assert.InDelta(t, 1.8, c.Distance, 1e-9)

	tab, ok := doc.Block(blockName("my model")).Find("_struct_mon_prot_cis.", "label_comp_id", "auth_seq_id")
	require.True(t, ok)
	require.Equal(t, 1, tab.Len())
	assert.Equal(t, "PRO", tab.Str(0, 0))

	ccs, err := monlib.ReadChemComps(doc, monlib.User)
	require.NoError(t, err)
	require.Len(t, ccs, 2)
	xyz := ccs[1]
	assert.Equal(t, "XYZ", xyz.ID)
	assert.Equal(t, "non-polymer", xyz.Group)
	assert.Len(t, xyz.Atoms, 3)
	require.Len(t, xyz.Bonds, 1)
	assert.InDelta(t, 1.234, xyz.Bonds[0].Value, 1e-9)
	require.Len(t, xyz.Angles, 1)
	assert.InDelta(t, 120.5, xyz.Angles[0].Value, 1e-9)

	list, ok := doc.Block("comp_list").Find("_chem_comp.", "id", "refprep_origin")
	require.True(t, ok)
	assert.Equal(t, "installed", list.Str(0, 1))
	assert.Equal(t, "ad-hoc", list.Str(1, 1))
}

func TestWriteNoCell(t *testing.T) {
	p := prepared(t)
	p.Structure.Cell = chem.UnitCell{}
	p.Structure.Connections = nil
	p.Library = nil
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))
	assert.NotContains(t, buf.String(), "_cell.")
	assert.NotContains(t, buf.String(), "_struct_conn.")
	assert.NotContains(t, buf.String(), "data_comp_list")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.cif", "out.cif.gz"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, prepared(t)))
		doc, err := cif.ReadFile(path)
		require.NoError(t, err)
		st, err := chem.StructureFromDoc(doc)
		require.NoError(t, err)
		assert.Equal(t, 3, st.Models[0].Count())
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	err = WriteFile(filepath.Join(dir, "missing", "out.cif"), prepared(t))
	assert.Error(t, err)
}

func TestBlockName(t *testing.T) {
	assert.Equal(t, "refprep", blockName(""))
	assert.Equal(t, "1abc_final", blockName("1abc final"))
}

/*
 * mmcif.go, part of refprep.
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

// Package mmcif writes a prepared structure, together with the definitions
// of its monomers, as a single mmCIF document.
package mmcif

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/internal/zio"
	"github.com/rmera/refprep/monlib"
	"github.com/rmera/refprep/prepare"
)

// OriginTag is the _chem_comp column that records where each definition
// came from.
const OriginTag = "_chem_comp.refprep_origin"

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// orNull returns v, or "." if v is empty.
func orNull(v string) string {
	if v == "" {
		return "."
	}
	return v
}

func byteOrNull(b byte, null string) string {
	if b == 0 || b == ' ' {
		return null
	}
	return string(b)
}

// blockName makes s usable as the name of a data block.
func blockName(s string) string {
	s = strings.Map(func(r rune) rune {
		if r <= ' ' || r > '~' {
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "refprep"
	}
	return s
}

// Write writes the first model of p with the connections of its structure,
// then a comp_list block and one block per monomer definition.
func Write(w io.Writer, p *prepare.Prepared) error {
	cw := cif.NewWriter(w)
	st := p.Structure
	name := blockName(st.Name)
	cw.Block(name)
	cw.Pair("_entry.id", name)
	writeCell(cw, name, st.Cell)
	writeAtoms(cw, p.Model)
	writeConnections(cw, st.Connections)
	writeCis(cw, p.Model)
	if p.Library != nil {
		writeLibrary(cw, p.Library)
	}
	return cw.Err()
}

func writeCell(cw *cif.Writer, name string, cell chem.UnitCell) {
	if !cell.IsCrystal() {
		return
	}
	cw.Pair("_cell.entry_id", name)
	cw.Pair("_cell.length_a", ftoa(cell.A, 3))
	cw.Pair("_cell.length_b", ftoa(cell.B, 3))
	cw.Pair("_cell.length_c", ftoa(cell.C, 3))
	cw.Pair("_cell.angle_alpha", ftoa(cell.Alpha, 2))
	cw.Pair("_cell.angle_beta", ftoa(cell.Beta, 2))
	cw.Pair("_cell.angle_gamma", ftoa(cell.Gamma, 2))
	ops := cell.Operations()
	rows := make([][]string, len(ops))
	for i, op := range ops {
		rows[i] = []string{strconv.Itoa(i + 1), op.Triplet()}
	}
	cw.Loop([]string{"_space_group_symop.id", "_space_group_symop.operation_xyz"}, rows)
}

func writeAtoms(cw *cif.Writer, m *chem.Model) {
	tags := []string{"group_PDB", "id", "type_symbol", "label_atom_id", "label_alt_id",
		"label_comp_id", "label_asym_id", "label_seq_id", "pdbx_PDB_ins_code",
		"Cartn_x", "Cartn_y", "Cartn_z", "occupancy", "B_iso_or_equiv",
		"pdbx_formal_charge", "auth_seq_id", "auth_asym_id", "pdbx_PDB_model_num"}
	for i := range tags {
		tags[i] = "_atom_site." + tags[i]
	}
	rows := make([][]string, 0, m.Count())
	for cra := range m.Atoms() {
		a, r := cra.Atom, cra.Residue
		group := "ATOM"
		if r.Het {
			group = "HETATM"
		}
		seq := strconv.Itoa(r.SeqID)
		rows = append(rows, []string{
			group, strconv.Itoa(len(rows) + 1), orNull(a.Symbol), a.Name, byteOrNull(a.AltLoc, "."),
			r.Name, orNull(cra.Chain.Name), seq, byteOrNull(r.ICode, "?"),
			ftoa(a.Pos.X, 3), ftoa(a.Pos.Y, 3), ftoa(a.Pos.Z, 3), ftoa(a.Occupancy, 2), ftoa(a.Bfactor, 2),
			strconv.Itoa(int(a.Charge)), seq, orNull(cra.Chain.Name), strconv.Itoa(m.Number),
		})
	}
	cw.Loop(tags, rows)
}

func symmetry(c chem.Connection) (string, string) {
	switch c.Asu {
	case chem.AsuSame:
		return "1_555", "1_555"
	case chem.AsuDifferent:
		if c.Image != "" {
			return "1_555", c.Image
		}
	}
	return "?", "?"
}

func writeConnections(cw *cif.Writer, conns []chem.Connection) {
	tags := []string{"_struct_conn.id", "_struct_conn.conn_type_id"}
	for _, p := range []string{"1", "2"} {
		tags = append(tags,
			"_struct_conn.ptnr"+p+"_auth_asym_id",
			"_struct_conn.ptnr"+p+"_auth_comp_id",
			"_struct_conn.ptnr"+p+"_auth_seq_id",
			"_struct_conn.pdbx_ptnr"+p+"_PDB_ins_code",
			"_struct_conn.ptnr"+p+"_label_atom_id",
			"_struct_conn.pdbx_ptnr"+p+"_label_alt_id",
			"_struct_conn.ptnr"+p+"_symmetry")
	}
	tags = append(tags, "_struct_conn.pdbx_dist_value")
	rows := make([][]string, 0, len(conns))
	for _, c := range conns {
		s1, s2 := symmetry(c)
		row := []string{c.Name, c.Type.String()}
		for i, ad := range []chem.AtomAddress{c.Partner1, c.Partner2} {
			sym := s1
			if i == 1 {
				sym = s2
			}
			row = append(row, orNull(ad.Chain), ad.ResName, strconv.Itoa(ad.SeqID), byteOrNull(ad.ICode, "?"),
				ad.AtomName, byteOrNull(ad.AltLoc, "?"), sym)
		}
		dist := "?"
		if c.Distance > 0 {
			dist = ftoa(c.Distance, 3)
		}
		rows = append(rows, append(row, dist))
	}
	cw.Loop(tags, rows)
}

func writeCis(cw *cif.Writer, m *chem.Model) {
	rows := make([][]string, 0)
	for _, ch := range m.Chains {
		for _, r := range ch.Residues {
			if r.IsCis {
				rows = append(rows, []string{strconv.Itoa(len(rows) + 1), r.Name, strconv.Itoa(r.SeqID), orNull(ch.Name), strconv.Itoa(m.Number)})
			}
		}
	}
	cw.Loop([]string{"_struct_mon_prot_cis.pdbx_id", "_struct_mon_prot_cis.label_comp_id",
		"_struct_mon_prot_cis.auth_seq_id", "_struct_mon_prot_cis.auth_asym_id",
		"_struct_mon_prot_cis.pdbx_PDB_model_num"}, rows)
}

func writeLibrary(cw *cif.Writer, lib *monlib.Library) {
	names := lib.Names()
	if len(names) == 0 {
		return
	}
	cw.Block("comp_list")
	rows := make([][]string, len(names))
	for i, n := range names {
		cc := lib.Get(n)
		rows[i] = []string{cc.ID, orNull(cc.Name), orNull(cc.Group), cc.Origin.String()}
	}
	cw.Loop([]string{"_chem_comp.id", "_chem_comp.name", "_chem_comp.group", OriginTag}, rows)
	for _, n := range names {
		writeComp(cw, lib.Get(n))
	}
}

func writeComp(cw *cif.Writer, cc *monlib.ChemComp) {
	cw.Block("comp_" + cc.ID)
	atoms := make([][]string, len(cc.Atoms))
	for i, a := range cc.Atoms {
		atoms[i] = []string{cc.ID, a.ID, orNull(a.Symbol), orNull(a.EnergyType), ftoa(a.Charge, 3)}
	}
	cw.Loop([]string{"_chem_comp_atom.comp_id", "_chem_comp_atom.atom_id", "_chem_comp_atom.type_symbol",
		"_chem_comp_atom.type_energy", "_chem_comp_atom.charge"}, atoms)
	bonds := make([][]string, len(cc.Bonds))
	for i, b := range cc.Bonds {
		bonds[i] = []string{cc.ID, b.Atom1, b.Atom2, orNull(b.Type), ftoa(b.Value, 3), ftoa(b.ESD, 3)}
	}
	cw.Loop([]string{"_chem_comp_bond.comp_id", "_chem_comp_bond.atom_id_1", "_chem_comp_bond.atom_id_2",
		"_chem_comp_bond.type", "_chem_comp_bond.value_dist", "_chem_comp_bond.value_dist_esd"}, bonds)
	angles := make([][]string, len(cc.Angles))
	for i, a := range cc.Angles {
		angles[i] = []string{cc.ID, a.Atom1, a.Atom2, a.Atom3, ftoa(a.Value, 2), ftoa(a.ESD, 2)}
	}
	cw.Loop([]string{"_chem_comp_angle.comp_id", "_chem_comp_angle.atom_id_1", "_chem_comp_angle.atom_id_2",
		"_chem_comp_angle.atom_id_3", "_chem_comp_angle.value_angle", "_chem_comp_angle.value_angle_esd"}, angles)
}

// WriteFile writes p to name, compressed if name ends in .gz or .zst. The
// document goes to a temporary file in the same directory, renamed to name
// only once it is complete.
func WriteFile(name string, p *prepare.Prepared) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("mmcif: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	zw, err := zio.NewWriter(tmp, name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(zw)
	if err := Write(bw, p); err != nil {
		return fmt.Errorf("mmcif: writing %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("mmcif: writing %s: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("mmcif: writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("mmcif: writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("mmcif: %w", err)
	}
	ok = true
	return nil
}

/*
 * pdbx.go, part of refprep.
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
	"io"
	"strconv"
	"strings"

	"github.com/rmera/refprep/cif"
	"gonum.org/v1/gonum/spatial/r3"
)

// Column order of the _atom_site table requested from the cif package.
const (
	asGroup = iota
	asID
	asSymbol
	asLabelAtom
	asAlt
	asLabelComp
	asLabelAsym
	asLabelSeq
	asICode
	asX
	asY
	asZ
	asOcc
	asBiso
	asCharge
	asAuthSeq
	asAuthComp
	asAuthAsym
	asAuthAtom
	asModel
)

var atomSiteTags = []string{
	"group_pdb", "id", "type_symbol", "label_atom_id", "label_alt_id",
	"label_comp_id", "label_asym_id", "label_seq_id", "pdbx_pdb_ins_code",
	"cartn_x", "cartn_y", "cartn_z", "occupancy", "b_iso_or_equiv",
	"pdbx_formal_charge", "auth_seq_id", "auth_comp_id", "auth_asym_id",
	"auth_atom_id", "pdbx_pdb_model_num",
}

// PDBxRead reads an mmCIF document from r. It returns the structure from the
// first data block, by name, that has an _atom_site table, and the whole parsed
// document, which may contain other blocks (e.g. monomer definitions).
func PDBxRead(r io.Reader, name string) (*Structure, *cif.Document, error) {
	doc, err := cif.Read(r, name)
	if err != nil {
		return nil, nil, errDecorate(err, "PDBxRead")
	}
	st, err := StructureFromDoc(doc)
	if err != nil {
		return nil, nil, errDecorate(err, "PDBxRead")
	}
	return st, doc, nil
}

// StructureFromDoc builds a Structure from the first block of doc that has
// atom sites. The name of the structure is the entry id, or else the name of
// the block.
func StructureFromDoc(doc *cif.Document) (*Structure, error) {
	for _, b := range doc.Blocks {
		tab, ok := b.Find("_atom_site.", atomSiteTags...)
		if !ok {
			continue
		}
		st := &Structure{Name: b.Name}
		//block names are read in lower case, the entry id keeps its own
		if e, ok := b.Find("_entry.", "id"); ok && e.Str(0, 0) != "" {
			st.Name = e.Str(0, 0)
		}
		if err := pdbxFillAtoms(st, tab); err != nil {
			return nil, CError{message: err.Error(), filename: doc.Source, deco: []string{"StructureFromDoc"}, critical: true}
		}
		cell, err := pdbxCell(b)
		if err != nil {
			return nil, CError{message: err.Error(), filename: doc.Source, deco: []string{"StructureFromDoc"}, critical: true}
		}
		st.Cell = cell
		conns, err := pdbxConnections(b)
		if err != nil {
			return nil, CError{message: err.Error(), filename: doc.Source, deco: []string{"StructureFromDoc"}, critical: true}
		}
		st.Connections = conns
		return st, nil
	}
	return nil, CError{message: "no _atom_site table found", filename: doc.Source, deco: []string{"StructureFromDoc"}, critical: true}
}

// first returns the first non-null value among the given columns of row.
func first(t *cif.Table, row int, cols ...int) string {
	for _, c := range cols {
		if v := t.Str(row, c); v != "" {
			return v
		}
	}
	return ""
}

func parseFloatField(t *cif.Table, row, col int, name string) (float64, error) {
	v := t.Str(row, col)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: couldn't parse %s from %q: %w", row+1, name, v, err)
	}
	return f, nil
}

func pdbxFillAtoms(st *Structure, t *cif.Table) error {
	if !t.Has(asX) || !t.Has(asY) || !t.Has(asZ) {
		return fmt.Errorf("_atom_site lacks Cartesian coordinates")
	}
	var model *Model
	var chain *Chain
	var res *Residue
	models := make(map[int]*Model)
	for i := 0; i < t.Len(); i++ {
		modnum := 1
		if v := t.Str(i, asModel); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("row %d: couldn't parse model number from %q: %w", i+1, v, err)
			}
			modnum = n
		}
		if model == nil || model.Number != modnum {
			model = models[modnum]
			if model == nil {
				model = &Model{Number: modnum}
				models[modnum] = model
				st.Models = append(st.Models, model)
			}
			chain, res = nil, nil
		}
		chname := first(t, i, asAuthAsym, asLabelAsym)
		if chain == nil || chain.Name != chname {
			chain = &Chain{Name: chname}
			model.Chains = append(model.Chains, chain)
			res = nil
		}
		seq := 0
		if v := first(t, i, asAuthSeq, asLabelSeq); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("row %d: couldn't parse residue number from %q: %w", i+1, v, err)
			}
			seq = n
		}
		var icode byte
		if v := t.Str(i, asICode); v != "" {
			icode = v[0]
		}
		resname := first(t, i, asAuthComp, asLabelComp)
		if res == nil || res.SeqID != seq || res.ICode != icode || res.Name != resname {
			res = &Residue{Name: resname, SeqID: seq, ICode: icode, Het: strings.EqualFold(t.Str(i, asGroup), "HETATM")}
			chain.Residues = append(chain.Residues, res)
		}
		at := &Atom{Name: first(t, i, asAuthAtom, asLabelAtom), Occupancy: 1}
		if v := t.Str(i, asAlt); v != "" {
			at.AltLoc = v[0]
		}
		if v := t.Str(i, asID); v != "" {
			at.Serial, _ = strconv.Atoi(v)
		}
		at.Symbol = NormSymbol(t.Str(i, asSymbol))
		if at.Symbol == "" {
			at.Symbol = SymbolFromName(at.Name, res.Het)
		}
		var xyz [3]float64
		for j, c := range []int{asX, asY, asZ} {
			f, err := parseFloatField(t, i, c, "coordinate")
			if err != nil {
				return err
			}
			xyz[j] = f
		}
		at.Pos = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		var err error
		if t.Has(asOcc) {
			if at.Occupancy, err = parseFloatField(t, i, asOcc, "occupancy"); err != nil {
				return err
			}
		}
		if at.Bfactor, err = parseFloatField(t, i, asBiso, "B-factor"); err != nil {
			return err
		}
		//Charge, but we won't do anything if we somehow can't read it.
		at.Charge, _ = parseFloatField(t, i, asCharge, "charge")
		res.Atoms = append(res.Atoms, at)
	}
	return nil
}

func pdbxCell(b *cif.Block) (UnitCell, error) {
	var cell UnitCell
	t, ok := b.Find("_cell.", "length_a", "length_b", "length_c", "angle_alpha", "angle_beta", "angle_gamma")
	if !ok {
		return cell, nil
	}
	vals := make([]float64, 6)
	for i := range vals {
		v, err := parseFloatField(t, 0, i, "cell parameter")
		if err != nil {
			return cell, err
		}
		vals[i] = v
	}
	cell = UnitCell{A: vals[0], B: vals[1], C: vals[2], Alpha: vals[3], Beta: vals[4], Gamma: vals[5]}
	if !cell.IsCrystal() {
		return UnitCell{}, nil
	}
	for _, cat := range []string{"_space_group_symop.", "_symmetry_equiv."} {
		tag := "operation_xyz"
		if cat == "_symmetry_equiv." {
			tag = "pos_as_xyz"
		}
		ops, ok := b.Find(cat, tag)
		if !ok || !ops.Has(0) {
			continue
		}
		for i := 0; i < ops.Len(); i++ {
			op, err := ParseSymOp(ops.Val(i, 0))
			if err != nil {
				return cell, err
			}
			cell.Ops = append(cell.Ops, op)
		}
		break
	}
	if len(cell.Ops) == 0 {
		cell.Ops = []SymOp{IdentityOp}
	}
	return cell, nil
}

var structConnTags = []string{
	"id", "conn_type_id",
	"ptnr1_auth_asym_id", "ptnr1_label_asym_id", "ptnr1_auth_seq_id", "ptnr1_label_seq_id",
	"pdbx_ptnr1_pdb_ins_code", "ptnr1_auth_comp_id", "ptnr1_label_comp_id",
	"ptnr1_label_atom_id", "pdbx_ptnr1_label_alt_id", "ptnr1_symmetry",
	"ptnr2_auth_asym_id", "ptnr2_label_asym_id", "ptnr2_auth_seq_id", "ptnr2_label_seq_id",
	"pdbx_ptnr2_pdb_ins_code", "ptnr2_auth_comp_id", "ptnr2_label_comp_id",
	"ptnr2_label_atom_id", "pdbx_ptnr2_label_alt_id", "ptnr2_symmetry",
	"pdbx_dist_value",
}

func pdbxConnections(b *cif.Block) ([]Connection, error) {
	t, ok := b.Find("_struct_conn.", structConnTags...)
	if !ok {
		return nil, nil
	}
	const perPartner = 10
	partner := func(row, k int) (AtomAddress, string, error) {
		o := 2 + k*perPartner
		var ad AtomAddress
		ad.Chain = first(t, row, o, o+1)
		if v := first(t, row, o+2, o+3); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return ad, "", fmt.Errorf("_struct_conn row %d: bad residue number %q", row+1, v)
			}
			ad.SeqID = n
		}
		if v := t.Str(row, o+4); v != "" {
			ad.ICode = v[0]
		}
		ad.ResName = first(t, row, o+5, o+6)
		ad.AtomName = t.Str(row, o+7)
		if v := t.Str(row, o+8); v != "" {
			ad.AltLoc = v[0]
		}
		return ad, t.Str(row, o+9), nil
	}
	conns := make([]Connection, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		p1, sym1, err := partner(i, 0)
		if err != nil {
			return nil, err
		}
		p2, sym2, err := partner(i, 1)
		if err != nil {
			return nil, err
		}
		c := Connection{Name: t.Str(i, 0), Type: ParseConnType(t.Str(i, 1)), Partner1: p1, Partner2: p2, Asu: AsuAny}
		if sym1 != "" && sym2 != "" {
			if sym1 == sym2 {
				c.Asu = AsuSame
			} else {
				c.Asu = AsuDifferent
				c.Image = sym2
			}
		}
		c.Distance, _ = parseFloatField(t, i, len(structConnTags)-1, "distance")
		conns = append(conns, c)
	}
	return conns, nil
}

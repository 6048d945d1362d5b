/*
 * files.go, part of refprep.
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
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/refprep/cif"
	"github.com/rmera/refprep/internal/zio"
	"gonum.org/v1/gonum/spatial/r3"
)

// Format is a coordinate file format.
type Format int

const (
	FormatPDB Format = iota
	FormatMMCIF
)

func (F Format) String() string {
	if F == FormatMMCIF {
		return "mmCIF"
	}
	return "PDB"
}

// DetectFormat guesses the format of a coordinate file from its name,
// ignoring compression extensions. Anything that isn't mmCIF is read as PDB.
func DetectFormat(name string) Format {
	ext := strings.ToLower(filepath.Ext(zio.StripExt(name)))
	switch ext {
	case ".cif", ".mmcif":
		return FormatMMCIF
	}
	return FormatPDB
}

// ReadStructureFile reads a possibly compressed PDB or mmCIF file. For mmCIF
// input the parsed document is returned too; it is nil for PDB files.
func ReadStructureFile(name string) (*Structure, *cif.Document, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, nil, CError{message: err.Error(), filename: name, deco: []string{"ReadStructureFile"}, critical: true}
	}
	defer f.Close()
	if DetectFormat(name) == FormatMMCIF {
		st, doc, err := PDBxRead(f, name)
		return st, doc, errDecorate(err, "ReadStructureFile")
	}
	st, err := PDBRead(f, name)
	return st, nil, errDecorate(err, "ReadStructureFile")
}

// cut returns the 1-based, inclusive column range [from, to] of line,
// trimmed, or "" if the line is too short.
func cut(line string, from, to int) string {
	if len(line) < from {
		return ""
	}
	if len(line) < to {
		to = len(line)
	}
	return strings.TrimSpace(line[from-1 : to])
}

func colByte(line string, col int) byte {
	if len(line) < col || line[col-1] == ' ' {
		return 0
	}
	return line[col-1]
}

func pdbFloat(line string, from, to int, what string, lineno int) (float64, error) {
	s := cut(line, from, to)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: couldn't read %s from %q", lineno, what, s)
	}
	return f, nil
}

// PDBRead reads a PDB-format file from r: ATOM/HETATM records (all models),
// CRYST1 and LINK/SSBOND records. Space group symbols in CRYST1 are not
// interpreted, so only lattice translations are available as images.
func PDBRead(r io.Reader, name string) (*Structure, error) {
	st := &Structure{Name: strings.TrimSuffix(filepath.Base(zio.StripExt(name)), filepath.Ext(zio.StripExt(name)))}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), 1024*1024)
	var model *Model
	var chain *Chain
	var res *Residue
	lineno := 0
	fail := func(err error) (*Structure, error) {
		return nil, CError{message: err.Error(), filename: name, deco: []string{"PDBRead"}, critical: true}
	}
	for sc.Scan() {
		lineno++
		line := sc.Text()
		record := strings.ToUpper(cut(line, 1, 6))
		switch record {
		case "MODEL":
			n, err := strconv.Atoi(cut(line, 7, 14))
			if err != nil {
				n = len(st.Models) + 1
			}
			model = &Model{Number: n}
			st.Models = append(st.Models, model)
			chain, res = nil, nil
		case "ENDMDL":
			model, chain, res = nil, nil, nil
		case "TER":
			chain, res = nil, nil
		case "ATOM", "HETATM":
			if model == nil {
				model = &Model{Number: len(st.Models) + 1}
				st.Models = append(st.Models, model)
			}
			chname := cut(line, 22, 22)
			if chain == nil || chain.Name != chname {
				chain = &Chain{Name: chname}
				model.Chains = append(model.Chains, chain)
				res = nil
			}
			seq, err := strconv.Atoi(cut(line, 23, 26))
			if err != nil {
				return fail(fmt.Errorf("line %d: bad residue number %q", lineno, cut(line, 23, 26)))
			}
			icode := colByte(line, 27)
			resname := cut(line, 18, 20)
			if res == nil || res.SeqID != seq || res.ICode != icode || res.Name != resname {
				res = &Residue{Name: resname, SeqID: seq, ICode: icode, Het: record == "HETATM"}
				chain.Residues = append(chain.Residues, res)
			}
			at := &Atom{Name: cut(line, 13, 16), AltLoc: colByte(line, 17), Occupancy: 1}
			at.Serial, _ = strconv.Atoi(cut(line, 7, 11))
			var xyz [3]float64
			for i := range xyz {
				xyz[i], err = pdbFloat(line, 31+8*i, 38+8*i, "coordinate", lineno)
				if err != nil {
					return fail(err)
				}
			}
			at.Pos = r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}
			if cut(line, 55, 60) != "" {
				if at.Occupancy, err = pdbFloat(line, 55, 60, "occupancy", lineno); err != nil {
					return fail(err)
				}
			}
			if at.Bfactor, err = pdbFloat(line, 61, 66, "B-factor", lineno); err != nil {
				return fail(err)
			}
			at.Symbol = NormSymbol(cut(line, 77, 78))
			if at.Symbol == "" {
				at.Symbol = SymbolFromName(at.Name, res.Het)
			}
			at.Charge = pdbCharge(cut(line, 79, 80))
			res.Atoms = append(res.Atoms, at)
		case "CRYST1":
			vals := make([]float64, 6)
			cols := [][2]int{{7, 15}, {16, 24}, {25, 33}, {34, 40}, {41, 47}, {48, 54}}
			for i, c := range cols {
				v, err := pdbFloat(line, c[0], c[1], "cell parameter", lineno)
				if err != nil {
					return fail(err)
				}
				vals[i] = v
			}
			st.Cell = UnitCell{A: vals[0], B: vals[1], C: vals[2], Alpha: vals[3], Beta: vals[4], Gamma: vals[5]}
			if st.Cell.IsCrystal() {
				st.Cell.Ops = []SymOp{IdentityOp}
			} else {
				st.Cell = UnitCell{}
			}
		case "LINK":
			c := Connection{Name: fmt.Sprintf("link%d", len(st.Connections)+1), Type: Covale}
			var err error
			if c.Partner1, err = pdbPartner(line, 13, 17, 18, 22, 23, 27); err != nil {
				return fail(fmt.Errorf("line %d: %w", lineno, err))
			}
			if c.Partner2, err = pdbPartner(line, 43, 47, 48, 52, 53, 57); err != nil {
				return fail(fmt.Errorf("line %d: %w", lineno, err))
			}
			c.Asu = pdbAsu(cut(line, 60, 65), cut(line, 67, 72))
			c.Distance, _ = pdbFloat(line, 74, 78, "distance", lineno)
			st.Connections = append(st.Connections, c)
		case "SSBOND":
			c := Connection{Name: fmt.Sprintf("disulf%s", cut(line, 8, 10)), Type: Disulf}
			s1, err1 := strconv.Atoi(cut(line, 18, 21))
			s2, err2 := strconv.Atoi(cut(line, 32, 35))
			if err1 != nil || err2 != nil {
				return fail(fmt.Errorf("line %d: bad residue number in SSBOND", lineno))
			}
			c.Partner1 = AtomAddress{Chain: cut(line, 16, 16), SeqID: s1, ICode: colByte(line, 22), ResName: cut(line, 12, 14), AtomName: "SG"}
			c.Partner2 = AtomAddress{Chain: cut(line, 30, 30), SeqID: s2, ICode: colByte(line, 36), ResName: cut(line, 26, 28), AtomName: "SG"}
			c.Asu = pdbAsu(cut(line, 60, 65), cut(line, 67, 72))
			c.Distance, _ = pdbFloat(line, 74, 78, "distance", lineno)
			st.Connections = append(st.Connections, c)
		}
	}
	if err := sc.Err(); err != nil {
		return fail(err)
	}
	return st, nil
}

// pdbPartner reads one partner of a LINK record given the starting columns
// of the atom name, altloc, residue name, chain, residue number and icode.
func pdbPartner(line string, name, alt, resn, ch, seq, ic int) (AtomAddress, error) {
	s, err := strconv.Atoi(cut(line, seq, seq+3))
	if err != nil {
		return AtomAddress{}, fmt.Errorf("bad residue number %q in LINK", cut(line, seq, seq+3))
	}
	return AtomAddress{
		Chain:    cut(line, ch, ch),
		SeqID:    s,
		ICode:    colByte(line, ic),
		ResName:  cut(line, resn, resn+2),
		AtomName: cut(line, name, name+3),
		AltLoc:   colByte(line, alt),
	}, nil
}

func pdbAsu(sym1, sym2 string) Asu {
	if sym1 == "" || sym2 == "" {
		return AsuAny
	}
	if sym1 == sym2 {
		return AsuSame
	}
	return AsuDifferent
}

// pdbCharge reads charges written as "2+" or "1-".
func pdbCharge(s string) float64 {
	if len(s) != 2 {
		return 0
	}
	n, err := strconv.Atoi(s[:1])
	if err != nil {
		return 0
	}
	if s[1] == '-' {
		return -float64(n)
	}
	return float64(n)
}

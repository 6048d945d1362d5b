/*
 * chem.go, part of refprep.
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
	"iter"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is a single atomic site of a model.
type Atom struct {
	Name      string
	Symbol    string //element symbol, capitalized as in "Fe"
	AltLoc    byte   //0 if none
	Serial    int
	Pos       r3.Vec
	Occupancy float64
	Bfactor   float64
	Charge    float64
}

// CovRad returns the covalent radius of the atom's element.
func (A *Atom) CovRad() float64 {
	return CovalentRadius(A.Symbol)
}

// IsHydrogen is true for H and D atoms.
func (A *Atom) IsHydrogen() bool {
	return A.Symbol == "H" || A.Symbol == "D"
}

// Residue is a chemical component instance in a chain.
type Residue struct {
	Name  string
	SeqID int
	ICode byte //insertion code, 0 if none
	Het   bool
	IsCis bool //the peptide bond to the previous residue is cis
	Atoms []*Atom
}

// Find returns the first atom called name with altloc alt (0 matches any),
// or nil.
func (R *Residue) Find(name string, alt byte) *Atom {
	for _, a := range R.Atoms {
		if a.Name == name && (alt == 0 || a.AltLoc == 0 || a.AltLoc == alt) {
			return a
		}
	}
	return nil
}

// SeqStr returns the sequence number with the insertion code, if any.
func (R *Residue) SeqStr() string {
	if R.ICode == 0 || R.ICode == ' ' {
		return fmt.Sprintf("%d", R.SeqID)
	}
	return fmt.Sprintf("%d%c", R.SeqID, R.ICode)
}

// Chain is an ordered sequence of residues.
type Chain struct {
	Name     string
	Residues []*Residue
}

// Model is one set of coordinates for the whole structure.
type Model struct {
	Number int
	Chains []*Chain
}

// CRA points at an atom together with the chain and residue that own it,
// and their positions in the model.
type CRA struct {
	Chain                     *Chain
	Residue                   *Residue
	Atom                      *Atom
	ChainIdx, ResIdx, AtomIdx int
}

// Address returns the AtomAddress of the atom pointed to.
func (C CRA) Address() AtomAddress {
	return MakeAddress(C.Chain, C.Residue, C.Atom)
}

// String returns a compact human-readable atom identifier, e.g. "A/CYS 12/SG".
func (C CRA) String() string {
	return C.Address().String()
}

// Atoms yields every atom of the model in chain, residue, atom order.
func (M *Model) Atoms() iter.Seq[CRA] {
	return func(yield func(CRA) bool) {
		for ci, c := range M.Chains {
			for ri, r := range c.Residues {
				for ai, a := range r.Atoms {
					if !yield(CRA{Chain: c, Residue: r, Atom: a, ChainIdx: ci, ResIdx: ri, AtomIdx: ai}) {
						return
					}
				}
			}
		}
	}
}

// Count returns the number of atoms in the model.
func (M *Model) Count() int {
	n := 0
	for _, c := range M.Chains {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}

// ResidueNames returns the distinct residue names of the model, in the order
// in which they first appear.
func (M *Model) ResidueNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, c := range M.Chains {
		for _, r := range c.Residues {
			if !seen[r.Name] {
				seen[r.Name] = true
				names = append(names, r.Name)
			}
		}
	}
	return names
}

// Chain returns the first chain called name, or nil.
func (M *Model) Chain(name string) *Chain {
	for _, c := range M.Chains {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Structure is a full coordinate entry: one or more models, the unit cell
// and the connection table.
type Structure struct {
	Name        string
	Models      []*Model
	Cell        UnitCell
	Connections []Connection
}

// FindCRA returns the atom in model m matching address ad, ignoring case.
func FindCRA(m *Model, ad AtomAddress) (CRA, bool) {
	for cra := range m.Atoms() {
		if !strings.EqualFold(cra.Chain.Name, ad.Chain) || cra.Residue.SeqID != ad.SeqID ||
			!strings.EqualFold(cra.Residue.Name, ad.ResName) || !strings.EqualFold(cra.Atom.Name, ad.AtomName) {
			continue
		}
		if normIcode(cra.Residue.ICode) != normIcode(ad.ICode) {
			continue
		}
		if ad.AltLoc != 0 && cra.Atom.AltLoc != 0 && ad.AltLoc != cra.Atom.AltLoc {
			continue
		}
		return cra, true
	}
	return CRA{}, false
}

func normIcode(c byte) byte {
	if c == ' ' || c == '?' || c == '.' {
		return 0
	}
	return c
}

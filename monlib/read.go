/*
 * read.go, part of refprep.
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

package monlib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rmera/refprep/cif"
)

const (
	compPrefix   = "comp_"
	compListName = "comp_list"
)

// ReadChemComps returns the definitions in every data_comp_XXX block of doc,
// in block name order, tagged with origin. The comp_list block, if present,
// supplies the name and group of each component.
func ReadChemComps(doc *cif.Document, origin Origin) ([]*ChemComp, error) {
	type info struct{ name, group string }
	list := make(map[string]info)
	if b := doc.Block(compListName); b != nil {
		if t, ok := b.Find("_chem_comp.", "id", "name", "group"); ok {
			for i := 0; i < t.Len(); i++ {
				list[t.Str(i, 0)] = info{name: t.Str(i, 1), group: t.Str(i, 2)}
			}
		}
	}
	ret := make([]*ChemComp, 0)
	for _, b := range doc.Blocks {
		lname := strings.ToLower(b.Name)
		if !strings.HasPrefix(lname, compPrefix) || lname == compListName {
			continue
		}
		cc, err := readBlock(b, origin)
		if err != nil {
			return nil, Error{message: err.Error(), filename: doc.Source, deco: []string{"ReadChemComps"}, critical: true}
		}
		if in, ok := list[cc.ID]; ok {
			if cc.Name == "" {
				cc.Name = in.name
			}
			if cc.Group == "" {
				cc.Group = in.group
			}
		}
		ret = append(ret, cc)
	}
	return ret, nil
}

func readBlock(b *cif.Block, origin Origin) (*ChemComp, error) {
	//block names are read in lower case
	cc := &ChemComp{ID: strings.ToUpper(b.Name[len(compPrefix):]), Origin: origin}
	if t, ok := b.Find("_chem_comp.", "id", "name", "group", "type"); ok && t.Len() > 0 {
		if id := t.Str(0, 0); id != "" {
			cc.ID = id
		}
		cc.Name = t.Str(0, 1)
		cc.Group = first(t.Str(0, 2), t.Str(0, 3))
	}
	if cc.ID == "" {
		return nil, fmt.Errorf("block %s has no component id", b.Name)
	}
	if t, ok := b.Find("_chem_comp_atom.", "atom_id", "type_symbol", "type_energy", "charge", "partial_charge"); ok {
		for i := 0; i < t.Len(); i++ {
			a := CompAtom{ID: t.Str(i, 0), Symbol: t.Str(i, 1), EnergyType: t.Str(i, 2)}
			if a.ID == "" {
				return nil, fmt.Errorf("component %s: atom %d has no id", cc.ID, i+1)
			}
			var err error
			if a.Charge, err = num(first(t.Str(i, 3), t.Str(i, 4))); err != nil {
				return nil, fmt.Errorf("component %s, atom %s: %w", cc.ID, a.ID, err)
			}
			cc.Atoms = append(cc.Atoms, a)
		}
	}
	if t, ok := b.Find("_chem_comp_bond.", "atom_id_1", "atom_id_2", "type", "value_order", "value_dist", "value_dist_esd"); ok {
		for i := 0; i < t.Len(); i++ {
			bo := Bond{Atom1: t.Str(i, 0), Atom2: t.Str(i, 1), Type: first(t.Str(i, 2), t.Str(i, 3))}
			var err error
			if bo.Value, err = num(t.Str(i, 4)); err != nil {
				return nil, fmt.Errorf("component %s, bond %s-%s: %w", cc.ID, bo.Atom1, bo.Atom2, err)
			}
			if bo.ESD, err = num(t.Str(i, 5)); err != nil {
				return nil, fmt.Errorf("component %s, bond %s-%s: %w", cc.ID, bo.Atom1, bo.Atom2, err)
			}
			cc.Bonds = append(cc.Bonds, bo)
		}
	}
	if t, ok := b.Find("_chem_comp_angle.", "atom_id_1", "atom_id_2", "atom_id_3", "value_angle", "value_angle_esd"); ok {
		for i := 0; i < t.Len(); i++ {
			an := Angle{Atom1: t.Str(i, 0), Atom2: t.Str(i, 1), Atom3: t.Str(i, 2)}
			var err error
			if an.Value, err = num(t.Str(i, 3)); err != nil {
				return nil, fmt.Errorf("component %s, angle %s-%s-%s: %w", cc.ID, an.Atom1, an.Atom2, an.Atom3, err)
			}
			if an.ESD, err = num(t.Str(i, 4)); err != nil {
				return nil, fmt.Errorf("component %s, angle %s-%s-%s: %w", cc.ID, an.Atom1, an.Atom2, an.Atom3, err)
			}
			cc.Angles = append(cc.Angles, an)
		}
	}
	return cc, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// num parses a number, accepting empty strings as 0 and ignoring a trailing
// esd in parentheses, as in 1.234(5).
func num(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if i := strings.IndexByte(s, '('); i > 0 {
		s = s[:i]
	}
	return strconv.ParseFloat(s, 64)
}

// ReadFile reads all the definitions in a possibly compressed CIF file.
func ReadFile(name string, origin Origin) ([]*ChemComp, error) {
	doc, err := cif.ReadFile(name)
	if err != nil {
		return nil, Error{message: err.Error(), filename: name, deco: []string{"ReadFile"}, critical: true}
	}
	ccs, err := ReadChemComps(doc, origin)
	if err != nil {
		return nil, err
	}
	return ccs, nil
}

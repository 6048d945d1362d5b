/*
 * table.go, part of refprep.
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

package cif

import (
	"sort"
	"strings"

	bcif "github.com/BurntSushi/cif"
)

// Table is a column view over a category of a block, regardless of whether
// the category is written as a loop or as tag-value pairs.
type Table struct {
	cols [][]string //nil for absent columns
	rows int
}

// loopOf returns the loop holding some tag of the category with the given
// prefix, or nil.
func (B *Block) loopOf(prefix string) *bcif.Loop {
	keys := make([]string, 0)
	for tag := range B.data.Loops {
		if strings.HasPrefix(tag, prefix) {
			keys = append(keys, tag)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return B.data.Loops[keys[0]]
}

// Find returns a Table with one column per name in tags, taken from the
// category prefix (e.g. "_chem_comp_atom."). Missing columns read as "".
// The second return value is false if the category is not in the block.
func (B *Block) Find(prefix string, tags ...string) (*Table, bool) {
	if B == nil || B.data == nil {
		return nil, false
	}
	lprefix := strings.TrimPrefix(strings.ToLower(prefix), "_")
	t := &Table{cols: make([][]string, len(tags))}
	if lp := B.loopOf(lprefix); lp != nil {
		t.rows = len(lp.Values[0].Strings())
		for i, tag := range tags {
			if c, ok := lp.Columns[lprefix+strings.ToLower(tag)]; ok {
				t.cols[i] = lp.Values[c].Strings()
			}
		}
		return t, true
	}
	found := false
	for tag := range B.data.Items {
		if strings.HasPrefix(tag, lprefix) {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	t.rows = 1
	for i, tag := range tags {
		if v, ok := B.data.Items[lprefix+strings.ToLower(tag)]; ok {
			t.cols[i] = []string{value(v)}
		}
	}
	return t, true
}

// Len returns the number of rows.
func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return T.rows
}

// Has reports whether column col was present in the category.
func (T *Table) Has(col int) bool {
	return T != nil && T.cols[col] != nil
}

// Val returns the value of column col in row, or "" if the column is absent.
func (T *Table) Val(row, col int) string {
	c := T.cols[col]
	if c == nil {
		return ""
	}
	return c[row]
}

// Str is like Val, but returns "" for CIF null values.
func (T *Table) Str(row, col int) string {
	v := T.Val(row, col)
	if IsNull(v) {
		return ""
	}
	return v
}

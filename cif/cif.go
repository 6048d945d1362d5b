/*
 * cif.go, part of refprep.
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

// Package cif reads mmCIF coordinate files and monomer libraries with
// github.com/BurntSushi/cif and offers a column view over their categories,
// whether written as loops or as tag-value pairs. Save frames are ignored.
package cif

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	bcif "github.com/BurntSushi/cif"
	"github.com/rmera/refprep/internal/zio"
)

// Document is a parsed CIF file.
type Document struct {
	Source string
	Blocks []*Block //sorted by name
}

// Block returns the data block with the given name (without the data_
// prefix), or nil. Names are compared case-insensitively.
func (D *Document) Block(name string) *Block {
	if D == nil {
		return nil
	}
	for _, b := range D.Blocks {
		if strings.EqualFold(b.Name, name) {
			return b
		}
	}
	return nil
}

// Block is a single data_ block. Its name is in lower case, as are all its
// tags.
type Block struct {
	Name string
	data *bcif.DataBlock
}

// IsNull reports whether v is one of the CIF null values, ? or .
func IsNull(v string) bool {
	return v == "?" || v == "."
}

// The lexer of BurntSushi/cif keeps its last token in a package variable.
var readMu sync.Mutex

// Read parses a CIF document from r. Numeric values are read as numbers,
// so a null in a column of numbers reads as 0.
func Read(r io.Reader, source string) (*Document, error) {
	readMu.Lock()
	c, err := bcif.Read(r)
	readMu.Unlock()
	if err != nil {
		return nil, Error{message: err.Error(), filename: source, deco: []string{"Read"}, critical: true}
	}
	if c == nil || len(c.Blocks) == 0 {
		return nil, Error{message: "no data blocks found", filename: source, deco: []string{"Read"}, critical: true}
	}
	doc := &Document{Source: source, Blocks: make([]*Block, 0, len(c.Blocks))}
	for name, b := range c.Blocks {
		doc.Blocks = append(doc.Blocks, &Block{Name: name, data: b})
	}
	sort.Slice(doc.Blocks, func(i, j int) bool { return doc.Blocks[i].Name < doc.Blocks[j].Name })
	return doc, nil
}

// ReadFile reads a possibly compressed CIF file.
func ReadFile(name string) (*Document, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, name)
}

// value formats a single data value the way it would be written.
func value(v bcif.Value) string {
	switch r := v.Raw().(type) {
	case string:
		return r
	case int:
		return strconv.Itoa(r)
	case float64:
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	return fmt.Sprint(v.Raw())
}

/*
 * connection.go, part of refprep.
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
	"strings"
)

// AtomAddress identifies an atom by chain, residue and atom names, the way
// _struct_conn and LINK records do.
type AtomAddress struct {
	Chain    string
	SeqID    int
	ICode    byte
	ResName  string
	AtomName string
	AltLoc   byte
}

// MakeAddress builds the address of atom a in residue r of chain c.
func MakeAddress(c *Chain, r *Residue, a *Atom) AtomAddress {
	return AtomAddress{Chain: c.Name, SeqID: r.SeqID, ICode: r.ICode, ResName: r.Name, AtomName: a.Name, AltLoc: a.AltLoc}
}

// EqualFold reports whether A and B name the same atom, ignoring case. An
// unset altloc on either side matches any altloc.
func (A AtomAddress) EqualFold(B AtomAddress) bool {
	if A.SeqID != B.SeqID || normIcode(A.ICode) != normIcode(B.ICode) {
		return false
	}
	if A.AltLoc != 0 && B.AltLoc != 0 && !strings.EqualFold(string(A.AltLoc), string(B.AltLoc)) {
		return false
	}
	return strings.EqualFold(A.Chain, B.Chain) && strings.EqualFold(A.ResName, B.ResName) &&
		strings.EqualFold(A.AtomName, B.AtomName)
}

func (A AtomAddress) String() string {
	s := fmt.Sprintf("%s/%s %d", A.Chain, A.ResName, A.SeqID)
	if ic := normIcode(A.ICode); ic != 0 {
		s += string(ic)
	}
	s += "/" + A.AtomName
	if A.AltLoc != 0 {
		s += ":" + string(A.AltLoc)
	}
	return s
}

// ConnType is the kind of bond a Connection describes.
type ConnType int

const (
	Covale ConnType = iota
	Disulf
	MetalC
	Hydrog
	UnknownConn
)

var connTypeNames = map[ConnType]string{
	Covale:      "covale",
	Disulf:      "disulf",
	MetalC:      "metalc",
	Hydrog:      "hydrog",
	UnknownConn: "unknown",
}

func (C ConnType) String() string {
	if s, ok := connTypeNames[C]; ok {
		return s
	}
	return "unknown"
}

// ParseConnType reads a _struct_conn.conn_type_id value.
func ParseConnType(s string) ConnType {
	for k, v := range connTypeNames {
		if strings.EqualFold(v, s) {
			return k
		}
	}
	return UnknownConn
}

// Asu tells whether the two partners of a connection are in the same
// asymmetric unit.
type Asu int

const (
	AsuAny Asu = iota
	AsuSame
	AsuDifferent
)

func (A Asu) String() string {
	switch A {
	case AsuSame:
		return "same"
	case AsuDifferent:
		return "different"
	}
	return "any"
}

// Connection is a bond between two atoms that is not implied by the
// sequence of a polymer chain.
type Connection struct {
	Name     string
	Type     ConnType
	Asu      Asu
	Partner1 AtomAddress
	Partner2 AtomAddress
	Distance float64 //reported distance, 0 if unknown
	Image    string  //symmetry image of Partner2 in n_klm notation, "" if unknown
}

func (C Connection) String() string {
	return fmt.Sprintf("%s %s - %s", C.Name, C.Partner1, C.Partner2)
}

// FindConnection returns the connection between a and b, in either order,
// comparing addresses case-insensitively, or nil if there is none.
func (S *Structure) FindConnection(a, b AtomAddress) *Connection {
	for i := range S.Connections {
		c := &S.Connections[i]
		if (c.Partner1.EqualFold(a) && c.Partner2.EqualFold(b)) ||
			(c.Partner1.EqualFold(b) && c.Partner2.EqualFold(a)) {
			return c
		}
	}
	return nil
}

// HasConnectionName is true if a connection called name is already present.
func (S *Structure) HasConnectionName(name string) bool {
	for _, c := range S.Connections {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

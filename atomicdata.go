/*
 * atomicdata.go, part of refprep.
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
	"strings"
	"unicode"
)

// A map for assigning covalent radii to elements.
// Values from Cordero et al., 2008 (DOI:10.1039/B801115J); C is the sp3
// radius and the transition metals use the low-spin values.
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"D":  0.31,
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76,
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Sc": 1.70,
	"Ti": 1.60,
	"V":  1.53,
	"Cr": 1.39,
	"Mn": 1.39,
	"Fe": 1.32,
	"Co": 1.26,
	"Ni": 1.24,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ga": 1.22,
	"Ge": 1.20,
	"As": 1.19,
	"Se": 1.20,
	"Br": 1.20,
	"Kr": 1.16,
	"Rb": 2.20,
	"Sr": 1.95,
	"Y":  1.90,
	"Zr": 1.75,
	"Mo": 1.54,
	"Ru": 1.46,
	"Rh": 1.42,
	"Pd": 1.39,
	"Ag": 1.45,
	"Cd": 1.44,
	"In": 1.42,
	"Sn": 1.39,
	"Sb": 1.39,
	"Te": 1.38,
	"I":  1.39,
	"Xe": 1.40,
	"Cs": 2.44,
	"Ba": 2.15,
	"La": 2.07,
	"Gd": 1.96,
	"Yb": 1.87,
	"W":  1.62,
	"Re": 1.51,
	"Os": 1.44,
	"Ir": 1.41,
	"Pt": 1.36,
	"Au": 1.36,
	"Hg": 1.32,
	"Tl": 1.45,
	"Pb": 1.46,
	"Bi": 1.48,
	"U":  1.96,
}

// A map for checking that atoms don't have too many bonds when bonds are
// inferred from distances. A missing element means "don't check".
var symbolMaxBonds = map[string]int{
	"H":  1,
	"D":  1,
	"C":  4,
	"O":  2,
	"N":  4,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

// CovalentRadius returns the covalent radius, in A, of the element with
// the given symbol (case-insensitive), or 0 if the element is unknown.
func CovalentRadius(symbol string) float64 {
	return symbolCovrad[NormSymbol(symbol)]
}

// MaxBonds returns the usual maximum number of covalent bonds for the
// element, or 0 if no limit should be enforced.
func MaxBonds(symbol string) int {
	return symbolMaxBonds[NormSymbol(symbol)]
}

// KnownElement is true if the symbol is in the radii table.
func KnownElement(symbol string) bool {
	_, ok := symbolCovrad[NormSymbol(symbol)]
	return ok
}

// NormSymbol capitalizes an element symbol: "FE" and "fe" become "Fe".
func NormSymbol(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return ""
	}
	r := []rune(strings.ToLower(symbol))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// SymbolFromName guesses an element symbol from an atom name. Two-letter
// element names (e.g. ZN, CL) are only accepted for hetero residues and only
// when they are the whole name, so that CA stays a carbon in proteins.
func SymbolFromName(name string, hetero bool) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimLeft(n, "0123456789")
	if n == "" {
		return ""
	}
	if hetero && len(n) == 2 {
		if two := NormSymbol(n); KnownElement(two) {
			return two
		}
	}
	one := n[:1]
	if KnownElement(one) {
		return one
	}
	return ""
}

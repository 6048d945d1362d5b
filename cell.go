/*
 * cell.go, part of refprep.
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
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mat3 is a 3x3 matrix acting on column vectors.
type Mat3 [3][3]float64

// Identity3 is the 3x3 identity matrix.
var Identity3 = Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// MulVec returns M·v.
func (M Mat3) MulVec(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: M[0][0]*v.X + M[0][1]*v.Y + M[0][2]*v.Z,
		Y: M[1][0]*v.X + M[1][1]*v.Y + M[1][2]*v.Z,
		Z: M[2][0]*v.X + M[2][1]*v.Y + M[2][2]*v.Z,
	}
}

// Mul returns the product M·N.
func (M Mat3) Mul(N Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += M[i][k] * N[k][j]
			}
		}
	}
	return r
}

// SymOp is a crystallographic symmetry operation in fractional coordinates.
type SymOp struct {
	Rot  Mat3
	Tran r3.Vec
}

// IdentityOp is x,y,z.
var IdentityOp = SymOp{Rot: Identity3}

// Apply transforms the fractional position f.
func (S SymOp) Apply(f r3.Vec) r3.Vec {
	return r3.Add(S.Rot.MulVec(f), S.Tran)
}

// IsIdentity is true for x,y,z.
func (S SymOp) IsIdentity() bool {
	return S.Rot == Identity3 && S.Tran == (r3.Vec{})
}

// Triplet writes the operation in the notation read by ParseSymOp, e.g.
// "-x+1/2,y,-z".
func (S SymOp) Triplet() string {
	tran := [3]float64{S.Tran.X, S.Tran.Y, S.Tran.Z}
	rows := make([]string, 3)
	for i := 0; i < 3; i++ {
		var b strings.Builder
		for j, axis := range "xyz" {
			switch c := S.Rot[i][j]; c {
			case 0:
				continue
			case 1:
				if b.Len() > 0 {
					b.WriteByte('+')
				}
			case -1:
				b.WriteByte('-')
			default:
				fmt.Fprintf(&b, "%+g*", c)
			}
			b.WriteRune(axis)
		}
		if t := tran[i]; t != 0 {
			if t > 0 && b.Len() > 0 {
				b.WriteByte('+')
			}
			b.WriteString(fraction(t))
		}
		if b.Len() == 0 {
			b.WriteByte('0')
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, ",")
}

// fraction writes t as n/d for the denominators found in space groups.
func fraction(t float64) string {
	for _, d := range []float64{1, 2, 3, 4, 6} {
		n := t * d
		if math.Abs(n-math.Round(n)) < 1e-6 {
			if d == 1 {
				return fmt.Sprintf("%d", int(math.Round(n)))
			}
			return fmt.Sprintf("%d/%d", int(math.Round(n)), int(d))
		}
	}
	return strconv.FormatFloat(t, 'g', -1, 64)
}

// ParseSymOp reads a symmetry operation written as a triplet such as
// "-x+1/2,y,-z" or "X,Y,Z".
func ParseSymOp(s string) (SymOp, error) {
	parts := strings.Split(strings.ReplaceAll(strings.ToLower(s), " ", ""), ",")
	if len(parts) != 3 {
		return SymOp{}, CError{message: fmt.Sprintf("bad symmetry operation %q", s), deco: []string{"ParseSymOp"}}
	}
	var op SymOp
	tran := [3]float64{}
	for row, p := range parts {
		if p == "" {
			return SymOp{}, CError{message: fmt.Sprintf("bad symmetry operation %q", s), deco: []string{"ParseSymOp"}}
		}
		if p[0] != '+' && p[0] != '-' {
			p = "+" + p
		}
		for len(p) > 0 {
			sign := 1.0
			if p[0] == '-' {
				sign = -1
			}
			p = p[1:]
			end := strings.IndexAny(p, "+-")
			if end < 0 {
				end = len(p)
			}
			term := p[:end]
			p = p[end:]
			switch term {
			case "x":
				op.Rot[row][0] = sign
			case "y":
				op.Rot[row][1] = sign
			case "z":
				op.Rot[row][2] = sign
			default:
				v, err := parseFraction(term)
				if err != nil {
					return SymOp{}, CError{message: fmt.Sprintf("bad term %q in symmetry operation %q", term, s), deco: []string{"ParseSymOp"}}
				}
				tran[row] += sign * v
			}
		}
	}
	op.Tran = r3.Vec{X: tran[0], Y: tran[1], Z: tran[2]}
	return op, nil
}

func parseFraction(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("bad denominator in %s", s)
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

// UnitCell holds the cell parameters (A and degrees) and the symmetry
// operations of the crystal. The zero value is a non-crystal: no images.
type UnitCell struct {
	A, B, C            float64
	Alpha, Beta, Gamma float64
	Ops                []SymOp //always includes the identity when set by the readers
}

// IsCrystal is true if the cell has usable parameters.
func (U UnitCell) IsCrystal() bool {
	return U.A > 1 && U.B > 1 && U.C > 1 && U.Alpha > 0 && U.Beta > 0 && U.Gamma > 0
}

// Volume returns the cell volume in A^3.
func (U UnitCell) Volume() float64 {
	ca, cb, cg := cosd(U.Alpha), cosd(U.Beta), cosd(U.Gamma)
	return U.A * U.B * U.C * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
}

// Orth returns the orthogonalization matrix (fractional to Cartesian) in the
// PDB convention: a along x, b in the xy plane.
func (U UnitCell) Orth() Mat3 {
	ca, cb, cg := cosd(U.Alpha), cosd(U.Beta), cosd(U.Gamma)
	sg := math.Sin(U.Gamma * math.Pi / 180)
	v := U.Volume()
	return Mat3{
		{U.A, U.B * cg, U.C * cb},
		{0, U.B * sg, U.C * (ca - cb*cg) / sg},
		{0, 0, v / (U.A * U.B * sg)},
	}
}

// Frac returns the fractionalization matrix, the inverse of Orth.
func (U UnitCell) Frac() (Mat3, error) {
	o := U.Orth()
	dense := mat.NewDense(3, 3, []float64{
		o[0][0], o[0][1], o[0][2],
		o[1][0], o[1][1], o[1][2],
		o[2][0], o[2][1], o[2][2],
	})
	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		return Mat3{}, CError{message: fmt.Sprintf("singular cell: %v", err), deco: []string{"Frac"}}
	}
	var f Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			f[i][j] = inv.At(i, j)
		}
	}
	return f, nil
}

// Operations returns the symmetry operations, or the identity alone if none
// were given.
func (U UnitCell) Operations() []SymOp {
	if len(U.Ops) == 0 {
		return []SymOp{IdentityOp}
	}
	return U.Ops
}

func cosd(deg float64) float64 {
	if deg == 90 {
		return 0
	}
	return math.Cos(deg * math.Pi / 180)
}

/*
 * neighbor.go, part of refprep.
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

// Package neighbor finds all pairs of atoms of a model, including their
// crystallographic images, that lie within a given distance.
package neighbor

import (
	"fmt"
	"iter"
	"math"
	"sort"
	"sync"

	chem "github.com/rmera/refprep"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pair is two atoms within the search radius. I and J are their site
// indices; I < J, except for an atom close to its own image, where I == J.
type Pair struct {
	A, B   chem.CRA
	I, J   int
	Image  int //image applied to B, 0 is the original asymmetric unit
	DistSq float64
}

// SameAsu is true if both atoms are in the original asymmetric unit.
func (P Pair) SameAsu() bool {
	return P.Image == 0
}

// Dist returns the distance between the atoms.
func (P Pair) Dist() float64 {
	return math.Sqrt(P.DistSq)
}

// Image is a copy of the model produced by the symmetry operation Op of the
// cell followed by a lattice translation.
type Image struct {
	Op    int
	Shift [3]int
	xf    chem.SymOp //Cartesian transformation
}

func (I Image) String() string {
	return fmt.Sprintf("%d_%d%d%d", I.Op+1, 5+I.Shift[0], 5+I.Shift[1], 5+I.Shift[2])
}

// Options modifies the way the index is built and queried.
type Options struct {
	Workers int //goroutines used for the queries. Values below 2 mean no concurrency.
}

// Index holds the sites of a model and the images that can reach it.
type Index struct {
	radius  float64
	sites   []chem.CRA
	images  []Image
	tree    *kdtree.Tree
	workers int
}

// Build indexes every atom of m for queries within radius. For a crystal
// cell, images are generated from the symmetry operations and the lattice
// translations that put at least one atom within radius of the bounding box
// of the model.
func Build(m *chem.Model, cell chem.UnitCell, radius float64, opts Options) (*Index, error) {
	if radius <= 0 {
		return nil, Error{message: fmt.Sprintf("search radius must be positive, got %g", radius), deco: []string{"Build"}, critical: true}
	}
	ix := &Index{radius: radius, workers: opts.Workers}
	for cra := range m.Atoms() {
		ix.sites = append(ix.sites, cra)
	}
	ix.images = []Image{{xf: chem.IdentityOp}}
	if len(ix.sites) == 0 {
		return ix, nil
	}
	pts := make(sites, len(ix.sites))
	for i, c := range ix.sites {
		pts[i] = newSite(c.Atom.Pos, i)
	}
	ix.tree = kdtree.New(pts, false)
	if cell.IsCrystal() {
		imgs, err := crystalImages(ix.sites, cell, radius)
		if err != nil {
			return nil, errDecorate(err, "Build")
		}
		ix.images = append(ix.images, imgs...)
	}
	return ix, nil
}

// crystalImages returns every image other than the identity that has an atom
// within radius of the bounding box of sites.
func crystalImages(cras []chem.CRA, cell chem.UnitCell, radius float64) ([]Image, error) {
	frac, err := cell.Frac()
	if err != nil {
		return nil, err
	}
	orth := cell.Orth()
	fpos := make([]r3.Vec, len(cras))
	lo, hi := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}, r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i, c := range cras {
		fpos[i] = frac.MulVec(c.Atom.Pos)
		lo, hi = grow(lo, hi, c.Atom.Pos)
	}
	rv := r3.Vec{X: radius, Y: radius, Z: radius}
	clo, chi := r3.Sub(lo, rv), r3.Add(hi, rv)
	flo, fhi := fracBox(fpos, chem.IdentityOp)
	//extent, in fractional units, of a sphere of the given radius
	var ext [3]float64
	for a := 0; a < 3; a++ {
		ext[a] = radius * math.Sqrt(frac[a][0]*frac[a][0]+frac[a][1]*frac[a][1]+frac[a][2]*frac[a][2])
	}
	ret := make([]Image, 0)
	for k, op := range cell.Operations() {
		olo, ohi := fracBox(fpos, op)
		var from, to [3]int
		for a := 0; a < 3; a++ {
			from[a] = int(math.Ceil(comp(flo, a) - ext[a] - comp(ohi, a)))
			to[a] = int(math.Floor(comp(fhi, a) + ext[a] - comp(olo, a)))
		}
		for s0 := from[0]; s0 <= to[0]; s0++ {
			for s1 := from[1]; s1 <= to[1]; s1++ {
				for s2 := from[2]; s2 <= to[2]; s2++ {
					if op.IsIdentity() && s0 == 0 && s1 == 0 && s2 == 0 {
						continue
					}
					shift := r3.Vec{X: float64(s0), Y: float64(s1), Z: float64(s2)}
					xf := chem.SymOp{
						Rot:  orth.Mul(op.Rot).Mul(frac),
						Tran: orth.MulVec(r3.Add(op.Tran, shift)),
					}
					if !reaches(cras, xf, clo, chi) {
						continue
					}
					ret = append(ret, Image{Op: k, Shift: [3]int{s0, s1, s2}, xf: xf})
				}
			}
		}
	}
	return ret, nil
}

func comp(v r3.Vec, a int) float64 {
	switch a {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

func grow(lo, hi, p r3.Vec) (r3.Vec, r3.Vec) {
	lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
	hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	return lo, hi
}

func fracBox(fpos []r3.Vec, op chem.SymOp) (r3.Vec, r3.Vec) {
	lo, hi := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}, r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, f := range fpos {
		lo, hi = grow(lo, hi, op.Apply(f))
	}
	return lo, hi
}

func reaches(cras []chem.CRA, xf chem.SymOp, lo, hi r3.Vec) bool {
	for _, c := range cras {
		p := xf.Apply(c.Atom.Pos)
		if p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y && p.Z >= lo.Z && p.Z <= hi.Z {
			return true
		}
	}
	return false
}

// Len returns the number of indexed sites.
func (ix *Index) Len() int {
	return len(ix.sites)
}

// Images returns the images in use. The first one is the identity.
func (ix *Index) Images() []Image {
	return ix.images
}

type hit struct {
	i, img int
	d2     float64
}

// query returns the original sites within the radius of each image of site j.
// Only sites i <= j are kept for images other than the identity, so the image
// always applies to the second site of the pair. The hit for i > j comes
// from querying i with the inverse image.
func (ix *Index) query(j int) []hit {
	ret := make([]hit, 0)
	r2 := ix.radius * ix.radius
	pos := ix.sites[j].Atom.Pos
	for m, img := range ix.images {
		q := newSite(pos, j)
		if m != 0 {
			q = newSite(img.xf.Apply(pos), j)
		}
		keep := kdtree.NewDistKeeper(r2)
		ix.tree.NearestSet(keep, q)
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			i := c.Comparable.(site).idx
			if (m == 0 && i == j) || (m != 0 && i > j) {
				continue
			}
			ret = append(ret, hit{i: i, img: m, d2: c.Dist})
		}
	}
	return ret
}

// Pairs returns every unordered pair of sites within the radius, once, with
// the image of B that brings it closest to A. Ties go to the lower image index, so
// a pair in the same asymmetric unit is reported as such. Pairs come in
// ascending order of site indices.
func (ix *Index) Pairs() iter.Seq[Pair] {
	return func(yield func(Pair) bool) {
		for _, p := range ix.collect() {
			if !yield(p) {
				return
			}
		}
	}
}

func (ix *Index) collect() []Pair {
	n := len(ix.sites)
	if n == 0 {
		return nil
	}
	slots := make([][]hit, n)
	workers := ix.workers
	if workers < 2 {
		for j := 0; j < n; j++ {
			slots[j] = ix.query(j)
		}
	} else {
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for j := w; j < n; j += workers {
					slots[j] = ix.query(j)
				}
			}(w)
		}
		wg.Wait()
	}
	type key struct{ i, j int }
	best := make(map[key]hit)
	for j, hits := range slots {
		for _, h := range hits {
			k := key{i: min(h.i, j), j: max(h.i, j)}
			old, ok := best[k]
			if !ok || h.d2 < old.d2 || (h.d2 == old.d2 && h.img < old.img) {
				best[k] = h
			}
		}
	}
	keys := make([]key, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].i != keys[b].i {
			return keys[a].i < keys[b].i
		}
		return keys[a].j < keys[b].j
	})
	ret := make([]Pair, len(keys))
	for idx, k := range keys {
		h := best[k]
		ret[idx] = Pair{A: ix.sites[k.i], B: ix.sites[k.j], I: k.i, J: k.j, Image: h.img, DistSq: h.d2}
	}
	return ret
}

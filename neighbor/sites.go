/*
 * sites.go, part of refprep.
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

package neighbor

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// site is a position in the k-d tree that remembers which atom it is.
type site struct {
	pos [3]float64
	idx int
}

func newSite(p r3.Vec, idx int) site {
	return site{pos: [3]float64{p.X, p.Y, p.Z}, idx: idx}
}

// Compare returns the signed distance of s from the plane through c
// perpendicular to dimension d.
func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return s.pos[d] - c.(site).pos[d]
}

func (s site) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, which is what the tree
// expects when pruning.
func (s site) Distance(c kdtree.Comparable) float64 {
	o := c.(site)
	dx := s.pos[0] - o.pos[0]
	dy := s.pos[1] - o.pos[1]
	dz := s.pos[2] - o.pos[2]
	return dx*dx + dy*dy + dz*dz
}

// sites implements kdtree.Interface.
type sites []site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }
func (s sites) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{dim: d, sites: s}, kdtree.MedianOfMedians(plane{dim: d, sites: s}))
}

// plane sorts sites along one dimension.
type plane struct {
	dim   kdtree.Dim
	sites sites
}

func (p plane) Less(i, j int) bool { return p.sites[i].pos[p.dim] < p.sites[j].pos[p.dim] }
func (p plane) Swap(i, j int)      { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }
func (p plane) Len() int           { return len(p.sites) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{dim: p.dim, sites: p.sites[start:end]}
}

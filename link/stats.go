/*
 * stats.go, part of refprep.
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

package link

import (
	"github.com/rmera/refprep/histo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HistStep is the bin width of Summary.Hist, in A.
const HistStep = 0.5

// Summary describes the distances of a set of candidates.
type Summary struct {
	N, Accepted, Existing int
	Min, Max, Mean, Std   float64
	Hist                  *histo.Data //distances from 0 in HistStep bins, nil if N is 0
}

// Summarize computes distance statistics over cands. All the statistics
// are zero for an empty set.
func Summarize(cands []Candidate) Summary {
	var s Summary
	if len(cands) == 0 {
		return s
	}
	d := make([]float64, len(cands))
	for i, c := range cands {
		d[i] = c.Dist()
		if c.Accepted {
			s.Accepted++
		}
		if c.Existing {
			s.Existing++
		}
	}
	s.N = len(cands)
	s.Min = floats.Min(d)
	s.Max = floats.Max(d)
	s.Mean, s.Std = stat.MeanStdDev(d, nil)
	if s.N == 1 {
		s.Std = 0
	}
	s.Hist = histo.NewData(histo.Dividers(0, s.Max, HistStep), d)
	return s
}

/*
 * histogram.go, part of refprep.
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

// Package chemplot draws plots of the data produced while preparing a
// structure.
package chemplot

import (
	"fmt"

	"github.com/rmera/refprep/link"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bins is the number of bins of ContactHistogram.
const Bins = 35

// category is one of the stacked sets of contacts in the histogram.
type category struct {
	name string
	keep func(link.Candidate) bool
}

var categories = []category{
	{"new links", func(c link.Candidate) bool { return c.Accepted }},
	{"existing connections", func(c link.Candidate) bool { return c.Existing }},
	{"rejected", func(c link.Candidate) bool { return !c.Accepted && !c.Existing }},
}

// histXYs returns unit weights at the distances of the candidates kept by
// keep, plus zero weights at 0 and cutoff so every category uses the same
// bins.
func histXYs(cands []link.Candidate, cutoff float64, keep func(link.Candidate) bool) (plotter.XYs, int) {
	xys := plotter.XYs{{X: 0, Y: 0}, {X: cutoff, Y: 0}}
	n := 0
	for _, c := range cands {
		if keep(c) {
			xys = append(xys, plotter.XY{X: c.Dist(), Y: 1})
			n++
		}
	}
	return xys, n
}

// ContactHistogram plots the distribution of the distances of cands up to
// cutoff, with new links, existing connections and rejected contacts in
// different colors. The format is taken from the extension of filename.
func ContactHistogram(cands []link.Candidate, cutoff float64, filename string) error {
	if len(cands) == 0 {
		return fmt.Errorf("chemplot: no contacts to plot")
	}
	if cutoff <= 0 {
		return fmt.Errorf("chemplot: cutoff must be positive, got %g", cutoff)
	}
	p := plot.New()
	p.Title.Text = "Contacts"
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Distance (A)"
	p.Y.Label.Text = "Count"
	p.X.Min = 0
	p.X.Max = cutoff
	p.Add(plotter.NewGrid())
	for i, cat := range categories {
		xys, n := histXYs(cands, cutoff, cat.keep)
		if n == 0 {
			continue
		}
		h, err := plotter.NewHistogram(xys, Bins)
		if err != nil {
			return fmt.Errorf("chemplot: %w", err)
		}
		h.FillColor = colors(i, len(categories))
		p.Add(h)
		p.Legend.Add(fmt.Sprintf("%s (%d)", cat.name, n), h)
	}
	p.Legend.Top = true
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filename); err != nil {
		return fmt.Errorf("chemplot: %w", err)
	}
	return nil
}

/*
 * histo.go, part of refprep.
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

// Package histo keeps simple histograms with arbitrary bin dividers.
package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Bin i counts the values v with
// dividers[i] <= v < dividers[i+1]; values outside all bins are omitted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// Dividers returns evenly spaced dividers from min, with bins of width step,
// enough to cover max. step must be positive.
func Dividers(min, max, step float64) []float64 {
	if step <= 0 {
		panic("histo.Dividers: step must be positive")
	}
	n := int(math.Floor((max-min)/step)) + 1
	if n < 1 {
		n = 1
	}
	d := make([]float64, n+1)
	for i := range d {
		d[i] = min + float64(i)*step
	}
	return d
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// rawdata is not modified.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 {
		panic("histo.NewData: at least two dividers are needed")
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(append([]float64(nil), rawdata...))
	}
	return d
}

// AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		for j := 0; j < len(D.dividers)-1; j++ {
			if D.dividers[j] <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
}

// ReHisto replaces the contents of the histogram with the values in rawdata,
// which gets sorted.
func (D *Data) ReHisto(rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(rawdata, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(rawdata, D.dividers[0])
	rawdata = rawdata[mini:maxi]
	D.normalized = false
	D.total = len(rawdata)
	D.histo = stat.Histogram(nil, D.dividers, rawdata, nil)
}

// Total returns the number of values counted.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides every bin by the number of values.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize undoes Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

// View returns the bins. The slice is not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Dividers returns a copy of the dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// Sum returns the sum of the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// String prints the bins as a two-line table: ranges and counts.
func (D *Data) String() string {
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		r := fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1])
		c := fmt.Sprintf("%g", v)
		if D.normalized {
			c = fmt.Sprintf("%.3f", v)
		}
		w := max(len(r), len(c))
		d = append(d, fmt.Sprintf("%*s", w, r))
		h = append(h, fmt.Sprintf("%*s", w, c))
	}
	return strings.Join(d, " ") + "\n" + strings.Join(h, " ")
}

/*
 * histogram_test.go, part of refprep.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/refprep"
	"github.com/rmera/refprep/link"
	"github.com/rmera/refprep/neighbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(d2 float64, accepted, existing bool) link.Candidate {
	a := chem.CRA{Atom: &chem.Atom{Name: "C1", Symbol: "C"}}
	return link.Candidate{Pair: neighbor.Pair{A: a, B: a, J: 1, DistSq: d2}, Accepted: accepted, Existing: existing}
}

func TestContactHistogram(t *testing.T) {
	cands := []link.Candidate{
		candidate(1.5*1.5, true, false),
		candidate(1.8*1.8, false, true),
		candidate(2.9*2.9, false, false),
		candidate(3.2*3.2, false, false),
	}
	for _, name := range []string{"contacts.png", "contacts.svg"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, ContactHistogram(cands, 3.5, path))
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, fi.Size(), int64(0))
	}
}

func TestContactHistogramErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ContactHistogram(nil, 3.5, filepath.Join(dir, "a.png")))
	assert.Error(t, ContactHistogram([]link.Candidate{candidate(4, true, false)}, 0, filepath.Join(dir, "b.png")))
	assert.Error(t, ContactHistogram([]link.Candidate{candidate(4, true, false)}, 3.5, filepath.Join(dir, "c.unknown")))
}

func TestHistXYs(t *testing.T) {
	cands := []link.Candidate{candidate(1, true, false), candidate(4, false, false)}
	xys, n := histXYs(cands, 3.5, categories[0].keep)
	assert.Equal(t, 1, n)
	require.Len(t, xys, 3)
	assert.Equal(t, 0.0, xys[0].X)
	assert.Equal(t, 3.5, xys[1].X)
	assert.Equal(t, 1.0, xys[2].X)
}

func TestColors(t *testing.T) {
	seen := make(map[[3]uint8]bool)
	for i := 0; i < 3; i++ {
		c := colors(i, 3)
		assert.Equal(t, uint8(255), c.A)
		seen[[3]uint8{c.R, c.G, c.B}] = true
	}
	assert.Len(t, seen, 3)
	r, g, b := iHVS2RGB(0, 1, 0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

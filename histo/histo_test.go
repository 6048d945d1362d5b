/*
 * histo_test.go, part of refprep.
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

package histo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDividers(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, Dividers(0, 1.2, 0.5))
	assert.Equal(t, []float64{0, 0.5, 1, 1.5}, Dividers(0, 1, 0.5))
	assert.Equal(t, []float64{2, 3}, Dividers(2, 1, 1))
	assert.Panics(t, func() { Dividers(0, 1, 0) })
}

func TestNewData(t *testing.T) {
	raw := []float64{3, 1, 6, 0, 2, 3.5, -1, 8}
	h := NewData([]float64{0, 2, 4, 8}, raw)
	assert.Equal(t, []float64{2, 3, 1}, h.View())
	assert.Equal(t, 6, h.Total())
	assert.Equal(t, 6.0, h.Sum())
	//the input is left alone
	assert.Equal(t, 3.0, raw[0])

	empty := NewData([]float64{0, 1}, nil)
	assert.Equal(t, []float64{0}, empty.View())
	assert.Panics(t, func() { NewData([]float64{1}, nil) })
}

func TestAddAndNormalize(t *testing.T) {
	h := NewData([]float64{0, 1, 2}, nil)
	h.AddData(0.5, 1.5, 1.2, 9)
	assert.Equal(t, []float64{1, 2}, h.View())
	assert.Equal(t, 3, h.Total())

	h.Normalize()
	require.True(t, h.Normalized())
	assert.InDelta(t, 1, h.Sum(), 1e-12)
	h.Normalize()
	assert.InDelta(t, 1, h.Sum(), 1e-12)

	h.AddData(0.1)
	assert.True(t, h.Normalized())
	assert.InDelta(t, 0.5, h.View()[0], 1e-12)
	h.UnNormalize()
	assert.Equal(t, []float64{2, 2}, h.View())
}

func TestString(t *testing.T) {
	h := NewData([]float64{0, 1, 2}, []float64{0.5})
	assert.Equal(t, "0.00-1.00 1.00-2.00\n        1         0", h.String())
	assert.Equal(t, []float64{0, 1, 2}, h.Dividers())
}

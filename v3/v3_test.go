/*
 * v3_test.go, part of cebeconf.
 *
 *
 * Copyright 2026 The cebeconf authors
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
 *
 */

package v3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, []float64{4, 5, 6}, A.Vec(nil, 1))

	_, err = NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	var e Error
	require.ErrorAs(Te, err, &e)
	assert.True(Te, e.Critical())
	assert.Equal(Te, []string{"NewMatrix", "Caller"}, e.Decorate("Caller"))

	E, err := NewMatrix(nil)
	require.NoError(Te, err)
	assert.Equal(Te, 0, E.NVecs())
}

func TestVecView(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(Te, err)
	v := A.VecView(1)
	v.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
}

func TestDist(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 3, 4, 0, 0, 0, 1})
	require.NoError(Te, err)
	assert.Equal(Te, 5.0, A.Dist(0, 1))
	assert.Equal(Te, 0.0, A.Dist(1, 1))
	D := A.DistMatrix()
	assert.Equal(Te, 5.0, D.At(1, 0))
	assert.InDelta(Te, math.Sqrt(9+16+1), D.At(2, 1), 1e-12)
	assert.Equal(Te, 0.0, D.At(2, 2))
}

func TestAddVec(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	require.NoError(Te, err)
	B := Zeros(2)
	B.AddVec(A, []float64{10, 20, 30})
	assert.Equal(Te, []float64{12, 22, 32}, B.Vec(nil, 1))
	assert.Panics(Te, func() { B.AddVec(A, []float64{1}) })
}

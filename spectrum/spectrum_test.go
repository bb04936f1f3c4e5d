/*
 * spectrum_test.go, part of cebeconf.
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

package spectrum

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/krr"
)

func preds() []krr.Prediction {
	c := &cebe.Atom{Symbol: "C", Z: 6}
	o := &cebe.Atom{Symbol: "O", Z: 8}
	h := &cebe.Atom{Symbol: "H", Z: 1}
	return []krr.Prediction{
		{Index: 0, Atom: o, Scored: true, Energy: 539.5},
		{Index: 1, Atom: c, Scored: true, Energy: 290.0},
		{Index: 2, Atom: c, Scored: true, Energy: 292.0},
		{Index: 3, Atom: h},
	}
}

func area(c Curve) float64 {
	a := 0.0
	for i := 1; i < len(c.X); i++ {
		a += 0.5 * (c.Y[i] + c.Y[i-1]) * (c.X[i] - c.X[i-1])
	}
	return a
}

func argmax(y []float64) int {
	m := 0
	for i, v := range y {
		if v > y[m] {
			m = i
		}
	}
	return m
}

func TestBroadenGaussian(Te *testing.T) {
	curves, err := Broaden(preds(), Gaussian, 0.5, 0.01)
	require.NoError(Te, err)
	require.Len(Te, curves, 2)
	assert.Equal(Te, "C", curves[0].Element)
	assert.Equal(Te, "O", curves[1].Element)
	//one unit of area per atom
	assert.InDelta(Te, 2.0, area(curves[0]), 1e-3)
	assert.InDelta(Te, 1.0, area(curves[1]), 1e-3)
	assert.InDelta(Te, 539.5, curves[1].X[argmax(curves[1].Y)], 0.01)
	assert.InDelta(Te, 290.0-1.5, curves[0].X[0], 1e-9)
}

func TestBroadenLorentzian(Te *testing.T) {
	curves, err := Broaden(preds()[:1], Lorentzian, 1.0, 0.01)
	require.NoError(Te, err)
	require.Len(Te, curves, 1)
	m := argmax(curves[0].Y)
	assert.InDelta(Te, 539.5, curves[0].X[m], 0.01)
	//the maximum of a unit-area Lorentzian is 2/(pi*fwhm)
	assert.InDelta(Te, 2/(3.141592653589793*1.0), curves[0].Y[m], 1e-3)
}

func TestBroadenErrors(Te *testing.T) {
	_, err := Broaden(preds(), Gaussian, 0, 0.1)
	assert.Error(Te, err)
	_, err = Broaden(preds(), Gaussian, 1, -0.1)
	assert.Error(Te, err)
	curves, err := Broaden(preds()[3:], Gaussian, 1, 0.1)
	require.NoError(Te, err)
	assert.Empty(Te, curves)
	assert.Error(Te, Plot(curves, "nothing", filepath.Join(Te.TempDir(), "x.png")))
}

func TestPlot(Te *testing.T) {
	curves, err := Broaden(preds(), Gaussian, 0.8, 0.05)
	require.NoError(Te, err)
	for _, ext := range []string{"png", "svg"} {
		name := filepath.Join(Te.TempDir(), "spectrum."+ext)
		require.NoError(Te, Plot(curves, "test molecule", name))
		st, err := os.Stat(name)
		require.NoError(Te, err)
		assert.Greater(Te, st.Size(), int64(0))
	}
	assert.Error(Te, Plot(curves, "bad", filepath.Join(Te.TempDir(), "spectrum.unknown")))
}

func TestParseShape(Te *testing.T) {
	s, err := ParseShape(" Lorentzian")
	require.NoError(Te, err)
	assert.Equal(Te, Lorentzian, s)
	s, err = ParseShape("G")
	require.NoError(Te, err)
	assert.Equal(Te, Gaussian, s)
	assert.Equal(Te, "gaussian", s.String())
	_, err = ParseShape("voigt")
	assert.ErrorIs(Te, err, cebe.ErrFormat)
}

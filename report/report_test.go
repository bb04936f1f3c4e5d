/*
 * report_test.go, part of cebeconf.
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

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/krr"
)

func sample() *Report {
	return &Report{
		Source: "water.xyz",
		Title:  "water",
		Predictions: []krr.Prediction{
			{Index: 0, Atom: &cebe.Atom{Symbol: "O", Z: 8}, Coords: [3]float64{0, 0, 0.1173}, Scored: true, Energy: 540.3412, Elapsed: 20 * time.Millisecond},
			{Index: 1, Atom: &cebe.Atom{Symbol: "H", Z: 1}, Coords: [3]float64{0, 0.7572, -0.4692}},
			{Index: 2, Atom: &cebe.Atom{Symbol: "H", Z: 1}, Coords: [3]float64{0, -0.7572, -0.4692}},
		},
		Timings: Timings{Load: 1500 * time.Millisecond, Total: 2 * time.Second},
	}
}

func TestText(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, Text(&b, sample()))
	out := b.String()
	assert.Contains(Te, out, " Loading ML models took 1.50 seconds\n")
	assert.Contains(Te, out, "containing    3 atoms")
	assert.Contains(Te, out, "\n   3\n water\n")
	assert.Contains(Te, out, " O      0.00000000      0.00000000      0.11730000     540.34 eV, 0.02 seconds\n")
	assert.Contains(Te, out, " H      0.00000000      0.75720000     -0.46920000\n")
	assert.Contains(Te, out, " Total elapsed Time (seconds): 2.00\n")
	atomLines := 0
	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, " O ") || strings.HasPrefix(l, " H ") {
			atomLines++
		}
	}
	assert.Equal(Te, 3, atomLines)
	assert.Equal(Te, 1, strings.Count(out, " eV,"))
}

func TestTextEmpty(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, Text(&b, &Report{Source: "none.xyz", Title: "none"}))
	assert.Contains(Te, b.String(), "\n   0\n none\n\n Total")
}

func TestBanner(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, Banner(&b, time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)))
	out := b.String()
	assert.Contains(Te, out, " Current Time: 2024-05-06 07:08:09\n")
	assert.Contains(Te, out, " C in CH4, methane      290.94 eV\n")
	assert.Contains(Te, out, " F in HF                694.95 eV\n")
}

func TestJSON(Te *testing.T) {
	var b bytes.Buffer
	require.NoError(Te, JSON(&b, sample()))
	var d Document
	require.NoError(Te, json.Unmarshal(b.Bytes(), &d))
	assert.Equal(Te, 3, d.NAtoms)
	assert.Equal(Te, "water", d.Title)
	require.NotNil(Te, d.Atoms[0].Energy)
	assert.Equal(Te, 540.3412, *d.Atoms[0].Energy)
	assert.Nil(Te, d.Atoms[1].Energy)
	assert.Equal(Te, 1.5, d.LoadSeconds)
	assert.NotContains(Te, b.String(), `"energy_ev": null`)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(Te *testing.T) {
	assert.EqualError(Te, Text(failWriter{}, sample()), "disk full")
	assert.Error(Te, Banner(failWriter{}, time.Now()))
}

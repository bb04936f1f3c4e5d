/*
 * cli_test.go, part of cebeconf.
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

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/coulomb"
	"github.com/rmera/cebeconf/model"
	"github.com/rmera/cebeconf/report"
)

const co = `2
carbon_monoxide
C 0.0 0.0 0.0
O 0.0 0.0 1.128
`

//fixture writes the geometry co and a model directory where the carbon and
//oxygen models are trained on the atoms of co alone, so their energies are
//exactly the weights.
func fixture(Te *testing.T) (xyz, dir string) {
	tmp := Te.TempDir()
	xyz = filepath.Join(tmp, "co.xyz")
	require.NoError(Te, os.WriteFile(xyz, []byte(co), 0o644))
	g, err := coulomb.New(coulomb.DefaultOptions())
	require.NoError(Te, err)
	mol, err := cebe.XYZRead(strings.NewReader(co))
	require.NoError(Te, err)
	desc, err := g.Generate(mol.AtomicNumbers(), mol.Coords)
	require.NoError(Te, err)

	dir = filepath.Join(tmp, "data")
	store := model.DirStore{Dir: dir}
	rows := map[string]*mat.Dense{
		"C": mat.NewDense(1, g.Width(), mat.Row(nil, 0, desc)),
		"O": mat.NewDense(1, g.Width(), mat.Row(nil, 1, desc)),
		"N": mat.NewDense(1, g.Width(), nil),
		"F": mat.NewDense(1, g.Width(), nil),
	}
	weights := map[string]float64{"C": 290, "O": 540, "N": 1, "F": 1}
	for e, d := range rows {
		set, err := model.NewTrainingSet(e, d, mat.NewVecDense(1, []float64{weights[e]}))
		require.NoError(Te, err)
		require.NoError(Te, store.Save(set, model.None))
	}
	return xyz, dir
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRoot(&app{stdout: &out})
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPredictText(Te *testing.T) {
	xyz, dir := fixture(Te)
	out, err := run(xyz, "--data", dir)
	require.NoError(Te, err)
	assert.Contains(Te, out, "Current Time")
	assert.Contains(Te, out, "containing    2 atoms")
	assert.Contains(Te, out, "   2\n carbon_monoxide\n")
	assert.Contains(Te, out, "290.00 eV")
	assert.Contains(Te, out, "540.00 eV")
	assert.Contains(Te, out, "Total elapsed Time (seconds)")
}

func TestPredictJSON(Te *testing.T) {
	xyz, dir := fixture(Te)
	out, err := run("predict", xyz, "-d", dir, "-o", "json", "-k", "gaussian", "-w", "1")
	require.NoError(Te, err)
	var doc report.Document
	require.NoError(Te, json.Unmarshal([]byte(out), &doc))
	require.Len(Te, doc.Atoms, 2)
	assert.InDelta(Te, 290.0, *doc.Atoms[0].Energy, 1e-9)
	assert.InDelta(Te, 540.0, *doc.Atoms[1].Energy, 1e-9)
	assert.Equal(Te, xyz, doc.Source)
}

func TestPredictSpectrum(Te *testing.T) {
	xyz, dir := fixture(Te)
	png := filepath.Join(Te.TempDir(), "co.png")
	_, err := run(xyz, "--data", dir, "--spectrum", png, "--fwhm", "1")
	require.NoError(Te, err)
	st, err := os.Stat(png)
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))
}

func TestPredictFailures(Te *testing.T) {
	xyz, dir := fixture(Te)

	out, err := run(xyz, "--data", Te.TempDir())
	assert.True(Te, errors.Is(err, cebe.ErrResourceNotFound), "%v", err)
	assert.Empty(Te, out)

	bad := filepath.Join(Te.TempDir(), "bad.xyz")
	require.NoError(Te, os.WriteFile(bad, []byte("3\nbad\nC 0 0 0\n"), 0o644))
	out, err = run(bad, "--data", dir)
	assert.True(Te, errors.Is(err, cebe.ErrFormat), "%v", err)
	assert.Empty(Te, out)

	_, err = run(filepath.Join(Te.TempDir(), "missing.xyz"), "--data", dir)
	assert.True(Te, errors.Is(err, cebe.ErrFormat), "%v", err)

	_, err = run(xyz, "--data", dir, "--kernel", "polynomial")
	assert.Error(Te, err)
}

func TestModels(Te *testing.T) {
	xyz, dir := fixture(Te)
	out, err := run("models", "check", "--data", dir)
	require.NoError(Te, err)
	assert.Contains(Te, out, "element")
	assert.Contains(Te, out, "276")

	zdir := filepath.Join(Te.TempDir(), "zstd")
	_, err = run("models", "compress", "--data", dir, "--out", zdir)
	require.NoError(Te, err)
	_, err = os.Stat(filepath.Join(zdir, model.RepresentationName("C")+".zst"))
	require.NoError(Te, err)
	out, err = run(xyz, "--data", zdir)
	require.NoError(Te, err)
	assert.Contains(Te, out, "290.00 eV")

	_, err = run("models", "compress", "--data", dir)
	assert.Error(Te, err)
	_, err = run("models", "compress", "--data", dir, "--out", zdir, "--compression", "lzma")
	assert.Error(Te, err)
}

func TestVersion(Te *testing.T) {
	out, err := run("version")
	require.NoError(Te, err)
	assert.Equal(Te, "cebeconf dev (commit unknown)\n", out)
}

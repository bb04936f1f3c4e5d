/*
 * config_test.go, part of cebeconf.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/cebeconf/kernel"
	"github.com/rmera/cebeconf/krr"
)

func TestDefaults(Te *testing.T) {
	c, err := Load("", nil)
	require.NoError(Te, err)
	assert.Equal(Te, "./data", c.DataDir)
	assert.Equal(Te, kernel.Laplacian, c.KernelKind())
	assert.Equal(Te, "text", c.Output)
	assert.Equal(Te, krr.DefaultSigmas, c.Sigmas)
	assert.Equal(Te, 23, c.Descriptor.Size)
	assert.Equal(Te, 10.0, c.Descriptor.CentralCutoff)
	assert.Equal(Te, ":8080", c.Server.Addr)
	assert.Equal(Te, 0.5, c.Spectrum.FWHM)
	assert.Equal(Te, "info", c.Log.Level)
	assert.Equal(Te, c, Default())
	assert.Equal(Te, "./data", c.Store().Dir)
	assert.Equal(Te, 23, c.CoulombOptions().Size)
}

func TestFileAndEnv(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "cebeconf.yaml")
	yaml := `data_dir: /srv/models
kernel: gaussian
workers: 4
sigmas:
  C: 100.5
  O: 200
descriptor:
  central_cutoff: 6.5
log:
  format: json
`
	require.NoError(Te, os.WriteFile(name, []byte(yaml), 0o644))
	Te.Setenv("CEBECONF_OUTPUT", "json")
	Te.Setenv("CEBECONF_SERVER_ADDR", "127.0.0.1:9000")

	c, err := Load(name, nil)
	require.NoError(Te, err)
	assert.Equal(Te, "/srv/models", c.DataDir)
	assert.Equal(Te, kernel.Gaussian, c.KernelKind())
	assert.Equal(Te, 4, c.Workers)
	assert.Equal(Te, 100.5, c.Sigmas["C"])
	assert.Equal(Te, 200.0, c.Sigmas["O"])
	assert.Equal(Te, 6.5, c.CoulombOptions().CentralCutoff)
	assert.Equal(Te, 10.0, c.CoulombOptions().InteractionCutoff)
	assert.Equal(Te, "json", c.Log.Format)
	assert.Equal(Te, "json", c.Output)
	assert.Equal(Te, "127.0.0.1:9000", c.Server.Addr)
}

func TestFlagsWin(Te *testing.T) {
	Te.Setenv("CEBECONF_KERNEL", "gaussian")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("kernel", "laplacian", "")
	fs.String("data", "./data", "")
	fs.Int("workers", 0, "")

	c, err := Load("", fs)
	require.NoError(Te, err)
	assert.Equal(Te, kernel.Gaussian, c.KernelKind())

	require.NoError(Te, fs.Parse([]string{"--kernel", "L", "--data", "/tmp/m", "--workers", "2"}))
	c, err = Load("", fs)
	require.NoError(Te, err)
	assert.Equal(Te, kernel.Laplacian, c.KernelKind())
	assert.Equal(Te, "/tmp/m", c.DataDir)
	assert.Equal(Te, 2, c.Workers)
}

func TestInvalid(Te *testing.T) {
	_, err := Load(filepath.Join(Te.TempDir(), "missing.yaml"), nil)
	assert.Error(Te, err)

	for _, env := range [][2]string{
		{"CEBECONF_KERNEL", "polynomial"},
		{"CEBECONF_OUTPUT", "xml"},
		{"CEBECONF_WORKERS", "-1"},
		{"CEBECONF_SPECTRUM_FWHM", "0"},
		{"CEBECONF_SPECTRUM_SHAPE", "voigt"},
		{"CEBECONF_DESCRIPTOR_SIZE", "0"},
	} {
		Te.Run(env[0], func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := Load("", nil)
			assert.Error(t, err)
		})
	}

	c := Default()
	c.Sigmas = map[string]float64{"Xe": 3}
	assert.Error(Te, c.Validate())
	c.Sigmas = map[string]float64{"C": -3}
	assert.Error(Te, c.Validate())
}

/*
 * config.go, part of cebeconf.
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

//Package config loads the cebeconf settings from defaults, an optional YAML
//file, CEBECONF_* environment variables and command line flags, in increasing
//order of precedence.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/coulomb"
	"github.com/rmera/cebeconf/internal/logging"
	"github.com/rmera/cebeconf/kernel"
	"github.com/rmera/cebeconf/krr"
	"github.com/rmera/cebeconf/model"
	"github.com/rmera/cebeconf/spectrum"
)

const envPrefix = "CEBECONF"

//Config holds every setting of a run or of the service.
type Config struct {
	DataDir    string             `mapstructure:"data_dir"`
	Kernel     string             `mapstructure:"kernel"`
	Workers    int                `mapstructure:"workers"`
	Output     string             `mapstructure:"output"`
	Sigmas     map[string]float64 `mapstructure:"sigmas"`
	Descriptor Descriptor         `mapstructure:"descriptor"`
	Spectrum   Spectrum           `mapstructure:"spectrum"`
	Log        logging.Config     `mapstructure:"log"`
	Server     Server             `mapstructure:"server"`
}

//Descriptor mirrors coulomb.Options. A negative decay disables it.
type Descriptor struct {
	Size              int     `mapstructure:"size"`
	CentralCutoff     float64 `mapstructure:"central_cutoff"`
	CentralDecay      float64 `mapstructure:"central_decay"`
	InteractionCutoff float64 `mapstructure:"interaction_cutoff"`
	InteractionDecay  float64 `mapstructure:"interaction_decay"`
}

//Spectrum configures the optional broadened spectrum. No plot is written
//when File is empty.
type Spectrum struct {
	File  string  `mapstructure:"file"`
	FWHM  float64 `mapstructure:"fwhm"`
	Step  float64 `mapstructure:"step"`
	Shape string  `mapstructure:"shape"`
}

//Server configures the HTTP service.
type Server struct {
	Addr         string `mapstructure:"addr"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

//flagKeys maps command line flag names to configuration keys.
var flagKeys = map[string]string{
	"data":       "data_dir",
	"kernel":     "kernel",
	"workers":    "workers",
	"output":     "output",
	"spectrum":   "spectrum.file",
	"fwhm":       "spectrum.fwhm",
	"shape":      "spectrum.shape",
	"log-level":  "log.level",
	"log-format": "log.format",
	"addr":       "server.addr",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	d := coulomb.DefaultOptions()
	v.SetDefault("data_dir", "./data")
	v.SetDefault("kernel", kernel.Laplacian.String())
	v.SetDefault("workers", 0)
	v.SetDefault("output", "text")
	sig := make(map[string]interface{}, len(krr.DefaultSigmas))
	for k, s := range krr.DefaultSigmas {
		sig[k] = s
	}
	v.SetDefault("sigmas", sig)
	v.SetDefault("descriptor.size", d.Size)
	v.SetDefault("descriptor.central_cutoff", d.CentralCutoff)
	v.SetDefault("descriptor.central_decay", d.CentralDecay)
	v.SetDefault("descriptor.interaction_cutoff", d.InteractionCutoff)
	v.SetDefault("descriptor.interaction_decay", d.InteractionDecay)
	v.SetDefault("spectrum.file", "")
	v.SetDefault("spectrum.fwhm", 0.5)
	v.SetDefault("spectrum.step", 0.01)
	v.SetDefault("spectrum.shape", spectrum.Gaussian.String())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
}

//Default returns the configuration obtained with no file, no environment
//and no flags.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c, err := unmarshal(v)
	if err != nil {
		panic(err.Error()) //the defaults are always valid.
	}
	return c
}

//Load builds the configuration. path may be empty, in which case no file is
//read. Flags in fs whose names appear in the flag table are bound, and they
//override every other source when set on the command line. fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
	}
	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: binding flag %q: %w", name, err)
			}
		}
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	//viper lowercases map keys, element symbols are restored here.
	sig := make(map[string]float64, len(c.Sigmas))
	for k, s := range c.Sigmas {
		sig[canonicalSymbol(k)] = s
	}
	c.Sigmas = sig
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func canonicalSymbol(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

//Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir must not be empty")
	}
	if _, err := kernel.ParseKind(c.Kernel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("config: output must be text or json, got %q", c.Output)
	}
	for k, s := range c.Sigmas {
		if _, err := cebe.AtomicNumber(k); err != nil {
			return fmt.Errorf("config: sigma for %q: %w", k, err)
		}
		if !(s > 0) || math.IsInf(s, 1) {
			return fmt.Errorf("config: sigma for %s must be positive and finite, got %g", k, s)
		}
	}
	if c.Descriptor.Size <= 0 {
		return fmt.Errorf("config: descriptor size must be positive, got %d", c.Descriptor.Size)
	}
	if !(c.Descriptor.CentralCutoff > 0) || !(c.Descriptor.InteractionCutoff > 0) {
		return fmt.Errorf("config: descriptor cutoffs must be positive")
	}
	if !(c.Spectrum.FWHM > 0) || !(c.Spectrum.Step > 0) {
		return fmt.Errorf("config: spectrum fwhm and step must be positive")
	}
	if _, err := spectrum.ParseShape(c.Spectrum.Shape); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server max_body_bytes must be positive")
	}
	return nil
}

//KernelKind returns the parsed kernel. Only call it on a validated Config.
func (c *Config) KernelKind() kernel.Kind {
	k, _ := kernel.ParseKind(c.Kernel)
	return k
}

//CoulombOptions returns the descriptor options.
func (c *Config) CoulombOptions() coulomb.Options {
	o := coulomb.DefaultOptions()
	o.Size = c.Descriptor.Size
	o.CentralCutoff = c.Descriptor.CentralCutoff
	o.CentralDecay = c.Descriptor.CentralDecay
	o.InteractionCutoff = c.Descriptor.InteractionCutoff
	o.InteractionDecay = c.Descriptor.InteractionDecay
	return o
}

//Store returns the model store rooted at DataDir.
func (c *Config) Store() model.DirStore {
	return model.DirStore{Dir: c.DataDir}
}

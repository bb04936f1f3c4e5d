/*
 * spectrum.go, part of cebeconf.
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

//Package spectrum turns predicted binding energies into broadened,
//XPS-like spectra, and plots them.
package spectrum

import (
	"fmt"
	"math"
	"sort"
	"strings"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/krr"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

//Shape is the line shape used to broaden each energy.
type Shape int

const (
	Gaussian Shape = iota
	Lorentzian
)

func (s Shape) String() string {
	switch s {
	case Gaussian:
		return "gaussian"
	case Lorentzian:
		return "lorentzian"
	}
	return "unknown"
}

//ParseShape returns the Shape named s, in any case.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gaussian", "g":
		return Gaussian, nil
	case "lorentzian", "l":
		return Lorentzian, nil
	}
	return 0, cebe.NewError(cebe.ErrFormat, "unknown line shape %q", s).Decorated("ParseShape")
}

//tails is how far, in FWHMs, a curve extends beyond its extreme energies.
const tails = 3.0

//Curve is the spectrum of one element.
type Curve struct {
	Element string
	X, Y    []float64
}

//Broaden returns one curve per element with scored atoms, ordered by atomic number.
//Each energy contributes a line of unit area with the given full width at half
//maximum; the curves are sampled every step eV.
func Broaden(preds []krr.Prediction, shape Shape, fwhm, step float64) ([]Curve, error) {
	if !(fwhm > 0) || !(step > 0) {
		return nil, cebe.NewError(cebe.ErrFormat, "fwhm and step must be positive, got %v and %v", fwhm, step).Decorated("Broaden")
	}
	byZ := make(map[int][]float64)
	for _, p := range preds {
		if p.Scored {
			byZ[p.Atom.Z] = append(byZ[p.Atom.Z], p.Energy)
		}
	}
	zs := make([]int, 0, len(byZ))
	for z := range byZ {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	line := gaussian
	if shape == Lorentzian {
		line = lorentzian
	}
	ret := make([]Curve, 0, len(zs))
	for _, z := range zs {
		energies := byZ[z]
		lo, hi := energies[0], energies[0]
		for _, e := range energies {
			lo = math.Min(lo, e)
			hi = math.Max(hi, e)
		}
		lo -= tails * fwhm
		hi += tails * fwhm
		n := int(math.Ceil((hi-lo)/step)) + 1
		c := Curve{Element: cebe.Symbol(z), X: make([]float64, n), Y: make([]float64, n)}
		for i := range c.X {
			x := lo + float64(i)*step
			c.X[i] = x
			for _, e := range energies {
				c.Y[i] += line(x-e, fwhm)
			}
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func gaussian(dx, fwhm float64) float64 {
	s := fwhm / (2 * math.Sqrt(2*math.Ln2))
	return math.Exp(-dx*dx/(2*s*s)) / (s * math.Sqrt(2*math.Pi))
}

func lorentzian(dx, fwhm float64) float64 {
	g := fwhm / 2
	return g / (math.Pi * (dx*dx + g*g))
}

//Plot draws the curves and saves the figure to filename. The format is taken
//from the extension (png, svg, pdf, eps, jpg, tif). As usual for photoelectron
//spectra, the energy axis decreases to the right.
func Plot(curves []Curve, title, filename string) error {
	if len(curves) == 0 {
		return cebe.NewError(cebe.ErrFormat, "no scored atoms to plot").Decorated("Plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Binding energy (eV)"
	p.Y.Label.Text = "Intensity"
	p.X.Scale = plot.InvertedScale{Normalizer: p.X.Scale}
	p.Add(plotter.NewGrid())
	for i, c := range curves {
		xys := make(plotter.XYs, len(c.X))
		for j := range c.X {
			xys[j].X = c.X[j]
			xys[j].Y = c.Y[j]
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("spectrum: %s curve: %w", c.Element, err)
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(c.Element+" 1s", l)
	}
	p.Legend.Top = true
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("spectrum: saving %s: %w", filename, err)
	}
	return nil
}

/*
 * kernel.go, part of cebeconf.
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

//Package kernel implements the similarity kernels used by the KRR models.
package kernel

import (
	"math"
	"strings"

	cebe "github.com/rmera/cebeconf"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Kind selects a kernel family.
type Kind int

const (
	Laplacian Kind = iota
	Gaussian
)

func (k Kind) String() string {
	switch k {
	case Laplacian:
		return "laplacian"
	case Gaussian:
		return "gaussian"
	}
	return "unknown"
}

//ParseKind returns the Kind named s ("laplacian"/"L" or "gaussian"/"G", any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "laplacian", "l":
		return Laplacian, nil
	case "gaussian", "g":
		return Gaussian, nil
	}
	return 0, cebe.NewError(cebe.ErrFormat, "unknown kernel %q", s).Decorated("ParseKind")
}

//Func is a kernel with its bandwidth already set. It takes a training vector
//and a query vector of the same length.
type Func func(train, query []float64) float64

//LaplacianKernel returns exp(-|a-b|_1/sigma)
func LaplacianKernel(sigma float64, a, b []float64) float64 {
	return math.Exp(-floats.Distance(a, b, 1) / sigma)
}

//GaussianKernel returns exp(-|a-b|_2^2/(2 sigma^2))
func GaussianKernel(sigma float64, a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return math.Exp(-d * d / (2 * sigma * sigma))
}

//New returns the kernel of kind k with bandwidth sigma, which must be positive.
func New(k Kind, sigma float64) (Func, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, cebe.NewError(cebe.ErrFormat, "kernel bandwidth must be positive and finite, got %v", sigma).Decorated("kernel.New")
	}
	switch k {
	case Laplacian:
		return func(a, b []float64) float64 { return LaplacianKernel(sigma, a, b) }, nil
	case Gaussian:
		return func(a, b []float64) float64 { return GaussianKernel(sigma, a, b) }, nil
	}
	return nil, cebe.NewError(cebe.ErrFormat, "unknown kernel kind %d", int(k)).Decorated("kernel.New")
}

//Vector puts in dst the kernel between each row of train and query, in the order of
//the rows, and returns it. dst is allocated if it is nil or too short.
func Vector(f Func, train *mat.Dense, query []float64, dst []float64) []float64 {
	m, _ := train.Dims()
	if len(dst) < m {
		dst = make([]float64, m)
	}
	dst = dst[:m]
	for i := 0; i < m; i++ {
		dst[i] = f(train.RawRowView(i), query)
	}
	return dst
}

/*
 * coulomb.go, part of cebeconf.
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

package coulomb

import (
	"math"
	"sort"

	cebe "github.com/rmera/cebeconf"
	v3 "github.com/rmera/cebeconf/v3"
	"gonum.org/v1/gonum/mat"
)

//Sorting is the way the atoms around the central one are ordered.
type Sorting string

const (
	ByDistance Sorting = "distance"
)

//Options are the parameters of the atomic Coulomb matrix.
//A negative cutoff means no cutoff, a negative decay means no decay.
type Options struct {
	Size              int
	Sorting           Sorting
	CentralCutoff     float64
	CentralDecay      float64
	InteractionCutoff float64
	InteractionDecay  float64
}

//DefaultOptions returns the options the KRR models were trained with:
//23 atoms, distance sorting, 10 Angstrom cutoffs and no decays.
func DefaultOptions() Options {
	return Options{
		Size:              23,
		Sorting:           ByDistance,
		CentralCutoff:     10.0,
		CentralDecay:      -1,
		InteractionCutoff: 10.0,
		InteractionDecay:  -1,
	}
}

//Generator maps a geometry to one descriptor row per atom. Row i corresponds to atom i.
type Generator interface {
	Generate(z []int, coords *v3.Matrix) (*mat.Dense, error)
	//Width is the length of each descriptor row.
	Width() int
}

//Atomic is the atomic Coulomb matrix generator. It implements Generator.
type Atomic struct {
	size               int
	centCut, centDecay float64
	intCut, intDecay   float64
}

//New returns an atomic Coulomb matrix generator with the given options.
//Cutoffs and decays are normalized: a missing central cutoff is infinite, the
//interaction cutoff is at most twice the central one, and decays are at most
//as large as their cutoffs.
func New(o Options) (*Atomic, error) {
	if o.Size <= 0 {
		return nil, cebe.NewError(cebe.ErrDescriptorSize, "size must be positive, got %d", o.Size).Decorated("coulomb.New")
	}
	if o.Sorting != ByDistance {
		return nil, cebe.NewError(cebe.ErrFormat, "sorting %q not supported", o.Sorting).Decorated("coulomb.New")
	}
	A := &Atomic{size: o.Size}
	A.centCut = o.CentralCutoff
	if A.centCut < 0 {
		A.centCut = math.Inf(1)
	}
	A.intCut = o.InteractionCutoff
	if A.intCut < 0 || A.intCut > 2*A.centCut {
		A.intCut = 2 * A.centCut
	}
	A.centDecay = clampDecay(o.CentralDecay, A.centCut)
	A.intDecay = clampDecay(o.InteractionDecay, A.intCut)
	return A, nil
}

func clampDecay(decay, cutoff float64) float64 {
	if decay < 0 {
		return 0
	}
	if decay > cutoff {
		return cutoff
	}
	return decay
}

//Width returns size*(size+1)/2, the length of the packed lower triangle.
func (A *Atomic) Width() int {
	return A.size * (A.size + 1) / 2
}

//Generate returns a len(z) x Width() matrix with the descriptor of each atom.
//It fails if more than Size atoms are within the central cutoff of any atom,
//or if two atoms overlap.
func (A *Atomic) Generate(z []int, coords *v3.Matrix) (*mat.Dense, error) {
	n := len(z)
	if coords.NVecs() != n {
		return nil, cebe.NewError(cebe.ErrShapeMismatch, "%d atomic numbers but %d coordinates", n, coords.NVecs()).Decorated("Generate")
	}
	if n == 0 {
		return &mat.Dense{}, nil
	}
	d := coords.DistMatrix()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d.At(i, j) == 0 {
				return nil, cebe.NewError(cebe.ErrFormat, "atoms %d and %d overlap", i+1, j+1).Decorated("Generate")
			}
		}
	}
	ret := mat.NewDense(n, A.Width(), nil)
	order := make([]int, n)
	for k := 0; k < n; k++ {
		if err := A.row(ret.RawRowView(k), k, z, d, order); err != nil {
			return nil, cebe.ErrDecorate(err, "Generate")
		}
	}
	return ret, nil
}

//row fills dst with the descriptor of the central atom k.
//order is scratch space of length len(z).
func (A *Atomic) row(dst []float64, k int, z []int, d mat.Symmetric, order []int) error {
	count := 1
	for i := range z {
		if i != k && d.At(i, k) < A.centCut {
			count++
		}
	}
	if count > A.size {
		return cebe.NewError(cebe.ErrDescriptorSize, "atom %d has %d atoms within %.2f, descriptor size is %d", k+1, count, A.centCut, A.size)
	}
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return d.At(order[a], k) < d.At(order[b], k) })
	for m := 0; m < count; m++ {
		i := order[m]
		idx := m * (m + 1) / 2
		for n := 0; n <= m; n++ {
			dst[idx+n] = A.pair(i, order[n], k, z, d)
		}
	}
	return nil
}

//pair returns the Coulomb matrix element between atoms i and j, seen from atom k.
func (A *Atomic) pair(i, j, k int, z []int, d mat.Symmetric) float64 {
	zi := float64(z[i])
	if i == j {
		f := decay(d.At(i, k), A.centCut, A.centDecay)
		return f * f * 0.5 * math.Pow(zi, 2.4)
	}
	rij := d.At(i, j)
	if rij > A.intCut {
		return 0
	}
	v := zi * float64(z[j]) / rij
	v *= decay(rij, A.intCut, A.intDecay)
	v *= decay(d.At(i, k), A.centCut, A.centDecay) * decay(d.At(j, k), A.centCut, A.centDecay)
	return v
}

//decay is 1 up to cutoff-width, and goes to 0 at the cutoff following half a cosine.
func decay(r, cutoff, width float64) float64 {
	if width == 0 || r <= cutoff-width {
		return 1
	}
	return 0.5 * (math.Cos(math.Pi*(r-cutoff+width)/width) + 1)
}

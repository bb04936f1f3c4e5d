/*
 * krr.go, part of cebeconf.
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

//Package krr predicts core-electron binding energies with kernel ridge
//regression: the energy of an atom is the dot product between the weights
//of its element's model and the kernels between the atom's descriptor and
//each training descriptor.
package krr

import (
	"context"
	"runtime"
	"sort"
	"time"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/coulomb"
	"github.com/rmera/cebeconf/kernel"
	"github.com/rmera/cebeconf/model"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//DefaultSigmas are the kernel bandwidths the models were fitted with.
var DefaultSigmas = map[string]float64{
	"C": 5712.74014896,
	"N": 9203.50735350,
	"O": 12841.51702904,
	"F": 87500.54782720,
}

//Record is all that is needed to predict energies for one element.
type Record struct {
	Set    *model.TrainingSet
	Sigma  float64
	Kernel kernel.Func
}

//Registry maps atomic numbers to the model of the element. Atoms whose
//element is not in the registry are not scored.
type Registry map[int]Record

//NewRegistry builds a registry from the training sets, using kernels of kind k
//with the bandwidth given in sigmas for each element. If width is positive, all
//training descriptors must have that length.
func NewRegistry(sets map[string]*model.TrainingSet, k kernel.Kind, sigmas map[string]float64, width int) (Registry, error) {
	reg := make(Registry, len(sets))
	for e, set := range sets {
		z, err := cebe.AtomicNumber(e)
		if err != nil {
			return nil, cebe.ErrDecorate(err, "NewRegistry")
		}
		if width > 0 && set.Width() != width {
			return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s training descriptors have length %d, expected %d", e, set.Width(), width).Decorated("NewRegistry")
		}
		sigma, ok := sigmas[e]
		if !ok {
			return nil, cebe.NewError(cebe.ErrResourceNotFound, "no kernel bandwidth for %s", e).Decorated("NewRegistry")
		}
		f, err := kernel.New(k, sigma)
		if err != nil {
			return nil, cebe.ErrDecorate(err, "NewRegistry")
		}
		reg[z] = Record{Set: set, Sigma: sigma, Kernel: f}
	}
	return reg, nil
}

//Elements returns the symbols of the elements in the registry, by atomic number.
func (R Registry) Elements() []string {
	zs := make([]int, 0, len(R))
	for z := range R {
		zs = append(zs, z)
	}
	sort.Ints(zs)
	ret := make([]string, len(zs))
	for i, z := range zs {
		ret[i] = cebe.Symbol(z)
	}
	return ret
}

//Predict returns the energy for the descriptor desc with the model in rec.
func Predict(rec Record, desc []float64) float64 {
	k := kernel.Vector(rec.Kernel, rec.Set.Descriptors, desc, nil)
	return mat.Dot(mat.NewVecDense(len(k), k), rec.Set.Weights)
}

//Prediction is the result for one atom. Energy (eV) and Elapsed are only
//meaningful if Scored is true.
type Prediction struct {
	Index   int
	Atom    *cebe.Atom
	Coords  [3]float64
	Scored  bool
	Energy  float64
	Elapsed time.Duration
}

//Predictor predicts the energies of all the atoms of a molecule.
type Predictor struct {
	Registry  Registry
	Generator coulomb.Generator
	//Workers is the maximum number of atoms evaluated at the same time.
	//0 means runtime.GOMAXPROCS(0).
	Workers int
	//Clock is used to time each atom. nil means time.Now.
	Clock func() time.Time
	//Observe, if not nil, is called after each scored atom.
	//It can be called concurrently.
	Observe func(Prediction)
}

//NewPredictor returns a predictor for the registry, with descriptors from gen.
func NewPredictor(reg Registry, gen coulomb.Generator) (*Predictor, error) {
	for z, rec := range reg {
		if rec.Set.Width() != gen.Width() {
			return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s training descriptors have length %d, the generator gives %d", cebe.Symbol(z), rec.Set.Width(), gen.Width()).Decorated("NewPredictor")
		}
	}
	return &Predictor{Registry: reg, Generator: gen}, nil
}

func (P *Predictor) now() time.Time {
	if P.Clock == nil {
		return time.Now()
	}
	return P.Clock()
}

//Molecule predicts the energies of the atoms in mol. The returned slice has one
//element per atom, in the order of the molecule. Atoms are evaluated concurrently,
//the context is checked before each one.
func (P *Predictor) Molecule(ctx context.Context, mol *cebe.Molecule) ([]Prediction, error) {
	n := mol.Len()
	preds := make([]Prediction, n)
	if n == 0 {
		return preds, nil
	}
	desc, err := P.Generator.Generate(mol.AtomicNumbers(), mol.Coords)
	if err != nil {
		return nil, cebe.ErrDecorate(err, "Predictor.Molecule")
	}
	workers := P.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		at := mol.Atom(i)
		preds[i] = Prediction{Index: i, Atom: at, Coords: mol.Coord(i)}
		rec, ok := P.Registry[at.Z]
		if !ok {
			continue
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t := P.now()
			preds[i].Energy = Predict(rec, desc.RawRowView(i))
			preds[i].Elapsed = P.now().Sub(t)
			preds[i].Scored = true
			if P.Observe != nil {
				P.Observe(preds[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return preds, nil
}

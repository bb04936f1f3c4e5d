/*
 * model.go, part of cebeconf.
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

//Package model loads the pre-trained KRR models: for each element, a matrix
//with the training descriptors and the vector of fitted weights.
package model

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	cebe "github.com/rmera/cebeconf"
	"github.com/sbinet/npyio"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

//Elements are the elements with a trained model.
var Elements = []string{"C", "N", "O", "F"}

//TrainingSet is the model of one element. Row i of Descriptors goes with
//Weights[i]. A TrainingSet is not modified after it is loaded.
type TrainingSet struct {
	Element     string
	Descriptors *mat.Dense
	Weights     *mat.VecDense
}

//NewTrainingSet checks that descriptors and weights match and returns the set.
func NewTrainingSet(element string, descriptors *mat.Dense, weights *mat.VecDense) (*TrainingSet, error) {
	if descriptors == nil || weights == nil || descriptors.IsEmpty() || weights.IsEmpty() {
		return nil, cebe.NewError(cebe.ErrShapeMismatch, "empty model for %s", element).Decorated("NewTrainingSet")
	}
	m, _ := descriptors.Dims()
	if m != weights.Len() {
		return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s: %d training descriptors but %d weights", element, m, weights.Len()).Decorated("NewTrainingSet")
	}
	return &TrainingSet{Element: element, Descriptors: descriptors, Weights: weights}, nil
}

//Len returns the number of training descriptors.
func (T *TrainingSet) Len() int {
	m, _ := T.Descriptors.Dims()
	return m
}

//Width returns the length of the training descriptors.
func (T *TrainingSet) Width() int {
	_, d := T.Descriptors.Dims()
	return d
}

//Store gives the training set of an element.
type Store interface {
	Load(element string) (*TrainingSet, error)
}

//DirStore reads models from a directory with the files
//<E>_representation.npy and <E>_model_direct.csv, each of which
//can also be zstd (.zst) or gzip (.gz) compressed.
type DirStore struct {
	Dir string
}

//RepresentationName and WeightsName return the file names of the model of element e.
func RepresentationName(e string) string { return e + "_representation.npy" }
func WeightsName(e string) string        { return e + "_model_direct.csv" }

//Load reads the training set of element.
func (D DirStore) Load(element string) (*TrainingSet, error) {
	desc, err := D.readRepresentation(element)
	if err != nil {
		return nil, cebe.ErrDecorate(err, "DirStore.Load")
	}
	w, err := D.readWeights(element)
	if err != nil {
		return nil, cebe.ErrDecorate(err, "DirStore.Load")
	}
	set, err := NewTrainingSet(element, desc, w)
	return set, cebe.ErrDecorate(err, "DirStore.Load")
}

func (D DirStore) readRepresentation(element string) (*mat.Dense, error) {
	name := filepath.Join(D.Dir, RepresentationName(element))
	r, used, err := openResource(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	var m mat.Dense
	if err := npyio.Read(r, &m); err != nil {
		return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s: %s", used, err).Decorated("readRepresentation")
	}
	return &m, nil
}

//readWeights reads the first column of a CSV file without header.
func (D DirStore) readWeights(element string) (*mat.VecDense, error) {
	name := filepath.Join(D.Dir, WeightsName(element))
	r, used, err := openResource(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	w := make([]float64, 0, 1024)
	for line := 1; ; line++ {
		rec, err := c.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s: %s", used, err).Decorated("readWeights")
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s: line %d: weight %q is not a number", used, line, rec[0]).Decorated("readWeights")
		}
		w = append(w, f)
	}
	if len(w) == 0 {
		return nil, cebe.NewError(cebe.ErrShapeMismatch, "%s: no weights", used).Decorated("readWeights")
	}
	return mat.NewVecDense(len(w), w), nil
}

//MemStore is a Store backed by training sets already in memory.
type MemStore map[string]*TrainingSet

//Load returns the set for element, or an ErrResourceNotFound error.
func (M MemStore) Load(element string) (*TrainingSet, error) {
	s, ok := M[element]
	if !ok {
		return nil, cebe.NewError(cebe.ErrResourceNotFound, "no model for %s", element).Decorated("MemStore.Load")
	}
	return s, nil
}

//LoadAll loads the models of all the given elements concurrently. The files of
//different elements are disjoint, so no coordination is needed beyond collecting
//the results. Any failure aborts the whole load.
func LoadAll(ctx context.Context, s Store, elements []string) (map[string]*TrainingSet, error) {
	var mu sync.Mutex
	ret := make(map[string]*TrainingSet, len(elements))
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range elements {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := s.Load(e)
			if err != nil {
				return err
			}
			mu.Lock()
			ret[e] = set
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, cebe.ErrDecorate(err, "LoadAll")
	}
	return ret, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

/*
 * gonum.go, part of cebeconf.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space. Within the package a "vector" is a
//row, i.e. the cartesian coordinates of a point.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
//data is used as backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}, true}
	}
	if rows == 0 {
		return Zeros(0), nil
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors. Unlike mat.NewDense
//it accepts zero vectors, which is what an empty molecule has.
func Zeros(vecs int) *Matrix {
	if vecs == 0 {
		return &Matrix{&mat.Dense{}}
	}
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	if F.Dense.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec copies the ith vector of F into dst, which is allocated if nil,
//and returns it.
func (F *Matrix) Vec(dst []float64, i int) []float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	if dst == nil {
		dst = make([]float64, 3)
	}
	return mat.Row(dst, i, F.Dense)
}

//VecView returns a view of the ith vector. Changes in the view are
//reflected in F.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//Dist returns the euclidean distance between the ith and jth vectors of F.
func (F *Matrix) Dist(i, j int) float64 {
	if i == j {
		return 0
	}
	return floats.Distance(F.RawRowView(i), F.RawRowView(j), 2)
}

//DistMatrix returns the symmetric NxN matrix of euclidean distances
//between all vectors of F.
func (F *Matrix) DistMatrix() *mat.SymDense {
	n := F.NVecs()
	if n == 0 {
		return &mat.SymDense{}
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, F.Dist(i, j))
		}
	}
	return d
}

//AddVec adds the row vector vec to each vector of A, putting the result
//in the receiver.
func (F *Matrix) AddVec(A *Matrix, vec []float64) {
	if len(vec) != 3 || A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	for i := 0; i < A.NVecs(); i++ {
		floats.AddTo(F.RawRowView(i), A.RawRowView(i), vec)
	}
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	n := F.NVecs()
	v := make([]string, 0, n)
	for i := 0; i < n; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf("%6.2f %6.2f %6.2f", row[0], row[1], row[2]))
	}
	return "\n[" + strings.Join(v, "\n ") + " ]"
}

//Errors

//Error is the error type of the package. It carries the list of functions
//it was passed through.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("cebeconf/v3: %s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("cebeconf/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("cebeconf/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("cebeconf/v3: index out of range")
)

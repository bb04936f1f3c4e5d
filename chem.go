/*
 * chem.go, part of cebeconf.
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

package cebe

import (
	"sort"
	"strconv"
	"strings"

	v3 "github.com/rmera/cebeconf/v3"
)

//Atom contains the atoms read except for the coordinates, which will be in a matrix.
type Atom struct {
	Symbol string
	Z      int
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	return &Atom{Symbol: A.Symbol, Z: A.Z}
}

/**Type Molecule**/

//Molecule is a titled set of atoms with one set of coordinates. The order
//of the atoms is the order of the input, and is kept through descriptors,
//predictions and reports.
type Molecule struct {
	Title  string
	Atoms  []*Atom
	Coords *v3.Matrix
}

//NewMolecule makes a molecule from the atoms and coordinates given.
//It returns an error if the number of atoms and coordinates differ.
func NewMolecule(title string, atoms []*Atom, coords *v3.Matrix) (*Molecule, error) {
	if coords == nil {
		coords = v3.Zeros(0)
	}
	if len(atoms) != coords.NVecs() {
		return nil, NewError(ErrShapeMismatch, "%d atoms but %d coordinates", len(atoms), coords.NVecs()).Decorated("NewMolecule")
	}
	return &Molecule{Title: title, Atoms: atoms, Coords: coords}, nil
}

//Atom returns the Atom corresponding to the index i. Panics if
//out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() || i < 0 {
		panic("Molecule: Requested Atom out of bounds")
	}
	return M.Atoms[i]
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//AtomicNumbers returns the atomic numbers of all atoms, in order.
func (M *Molecule) AtomicNumbers() []int {
	z := make([]int, len(M.Atoms))
	for i, at := range M.Atoms {
		z[i] = at.Z
	}
	return z
}

//Coord returns the coordinates of the ith atom.
func (M *Molecule) Coord(i int) [3]float64 {
	var c [3]float64
	M.Coords.Vec(c[:], i)
	return c
}

//Formula returns the molecular formula of the atoms in A, in Hill order:
//C first, then H, then the rest alphabetically.
func Formula(A Atomer) string {
	count := make(map[string]int)
	for i := 0; i < A.Len(); i++ {
		count[A.Atom(i).Symbol]++
	}
	syms := make([]string, 0, len(count))
	for s := range count {
		syms = append(syms, s)
	}
	hill := func(s string) int {
		if _, ok := count["C"]; !ok {
			return 2
		}
		switch s {
		case "C":
			return 0
		case "H":
			return 1
		}
		return 2
	}
	sort.Slice(syms, func(i, j int) bool {
		hi, hj := hill(syms[i]), hill(syms[j])
		if hi != hj {
			return hi < hj
		}
		return syms[i] < syms[j]
	})
	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		if n := count[s]; n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}

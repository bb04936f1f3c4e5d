/*
 * atomicdata.go, part of cebeconf.
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

import "sort"

//A map for assigning atomic numbers to elements.
//Only the elements the descriptors were trained with are present.
//To support a new element, add it here.
var symbolZ = map[string]int{
	"H": 1,
	"C": 6,
	"N": 7,
	"O": 8,
	"F": 9,
}

//Reference 1s CEBEs (eV) computed with the same Delta-SCF/SCAN protocol
//used to produce the training data.
var ReferenceEnergies = []Reference{
	{"C", "CH4, methane", 290.94},
	{"C", "CH3CH3, ethane", 290.78},
	{"C", "CH2CH2, ethylene", 290.86},
	{"C", "HCCH, acetylene", 291.35},
	{"N", "NH3", 405.79},
	{"O", "H2O", 540.34},
	{"F", "HF", 694.95},
}

//Reference is a CEBE of an atom in a small molecule.
type Reference struct {
	Symbol   string
	Molecule string
	Energy   float64
}

//AtomicNumber returns the atomic number for the element symbol.
//It returns an error of kind ErrUnsupportedElement if the symbol is not known.
func AtomicNumber(symbol string) (int, error) {
	z, ok := symbolZ[symbol]
	if !ok {
		return 0, NewError(ErrUnsupportedElement, "element %q not supported", symbol).Decorated("AtomicNumber")
	}
	return z, nil
}

//Symbol returns the element symbol for the atomic number z, or the
//empty string if the element is not known.
func Symbol(z int) string {
	for k, v := range symbolZ {
		if v == z {
			return k
		}
	}
	return ""
}

//Symbols returns the known element symbols, sorted by atomic number.
func Symbols() []string {
	ret := make([]string, 0, len(symbolZ))
	for k := range symbolZ {
		ret = append(ret, k)
	}
	sort.Slice(ret, func(i, j int) bool { return symbolZ[ret[i]] < symbolZ[ret[j]] })
	return ret
}

/*
 * files.go, part of cebeconf.
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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/cebeconf/v3"
)

//maxPrealloc bounds the atoms allocated before their lines are read, so a
//bogus count cannot exhaust memory.
const maxPrealloc = 1024

//XYZFileRead opens and reads the xyz file xyzname.
func XYZFileRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, NewError(ErrFormat, "unable to open %s: %s", xyzname, err).Decorated("XYZFileRead")
	}
	defer xyzfile.Close()
	mol, err := XYZRead(xyzfile)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.message = xyzname + ": " + e.message
		}
		return nil, ErrDecorate(err, "XYZFileRead")
	}
	return mol, nil
}

//XYZRead reads an XYZ geometry: the number of atoms in the first line, a title in
//the second (only its first word is kept), and one "symbol x y z" line per atom.
//The declared number of atoms is trusted: exactly that many atom lines are read,
//anything after them is ignored. Fewer lines than declared is an error.
func XYZRead(xyzin io.Reader) (*Molecule, error) {
	xyz := bufio.NewReader(xyzin)
	lineno := 0
	line, err := readLine(xyz, &lineno)
	if err != nil {
		return nil, ErrDecorate(err, "XYZRead")
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, NewError(ErrFormat, "line 1: missing atom count").Decorated("XYZRead")
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil || natoms < 0 {
		return nil, NewError(ErrFormat, "line 1: %q is not a valid atom count", fields[0]).Decorated("XYZRead")
	}
	var title string
	line, err = readLine(xyz, &lineno)
	if err == nil {
		if f := strings.Fields(line); len(f) > 0 {
			title = f[0]
		}
	} else if natoms > 0 {
		return nil, ErrDecorate(err, "XYZRead")
	}
	capacity := natoms
	if capacity > maxPrealloc {
		capacity = maxPrealloc
	}
	atoms := make([]*Atom, 0, capacity)
	coords := make([]float64, 0, capacity*3)
	for i := 0; i < natoms; i++ {
		line, err = readLine(xyz, &lineno)
		if err != nil {
			return nil, NewError(ErrFormat, "%d atoms declared but only %d found", natoms, i).Decorated("XYZRead")
		}
		fields = strings.Fields(line)
		if len(fields) < 4 {
			return nil, NewError(ErrFormat, "line %d: expected 4 fields, found %d", lineno, len(fields)).Decorated("XYZRead")
		}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, NewError(ErrFormat, "line %d: coordinate %q is not a number", lineno, fields[j+1]).Decorated("XYZRead")
			}
			coords = append(coords, c)
		}
		z, err := AtomicNumber(fields[0])
		if err != nil {
			if e, ok := err.(*Error); ok {
				e.message = "line " + strconv.Itoa(lineno) + ": " + e.message
			}
			return nil, ErrDecorate(err, "XYZRead")
		}
		atoms = append(atoms, &Atom{Symbol: fields[0], Z: z})
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, ErrDecorate(err, "XYZRead")
	}
	return NewMolecule(title, atoms, mcoords)
}

//readLine returns the next line, and an ErrFormat error at the end of the
//input. A last line without a newline is still returned.
func readLine(r *bufio.Reader, lineno *int) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", NewError(ErrFormat, "unexpected end of input after line %d", *lineno)
		}
		return "", NewError(ErrFormat, "reading line %d: %s", *lineno+1, err)
	}
	*lineno++
	return line, nil
}

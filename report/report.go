/*
 * report.go, part of cebeconf.
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

//Package report writes the predicted energies, either in the classic text
//layout (the input XYZ with an energy column) or as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	cebe "github.com/rmera/cebeconf"
	"github.com/rmera/cebeconf/krr"
)

const logo = `
             _                                __
            | |                              / _|
   ___  ___ | |__    ___   ___  ___   _ __  | |_
  / __|/ _ \| '_ \  / _ \ / __|/ _ \ | '_ \ |  _|
 | (__|  __/| |_) ||  __/| (__| (_) || | | || |
  \___|\___||_.__/  \___| \___|\___/ |_| |_||_|
`

const header = `
 This is an ML model for predicting 1s core binding
 energies of CONF atoms. The model is trained on data
 calculated using Delta-SCF approach with the mGGA-DFT
 method, SCAN, and a very large basis set.

 Some reference values determined with this DFT method:

`

//Timings are the durations of the phases of a run, measured by the caller.
type Timings struct {
	Load  time.Duration
	Total time.Duration
}

//Report is everything printed for one molecule.
type Report struct {
	Source      string
	Title       string
	Predictions []krr.Prediction
	Timings     Timings
}

//errWriter keeps the first write error so the formatting code
//does not need to check each call.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, a ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

//Banner writes the program logo, the current time and the reference values.
func Banner(w io.Writer, now time.Time) error {
	e := &errWriter{w: w}
	e.printf("\n Current Time: %s\n", now.Format("2006-01-02 15:04:05"))
	e.printf("%s%s", logo, header)
	for _, r := range cebe.ReferenceEnergies {
		e.printf(" %s in %-17s %.2f eV\n", r.Symbol, r.Molecule, r.Energy)
	}
	e.printf("\n")
	return e.err
}

//Text writes r in the classic layout: the XYZ geometry, with the predicted energy
//and the time it took at the end of each scored atom's line.
func Text(w io.Writer, r *Report) error {
	e := &errWriter{w: w}
	n := len(r.Predictions)
	e.printf(" Loading ML models took %.2f seconds\n\n", r.Timings.Load.Seconds())
	e.printf(" Reading geometry from %s containing %4d atoms\n\n", r.Source, n)
	e.printf(" Input XYZ along with ML-predicted 1s core binding energies:\n\n")
	e.printf("%4d\n %s\n", n, r.Title)
	for _, p := range r.Predictions {
		e.printf(" %s %15.8f %15.8f %15.8f", p.Atom.Symbol, p.Coords[0], p.Coords[1], p.Coords[2])
		if p.Scored {
			e.printf(" %10.2f eV, %.2f seconds", p.Energy, p.Elapsed.Seconds())
		}
		e.printf("\n")
	}
	e.printf("\n Total elapsed Time (seconds): %.2f\n", r.Timings.Total.Seconds())
	return e.err
}

//Atom is the JSON form of a prediction.
type Atom struct {
	Index   int        `json:"index"`
	Symbol  string     `json:"symbol"`
	Coords  [3]float64 `json:"coords"`
	Energy  *float64   `json:"energy_ev,omitempty"`
	Seconds *float64   `json:"seconds,omitempty"`
}

//Document is the JSON form of a report.
type Document struct {
	Source       string  `json:"source,omitempty"`
	Title        string  `json:"title"`
	NAtoms       int     `json:"natoms"`
	Atoms        []Atom  `json:"atoms"`
	LoadSeconds  float64 `json:"load_seconds"`
	TotalSeconds float64 `json:"total_seconds"`
}

//NewDocument converts r to its JSON form.
func NewDocument(r *Report) *Document {
	d := &Document{
		Source:       r.Source,
		Title:        r.Title,
		NAtoms:       len(r.Predictions),
		Atoms:        make([]Atom, len(r.Predictions)),
		LoadSeconds:  r.Timings.Load.Seconds(),
		TotalSeconds: r.Timings.Total.Seconds(),
	}
	for i, p := range r.Predictions {
		d.Atoms[i] = Atom{Index: p.Index, Symbol: p.Atom.Symbol, Coords: p.Coords}
		if p.Scored {
			energy, secs := p.Energy, p.Elapsed.Seconds()
			d.Atoms[i].Energy = &energy
			d.Atoms[i].Seconds = &secs
		}
	}
	return d
}

//JSON writes r as an indented JSON document.
func JSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(r))
}

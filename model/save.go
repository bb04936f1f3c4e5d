/*
 * save.go, part of cebeconf.
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

package model

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	cebe "github.com/rmera/cebeconf"
	"github.com/sbinet/npyio"
)

//Save writes set into the directory of D, in the layout Load reads, with
//the compression c. The directory is created if needed.
func (D DirStore) Save(set *TrainingSet, c Compression) error {
	if err := os.MkdirAll(D.Dir, 0o755); err != nil {
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}
	w, err := createResource(filepath.Join(D.Dir, RepresentationName(set.Element)), c)
	if err != nil {
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}
	if err := npyio.Write(w, set.Descriptors); err != nil {
		w.Close()
		return cebe.NewError(cebe.ErrShapeMismatch, "writing %s descriptors: %s", set.Element, err).Decorated("DirStore.Save")
	}
	if err := w.Close(); err != nil {
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}

	w, err = createResource(filepath.Join(D.Dir, WeightsName(set.Element)), c)
	if err != nil {
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}
	cw := csv.NewWriter(w)
	for i := 0; i < set.Weights.Len(); i++ {
		if err := cw.Write([]string{strconv.FormatFloat(set.Weights.AtVec(i), 'g', -1, 64)}); err != nil {
			w.Close()
			return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.Close()
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}
	if err := w.Close(); err != nil {
		return cebe.NewError(cebe.ErrResourceNotFound, "%s", err).Decorated("DirStore.Save")
	}
	return nil
}

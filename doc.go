/*
 * doc.go, part of cebeconf.
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

/*Package cebe is the main package of cebeconf. It provides the atom and
molecule structures, the XYZ reader and the element data needed to predict
1s core-electron binding energies (CEBEs) of C, N, O and F atoms with
kernel ridge regression models.

	**cebeconf capabilities**

	Reads XYZ geometries, trusting the declared atom count.

	Builds atomic Coulomb-matrix descriptors (package coulomb), sorted by
	distance to the central atom, with central and interaction cutoffs.

	Evaluates Laplacian and Gaussian kernels (package kernel).

	Loads pre-trained KRR models, i.e. training descriptors in NumPy
	.npy files and weights in single-column CSV files, optionally zstd or
	gzip compressed (package model).

	Predicts CEBEs atom by atom, concurrently, keeping the input order
	(package krr), reports them (package report) and draws broadened
	spectra (package spectrum).

The models are trained on Delta-SCF data computed with the SCAN
meta-GGA functional and a very large basis set.
*/
package cebe

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

/*Package coulomb builds atomic Coulomb-matrix descriptors.

For each central atom, the atoms within the central cutoff are sorted by
their distance to it, and the Coulomb matrix of that set,

	M_ii = 0.5 Z_i^2.4
	M_ij = Z_i Z_j / |R_i - R_j|

is stored as its packed lower triangle, padded with zeros up to Size atoms.
Pairs farther apart than the interaction cutoff are zero. Optional cosine
decays smooth both cutoffs.
*/
package coulomb

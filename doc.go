/*
 * doc.go, part of gopdft.
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
 */

/*Package pdft implements the inversion engine for partition density
functional theory (P-DFT). Given a set of independently solved
quantum-chemical fragments and a reference calculation for the whole
system, it obtains the partition potential: the effective one-electron
potential which, added to every fragment, drives the sum of the
fragment electron densities towards the reference density.

	**goPDFT capabilities**

    Sums fragment densities into system aggregates, both in the atomic
	orbital (AO) basis and on the quadrature grid.

    Measures the density residual against the reference, in AO-matrix
	and per-grid-block form, together with a grid-weighted scalar error.

    Tracks the partition energy along the inversion.

    Drives the fixed-point inversion loop, re-solving every fragment
	under the current potential on each cycle. Fragment re-solves run
	concurrently; the cycles themselves are strictly sequential.

    Provides four interchangeable potential-update schemes behind a
	common interface: plain density difference, the Zhao-Morrison-Parr
	Coulomb kernel, the grid-based Wu-Yang scheme and the Zhang-Carter
	linear-response scheme.

    Emits a structured record on every cycle through an observer
	interface, so diagnostics (see gopdft/pdftplot and gopdft/trace)
	stay out of the control flow.

The actual self-consistent-field solve of each fragment, as well as the
construction of basis sets and quadrature grids, are the business of the
caller: goPDFT talks to them only through the Fragment and Reference
interfaces. All AO matrices are gonum *mat.Dense values indexed by pairs
of basis functions.
*/
package pdft

/*
 * interfaces.go, part of gopdft.
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

package pdft

import (
	"gonum.org/v1/gonum/mat"
)

// Spin selects one of the two spin channels of an unrestricted
// calculation.
type Spin int

const (
	Alpha Spin = iota
	Beta
)

func (s Spin) String() string {
	if s == Alpha {
		return "alpha"
	}
	return "beta"
}

// Request tells a fragment solver which optional quantities a re-solve
// must refresh, besides the energies and AO density matrices.
type Request struct {
	//Grid-resolved densities ("ingredients").
	Ingredients bool
	//Real-space orbital values on the grid.
	Orbitals bool
}

// Fragment is the contract every chemically partitioned sub-system must
// fulfill to take part in an inversion. The engine never mutates a
// fragment: Resolve returns a fresh value and the old one is dropped,
// which is what makes concurrent re-solves safe.
//
// Grid-resolved quantities come as one []float64 per quadrature block.
// An implementation that was solved without ingredient collection may
// return empty slices; NewInverter rejects such fragments.
type Fragment interface {

	//Total electronic energy of the last solve.
	Energy() float64

	//Nuclear repulsion energy.
	NuclearRepulsion() float64

	//Number of occupied orbitals in the given spin channel.
	NOcc(s Spin) int

	//Number of AO basis functions.
	NBasis() int

	//AO-basis density matrix for the given spin channel, symmetric,
	//NBasis x NBasis.
	Density(s Spin) *mat.Dense

	//Orbital coefficient matrix for the given spin channel. Column j
	//holds the AO coefficients of the jth orbital.
	Coefficients(s Spin) *mat.Dense

	//Orbital eigenvalues for the given spin channel, in the same order
	//as the columns of Coefficients.
	Eigenvalues(s Spin) []float64

	//Per-block electron density on the quadrature grid.
	GridDensity(s Spin) [][]float64

	//Per-block real-space values of the given orbital.
	GridOrbital(s Spin, orbital int) [][]float64

	//Resolve runs the fragment's own SCF under the external potential
	//vp and returns the re-solved fragment. The receiver is left
	//untouched. A nil vp means no external potential.
	Resolve(vp *Potential, req Request) (Fragment, error)
}

// Reference is the contract for the whole-system ("supermolecular")
// calculation the fragment sum is inverted against. It carries the same
// numeric surface as a Fragment plus the quadrature grid and the
// integrals the update schemes need. The reference is never re-solved.
type Reference interface {

	//Total electronic energy.
	Energy() float64

	//Nuclear repulsion energy.
	NuclearRepulsion() float64

	//Number of occupied orbitals in the given spin channel.
	NOcc(s Spin) int

	//Number of AO basis functions.
	NBasis() int

	//AO-basis density matrix for the given spin channel.
	Density(s Spin) *mat.Dense

	//Per-block electron density on the quadrature grid.
	GridDensity(s Spin) [][]float64

	//Number of blocks in the quadrature grid.
	NBlocks() int

	//Quadrature weights for the given block. len(Weights(b)) is the
	//number of points in block b.
	Weights(block int) []float64

	//Basis-function values at the points of the given block. phi has
	//one row per point and one column per locally non-vanishing basis
	//function; local maps those columns to global AO indexes.
	BasisValues(block int) (phi *mat.Dense, local []int)

	//The two-electron repulsion integral tensor, flat, row-major,
	//NBasis^4 elements.
	ERI() []float64

	//ProjectToGrid evaluates the AO-basis matrix m on the grid. With
	//blocked=false the values come as a single flat slice, together
	//with the x, y and z coordinates of every point. Only used for
	//diagnostics; implementations with no grid geometry may return
	//nils.
	ProjectToGrid(m *mat.Dense, blocked bool) ([]float64, [3][]float64)
}

// Updater maps the current density residual to a potential increment,
// one AO matrix per spin channel. Implementations are stateless or hold
// only their own tuning knobs, so a single value can serve many runs.
type Updater interface {

	//A short tag naming the scheme, for logs.
	Name() string

	//Update computes the potential increment for the given residual.
	//Schemes that work from orbital data read it from the fragments;
	//the reference supplies integrals, occupations and the grid.
	Update(frags []Fragment, ref Reference, res *Residual) (*Potential, error)
}

// Observer consumes the per-cycle records the engine emits. Purely
// observational: nothing an observer does feeds back into the
// inversion, and implementations must not retain rec past the call.
type Observer interface {
	Observe(rec *Record)
}

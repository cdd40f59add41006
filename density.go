/*
 * density.go, part of gopdft.
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
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Aggregate holds the fragment-summed quantities of one inversion
// cycle: the total fragment energy and the summed densities in AO and
// grid form. It is recomputed from scratch on every cycle.
type Aggregate struct {
	//Sum of the fragment electronic energies.
	Energy float64
	//Summed AO density matrices, one per spin channel.
	DenA, DenB *mat.Dense
	//Summed per-block grid densities, one per spin channel.
	GridA, GridB [][]float64
}

// FragmentEnergy returns the sum of the fragment electronic energies.
func FragmentEnergy(frags []Fragment) float64 {
	e := 0.0
	for _, f := range frags {
		e += f.Energy()
	}
	return e
}

// SumDensities returns the elementwise sum of the fragment AO density
// matrices, one matrix per spin channel. All fragments must share the
// basis size nbf.
func SumDensities(frags []Fragment, nbf int) (da, db *mat.Dense) {
	da = mat.NewDense(nbf, nbf, nil)
	db = mat.NewDense(nbf, nbf, nil)
	for _, f := range frags {
		da.Add(da, f.Density(Alpha))
		db.Add(db, f.Density(Beta))
	}
	return da, db
}

// SumGridDensities returns the per-block elementwise sum of the
// fragment grid densities, shaped like the reference blocks, one
// blocked quantity per spin channel.
func SumGridDensities(frags []Fragment, ref Reference) (ga, gb [][]float64) {
	ga = zerosLikeBlocks(ref.GridDensity(Alpha))
	gb = zerosLikeBlocks(ref.GridDensity(Beta))
	for _, f := range frags {
		accBlocks(ga, f.GridDensity(Alpha))
		accBlocks(gb, f.GridDensity(Beta))
	}
	return ga, gb
}

// NewAggregate recomputes every aggregate quantity for the given
// fragments against the shape of the reference.
func NewAggregate(frags []Fragment, ref Reference) *Aggregate {
	ret := new(Aggregate)
	ret.Energy = FragmentEnergy(frags)
	ret.DenA, ret.DenB = SumDensities(frags, ref.NBasis())
	ret.GridA, ret.GridB = SumGridDensities(frags, ref)
	return ret
}

// Residual is the difference between the aggregate and the reference
// densities, in both system representations. The two forms use opposite
// sign conventions, inherited from the inversion formulas they feed:
// the grid form is aggregate minus reference, the matrix form is
// reference minus aggregate. Don't "fix" one to match the other.
type Residual struct {
	//Reference minus aggregate, AO basis, per spin channel.
	MatA, MatB *mat.Dense
	//Aggregate minus reference, per block, per spin channel.
	GridA, GridB [][]float64
	//Scalar convergence measure: the sum, over blocks and spin
	//channels, of the absolute value of the grid-weighted integral of
	//the per-block difference. The absolute value is taken after
	//integrating each block, so cancellation inside a block is not
	//captured.
	L1 float64
}

// NewResidual measures agg against the reference and returns the
// residual in both forms together with the scalar error.
func NewResidual(agg *Aggregate, ref Reference) *Residual {
	ret := new(Residual)
	nbf := ref.NBasis()

	ret.MatA = mat.NewDense(nbf, nbf, nil)
	ret.MatA.Sub(ref.Density(Alpha), agg.DenA)
	ret.MatB = mat.NewDense(nbf, nbf, nil)
	ret.MatB.Sub(ref.Density(Beta), agg.DenB)

	refA := ref.GridDensity(Alpha)
	refB := ref.GridDensity(Beta)
	ret.GridA = zerosLikeBlocks(refA)
	ret.GridB = zerosLikeBlocks(refB)
	for b := range refA {
		floats.SubTo(ret.GridA[b], agg.GridA[b], refA[b])
		floats.SubTo(ret.GridB[b], agg.GridB[b], refB[b])
		w := ref.Weights(b)
		ret.L1 += math.Abs(floats.Dot(ret.GridA[b], w))
		ret.L1 += math.Abs(floats.Dot(ret.GridB[b], w))
	}
	return ret
}

/*
 * vp.go, part of gopdft.
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

// Potential is a one-electron potential in the AO basis, one symmetric
// matrix per spin channel. The engine owns exactly one accumulated
// Potential per run; the update schemes return fresh ones as
// increments.
type Potential struct {
	Alpha *mat.Dense
	Beta  *mat.Dense
}

// ZeroPotential returns a Potential of the given basis size with both
// channels zeroed.
func ZeroPotential(nbf int) *Potential {
	return &Potential{
		Alpha: mat.NewDense(nbf, nbf, nil),
		Beta:  mat.NewDense(nbf, nbf, nil),
	}
}

// Channel returns the matrix for the given spin channel.
func (v *Potential) Channel(s Spin) *mat.Dense {
	switch s {
	case Alpha:
		return v.Alpha
	case Beta:
		return v.Beta
	}
	panic(ErrSpin)
}

// AddScaled accumulates step*dvp into v, channel by channel.
func (v *Potential) AddScaled(step float64, dvp *Potential) {
	if dvp == nil || dvp.Alpha == nil || dvp.Beta == nil {
		panic(ErrNilMatrix)
	}
	var t mat.Dense
	t.Scale(step, dvp.Alpha)
	v.Alpha.Add(v.Alpha, &t)
	t.Reset()
	t.Scale(step, dvp.Beta)
	v.Beta.Add(v.Beta, &t)
}

// Total returns the sum of both channels as a new matrix. Used for the
// grid diagnostics, which look at the full potential.
func (v *Potential) Total() *mat.Dense {
	r, c := v.Alpha.Dims()
	ret := mat.NewDense(r, c, nil)
	ret.Add(v.Alpha, v.Beta)
	return ret
}

// Clone returns a deep copy of v.
func (v *Potential) Clone() *Potential {
	return &Potential{
		Alpha: mat.DenseCopyOf(v.Alpha),
		Beta:  mat.DenseCopyOf(v.Beta),
	}
}

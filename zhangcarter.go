/*
 * zhangcarter.go, part of gopdft.
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

	"gonum.org/v1/gonum/mat"
)

// ZhangCarter updates the potential through a linear-response operator
// built from the occupied-virtual orbital pairs of every fragment,
// both spin channels, divided by the orbital-energy gaps. The spin-
// summed matrix residual is mapped through the pseudo-inverse of that
// operator (an NBasis^2 x NBasis^2 matrix) and the result symmetrized;
// both channels receive the identical increment. The occupied-virtual
// split is taken from the reference occupations, which must be equal
// between spin channels: the unequal-occupation variant is not
// implemented and is refused with an UnimplementedError.
//
// This is by far the most expensive scheme: memory goes as NBasis^4 and
// time as NBasis^4 times the number of orbital pairs.
// J. Chem. Phys. 148, 034105 (2018).
type ZhangCarter struct {
	//Regularization threshold for the pseudo-inversion. Accepted for
	//interface stability, currently unused: the pseudo-inverse applies
	//its default relative cutoff.
	Rcond float64
}

func (ZhangCarter) Name() string { return "zc" }

func (zc ZhangCarter) Update(frags []Fragment, ref Reference, res *Residual) (*Potential, error) {
	nbf := ref.NBasis()
	nocc := ref.NOcc(Alpha)
	if nocc != ref.NOcc(Beta) {
		e := &UnimplementedError{berr("Zhang-Carter inversion needs equal alpha and beta occupations; the open-shell variant is not implemented", "ZhangCarter.Update")}
		return nil, e
	}

	n2 := nbf * nbf
	x := mat.NewSymDense(n2, nil)
	bvec := mat.NewVecDense(n2, nil)
	for _, f := range frags {
		for _, s := range []Spin{Alpha, Beta} {
			c := f.Coefficients(s)
			eigs := f.Eigenvalues(s)
			for i := 0; i < nocc; i++ {
				for a := nocc; a < nbf; a++ {
					gap := eigs[i] - eigs[a]
					if math.Abs(gap) < minGap {
						e := &NumericalError{berr("degenerate occupied-virtual orbital pair, gap below 1e-12", "ZhangCarter.Update")}
						return nil, e
					}
					//Rank-one term vec(u v^T) with u the occupied and
					//v the virtual coefficient column.
					for m := 0; m < nbf; m++ {
						u := c.At(m, i)
						for nn := 0; nn < nbf; nn++ {
							bvec.SetVec(m*nbf+nn, u*c.At(nn, a))
						}
					}
					x.SymRankOne(x, 1.0/gap, bvec)
				}
			}
		}
	}

	xinv, err := pinvSym(x)
	if err != nil {
		return nil, errDecorate(err, "ZhangCarter.Update")
	}

	//Spin-summed residual, flattened row-major.
	dd := mat.NewDense(nbf, nbf, nil)
	dd.Add(res.MatA, res.MatB)
	ddvec := mat.NewVecDense(n2, dd.RawMatrix().Data)
	out := mat.NewVecDense(n2, nil)
	out.MulVec(xinv, ddvec)

	dvp := mat.NewDense(nbf, nbf, out.RawVector().Data)
	symmetrize(dvp)
	if err := checkFinite(dvp, "ZhangCarter.Update"); err != nil {
		return nil, err
	}
	return &Potential{Alpha: dvp, Beta: mat.DenseCopyOf(dvp)}, nil
}

/*
 * tensor.go, part of gopdft.
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

//tensor.go collects the rank-2 and rank-4 primitives the update
//schemes share. Rank-4 tensors are kept flat, row-major, so an
//NBasis^2 x NBasis^2 matrix view comes for free.

package pdft

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// contractERI contracts the flat, row-major two-electron integral
// tensor with the matrix dd over its two middle indexes:
//
//	out[i,j] = sum_{m,l} eri[i,m,l,j] * dd[m,l]
//
// eri must have n^4 elements and dd must be n x n.
func contractERI(eri []float64, n int, dd *mat.Dense) *mat.Dense {
	if len(eri) != n*n*n*n {
		panic(ErrShape)
	}
	if r, c := dd.Dims(); r != n || c != n {
		panic(ErrShape)
	}
	out := mat.NewDense(n, n, nil)
	n2 := n * n
	n3 := n2 * n
	for i := 0; i < n; i++ {
		base := i * n3
		for m := 0; m < n; m++ {
			for l := 0; l < n; l++ {
				d := dd.At(m, l)
				if d == 0 {
					continue
				}
				row := eri[base+m*n2+l*n : base+m*n2+l*n+n]
				for j, e := range row {
					out.Set(i, j, out.At(i, j)+e*d)
				}
			}
		}
	}
	return out
}

// symmetrize replaces m with 0.5*(m + m^T) in place. m must be square.
func symmetrize(m *mat.Dense) {
	r, c := m.Dims()
	if r != c {
		panic(ErrShape)
	}
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			v := 0.5 * (m.At(i, j) + m.At(j, i))
			m.Set(i, j, v)
			m.Set(j, i, v)
		}
	}
}

// pinvSym returns the Moore-Penrose pseudo-inverse of the symmetric
// matrix x, through its eigendecomposition. Eigenvalues below a
// relative cutoff are treated as zero, so a rank-deficient x (the
// common case for response operators) is fine; the zero matrix
// pseudo-inverts to the zero matrix.
func pinvSym(x *mat.SymDense) (*mat.Dense, error) {
	n := x.SymmetricDim()
	var eig mat.EigenSym
	if ok := eig.Factorize(x, true); !ok {
		e := &NumericalError{berr("eigendecomposition of the response operator failed", "pinvSym")}
		return nil, e
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	maxAbs := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	cutoff := 1e-15 * float64(n) * maxAbs

	//Q * diag(1/lambda) * Q^T, dropping the near-null space.
	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		inv := 0.0
		if math.Abs(vals[j]) > cutoff {
			inv = 1.0 / vals[j]
		}
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vecs.At(i, j)*inv)
		}
	}
	out := mat.NewDense(n, n, nil)
	out.Mul(scaled, vecs.T())
	return out, nil
}

// checkFinite returns a NumericalError if m holds a NaN or an Inf.
// The schemes that divide by orbital quantities run their increments
// through this instead of letting the faults propagate silently.
func checkFinite(m *mat.Dense, scheme string) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				e := &NumericalError{berr(fmt.Sprintf("non-finite potential increment at element (%d,%d)", i, j), scheme)}
				return e
			}
		}
	}
	return nil
}

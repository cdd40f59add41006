/*
 * grid.go, part of gopdft.
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

//grid.go holds the small helpers for per-block grid data. A blocked
//quantity is a [][]float64 with one slice per quadrature block; block
//shapes are fixed by the reference and shared by every fragment.

package pdft

// zerosLikeBlocks returns a fresh blocked quantity with the shape of
// ref, all zeros.
func zerosLikeBlocks(ref [][]float64) [][]float64 {
	ret := make([][]float64, len(ref))
	for i, v := range ref {
		ret[i] = make([]float64, len(v))
	}
	return ret
}

// accBlocks adds the blocked quantity add, element by element, into
// dst. Shapes must match.
func accBlocks(dst, add [][]float64) {
	if len(dst) != len(add) {
		panic(ErrBlockCount)
	}
	for i, v := range add {
		if len(dst[i]) != len(v) {
			panic(ErrShape)
		}
		for j, x := range v {
			dst[i][j] += x
		}
	}
}

// gridPoints returns the total number of points in a blocked quantity.
func gridPoints(blocks [][]float64) int {
	n := 0
	for _, v := range blocks {
		n += len(v)
	}
	return n
}

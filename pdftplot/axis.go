/*
 * axis.go, part of gopdft.
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

package pdftplot

import (
	"math"
	"sort"
)

// axisCutPair is a sortable (coordinate, value) pairing for one cut.
type axisCutPair struct {
	x []float64
	y []float64
}

func (a axisCutPair) Len() int           { return len(a.x) }
func (a axisCutPair) Less(i, j int) bool { return a.x[i] < a.x[j] }
func (a axisCutPair) Swap(i, j int) {
	a.x[i], a.x[j] = a.x[j], a.x[i]
	a.y[i], a.y[j] = a.y[j], a.y[i]
}

// AxisCut extracts a 1D cut of a grid-projected quantity along one
// cartesian axis: it keeps the points whose two off-axis coordinates
// are, in absolute value, below threshold, and returns them sorted by
// the on-axis coordinate. axis is one of "x", "y" or "z"; any other
// value, or a non-positive threshold, gets the defaults "z" and 1e-8.
// coords holds the x, y and z coordinates of every grid point, indexed
// like values.
func AxisCut(values []float64, coords [3][]float64, axis string, threshold float64) (x, y []float64) {
	if threshold <= 0 {
		threshold = 1e-8
	}
	var on, off1, off2 int
	switch axis {
	case "x":
		on, off1, off2 = 0, 1, 2
	case "y":
		on, off1, off2 = 1, 0, 2
	default:
		on, off1, off2 = 2, 0, 1
	}
	for i := range values {
		if math.Abs(coords[off1][i]) < threshold && math.Abs(coords[off2][i]) < threshold {
			x = append(x, coords[on][i])
			y = append(y, values[i])
		}
	}
	sort.Sort(axisCutPair{x, y})
	return x, y
}

/*
 * energy.go, part of gopdft.
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

	"gonum.org/v1/gonum/stat"
)

// PartitionEnergy returns the partition energy for the current fragment
// state: the non-nuclear energy of the reference minus the sum of the
// non-nuclear fragment energies. It is a diagnostic scalar, recomputed
// on every cycle.
func PartitionEnergy(frags []Fragment, ref Reference) float64 {
	ep := ref.Energy() - ref.NuclearRepulsion()
	for _, f := range frags {
		ep -= f.Energy() - f.NuclearRepulsion()
	}
	return ep
}

// DecayRate estimates the per-cycle decay rate of a residual history as
// the least-squares slope of log10(err) against the cycle index.
// Negative means the error is shrinking. Non-positive entries are
// skipped; with fewer than two usable entries the estimate is zero.
// Diagnostic only, the engine never looks at it.
func DecayRate(hist []float64) float64 {
	xs := make([]float64, 0, len(hist))
	ys := make([]float64, 0, len(hist))
	for i, v := range hist {
		if v <= 0 {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, math.Log10(v))
	}
	if len(xs) < 2 {
		return 0
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope
}

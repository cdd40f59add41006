/*
 * dd.go, part of gopdft.
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

// DensityDifference is the simplest update scheme: the increment is the
// matrix-form density residual itself, channel by channel. The step
// size given to Run is the only scaling applied.
type DensityDifference struct{}

func (DensityDifference) Name() string { return "dd" }

func (DensityDifference) Update(frags []Fragment, ref Reference, res *Residual) (*Potential, error) {
	return &Potential{
		Alpha: mat.DenseCopyOf(res.MatA),
		Beta:  mat.DenseCopyOf(res.MatB),
	}, nil
}

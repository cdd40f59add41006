/*
 * zmp.go, part of gopdft.
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

// ZhaoMorrisonParr updates the potential through the Coulomb kernel of
// the reference, contracting the two-electron repulsion tensor with the
// matrix residual over its two middle indexes:
//
//	dvp = -0.5 * eri[i,m,l,j] dd[m,l]
//
// applied independently, with the same kernel, to each spin channel.
// Physical Review A, 50(3):2138, 1994.
type ZhaoMorrisonParr struct{}

func (ZhaoMorrisonParr) Name() string { return "zmp" }

func (ZhaoMorrisonParr) Update(frags []Fragment, ref Reference, res *Residual) (*Potential, error) {
	n := ref.NBasis()
	eri := ref.ERI()
	dvpA := contractERI(eri, n, res.MatA)
	dvpA.Scale(-0.5, dvpA)
	dvpB := contractERI(eri, n, res.MatB)
	dvpB.Scale(-0.5, dvpB)
	return &Potential{Alpha: dvpA, Beta: dvpB}, nil
}

/*
 * wuyang.go, part of gopdft.
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
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Orbital-energy gaps closer to zero than this are refused rather than
// divided by.
const minGap = 1e-12

// WuYangGrid updates the potential on the quadrature grid. Per block,
// it accumulates the point-pair response kernel from every fragment's
// occupied-virtual alpha orbital pairs, maps the grid residual through
// the elementwise reciprocal of that kernel, and projects the result
// back to the AO basis with the basis values and quadrature weights.
//
// Only the alpha kernel is built, and it is combined with itself where
// an independent beta kernel would enter; both returned channels carry
// the identical matrix. This closed-shell shortcut is kept on purpose.
type WuYangGrid struct {
	//Number of goroutines for the per-block kernels. Zero or negative
	//means one per logical CPU.
	Cpus int
}

func (WuYangGrid) Name() string { return "wy" }

func (wy WuYangGrid) Update(frags []Fragment, ref Reference, res *Residual) (*Potential, error) {
	nbf := ref.NBasis()
	nblocks := ref.NBlocks()
	if nblocks != len(res.GridA) {
		panic(ErrBlockCount)
	}
	cpus := wy.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	//Blocks are mutually independent, so the kernels fan out. The
	//scatter into the AO matrix stays sequential and in block order.
	outs := make([]wyBlockOut, nblocks)
	sem := make(chan struct{}, cpus)
	var wg sync.WaitGroup
	for b := 0; b < nblocks; b++ {
		wg.Add(1)
		go func(b int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outs[b] = wyBlock(frags, ref, res, b)
		}(b)
	}
	wg.Wait()

	dvp := mat.NewDense(nbf, nbf, nil)
	for b := range outs {
		if outs[b].err != nil {
			return nil, errDecorate(outs[b].err, "WuYangGrid.Update")
		}
		v := outs[b].vtmp
		local := outs[b].local
		for i, gi := range local {
			for j, gj := range local {
				dvp.Set(gi, gj, dvp.At(gi, gj)+v.At(i, j))
			}
		}
	}
	if err := checkFinite(dvp, "WuYangGrid.Update"); err != nil {
		return nil, err
	}
	return &Potential{Alpha: dvp, Beta: mat.DenseCopyOf(dvp)}, nil
}

type wyBlockOut struct {
	vtmp  *mat.Dense
	local []int
	err   error
}

// wyBlock computes one block's symmetrized AO contribution.
func wyBlock(frags []Fragment, ref Reference, res *Residual, b int) wyBlockOut {
	w := ref.Weights(b)
	npoints := len(w)
	phi, local := ref.BasisValues(b)

	x := mat.NewSymDense(npoints, nil)
	t := mat.NewVecDense(npoints, nil)
	for _, f := range frags {
		eigs := f.Eigenvalues(Alpha)
		nocc := f.NOcc(Alpha)
		nb := f.NBasis()
		for iocc := 0; iocc < nocc; iocc++ {
			for ivir := nocc; ivir < nb; ivir++ {
				gap := eigs[iocc] - eigs[ivir]
				if math.Abs(gap) < minGap {
					e := &NumericalError{berr("degenerate occupied-virtual orbital pair, gap below 1e-12", "wyBlock")}
					return wyBlockOut{err: e}
				}
				occ := f.GridOrbital(Alpha, iocc)[b]
				vir := f.GridOrbital(Alpha, ivir)[b]
				for p := 0; p < npoints; p++ {
					t.SetVec(p, occ[p]*vir[p])
				}
				x.SymRankOne(x, 1.0/gap, t)
			}
		}
	}

	//Spin-summed grid residual for this block.
	dd := make([]float64, npoints)
	floats.AddTo(dd, res.GridA[b], res.GridB[b])

	//Map the residual through the elementwise reciprocal of the
	//doubled alpha kernel.
	dvpBlock := make([]float64, npoints)
	for r1 := 0; r1 < npoints; r1++ {
		for p := 0; p < npoints; p++ {
			dvpBlock[p] += dd[p] * w[p] / (x.At(r1, p) + x.At(r1, p))
		}
	}

	//Back to the AO basis: phi^T diag(dvp*w) phi, symmetrized.
	nl := len(local)
	scaled := mat.NewDense(npoints, nl, nil)
	for p := 0; p < npoints; p++ {
		s := dvpBlock[p] * w[p]
		for i := 0; i < nl; i++ {
			scaled.Set(p, i, phi.At(p, i)*s)
		}
	}
	vtmp := mat.NewDense(nl, nl, nil)
	vtmp.Mul(phi.T(), scaled)
	symmetrize(vtmp)
	return wyBlockOut{vtmp: vtmp, local: local}
}

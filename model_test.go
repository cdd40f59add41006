/*
 * model_test.go, part of gopdft.
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

//Synthetic fragments and references for the tests. They carry fixed
//numbers instead of solving anything, which is all the engine can tell
//the difference of: it only ever talks through the interfaces.

package pdft

import (
	"gonum.org/v1/gonum/mat"
)

type modelFragment struct {
	energy, enuc   float64
	nalpha, nbeta  int
	nbf            int
	da, db         *mat.Dense
	ca, cb         *mat.Dense
	eigsA, eigsB   []float64
	gridA, gridB   [][]float64
	orbsA, orbsB   [][][]float64 //[orbital][block][point]
	resolves       *int          //shared along the Resolve lineage
	lastVP         *Potential
	resolveFailure error
}

func (f *modelFragment) Energy() float64           { return f.energy }
func (f *modelFragment) NuclearRepulsion() float64 { return f.enuc }
func (f *modelFragment) NBasis() int               { return f.nbf }

func (f *modelFragment) NOcc(s Spin) int {
	if s == Alpha {
		return f.nalpha
	}
	return f.nbeta
}

func (f *modelFragment) Density(s Spin) *mat.Dense {
	if s == Alpha {
		return f.da
	}
	return f.db
}

func (f *modelFragment) Coefficients(s Spin) *mat.Dense {
	if s == Alpha {
		return f.ca
	}
	return f.cb
}

func (f *modelFragment) Eigenvalues(s Spin) []float64 {
	if s == Alpha {
		return f.eigsA
	}
	return f.eigsB
}

func (f *modelFragment) GridDensity(s Spin) [][]float64 {
	if s == Alpha {
		return f.gridA
	}
	return f.gridB
}

func (f *modelFragment) GridOrbital(s Spin, orbital int) [][]float64 {
	if s == Alpha {
		return f.orbsA[orbital]
	}
	return f.orbsB[orbital]
}

func (f *modelFragment) Resolve(vp *Potential, req Request) (Fragment, error) {
	if f.resolveFailure != nil {
		return nil, f.resolveFailure
	}
	nf := *f
	if f.resolves != nil {
		*f.resolves++
	}
	if vp != nil {
		//snapshot: the engine keeps mutating its own accumulator
		nf.lastVP = vp.Clone()
	}
	return &nf, nil
}

type modelReference struct {
	energy, enuc  float64
	nalpha, nbeta int
	nbf           int
	da, db        *mat.Dense
	gridA, gridB  [][]float64
	weights       [][]float64
	phi           []*mat.Dense
	local         [][]int
	eri           []float64
	coords        [3][]float64
}

func (r *modelReference) Energy() float64           { return r.energy }
func (r *modelReference) NuclearRepulsion() float64 { return r.enuc }
func (r *modelReference) NBasis() int               { return r.nbf }

func (r *modelReference) NOcc(s Spin) int {
	if s == Alpha {
		return r.nalpha
	}
	return r.nbeta
}

func (r *modelReference) Density(s Spin) *mat.Dense {
	if s == Alpha {
		return r.da
	}
	return r.db
}

func (r *modelReference) GridDensity(s Spin) [][]float64 {
	if s == Alpha {
		return r.gridA
	}
	return r.gridB
}

func (r *modelReference) NBlocks() int { return len(r.gridA) }

func (r *modelReference) Weights(block int) []float64 { return r.weights[block] }

func (r *modelReference) BasisValues(block int) (*mat.Dense, []int) {
	return r.phi[block], r.local[block]
}

func (r *modelReference) ERI() []float64 { return r.eri }

func (r *modelReference) ProjectToGrid(m *mat.Dense, blocked bool) ([]float64, [3][]float64) {
	if r.coords[0] == nil {
		return nil, [3][]float64{}
	}
	//A fake projection, diagnostic curves only need consistent shapes:
	//every point gets the trace of m.
	t := mat.Trace(m)
	vals := make([]float64, len(r.coords[0]))
	for i := range vals {
		vals[i] = t
	}
	return vals, r.coords
}

// onePointSystem builds the smallest consistent system: two fragments
// with a single basis function and density matrices [[fragDen]], a
// reference with density [[refDen]], one grid block with one point of
// weight 1.0, and grid values matching the AO values.
func onePointSystem(fragDen, refDen float64) ([]Fragment, *modelReference) {
	newFrag := func() *modelFragment {
		return &modelFragment{
			energy: -0.5,
			enuc:   0.1,
			nalpha: 1,
			nbeta:  1,
			nbf:    1,
			da:     mat.NewDense(1, 1, []float64{fragDen}),
			db:     mat.NewDense(1, 1, []float64{fragDen}),
			ca:     mat.NewDense(1, 1, []float64{1}),
			cb:     mat.NewDense(1, 1, []float64{1}),
			eigsA:  []float64{-0.5},
			eigsB:  []float64{-0.5},
			gridA:  [][]float64{{fragDen}},
			gridB:  [][]float64{{fragDen}},
			orbsA:  [][][]float64{{{1.0}}},
			orbsB:  [][][]float64{{{1.0}}},
		}
	}
	ref := &modelReference{
		energy:  -1.2,
		enuc:    0.3,
		nalpha:  1,
		nbeta:   1,
		nbf:     1,
		da:      mat.NewDense(1, 1, []float64{refDen}),
		db:      mat.NewDense(1, 1, []float64{refDen}),
		gridA:   [][]float64{{refDen}},
		gridB:   [][]float64{{refDen}},
		weights: [][]float64{{1.0}},
		phi:     []*mat.Dense{mat.NewDense(1, 1, []float64{1.0})},
		local:   [][]int{{0}},
		eri:     []float64{1.0},
	}
	return []Fragment{newFrag(), newFrag()}, ref
}

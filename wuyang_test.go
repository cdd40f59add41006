/*
 * wuyang_test.go, part of gopdft.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

// wySystem is a one-point, one-block, two-basis system small enough to
// follow the Wu-Yang algebra by hand.
func wySystem() ([]Fragment, *modelReference, *Residual) {
	frag := &modelFragment{
		nalpha: 1,
		nbeta:  1,
		nbf:    2,
		da:     mat.NewDense(2, 2, nil),
		db:     mat.NewDense(2, 2, nil),
		eigsA:  []float64{-0.5, 0.3},
		eigsB:  []float64{-0.5, 0.3},
		gridA:  [][]float64{{0.0}},
		gridB:  [][]float64{{0.0}},
		orbsA:  [][][]float64{{{0.9}}, {{0.4}}},
		orbsB:  [][][]float64{{{0.9}}, {{0.4}}},
	}
	ref := &modelReference{
		nbf:     2,
		nalpha:  1,
		nbeta:   1,
		da:      mat.NewDense(2, 2, nil),
		db:      mat.NewDense(2, 2, nil),
		gridA:   [][]float64{{0.0}},
		gridB:   [][]float64{{0.0}},
		weights: [][]float64{{1.0}},
		phi:     []*mat.Dense{mat.NewDense(1, 2, []float64{0.6, 0.8})},
		local:   [][]int{{0, 1}},
	}
	res := &Residual{
		GridA: [][]float64{{0.2}},
		GridB: [][]float64{{0.1}},
	}
	return []Fragment{frag}, ref, res
}

func TestWuYangHandValue(Te *testing.T) {
	frags, ref, res := wySystem()
	dvp, err := WuYangGrid{Cpus: 1}.Update(frags, ref, res)
	if err != nil {
		Te.Fatal(err)
	}
	//kernel: t = 0.9*0.4, x = t*t/(-0.5-0.3); the residual is mapped
	//through 1/(x+x) and projected with phi and the unit weight
	t := 0.9 * 0.4
	x := t * t / (-0.8)
	s := (0.2 + 0.1) * 1.0 / (x + x)
	phi := []float64{0.6, 0.8}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := phi[i] * s * phi[j]
			if math.Abs(dvp.Alpha.At(i, j)-want) > 1e-12 {
				Te.Errorf("alpha (%d,%d): got %v, want %v", i, j, dvp.Alpha.At(i, j), want)
			}
		}
	}
}

// Both channels must carry the identical matrix: only the alpha kernel
// is built and it stands in for beta as well.
func TestWuYangChannelsIdentical(Te *testing.T) {
	frags, ref, res := wySystem()
	dvp, err := WuYangGrid{Cpus: 2}.Update(frags, ref, res)
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(dvp.Alpha, dvp.Beta) {
		Te.Error("alpha and beta increments differ")
	}
	//and they must not alias each other
	dvp.Alpha.Set(0, 0, 1e9)
	if dvp.Beta.At(0, 0) == 1e9 {
		Te.Error("the two channels alias the same matrix")
	}
}

// A degenerate occupied-virtual pair is refused instead of divided by.
func TestWuYangDegenerateGap(Te *testing.T) {
	frags, ref, res := wySystem()
	f := frags[0].(*modelFragment)
	f.eigsA = []float64{0.3, 0.3}
	_, err := WuYangGrid{Cpus: 1}.Update(frags, ref, res)
	if err == nil {
		Te.Fatal("expected a NumericalError")
	}
	if _, ok := err.(*NumericalError); !ok {
		Te.Errorf("got %T (%v), want *NumericalError", err, err)
	}
}

// The scatter must route every block contribution through the
// local-to-global map. Two blocks touching disjoint basis functions
// land in disjoint parts of the increment.
func TestWuYangLocalScatter(Te *testing.T) {
	frag := &modelFragment{
		nalpha: 1,
		nbeta:  1,
		nbf:    2,
		eigsA:  []float64{-0.5, 0.3},
		gridA:  [][]float64{{0.0}, {0.0}},
		gridB:  [][]float64{{0.0}, {0.0}},
		orbsA:  [][][]float64{{{0.9}, {0.7}}, {{0.4}, {0.5}}},
	}
	ref := &modelReference{
		nbf:     2,
		gridA:   [][]float64{{0.0}, {0.0}},
		gridB:   [][]float64{{0.0}, {0.0}},
		weights: [][]float64{{1.0}, {1.0}},
		phi: []*mat.Dense{
			mat.NewDense(1, 1, []float64{0.6}),
			mat.NewDense(1, 1, []float64{0.8}),
		},
		local: [][]int{{0}, {1}},
	}
	res := &Residual{
		GridA: [][]float64{{0.2}, {0.1}},
		GridB: [][]float64{{0.0}, {0.0}},
	}
	dvp, err := WuYangGrid{Cpus: 1}.Update([]Fragment{frag}, ref, res)
	if err != nil {
		Te.Fatal(err)
	}
	if dvp.Alpha.At(0, 1) != 0 || dvp.Alpha.At(1, 0) != 0 {
		Te.Error("disjoint blocks leaked into off-diagonal elements")
	}
	if dvp.Alpha.At(0, 0) == 0 || dvp.Alpha.At(1, 1) == 0 {
		Te.Error("a block contribution went missing")
	}
}

/*
 * energy_test.go, part of gopdft.
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
)

func TestPartitionEnergy(Te *testing.T) {
	frags, ref := onePointSystem(0.5, 1.0)
	//reference -1.2/0.3, each fragment -0.5/0.1: the nuclear terms
	//cancel out of both sides before the subtraction.
	want := (-1.2 - 0.3) - 2*(-0.5-0.1)
	got := PartitionEnergy(frags, ref)
	if math.Abs(got-want) > 1e-14 {
		Te.Errorf("got %v, want %v", got, want)
	}
}

func TestDecayRate(Te *testing.T) {
	//an exact factor-of-ten decay per cycle
	slope := DecayRate([]float64{1, 0.1, 0.01})
	if math.Abs(slope-(-1)) > 1e-12 {
		Te.Errorf("got slope %v, want -1", slope)
	}
	//non-positive entries are skipped, not logged
	slope = DecayRate([]float64{1, 0, 0.01})
	if math.Abs(slope-(-1)) > 1e-12 {
		Te.Errorf("with a zero entry, got slope %v, want -1", slope)
	}
	if s := DecayRate([]float64{0.5}); s != 0 {
		Te.Errorf("single entry: got %v, want 0", s)
	}
	if s := DecayRate(nil); s != 0 {
		Te.Errorf("empty history: got %v, want 0", s)
	}
}

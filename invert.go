/*
 * invert.go, part of gopdft.
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
	"fmt"
	"log"
	"runtime"

	"gonum.org/v1/gonum/mat"
)

// Options collects the tuning knobs of an inversion run. Get a default
// set with DefaultOptions; every accessor returns the current value and
// sets a new one if a valid argument is given.
type Options struct {
	maxiter   int
	tol       float64
	guess     string
	cpus      int
	logger    *log.Logger
	observers []Observer
}

// DefaultOptions returns an Options with the default settings: 40
// cycles, 1e-5 tolerance, no initial guess, one goroutine per logical
// CPU for the fragment re-solves, no logging and no observers.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.maxiter = 40
	ret.tol = 1e-5
	ret.cpus = runtime.NumCPU()
	return ret
}

// MaxIter returns the iteration bound and sets it, if a non-negative
// value is given. The run always ends when the cycle index reaches the
// bound, with a MaxIterationsError.
func (o *Options) MaxIter(maxiter ...int) int {
	ret := o.maxiter
	if len(maxiter) > 0 && maxiter[0] >= 0 {
		o.maxiter = maxiter[0]
	}
	return ret
}

// Tol returns the convergence tolerance and sets it, if a positive
// value is given. The tolerance is carried along but never tested
// against the residual: the loop runs its full iteration bound no
// matter what. Kept for interface stability with the original scheme.
func (o *Options) Tol(tol ...float64) float64 {
	ret := o.tol
	if len(tol) > 0 && tol[0] > 0 {
		o.tol = tol[0]
	}
	return ret
}

// Guess returns the initial-guess mode and sets it, if one of
// "hartree", "xc", "hxc" or "" is given. The three named modes are
// stubs: selecting any of them makes Run return immediately, without
// building a potential or running a single cycle.
func (o *Options) Guess(guess ...string) string {
	ret := o.guess
	if len(guess) > 0 {
		switch guess[0] {
		case "", "hartree", "xc", "hxc":
			o.guess = guess[0]
		}
	}
	return ret
}

// Cpus returns the number of goroutines used for the per-fragment
// re-solves within one cycle and sets it, if a positive value is given.
func (o *Options) Cpus(cpus ...int) int {
	ret := o.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		o.cpus = cpus[0]
	}
	return ret
}

// Logger returns the cycle logger and sets it, if one is given. A nil
// logger (the default) silences the per-cycle lines.
func (o *Options) Logger(logger ...*log.Logger) *log.Logger {
	ret := o.logger
	if len(logger) > 0 {
		o.logger = logger[0]
	}
	return ret
}

// AddObserver registers an observer to receive the per-cycle records.
func (o *Options) AddObserver(obs Observer) {
	if obs != nil {
		o.observers = append(o.observers, obs)
	}
}

// Record is the structured snapshot the engine hands to its observers
// once per cycle, after the potential update has been applied.
type Record struct {
	//Cycle index, starting at 0.
	Cycle int
	//Scalar density error and partition energy of this cycle.
	L1, Ep float64
	//Sum of the fragment energies.
	FragEnergy float64
	//Histories up to and including this cycle (copies, safe to keep).
	L1Hist, EpHist []float64
	//Accumulated potential and the increment just applied (copies).
	VP, DVP *Potential
	//Grid diagnostics, nil when the reference has no grid geometry.
	Curves *Curves
}

// Curves carries flat grid projections for diagnostic rendering: the
// accumulated potential, the last increment, and the reference and
// fragment-summed densities, plus the coordinates of every grid point.
type Curves struct {
	VP, DVP     []float64
	RefDensity  []float64
	FragDensity []float64
	Coords      [3][]float64
}

// Inverter drives the fixed-point inversion. It is the sole owner of
// the accumulated potential and of the fragment set, which it replaces
// wholesale on every cycle.
type Inverter struct {
	frags   []Fragment
	ref     Reference
	nbf     int
	nblocks int
	vp      *Potential
	l1hist  []float64
	ephist  []float64
	o       *Options
}

// NewInverter validates the fragments against the reference and returns
// an engine ready to run. It requires grid-resolved densities on the
// reference and on every fragment (ConfigurationError otherwise, fix by
// enabling ingredient collection in the prior SCF solve), matching
// basis sizes, and matching grid point counts between the first
// fragment and the reference (GridMismatchError otherwise, usually
// cured by a denser spherical grid). The block count is fixed from the
// reference here and reused for the life of the engine.
func NewInverter(frags []Fragment, ref Reference, opts ...*Options) (*Inverter, error) {
	var o *Options
	if len(opts) > 0 && opts[0] != nil {
		o = opts[0]
	} else {
		o = DefaultOptions()
	}
	if len(frags) == 0 {
		return nil, &ConfigurationError{berr("no fragments given", "NewInverter")}
	}
	if gridPoints(ref.GridDensity(Alpha)) == 0 {
		return nil, &ConfigurationError{berr("density on the grid not available for the reference. Re-run its SCF with ingredient collection enabled", "NewInverter")}
	}
	if gridPoints(frags[0].GridDensity(Alpha)) == 0 {
		return nil, &ConfigurationError{berr("density on the grid not available for the fragments. Re-run their SCF with ingredient collection enabled", "NewInverter")}
	}
	nbf := ref.NBasis()
	for i, f := range frags {
		if f.NBasis() != nbf {
			return nil, &ConfigurationError{berr(fmt.Sprintf("fragment %d has %d basis functions, the reference has %d: all entities must share the supermolecular basis", i, f.NBasis(), nbf), "NewInverter")}
		}
	}
	mp := gridPoints(ref.GridDensity(Alpha))
	fp := gridPoints(frags[0].GridDensity(Alpha))
	if mp != fp {
		return nil, &GridMismatchError{berr(fmt.Sprintf("fragment grid (%d points) does not match the reference grid (%d points). Try increasing the spherical grid density", fp, mp), "NewInverter")}
	}
	inv := new(Inverter)
	inv.frags = append([]Fragment{}, frags...)
	inv.ref = ref
	inv.nbf = nbf
	inv.nblocks = ref.NBlocks()
	inv.o = o
	return inv, nil
}

// VP returns the accumulated partition potential, or nil before the
// first cycle has run.
func (inv *Inverter) VP() *Potential { return inv.vp }

// L1History returns the scalar density-error history, one entry per
// cycle run so far.
func (inv *Inverter) L1History() []float64 {
	return append([]float64{}, inv.l1hist...)
}

// EpHistory returns the partition-energy history.
func (inv *Inverter) EpHistory() []float64 {
	return append([]float64{}, inv.ephist...)
}

// Run drives the inversion with the given update scheme and the given
// fixed step size (no line search, no adaptation). Each cycle re-solves
// every fragment under the current potential, re-aggregates, measures
// the residual, applies step*increment to the potential and notifies
// the observers. There is no convergence exit: when the cycle index
// reaches the configured bound the run ends with a MaxIterationsError,
// after that last cycle's update has already been applied. Callers
// treat that error as the normal end of a run and read the potential
// and the histories off the engine.
//
// A non-empty guess mode makes Run return nil immediately, with no
// potential built; the modes are accepted for interface stability but
// not implemented.
func (inv *Inverter) Run(up Updater, step float64) error {
	if inv.o.guess != "" {
		return nil
	}
	inv.vp = ZeroPotential(inv.nbf)
	inv.l1hist = inv.l1hist[:0]
	inv.ephist = inv.ephist[:0]
	for cycle := 0; ; cycle++ {
		if err := inv.resolveAll(); err != nil {
			return errDecorate(err, fmt.Sprintf("Run: cycle %d", cycle))
		}
		agg := NewAggregate(inv.frags, inv.ref)
		ep := PartitionEnergy(inv.frags, inv.ref)
		res := NewResidual(agg, inv.ref)
		inv.l1hist = append(inv.l1hist, res.L1)
		inv.ephist = append(inv.ephist, ep)
		if inv.o.logger != nil {
			inv.o.logger.Printf("vp cycle: %d | scheme: %s | density difference: %.5f | Ep: %.5f | Ef: %.4f", cycle, up.Name(), res.L1, ep, agg.Energy)
		}
		dvp, err := up.Update(inv.frags, inv.ref, res)
		if err != nil {
			return errDecorateForeign(err, fmt.Sprintf("Run: cycle %d", cycle))
		}
		inv.vp.AddScaled(step, dvp)
		inv.emit(cycle, agg, res, ep, dvp)
		if cycle == inv.o.maxiter {
			return &MaxIterationsError{berr(fmt.Sprintf("maximum number of cycles (%d) exceeded for vp", inv.o.maxiter), "Run"), cycle + 1}
		}
	}
}

// resolveAll re-solves every fragment under the current potential,
// fanning the independent solves out over Options.Cpus goroutines and
// collecting the new fragment values in order. The first failure wins.
func (inv *Inverter) resolveAll() error {
	req := Request{Ingredients: true, Orbitals: true}
	if inv.o.cpus <= 1 || len(inv.frags) == 1 {
		for i, f := range inv.frags {
			nf, err := f.Resolve(inv.vp, req)
			if err != nil {
				return errDecorateForeign(err, fmt.Sprintf("resolveAll: fragment %d", i))
			}
			inv.frags[i] = nf
		}
		return nil
	}
	type result struct {
		i    int
		frag Fragment
		err  error
	}
	results := make(chan result, len(inv.frags))
	sem := make(chan struct{}, inv.o.cpus)
	for i, f := range inv.frags {
		go func(i int, f Fragment) {
			sem <- struct{}{}
			nf, err := f.Resolve(inv.vp, req)
			<-sem
			results <- result{i, nf, err}
		}(i, f)
	}
	var firstErr error
	errIdx := -1
	for range inv.frags {
		r := <-results
		if r.err != nil {
			if firstErr == nil || r.i < errIdx {
				firstErr = r.err
				errIdx = r.i
			}
			continue
		}
		inv.frags[r.i] = r.frag
	}
	if firstErr != nil {
		return errDecorateForeign(firstErr, fmt.Sprintf("resolveAll: fragment %d", errIdx))
	}
	return nil
}

// emit builds the cycle record and hands it to every observer. The grid
// curves are only computed when at least one observer is registered and
// the reference can project matrices to its grid.
func (inv *Inverter) emit(cycle int, agg *Aggregate, res *Residual, ep float64, dvp *Potential) {
	if len(inv.o.observers) == 0 {
		return
	}
	rec := &Record{
		Cycle:      cycle,
		L1:         res.L1,
		Ep:         ep,
		FragEnergy: agg.Energy,
		L1Hist:     append([]float64{}, inv.l1hist...),
		EpHist:     append([]float64{}, inv.ephist...),
		VP:         inv.vp.Clone(),
		DVP:        dvp.Clone(),
	}
	vpGrid, coords := inv.ref.ProjectToGrid(inv.vp.Total(), false)
	if vpGrid != nil {
		dvpGrid, _ := inv.ref.ProjectToGrid(dvp.Total(), false)
		nref := mat.NewDense(inv.nbf, inv.nbf, nil)
		nref.Add(inv.ref.Density(Alpha), inv.ref.Density(Beta))
		refGrid, _ := inv.ref.ProjectToGrid(nref, false)
		nfrag := mat.NewDense(inv.nbf, inv.nbf, nil)
		nfrag.Add(agg.DenA, agg.DenB)
		fragGrid, _ := inv.ref.ProjectToGrid(nfrag, false)
		rec.Curves = &Curves{
			VP:          vpGrid,
			DVP:         dvpGrid,
			RefDensity:  refGrid,
			FragDensity: fragGrid,
			Coords:      coords,
		}
	}
	for _, obs := range inv.o.observers {
		obs.Observe(rec)
	}
}

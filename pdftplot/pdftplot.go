/*
 * pdftplot.go, part of gopdft.
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

/*Package pdftplot renders the diagnostic curves of a goPDFT inversion:
the density-error and partition-energy histories, and 1D cuts of the
partition potential and the densities along a cartesian axis. It hangs
off the engine as an observer and never feeds anything back into the
inversion; rendering failures are logged and swallowed.*/
package pdftplot

import (
	"fmt"
	"log"
	"math"
	"path/filepath"

	"github.com/rmera/gopdft"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plotter renders cycle records to PNG files in a directory. It
// implements pdft.Observer.
type Plotter struct {
	dir       string
	every     int
	axis      string
	threshold float64
}

// NewPlotter returns a Plotter writing into dir, rendering every
// every-th cycle (minimum 1). Cuts are taken along the z axis with the
// default point-selection threshold; change that with Axis.
func NewPlotter(dir string, every int) *Plotter {
	if every < 1 {
		every = 1
	}
	return &Plotter{dir: dir, every: every, axis: "z"}
}

// Axis sets the cut axis ("x", "y" or "z") and the off-axis selection
// threshold, and returns the receiver.
func (P *Plotter) Axis(axis string, threshold float64) *Plotter {
	P.axis = axis
	P.threshold = threshold
	return P
}

// Observe renders the record if its cycle is due. Failures are logged,
// never propagated: plotting is not allowed to kill an inversion.
func (P *Plotter) Observe(rec *pdft.Record) {
	if rec.Cycle%P.every != 0 {
		return
	}
	if err := P.HistoryPlot(rec.L1Hist, rec.EpHist, fmt.Sprintf("history_%04d", rec.Cycle)); err != nil {
		log.Printf("goPDFT/pdftplot: skipping history plot for cycle %d: %v", rec.Cycle, err)
	}
	if rec.Curves == nil {
		return
	}
	if err := P.CutPlot(rec.Curves, fmt.Sprintf("cuts_%04d", rec.Cycle)); err != nil {
		log.Printf("goPDFT/pdftplot: skipping cut plot for cycle %d: %v", rec.Cycle, err)
	}
}

func line(xs, ys []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return plotter.NewLine(pts)
}

func indexLine(ys []float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(ys))
	for i, v := range ys {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return plotter.NewLine(pts)
}

// HistoryPlot writes the density-error and partition-energy histories
// against the cycle index to name.png under the plotter's directory.
func (P *Plotter) HistoryPlot(l1, ep []float64, name string) error {
	p := plot.New()
	p.Title.Text = "Inversion history"
	p.X.Label.Text = "cycle"
	p.Y.Label.Text = "L1 density error"
	p.Add(plotter.NewGrid())
	l, err := indexLine(l1)
	if err != nil {
		return err
	}
	p.Add(l)
	p.Legend.Add("L1 error", l)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filepath.Join(P.dir, name+"_l1.png")); err != nil {
		return err
	}

	p = plot.New()
	p.Title.Text = "Partition energy"
	p.X.Label.Text = "cycle"
	p.Y.Label.Text = "Ep"
	p.Add(plotter.NewGrid())
	l, err = indexLine(ep)
	if err != nil {
		return err
	}
	p.Add(l)
	p.Legend.Add("Ep", l)
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, filepath.Join(P.dir, name+"_ep.png"))
}

// CutPlot writes two files: name_vp.png with the accumulated potential
// along the cut axis, and name_dens.png with the reference and
// fragment-summed densities plus the log10 of their difference.
func (P *Plotter) CutPlot(c *pdft.Curves, name string) error {
	x, vp := AxisCut(c.VP, c.Coords, P.axis, P.threshold)
	p := plot.New()
	p.Title.Text = "Partition potential"
	p.X.Label.Text = P.axis
	p.Y.Label.Text = "vp"
	p.Add(plotter.NewGrid())
	l, err := line(x, vp)
	if err != nil {
		return err
	}
	p.Add(l)
	p.Legend.Add("vp", l)
	if err := p.Save(12*vg.Centimeter, 8*vg.Centimeter, filepath.Join(P.dir, name+"_vp.png")); err != nil {
		return err
	}

	x, nref := AxisCut(c.RefDensity, c.Coords, P.axis, P.threshold)
	_, nfrag := AxisCut(c.FragDensity, c.Coords, P.axis, P.threshold)
	p = plot.New()
	p.Title.Text = "Densities along the cut"
	p.X.Label.Text = P.axis
	p.Y.Label.Text = "density"
	p.Add(plotter.NewGrid())
	lref, err := line(x, nref)
	if err != nil {
		return err
	}
	lfrag, err := line(x, nfrag)
	if err != nil {
		return err
	}
	lfrag.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	diff := make([]float64, len(nref))
	for i := range diff {
		diff[i] = math.Log10(math.Abs(nref[i] - nfrag[i]))
	}
	ldiff, err := line(x, diff)
	if err != nil {
		return err
	}
	ldiff.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(lref, lfrag, ldiff)
	p.Legend.Add("reference", lref)
	p.Legend.Add("fragments", lfrag)
	p.Legend.Add("log10(diff)", ldiff)
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, filepath.Join(P.dir, name+"_dens.png"))
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"github.com/cpmech/simpcore/extract"
	"github.com/cpmech/simpcore/grid"
	"github.com/cpmech/simpcore/simp"
	"github.com/cpmech/simpcore/simperr"
	"github.com/cpmech/simpcore/smooth"
)

// Run wires grid -> FE model -> simp.Driver -> extraction -> smoothing
// into a single blocking call, per the data flow of spec §2. Callers that
// need Pause/Resume/Stop or per-frame progress should drive a simp.Driver
// directly instead (NewDriver below exposes it); Run is the convenience
// path for a fire-and-forget optimization.
func Run(p *SimpParams) (*OptimizationResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g, driver, err := NewDriver(p)
	if err != nil {
		return nil, err
	}

	var lastFrame *simp.SolverFrame
	for {
		frame, err := driver.Advance()
		if err != nil {
			return nil, err
		}
		if frame != nil {
			lastFrame = frame
		}
		switch driver.State() {
		case simp.StateConverged, simp.StateStopped:
			return finalize(p, g, driver, lastFrame)
		case simp.StateError:
			return nil, driver.Err()
		}
	}
}

// NewDriver builds the grid, FE model and simp.Driver for p without
// running any iterations, for callers that want to drive Advance()
// themselves (e.g. a UI that needs per-frame progress or Pause/Stop).
func NewDriver(p *SimpParams) (*grid.Grid, *simp.Driver, error) {
	min, max := p.Mesh.BoundingBox()
	g, err := grid.NewGrid(min, max, p.Nx, p.Ny, p.Nz)
	if err != nil {
		return nil, nil, err
	}
	markers := grid.GoalMarkers{Anchors: p.Anchors, Loads: p.Loads}
	model, _ := grid.BuildFEModel(g, markers)

	cfg := simp.Config{
		VolFrac: p.VolFrac, RhoMin: p.RhoMin,
		PenalStart: p.PenalStart, PenalEnd: p.PenalEnd, PenalRampIters: p.PenalRampIters,
		Rmin: p.Rmin, Move: p.Move,
		MaxIters: p.MaxIters, MinIterations: p.MinIterations, TolChange: p.TolChange, GrayTol: p.GrayTol,
		E0: p.E0, Emin: p.Emin, Nu: p.Nu,
		CgTol: p.CgTol, CgMaxIters: p.CgMaxIters, CgBoostFactor: p.CgBoostFactor,
		EmitEvery: p.EmitEvery, YieldEvery: p.YieldEvery,
		StrictConvergence: p.StrictConvergence, BetaMax: p.BetaMax,
		Workers: p.Workers, Verbose: p.Verbose,
	}
	driver, err := simp.NewDriver(g, model, cfg)
	if err != nil {
		return nil, nil, err
	}
	return g, driver, nil
}

// Finalize runs the extraction/smoothing pipeline on a driver that has
// already reached a terminal, non-error state; Run calls it automatically,
// but a caller driving Advance() itself can call it directly once
// driver.State() is StateConverged or StateStopped.
func Finalize(p *SimpParams, g *grid.Grid, d *simp.Driver, lastFrame *simp.SolverFrame) (*OptimizationResult, error) {
	return finalize(p, g, d, lastFrame)
}

func finalize(p *SimpParams, g *grid.Grid, d *simp.Driver, lastFrame *simp.SolverFrame) (*OptimizationResult, error) {
	rho := d.Densities()
	result := &OptimizationResult{
		Iterations: d.Iter(),
		Converged:  d.State() == simp.StateConverged,
		Densities:  rho,
	}
	if lastFrame != nil {
		result.FinalCompliance = lastFrame.Compliance
		result.Volume = lastFrame.Vol
	}

	sg := extract.BuildNodeScalarField(g, rho)
	surface, err := extract.ExtractIsosurface(sg, p.IsoThreshold)
	if err != nil {
		if !simperr.IsKind(err, simperr.ExtractionEmpty) {
			return nil, err
		}
		return result, nil
	}

	if p.Smooth {
		surface = smooth.Wrap(surface, smooth.Config{
			Lambda: p.WrapLambda, Mu: p.WrapMu, Iterations: p.WrapIters, WrapDistance: p.WrapDistance,
		})
	}
	result.Surface = surface
	result.SurfaceArea = surface.SurfaceArea()

	if p.ExtractSkeleton {
		pc := extract.ExtractPointCloud(g, rho, p.SkeletonThreshold)
		cn := extract.ExtractCurveNetwork(pc, p.MaxSpanLength, p.MaxLinksPerPoint)
		pipe := extract.ExtractMultipipe(cn, p.PipeRadius, p.PipeSegments)
		result.PointCloud = pc
		result.CurveNetwork = cn
		result.Multipipe = pipe
	}

	return result, nil
}

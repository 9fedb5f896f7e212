// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/simpcore/grid"
	"github.com/cpmech/simpcore/simperr"
)

// boxMesh builds a minimal indexed triangle mesh enclosing [min,max], the
// shape a caller would hand in as the domain's DomainMesh.
func boxMesh(min, max [3]float64) grid.DomainMesh {
	positions := [][3]float64{
		{min[0], min[1], min[2]}, {max[0], min[1], min[2]},
		{max[0], max[1], min[2]}, {min[0], max[1], min[2]},
		{min[0], min[1], max[2]}, {max[0], min[1], max[2]},
		{max[0], max[1], max[2]}, {min[0], max[1], max[2]},
	}
	triangles := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 6, 5}, {4, 7, 6}, // top
		{0, 4, 5}, {0, 5, 1}, // front
		{1, 5, 6}, {1, 6, 2}, // right
		{2, 6, 7}, {2, 7, 3}, // back
		{3, 7, 4}, {3, 4, 0}, // left
	}
	return grid.DomainMesh{Positions: positions, Triangles: triangles}
}

func cantileverParams() *SimpParams {
	return &SimpParams{
		Mesh: boxMesh([3]float64{0, 0, 0}, [3]float64{2, 1, 0.2}),
		Nx:   10, Ny: 5, Nz: 2,
		Anchors: [][3]float64{{0, 0, 0}, {0, 1, 0}, {0, 0, 0.2}, {0, 1, 0.2}},
		Loads:   []grid.LoadMarker{{Pos: [3]float64{2, 0.5, 0.1}, Force: [3]float64{0, -1, 0}}},
		VolFrac: 0.4, RhoMin: 1e-3,
		PenalStart: 1, PenalEnd: 3, PenalRampIters: 5,
		Rmin: 1.2, Move: 0.2,
		MaxIters: 20, MinIterations: 3, TolChange: 1e-2, GrayTol: 0,
		E0: 1, Emin: 1e-9, Nu: 0.3,
		CgTol: 1e-6, CgMaxIters: 500, CgBoostFactor: 2,
		EmitEvery: 5, YieldEvery: 5,
		IsoThreshold: 0.5,
	}
}

func TestRun01(tst *testing.T) {

	chk.PrintTitle("run01: a validated cantilever produces a non-empty surface")

	p := cantileverParams()
	result, err := Run(p)
	if err != nil {
		tst.Fatalf("Run: %v", err)
	}
	if result.Surface == nil || len(result.Surface.Triangles) == 0 {
		tst.Fatalf("expected a non-empty surface mesh")
	}
	if result.Iterations == 0 {
		tst.Fatalf("expected at least one iteration")
	}
}

func TestRun02(tst *testing.T) {

	chk.PrintTitle("run02: an invalid parameter set is rejected before any grid is built")

	p := cantileverParams()
	p.VolFrac = 2
	_, err := Run(p)
	if err == nil || !simperr.IsKind(err, simperr.InvalidParam) {
		tst.Fatalf("expected INVALID_PARAM, got %v", err)
	}
}

func TestRun03(tst *testing.T) {

	chk.PrintTitle("run03: skeleton extraction is opt-in and populates all three outputs")

	p := cantileverParams()
	p.ExtractSkeleton = true
	p.SkeletonThreshold = 0.5
	p.MaxSpanLength = 5
	p.MaxLinksPerPoint = 4
	p.PipeRadius = 0.02
	p.PipeSegments = 8

	result, err := Run(p)
	if err != nil {
		tst.Fatalf("Run: %v", err)
	}
	if result.PointCloud == nil || result.CurveNetwork == nil || result.Multipipe == nil {
		tst.Fatalf("expected all three skeleton outputs to be populated")
	}
}

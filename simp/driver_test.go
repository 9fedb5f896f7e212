// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/simpcore/grid"
)

func smallBeam(tst *testing.T) (*grid.Grid, *grid.FEModel) {
	g, err := grid.NewGrid([3]float64{0, 0, 0}, [3]float64{2, 1, 0}, 16, 8, 1)
	if err != nil {
		tst.Fatalf("NewGrid: %v", err)
	}
	markers := grid.GoalMarkers{
		Anchors: [][3]float64{{0, 0, 0}, {0, 1, 0}},
		Loads:   []grid.LoadMarker{{Pos: [3]float64{2, 0.5, 0}, Force: [3]float64{0, -1, 0}}},
	}
	model, _ := grid.BuildFEModel(g, markers)
	return g, model
}

func defaultConfig(volFrac float64) Config {
	return Config{
		VolFrac: volFrac, RhoMin: 1e-3,
		PenalStart: 1, PenalEnd: 3, PenalRampIters: 10,
		Rmin: 1.5, Move: 0.2,
		MaxIters: 60, MinIterations: 5, TolChange: 1e-3, GrayTol: 0,
		E0: 1, Emin: 1e-9, Nu: 0.3,
		CgTol: 1e-6, CgMaxIters: 2000, CgBoostFactor: 2,
		EmitEvery: 10, YieldEvery: 10,
	}
}

func TestDriver01(tst *testing.T) {

	chk.PrintTitle("driver01: invariants hold through a short run")

	g, model := smallBeam(tst)
	cfg := defaultConfig(0.5)
	d, err := NewDriver(g, model, cfg)
	if err != nil {
		tst.Fatalf("NewDriver: %v", err)
	}

	var lastFrame *SolverFrame
	for i := 0; i < cfg.MaxIters; i++ {
		frame, err := d.Advance()
		if err != nil {
			tst.Fatalf("Advance: %v", err)
		}
		if frame != nil {
			lastFrame = frame
		}
		for _, rho := range d.Densities() {
			if rho < cfg.RhoMin-1e-9 || rho > 1+1e-9 {
				tst.Fatalf("density %g out of [%g,1] at iter %d", rho, cfg.RhoMin, i+1)
			}
		}
		if d.State() == StateConverged || d.State() == StateStopped {
			break
		}
	}
	if lastFrame == nil {
		tst.Fatalf("expected at least one emitted frame")
	}
	if math.Abs(lastFrame.Vol-cfg.VolFrac) > 0.05 {
		tst.Fatalf("final volume %g far from target %g", lastFrame.Vol, cfg.VolFrac)
	}
}

func TestDriver02(tst *testing.T) {

	chk.PrintTitle("driver02: infeasible volume target is rejected up-front")

	g, model := smallBeam(tst)
	cfg := defaultConfig(1e-6)
	_, err := NewDriver(g, model, cfg)
	if err == nil {
		tst.Fatalf("expected CONSTRAINT_INFEASIBLE")
	}
}

func TestDriver03(tst *testing.T) {

	chk.PrintTitle("driver03: pause/resume yields the same final state as an uninterrupted run")

	g1, model1 := smallBeam(tst)
	cfg := defaultConfig(0.5)
	cfg.MaxIters = 30
	cfg.EmitEvery = 1
	d1, _ := NewDriver(g1, model1, cfg)
	var frames1 []*SolverFrame
	for i := 0; i < cfg.MaxIters; i++ {
		f, err := d1.Advance()
		if err != nil {
			tst.Fatalf("Advance: %v", err)
		}
		if f != nil {
			frames1 = append(frames1, f)
		}
		if d1.State() != StateRunning {
			break
		}
	}

	g2, model2 := smallBeam(tst)
	d2, _ := NewDriver(g2, model2, cfg)
	var frames2 []*SolverFrame
	for i := 0; i < cfg.MaxIters+5; i++ { // five passes (i = 20..24) are spent paused
		if i == 20 {
			d2.Pause()
		}
		if d2.State() == StatePaused {
			if i == 25 {
				d2.Resume()
			} else {
				continue
			}
		}
		f, err := d2.Advance()
		if err != nil {
			tst.Fatalf("Advance: %v", err)
		}
		if f != nil {
			frames2 = append(frames2, f)
		}
		if d2.State() != StateRunning {
			break
		}
	}

	if len(frames1) != len(frames2) {
		tst.Fatalf("frame counts differ: %d vs %d", len(frames1), len(frames2))
	}
	for i := range frames1 {
		if frames1[i].Compliance != frames2[i].Compliance {
			tst.Fatalf("compliance mismatch at frame %d: %g vs %g", i, frames1[i].Compliance, frames2[i].Compliance)
		}
	}
}

func TestDriver04(tst *testing.T) {

	chk.PrintTitle("driver04: stop is honored between iterations and preserves rho")

	g, model := smallBeam(tst)
	cfg := defaultConfig(0.5)
	d, _ := NewDriver(g, model, cfg)
	for i := 0; i < 5; i++ {
		if _, err := d.Advance(); err != nil {
			tst.Fatalf("Advance: %v", err)
		}
	}
	d.Stop()
	rhoBefore := d.Densities()
	frame, err := d.Advance()
	if err != nil {
		tst.Fatalf("Advance: %v", err)
	}
	if frame != nil {
		tst.Fatalf("expected no frame after stop")
	}
	if d.State() != StateStopped {
		tst.Fatalf("expected StateStopped, got %v", d.State())
	}
	rhoAfter := d.Densities()
	for i := range rhoBefore {
		if rhoBefore[i] != rhoAfter[i] {
			tst.Fatalf("density mutated after stop at elem %d", i)
		}
	}
}

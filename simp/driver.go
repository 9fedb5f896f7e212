// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simp

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/simpcore/continuation"
	"github.com/cpmech/simpcore/csr"
	"github.com/cpmech/simpcore/filter"
	"github.com/cpmech/simpcore/grid"
	"github.com/cpmech/simpcore/oc"
	"github.com/cpmech/simpcore/shp"
	"github.com/cpmech/simpcore/simperr"
)

// Config holds the validated, plain-field run parameters the driver
// consumes; engine.SimpParams.Validate() produces one of these.
type Config struct {
	VolFrac float64
	RhoMin  float64

	PenalStart     float64
	PenalEnd       float64
	PenalRampIters int

	Rmin float64
	Move float64

	MaxIters      int
	MinIterations int
	TolChange     float64
	GrayTol       float64

	E0   float64
	Emin float64
	Nu   float64

	CgTol         float64
	CgMaxIters    int
	CgBoostFactor float64

	EmitEvery  int
	YieldEvery int

	StrictConvergence bool

	BetaMax float64 // Heaviside projection strength cap; 0 disables projection

	Workers int // worker-pool size for internal parallel loops; <=1 is serial
	Verbose bool
}

// Driver owns rho, rhoBar, gradients, u and K for the lifetime of a run and
// sequences one SIMP iteration per Advance() call, per spec §4.H/§5.
type Driver struct {
	Grid     *grid.Grid
	Model    *grid.FEModel
	Stencil  *shp.ElementStencil
	ElemMaps [][]int
	Kernel   *filter.Kernel
	Asm      *csr.Assembler
	Cfg      Config

	rho []float64
	u   []float64

	iter      int
	state     State
	cancelled bool
	tracker   *continuation.Tracker
	lastErr   error
}

// NewDriver builds a Driver for the given grid and FE model. It returns
// CONSTRAINT_INFEASIBLE immediately if the volume target cannot be reached
// given rhoMin, per spec §4 failure taxonomy.
func NewDriver(g *grid.Grid, model *grid.FEModel, cfg Config) (*Driver, error) {
	if cfg.VolFrac < cfg.RhoMin {
		return nil, simperr.NewError(simperr.ConstraintInfeasible,
			"volume target %g is below the density floor %g", cfg.VolFrac, cfg.RhoMin)
	}

	var stencil *shp.ElementStencil
	if g.Is2D() {
		stencil = shp.BuildQuad4Stencil(cfg.Nu, g.Dx, g.Dy)
	} else {
		stencil = shp.BuildHex8Stencil(cfg.Nu, g.Dx, g.Dy, g.Dz)
	}

	D := g.Dof()
	elemMaps := make([][]int, g.NElem())
	for e := 0; e < g.NElem(); e++ {
		nodes := g.ElemNodes(e)
		emap := make([]int, len(nodes)*D)
		for i, n := range nodes {
			for d := 0; d < D; d++ {
				emap[i*D+d] = n*D + d
			}
		}
		elemMaps[e] = emap
	}

	kernel := filter.Build(g, cfg.Rmin)
	asm := csr.NewAssembler(g.NDof(), elemMaps)

	rho := make([]float64, g.NElem())
	for i := range rho {
		rho[i] = cfg.VolFrac
	}

	return &Driver{
		Grid:     g,
		Model:    model,
		Stencil:  stencil,
		ElemMaps: elemMaps,
		Kernel:   kernel,
		Asm:      asm,
		Cfg:      cfg,
		rho:      rho,
		u:        make([]float64, g.NDof()),
		state:    StateIdle,
		tracker:  continuation.NewTracker(cfg.TolChange, cfg.GrayTol, cfg.MinIterations),
	}, nil
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() State { return d.state }

// Densities returns a copy of the current (unfiltered) density field.
func (d *Driver) Densities() []float64 {
	cp := make([]float64, len(d.rho))
	copy(cp, d.rho)
	return cp
}

// Iter returns the number of completed iterations.
func (d *Driver) Iter() int { return d.iter }

// Pause requests the driver stop advancing; it takes effect at the next
// Advance() call boundary.
func (d *Driver) Pause() {
	if d.state == StateRunning {
		d.state = StatePaused
	}
}

// Resume un-pauses a paused driver.
func (d *Driver) Resume() {
	if d.state == StatePaused {
		d.state = StateRunning
	}
}

// Stop requests cancellation; honored at the next safe point, per spec §5.
func (d *Driver) Stop() { d.cancelled = true }

// Err returns the error that drove the driver into StateError, if any.
func (d *Driver) Err() error { return d.lastErr }

// Advance performs exactly one SIMP iteration (or none, if paused/terminal)
// and returns at most one frame. A nil frame with a nil error and a
// terminal State() means the stream has ended (converged, stopped or
// errored); the caller should stop calling Advance.
func (d *Driver) Advance() (*SolverFrame, error) {
	if d.state == StateIdle {
		d.state = StateRunning
	}
	if d.state != StateRunning {
		return nil, nil
	}
	if d.cancelled {
		d.state = StateStopped
		return nil, nil
	}

	d.iter++
	iter := d.iter
	cfg := d.Cfg

	schedule := continuation.PenaltySchedule{PStart: cfg.PenalStart, PEnd: cfg.PenalEnd, RampIters: cfg.PenalRampIters}
	p := schedule.F(float64(iter), nil)

	rhoBar := d.Kernel.Apply(d.rho)
	if cfg.BetaMax > 0 {
		beta := math.Min(cfg.BetaMax, float64(iter)/10.0+1.0)
		rhoBar = continuation.HeavisideProject(rhoBar, beta, 0.5)
	}

	eEffMin := math.Max(cfg.Emin, math.Abs(cfg.E0)*1e-9)
	ke0 := d.Stencil.Ke
	elemMats := make([][][]float64, len(d.ElemMaps))
	parallelFor(len(d.ElemMaps), cfg.Workers, func(e int) {
		scale := eEffMin + (cfg.E0-eEffMin)*math.Pow(rhoBar[e], p)
		nd := len(ke0)
		m := make([][]float64, nd)
		for i := 0; i < nd; i++ {
			m[i] = make([]float64, nd)
			for j := 0; j < nd; j++ {
				m[i][j] = scale * ke0[i][j]
			}
		}
		elemMats[e] = m
	})

	K := d.Asm.NewMatrix()
	d.Asm.Refill(elemMats, K.Val)

	rhs := make([]float64, d.Grid.NDof())
	copy(rhs, d.Model.Forces)
	d.Asm.ApplyBC(K, d.Model.FixedDofs, rhs)

	res, err := csr.SolveCG(K, rhs, d.u, d.Model.FixedDofs, cfg.CgTol, cfg.CgMaxIters)
	if err != nil {
		d.state = StateError
		d.lastErr = err
		return nil, err
	}
	feConverged := res.Converged
	feIters := res.Iters
	if !feConverged && cfg.CgBoostFactor > 1 {
		boosted, err2 := csr.SolveCG(K, rhs, d.u, d.Model.FixedDofs, cfg.CgTol, int(float64(cfg.CgMaxIters)*cfg.CgBoostFactor))
		if err2 != nil {
			d.state = StateError
			d.lastErr = err2
			return nil, err2
		}
		res = boosted
		feConverged = boosted.Converged
		feIters = boosted.Iters
	}
	if !feConverged {
		if cfg.StrictConvergence {
			ferr := simperr.NewError(simperr.FeDiverged, "CG solver failed to converge after %d iterations", feIters)
			d.state = StateError
			d.lastErr = ferr
			return nil, ferr
		}
		if cfg.Verbose {
			io.Pf("> iter %d: FE solve did not converge (iters=%d), continuing\n", iter, feIters)
		}
	}
	d.u = res.X

	if d.cancelled {
		d.state = StateStopped
		return nil, nil
	}

	cE := oc.ElementStrainEnergies(d.ElemMaps, ke0, d.u)
	dCdRhoBar := oc.Sensitivity(rhoBar, cE, p, cfg.E0, eEffMin)
	dCdRho := d.Kernel.ApplyAdjoint(dCdRhoBar)
	dVdRho := make([]float64, len(d.rho))
	for i := range dVdRho {
		dVdRho[i] = 1
	}

	rhoNext := oc.Update(d.rho, dCdRho, dVdRho, cfg.RhoMin, cfg.Move, cfg.VolFrac)

	change := maxAbsDiff(rhoNext, d.rho)
	compliance := oc.Compliance(d.Model.Forces, d.u)
	vol := mean(rhoNext)
	gray := continuation.GrayShare(rhoNext)

	d.rho = rhoNext

	_, converged := d.tracker.Observe(continuation.Metrics{
		Iter: iter, Compliance: compliance, MaxDensityChange: change, GrayShare: gray,
	})

	atMax := iter >= cfg.MaxIters
	shouldEmit := iter == 1 || (cfg.EmitEvery > 0 && iter%cfg.EmitEvery == 0) || converged || atMax

	var frame *SolverFrame
	if shouldEmit {
		frame = &SolverFrame{
			Iter:        iter,
			Compliance:  compliance,
			Change:      change,
			Vol:         vol,
			Densities:   d.Densities(),
			Converged:   converged,
			FeIters:     feIters,
			FeConverged: feConverged,
		}
	}

	if cfg.Verbose && (cfg.YieldEvery <= 0 || iter%cfg.YieldEvery == 0) {
		io.Pf("> iter %d: p=%.3f compliance=%.6g change=%.3g vol=%.4f\n", iter, p, compliance, change, vol)
	}

	if converged {
		d.state = StateConverged
	} else if atMax {
		d.state = StateStopped
	}

	return frame, nil
}

func maxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > m {
			m = d
		}
	}
	return m
}

func mean(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

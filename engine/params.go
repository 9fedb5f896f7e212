// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package engine is the top-level façade: it binds grid, simp, extract and
// smooth into the single SimpParams -> OptimizationResult orchestration
// described in spec §2 and §6.
package engine

import (
	"github.com/cpmech/simpcore/grid"
	"github.com/cpmech/simpcore/simperr"
)

// SimpParams is the full set of user-facing run parameters; json tags
// match the field names a caller would serialize from a request body.
type SimpParams struct {
	// Mesh is the indexed triangle mesh spec.md §6 names as the core
	// domain input; only its axis-aligned bounding box (Mesh.BoundingBox())
	// is used, to bind the grid extent.
	Mesh grid.DomainMesh `json:"mesh"`
	Nx   int             `json:"nx"`
	Ny   int             `json:"ny"`
	Nz   int             `json:"nz"` // 1 selects the 2D plane-stress path

	Anchors [][3]float64      `json:"anchors"`
	Loads   []grid.LoadMarker `json:"loads"`

	VolFrac float64 `json:"vol_frac"`
	RhoMin  float64 `json:"rho_min"`

	PenalStart     float64 `json:"penal_start"`
	PenalEnd       float64 `json:"penal_end"`
	PenalRampIters int     `json:"penal_ramp_iters"`

	Rmin float64 `json:"rmin"`
	Move float64 `json:"move"`

	MaxIters      int     `json:"max_iters"`
	MinIterations int     `json:"min_iterations"`
	TolChange     float64 `json:"tol_change"`
	GrayTol       float64 `json:"gray_tol"`

	E0   float64 `json:"e0"`
	Emin float64 `json:"emin"`
	Nu   float64 `json:"nu"`

	CgTol         float64 `json:"cg_tol"`
	CgMaxIters    int     `json:"cg_max_iters"`
	CgBoostFactor float64 `json:"cg_boost_factor"`

	EmitEvery  int  `json:"emit_every"`
	YieldEvery int  `json:"yield_every"`
	Verbose    bool `json:"verbose"`

	StrictConvergence bool    `json:"strict_convergence"`
	BetaMax           float64 `json:"beta_max"`
	Workers           int     `json:"workers"`

	IsoThreshold float64 `json:"iso_threshold"`

	ExtractSkeleton   bool    `json:"extract_skeleton"`
	SkeletonThreshold float64 `json:"skeleton_threshold"`
	MaxSpanLength     float64 `json:"max_span_length"`
	MaxLinksPerPoint  int     `json:"max_links_per_point"`
	PipeRadius        float64 `json:"pipe_radius"`
	PipeSegments      int     `json:"pipe_segments"`

	Smooth       bool    `json:"smooth"`
	WrapLambda   float64 `json:"wrap_lambda"`
	WrapMu       float64 `json:"wrap_mu"`
	WrapIters    int     `json:"wrap_iterations"`
	WrapDistance float64 `json:"wrap_distance"`
}

// Validate checks the parameter set for internal consistency and returns
// an INVALID_PARAM error naming the first problem found. It does not
// check feasibility against the grid (that is CONSTRAINT_INFEASIBLE,
// raised by simp.NewDriver once the grid and FE model exist).
func (p *SimpParams) Validate() error {
	switch {
	case len(p.Mesh.Positions) == 0:
		return simperr.NewError(simperr.InvalidParam, "mesh must have at least one vertex")
	case p.Nx < 1 || p.Ny < 1 || p.Nz < 1:
		return simperr.NewError(simperr.InvalidParam, "nx, ny, nz must all be >= 1")
	case p.VolFrac <= 0 || p.VolFrac > 1:
		return simperr.NewError(simperr.InvalidParam, "vol_frac must be in (0,1], got %g", p.VolFrac)
	case p.RhoMin <= 0 || p.RhoMin >= 1:
		return simperr.NewError(simperr.InvalidParam, "rho_min must be in (0,1), got %g", p.RhoMin)
	case p.PenalStart <= 0 || p.PenalEnd < p.PenalStart:
		return simperr.NewError(simperr.InvalidParam, "penal_end must be >= penal_start > 0")
	case p.Rmin <= 0:
		return simperr.NewError(simperr.InvalidParam, "rmin must be > 0, got %g", p.Rmin)
	case p.Move <= 0 || p.Move > 1:
		return simperr.NewError(simperr.InvalidParam, "move must be in (0,1], got %g", p.Move)
	case p.MaxIters < 1:
		return simperr.NewError(simperr.InvalidParam, "max_iters must be >= 1")
	case p.MinIterations < 0 || p.MinIterations > p.MaxIters:
		return simperr.NewError(simperr.InvalidParam, "min_iterations must be in [0,max_iters]")
	case p.E0 <= 0:
		return simperr.NewError(simperr.InvalidParam, "e0 must be > 0, got %g", p.E0)
	case p.Emin < 0 || p.Emin >= p.E0:
		return simperr.NewError(simperr.InvalidParam, "emin must be in [0,e0), got %g", p.Emin)
	case p.Nu <= -1 || p.Nu >= 0.5:
		return simperr.NewError(simperr.InvalidParam, "nu must be in (-1,0.5), got %g", p.Nu)
	case p.CgTol <= 0:
		return simperr.NewError(simperr.InvalidParam, "cg_tol must be > 0, got %g", p.CgTol)
	case p.CgMaxIters < 1:
		return simperr.NewError(simperr.InvalidParam, "cg_max_iters must be >= 1")
	case p.BetaMax < 0:
		return simperr.NewError(simperr.InvalidParam, "beta_max must be >= 0, got %g", p.BetaMax)
	case p.IsoThreshold <= 0 || p.IsoThreshold >= 1:
		return simperr.NewError(simperr.InvalidParam, "iso_threshold must be in (0,1), got %g", p.IsoThreshold)
	case len(p.Anchors) == 0:
		return simperr.NewError(simperr.InvalidParam, "at least one anchor is required")
	case len(p.Loads) == 0:
		return simperr.NewError(simperr.InvalidParam, "at least one load is required")
	}
	if p.ExtractSkeleton {
		switch {
		case p.MaxSpanLength <= 0:
			return simperr.NewError(simperr.InvalidParam, "max_span_length must be > 0 when extract_skeleton is set")
		case p.MaxLinksPerPoint < 1:
			return simperr.NewError(simperr.InvalidParam, "max_links_per_point must be >= 1 when extract_skeleton is set")
		case p.PipeRadius <= 0:
			return simperr.NewError(simperr.InvalidParam, "pipe_radius must be > 0 when extract_skeleton is set")
		case p.PipeSegments < 3:
			return simperr.NewError(simperr.InvalidParam, "pipe_segments must be >= 3 when extract_skeleton is set")
		}
	}
	if p.Smooth {
		switch {
		case p.WrapIters < 0:
			return simperr.NewError(simperr.InvalidParam, "wrap_iterations must be >= 0 when smooth is set")
		case p.WrapMu >= -p.WrapLambda:
			return simperr.NewError(simperr.InvalidParam, "wrap_mu must satisfy |wrap_mu| > wrap_lambda to avoid net shrinkage")
		case p.WrapDistance < 0:
			return simperr.NewError(simperr.InvalidParam, "wrap_distance must be >= 0")
		}
	}
	return nil
}

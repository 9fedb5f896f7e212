// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csr

import (
	"math"

	"github.com/cpmech/simpcore/simperr"
)

// SolveResult carries the outcome of a CG solve.
type SolveResult struct {
	X         []float64
	Iters     int
	Converged bool
}

// SolveCG solves A*x = b with a diagonal (Jacobi) preconditioned conjugate
// gradient iteration. x0, when non-nil, is used as a warm-start initial
// guess. fixed marks dofs the solver must keep at zero residual every
// iteration, as defense-in-depth against assembly rounding at the
// boundary-eliminated rows/columns.
//
// On convergence failure the result carries Converged=false and the last
// iterate; the caller decides whether that is fatal (strictConvergence).
// A NaN/Inf iterate is always reported as a *simperr.EngineError of kind
// FE_NUMERICAL.
func SolveCG(a *Matrix, b []float64, x0 []float64, fixed []bool, tol float64, maxIter int) (*SolveResult, error) {
	n := a.N
	x := make([]float64, n)
	if x0 != nil {
		vecCopy(x, x0)
	}

	diag := a.Diag()
	minv := make([]float64, n)
	for i, d := range diag {
		if d == 0 {
			minv[i] = 1
		} else {
			minv[i] = 1 / d
		}
	}

	bNorm := vecNorm(b)
	if bNorm < 1e-300 {
		bNorm = 1
	}

	r := make([]float64, n)
	ax := make([]float64, n)
	a.MulVec(ax, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - ax[i]
	}
	projectFixed(r, fixed)

	z := make([]float64, n)
	applyPrecond(z, minv, r)
	p := make([]float64, n)
	vecCopy(p, z)
	rz := vecDot(r, z)

	ap := make([]float64, n)
	converged := vecNorm(r)/bNorm < tol
	iters := 0
	for iters < maxIter && !converged {
		a.MulVec(ap, p)
		pAp := vecDot(p, ap)
		if math.Abs(pAp) < 1e-300 {
			break
		}
		alpha := rz / pAp
		for i := 0; i < n; i++ {
			x[i] += alpha * p[i]
			r[i] -= alpha * ap[i]
		}
		projectFixed(r, fixed)
		iters++

		if err := checkFinite(x); err != nil {
			return nil, err
		}

		rn := vecNorm(r)
		if rn/bNorm < tol {
			converged = true
			break
		}

		applyPrecond(z, minv, r)
		rzNew := vecDot(r, z)
		beta := rzNew / rz
		for i := 0; i < n; i++ {
			p[i] = z[i] + beta*p[i]
		}
		rz = rzNew
	}

	if err := checkFinite(x); err != nil {
		return nil, err
	}

	return &SolveResult{X: x, Iters: iters, Converged: converged}, nil
}

func applyPrecond(z, minv, r []float64) {
	for i := range r {
		z[i] = minv[i] * r[i]
	}
}

func projectFixed(v []float64, fixed []bool) {
	for i, f := range fixed {
		if f {
			v[i] = 0
		}
	}
}

func checkFinite(v []float64) error {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return simperr.NewError(simperr.FeNumerical, "non-finite value encountered in CG iterate")
		}
	}
	return nil
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oc

import "math"

// bisection bracket and stopping tolerance, per spec §4.F.
const (
	bracketLo  = 0.0
	bracketHi  = 1e9
	bisectTol  = 1e-4
	lambdaFloor = 1e-14
)

// Update performs the Optimality-Criteria bisection update: it searches for
// the Lagrange multiplier lambda in [0, 1e9] at which the resulting
// candidate density field satisfies the volume constraint mean(rhoNew) ==
// volTarget, bisecting until the lambda bracket is narrower than bisectTol,
// then returns the field at the bracket midpoint.
//
// rho is the pre-update (filtered-or-raw, per caller) density, dCdRho its
// compliance sensitivity (already filter-adjoint-corrected by the caller),
// dVdRho the volume sensitivity (1 per element for a uniform-volume mesh).
func Update(rho, dCdRho, dVdRho []float64, rhoMin, move, volTarget float64) []float64 {
	n := len(rho)
	rhoNew := make([]float64, n)
	candidate := make([]float64, n)

	l1, l2 := bracketLo, bracketHi
	for l2-l1 > bisectTol {
		lmid := 0.5 * (l1 + l2)
		fillCandidate(candidate, rho, dCdRho, dVdRho, rhoMin, move, lmid)
		if mean(candidate) > volTarget {
			l1 = lmid
		} else {
			l2 = lmid
		}
	}
	lmid := 0.5 * (l1 + l2)
	fillCandidate(rhoNew, rho, dCdRho, dVdRho, rhoMin, move, lmid)
	return rhoNew
}

// fillCandidate evaluates the OC candidate field for a given Lagrange
// multiplier, applying the move-limit clamp, the [rhoMin,1] box, the
// lambda-floor guard (preserve volume when the multiplier degenerates to
// zero) and the NaN guard (revert to the previous value).
func fillCandidate(out, rho, dCdRho, dVdRho []float64, rhoMin, move, lambda float64) {
	for e := range rho {
		if math.Abs(lambda) < lambdaFloor {
			out[e] = rho[e]
			continue
		}
		dv := dVdRho[e]
		if dv == 0 {
			dv = 1
		}
		ratio := -dCdRho[e] / (lambda * dv)
		if ratio < 1e-10 {
			ratio = 1e-10
		}
		cand := rho[e] * math.Sqrt(ratio)
		lo := rho[e] - move
		hi := rho[e] + move
		if cand < lo {
			cand = lo
		}
		if cand > hi {
			cand = hi
		}
		if cand < rhoMin {
			cand = rhoMin
		}
		if cand > 1 {
			cand = 1
		}
		if math.IsNaN(cand) || math.IsInf(cand, 0) {
			cand = rho[e]
		}
		out[e] = cand
	}
}

func mean(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x
	}
	return s / float64(len(v))
}

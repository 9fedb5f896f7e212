// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package continuation implements the SIMP penalty ramp, the optional
// Heaviside projection and the convergence tracker that decides when
// the driver should stop iterating and emit the final surface.
package continuation

import "math"

// PenaltySchedule computes p(k) = p_start + (p_end-p_start)*min(1, k/rampIters),
// holding at p_end once the ramp completes. rampIters <= 0 means "no ramp":
// p_end applies from the first iteration.
//
// It mirrors the shape of a gosl/fun.Func callable (F(t, x) float64) so it
// can be driven the same way the teacher drives time-stepping functions,
// with k taking the place of t and x unused.
type PenaltySchedule struct {
	PStart, PEnd float64
	RampIters    int
}

// F evaluates the schedule at iteration k (x is unused, kept to match the
// fun.Func-shaped call convention).
func (s PenaltySchedule) F(k float64, x []float64) float64 {
	if s.RampIters <= 0 {
		return s.PEnd
	}
	frac := k / float64(s.RampIters)
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return s.PStart + (s.PEnd-s.PStart)*frac
}

// HeavisideProject applies a smoothed Heaviside (tanh) projection to the
// filtered density field, sharpening it toward 0/1 as beta grows. Only
// invoked when betaMax > 0, per spec §9's "optional post-filter step".
func HeavisideProject(rhoBar []float64, beta, eta float64) []float64 {
	out := make([]float64, len(rhoBar))
	thBetaEta := math.Tanh(beta * eta)
	denom := thBetaEta + math.Tanh(beta*(1-eta))
	for i, r := range rhoBar {
		out[i] = (thBetaEta + math.Tanh(beta*(r-eta))) / denom
	}
	return out
}

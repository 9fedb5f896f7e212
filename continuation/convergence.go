// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package continuation

import "math"

// Tracker accumulates the per-iteration metrics (compliance, density
// change, gray level) the driver needs to decide convergence, per spec
// §4.G: complianceChange and maxDensityChange both below tolChange for
// three consecutive iterations, with an optional gray-level threshold.
type Tracker struct {
	TolChange     float64
	GrayTol       float64 // 0 disables the gray-level criterion
	MinIterations int

	prevCompliance float64
	haveCompliance bool
	stableRun      int
}

// NewTracker builds a Tracker with the given tolerances.
func NewTracker(tolChange, grayTol float64, minIterations int) *Tracker {
	return &Tracker{TolChange: tolChange, GrayTol: grayTol, MinIterations: minIterations}
}

// Metrics is the per-iteration snapshot fed to Observe.
type Metrics struct {
	Iter             int
	Compliance       float64
	MaxDensityChange float64
	GrayShare        float64
}

// Observe records one iteration's metrics and reports whether the run has
// stabilized (the primary criteria held for three consecutive iterations)
// and whether the driver should declare convergence (stabilized AND
// iter >= MinIterations).
func (t *Tracker) Observe(m Metrics) (stabilized, converged bool) {
	complianceChange := 1.0
	if t.haveCompliance {
		denom := math.Max(1, math.Abs(m.Compliance))
		complianceChange = math.Abs(m.Compliance-t.prevCompliance) / denom
	}
	t.prevCompliance = m.Compliance
	t.haveCompliance = true

	primaryOK := complianceChange < t.TolChange && m.MaxDensityChange < t.TolChange
	grayOK := true
	if t.GrayTol > 0 {
		grayOK = m.GrayShare < t.GrayTol
	}

	if primaryOK && grayOK {
		t.stableRun++
	} else {
		t.stableRun = 0
	}

	stabilized = t.stableRun >= 3
	converged = stabilized && m.Iter >= t.MinIterations
	return
}

// GrayShare computes the fraction of densities strictly between 0.1 and 0.9.
func GrayShare(rho []float64) float64 {
	n := 0
	for _, r := range rho {
		if r > 0.1 && r < 0.9 {
			n++
		}
	}
	return float64(n) / float64(len(rho))
}

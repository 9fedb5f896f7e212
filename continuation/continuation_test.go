// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package continuation

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSchedule01(tst *testing.T) {

	chk.PrintTitle("schedule01: penalty ramps then holds")

	s := PenaltySchedule{PStart: 1, PEnd: 3, RampIters: 50}
	chk.Float64(tst, "p(0)", 1e-12, s.F(0, nil), 1)
	chk.Float64(tst, "p(25)", 1e-12, s.F(25, nil), 2)
	chk.Float64(tst, "p(50)", 1e-12, s.F(50, nil), 3)
	chk.Float64(tst, "p(100)", 1e-12, s.F(100, nil), 3)
}

func TestConvergence01(tst *testing.T) {

	chk.PrintTitle("convergence01: stabilizes after three steady iterations")

	tr := NewTracker(1e-3, 0, 5)
	c := 100.0
	var converged bool
	for k := 1; k <= 10; k++ {
		_, converged = tr.Observe(Metrics{Iter: k, Compliance: c, MaxDensityChange: 1e-6})
	}
	if !converged {
		tst.Fatalf("expected convergence after steady iterations")
	}
}

func TestConvergence02(tst *testing.T) {

	chk.PrintTitle("convergence02: large change resets the stable streak")

	tr := NewTracker(1e-3, 0, 1)
	tr.Observe(Metrics{Iter: 1, Compliance: 100, MaxDensityChange: 1e-6})
	tr.Observe(Metrics{Iter: 2, Compliance: 100, MaxDensityChange: 1e-6})
	_, converged := tr.Observe(Metrics{Iter: 3, Compliance: 200, MaxDensityChange: 0.5})
	if converged {
		tst.Fatalf("should not have converged after a disruptive iteration")
	}
}

func TestGrayShare(tst *testing.T) {

	chk.PrintTitle("grayshare: counts intermediate densities")

	rho := []float64{0.01, 0.5, 0.95, 0.3, 0.99}
	g := GrayShare(rho)
	if math.Abs(g-0.4) > 1e-9 {
		tst.Fatalf("expected gray share 0.4, got %g", g)
	}
}

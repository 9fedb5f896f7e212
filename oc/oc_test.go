// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package oc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestOC01(tst *testing.T) {

	chk.PrintTitle("oc01: update respects bounds and volume target")

	n := 200
	rho := make([]float64, n)
	dC := make([]float64, n)
	dV := make([]float64, n)
	for i := range rho {
		rho[i] = 0.5
		dC[i] = -1.0 - 0.01*float64(i%7) // all negative: more density always helps compliance
		dV[i] = 1.0
	}
	rhoMin := 1e-3
	volTarget := 0.35

	rhoNew := Update(rho, dC, dV, rhoMin, 0.2, volTarget)
	for i, v := range rhoNew {
		if v < rhoMin-1e-12 || v > 1+1e-12 {
			tst.Fatalf("elem %d out of bounds: %g", i, v)
		}
	}
	m := mean(rhoNew)
	if math.Abs(m-volTarget) > 1e-3 {
		tst.Fatalf("mean density %g not within tolerance of target %g", m, volTarget)
	}
}

func TestOC02(tst *testing.T) {

	chk.PrintTitle("oc02: move-limit clamp is respected")

	n := 10
	rho := make([]float64, n)
	dC := make([]float64, n)
	dV := make([]float64, n)
	for i := range rho {
		rho[i] = 0.5
		dC[i] = -100.0
		dV[i] = 1.0
	}
	move := 0.1
	rhoNew := Update(rho, dC, dV, 1e-3, move, 0.9)
	for i, v := range rhoNew {
		if v > rho[i]+move+1e-9 {
			tst.Fatalf("elem %d exceeded move limit: %g > %g", i, v, rho[i]+move)
		}
	}
}

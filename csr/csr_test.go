// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csr

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// buildTriDiag assembles a diagonally dominant SPD tridiagonal system via
// the Assembler, using 2-dof "elements" that overlap at shared nodes —
// exactly the connectivity pattern a 1D bar chain produces.
func buildTriDiag(n int) (*Assembler, *Matrix) {
	var elemMaps [][]int
	for i := 0; i < n-1; i++ {
		elemMaps = append(elemMaps, []int{i, i + 1})
	}
	asm := NewAssembler(n, elemMaps)
	mats := make([][][]float64, len(elemMaps))
	for e := range elemMaps {
		mats[e] = [][]float64{{2, -1}, {-1, 2}}
	}
	m := asm.NewMatrix()
	asm.Refill(mats, m.Val)
	return asm, m
}

func TestCG01(tst *testing.T) {

	chk.PrintTitle("cg01: SPD tridiagonal system converges")

	n := 50
	_, m := buildTriDiag(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1.0
	}
	fixed := make([]bool, n)
	res, err := SolveCG(m, b, nil, fixed, 1e-10, 2000)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence within %d iters, used %d", 2000, res.Iters)
	}
	ax := make([]float64, n)
	m.MulVec(ax, res.X)
	maxResid := 0.0
	for i := range ax {
		if d := math.Abs(ax[i] - b[i]); d > maxResid {
			maxResid = d
		}
	}
	if maxResid > 1e-6 {
		tst.Fatalf("residual too large: %g", maxResid)
	}
}

func TestCG02(tst *testing.T) {

	chk.PrintTitle("cg02: random SPD diagonally dominant system")

	rnd := rand.New(rand.NewSource(42))
	n := 30
	var elemMaps [][]int
	for i := 0; i < n; i++ {
		elemMaps = append(elemMaps, []int{i})
	}
	for i := 0; i < n-1; i++ {
		elemMaps = append(elemMaps, []int{i, i + 1})
	}
	asm := NewAssembler(n, elemMaps)
	mats := make([][][]float64, len(elemMaps))
	for i := 0; i < n; i++ {
		mats[i] = [][]float64{{10 + rnd.Float64()}}
	}
	for i := n; i < len(elemMaps); i++ {
		v := -rnd.Float64()
		mats[i] = [][]float64{{0, v}, {v, 0}}
	}
	m := asm.NewMatrix()
	asm.Refill(mats, m.Val)

	b := make([]float64, n)
	for i := range b {
		b[i] = rnd.Float64()
	}
	fixed := make([]bool, n)
	res, err := SolveCG(m, b, nil, fixed, 1e-8, 5000)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence, got iters=%d", res.Iters)
	}
}

func TestBC01(tst *testing.T) {

	chk.PrintTitle("bc01: boundary elimination keeps matrix symmetric")

	n := 10
	asm, m := buildTriDiag(n)
	rhs := make([]float64, n)
	for i := range rhs {
		rhs[i] = 1
	}
	fixed := make([]bool, n)
	fixed[0] = true
	fixed[n-1] = true
	asm.ApplyBC(m, fixed, rhs)
	if !m.IsSymmetric(1e-12) {
		tst.Fatalf("matrix not symmetric after BC elimination")
	}
	if rhs[0] != 0 || rhs[n-1] != 0 {
		tst.Fatalf("rhs not zeroed at fixed dofs")
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package csr implements the sparse CSR stiffness matrix, its symbolic
// assembly / value re-fill cycle, and the Jacobi-preconditioned
// conjugate-gradient linear solver used by the SIMP driver.
package csr

import "github.com/cpmech/gosl/la"

// Matrix is a symmetric sparse matrix stored in compressed sparse row (CSR)
// format: RowPtr has length N+1, ColIdx and Val have length RowPtr[N].
type Matrix struct {
	N      int
	RowPtr []int
	ColIdx []int
	Val    []float64
}

// MulVec computes y = A*x.
func (m *Matrix) MulVec(y, x []float64) {
	for i := 0; i < m.N; i++ {
		s := 0.0
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			s += m.Val[k] * x[m.ColIdx[k]]
		}
		y[i] = s
	}
}

// Diag returns the diagonal of the matrix, 0 where no explicit entry exists.
func (m *Matrix) Diag() []float64 {
	d := make([]float64, m.N)
	for i := 0; i < m.N; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			if m.ColIdx[k] == i {
				d[i] = m.Val[k]
			}
		}
	}
	return d
}

// IsSymmetric checks K == K^T within an absolute tolerance by probing every
// stored entry against its transpose counterpart. Intended for tests, not
// the hot assembly path.
func (m *Matrix) IsSymmetric(tol float64) bool {
	dense := m.denseLookup()
	for i := 0; i < m.N; i++ {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			j := m.ColIdx[k]
			if absf(m.Val[k]-dense(j, i)) > tol {
				return false
			}
		}
	}
	return true
}

func (m *Matrix) denseLookup() func(i, j int) float64 {
	return func(i, j int) float64 {
		for k := m.RowPtr[i]; k < m.RowPtr[i+1]; k++ {
			if m.ColIdx[k] == j {
				return m.Val[k]
			}
		}
		return 0
	}
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// vecNorm, vecCopy, vecFill delegate to gosl/la's dense vector helpers,
// the same primitives the teacher uses around its own sparse matrix-vector
// routines (fem/essenbcs.go, fem/domain.go); vecDot is a plain loop.
func vecDot(u, v []float64) float64 {
	s := 0.0
	for i := range u {
		s += u[i] * v[i]
	}
	return s
}

func vecNorm(v []float64) float64 { return la.VecNorm(v) }

func vecCopy(dst, src []float64) { la.VecCopy(dst, 1, src) }

func vecFill(v []float64, val float64) { la.VecFill(v, val) }

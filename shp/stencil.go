// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// ElementStencil is the reference element matrix Ke0, computed once per
// grid from (nu, dx, dy[, dz]) assuming unit Young's modulus. It is
// read-only after construction and shared by every element in the grid;
// SIMP interpolation scales it per element at assembly time.
type ElementStencil struct {
	Ke   [][]float64 // 24x24 (hex) or 8x8 (quad), symmetric PSD
	Ndof int         // dofs per element: 24 (hex) or 8 (quad)
}

// hex8Natural holds the natural coordinates of the 8 hex corner nodes in
// the canonical ordering used by grid.Grid.ElemNodes: bottom face ccw then
// top face ccw.
var hex8Natural = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// quad4Natural holds the natural coordinates of the 4 quad corner nodes.
var quad4Natural = [4][2]float64{
	{-1, -1}, {1, -1}, {1, 1}, {-1, 1},
}

// BuildHex8Stencil computes the 24x24 reference stiffness matrix for an
// 8-node trilinear hexahedron of dimensions (dx,dy,dz) with isotropic
// material of unit Young's modulus and Poisson's ratio nu, via 2x2x2
// Gauss quadrature.
func BuildHex8Stencil(nu, dx, dy, dz float64) *ElementStencil {
	D := isotropic3D(nu)
	n := 24
	Ke := newSquare(n)
	jxi, jeta, jzeta := dx/2, dy/2, dz/2
	detJ := jxi * jeta * jzeta

	for _, xi := range gauss2.Pts {
		for _, eta := range gauss2.Pts {
			for _, zeta := range gauss2.Pts {
				B := hex8Bmatrix(xi, eta, zeta, dx, dy, dz)
				w := 1.0 * 1.0 * 1.0 * detJ
				addBtDB(Ke, B, D, w)
			}
		}
	}
	symmetrize(Ke)
	checkSymmetric("hex8 stencil", Ke, 1e-10)
	return &ElementStencil{Ke: Ke, Ndof: n}
}

// BuildQuad4Stencil computes the 8x8 reference stiffness matrix for a
// 4-node bilinear quadrilateral of dimensions (dx,dy) under plane-stress
// assumptions, unit Young's modulus and Poisson's ratio nu, via 2x2 Gauss
// quadrature.
func BuildQuad4Stencil(nu, dx, dy float64) *ElementStencil {
	D := planeStressD(nu)
	n := 8
	Ke := newSquare(n)
	jxi, jeta := dx/2, dy/2
	detJ := jxi * jeta

	for _, xi := range gauss2.Pts {
		for _, eta := range gauss2.Pts {
			B := quad4Bmatrix(xi, eta, dx, dy)
			w := 1.0 * 1.0 * detJ
			addBtDB(Ke, B, D, w)
		}
	}
	symmetrize(Ke)
	checkSymmetric("quad4 stencil", Ke, 1e-10)
	return &ElementStencil{Ke: Ke, Ndof: n}
}

// hex8Bmatrix returns the 6x24 strain-displacement matrix at natural
// coordinates (xi,eta,zeta), ordered [exx,eyy,ezz,gxy,gyz,gzx].
func hex8Bmatrix(xi, eta, zeta, dx, dy, dz float64) [][]float64 {
	B := make([][]float64, 6)
	for i := range B {
		B[i] = make([]float64, 24)
	}
	for i, nc := range hex8Natural {
		xiI, etaI, zetaI := nc[0], nc[1], nc[2]
		dNdxi := 0.125 * xiI * (1 + eta*etaI) * (1 + zeta*zetaI)
		dNdeta := 0.125 * (1 + xi*xiI) * etaI * (1 + zeta*zetaI)
		dNdzeta := 0.125 * (1 + xi*xiI) * (1 + eta*etaI) * zetaI
		dNdx := dNdxi * (2.0 / dx)
		dNdy := dNdeta * (2.0 / dy)
		dNdz := dNdzeta * (2.0 / dz)
		c := 3 * i
		B[0][c+0] = dNdx
		B[1][c+1] = dNdy
		B[2][c+2] = dNdz
		B[3][c+0], B[3][c+1] = dNdy, dNdx
		B[4][c+1], B[4][c+2] = dNdz, dNdy
		B[5][c+0], B[5][c+2] = dNdz, dNdx
	}
	return B
}

// quad4Bmatrix returns the 3x8 strain-displacement matrix at natural
// coordinates (xi,eta), ordered [exx,eyy,gxy].
func quad4Bmatrix(xi, eta, dx, dy float64) [][]float64 {
	B := make([][]float64, 3)
	for i := range B {
		B[i] = make([]float64, 8)
	}
	for i, nc := range quad4Natural {
		xiI, etaI := nc[0], nc[1]
		dNdxi := 0.25 * xiI * (1 + eta*etaI)
		dNdeta := 0.25 * (1 + xi*xiI) * etaI
		dNdx := dNdxi * (2.0 / dx)
		dNdy := dNdeta * (2.0 / dy)
		c := 2 * i
		B[0][c+0] = dNdx
		B[1][c+1] = dNdy
		B[2][c+0], B[2][c+1] = dNdy, dNdx
	}
	return B
}

// addBtDB accumulates w * B^T * D * B into Ke.
func addBtDB(Ke, B, D [][]float64, w float64) {
	nstr := len(D)
	ndof := len(B[0])
	DB := make([][]float64, nstr)
	for i := 0; i < nstr; i++ {
		DB[i] = make([]float64, ndof)
		for j := 0; j < ndof; j++ {
			s := 0.0
			for k := 0; k < nstr; k++ {
				s += D[i][k] * B[k][j]
			}
			DB[i][j] = s
		}
	}
	for i := 0; i < ndof; i++ {
		for j := 0; j < ndof; j++ {
			s := 0.0
			for k := 0; k < nstr; k++ {
				s += B[k][i] * DB[k][j]
			}
			Ke[i][j] += w * s
		}
	}
}

func newSquare(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// symmetrize averages off-diagonal rounding noise accumulated across Gauss
// points: Ke = (Ke + Ke^T) / 2.
func symmetrize(m [][]float64) {
	n := len(m)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := 0.5 * (m[i][j] + m[j][i])
			m[i][j] = avg
			m[j][i] = avg
		}
	}
}

// checkSymmetric panics if m is not symmetric to the given relative
// tolerance; a construction-time invariant violation, not a recoverable
// engine error.
func checkSymmetric(name string, m [][]float64, tol float64) {
	n := len(m)
	maxAbs, maxDiff := 0.0, 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := math.Abs(m[i][j] - m[j][i])
			if d > maxDiff {
				maxDiff = d
			}
			if math.Abs(m[i][j]) > maxAbs {
				maxAbs = math.Abs(m[i][j])
			}
		}
	}
	if maxAbs < 1e-300 {
		return
	}
	if maxDiff/maxAbs > tol {
		chk.Panic("%s is not symmetric: relative asymmetry = %g", name, maxDiff/maxAbs)
	}
}

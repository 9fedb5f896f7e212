// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

// planeStressD returns the 3x3 plane-stress constitutive matrix for unit
// Young's modulus and Poisson's ratio nu, ordered [exx, eyy, gxy].
func planeStressD(nu float64) [][]float64 {
	c := 1.0 / (1.0 - nu*nu)
	g := (1.0 - nu) / 2.0
	return [][]float64{
		{c * 1.0, c * nu, 0},
		{c * nu, c * 1.0, 0},
		{0, 0, c * g},
	}
}

// isotropic3D returns the 6x6 isotropic constitutive matrix for unit
// Young's modulus and Poisson's ratio nu, ordered
// [exx, eyy, ezz, gxy, gyz, gzx].
func isotropic3D(nu float64) [][]float64 {
	c := 1.0 / ((1.0 + nu) * (1.0 - 2.0*nu))
	g := (1.0 - 2.0*nu) / 2.0
	d := make([][]float64, 6)
	for i := range d {
		d[i] = make([]float64, 6)
	}
	d[0][0], d[0][1], d[0][2] = c*(1-nu), c*nu, c*nu
	d[1][0], d[1][1], d[1][2] = c*nu, c*(1-nu), c*nu
	d[2][0], d[2][1], d[2][2] = c*nu, c*nu, c*(1-nu)
	d[3][3] = c * g
	d[4][4] = c * g
	d[5][5] = c * g
	return d
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements the reference element stencils (hex8, quad4)
// used by the SIMP assembler: Gauss quadrature, shape-function
// derivatives and the isotropic / plane-stress constitutive matrices.
package shp

import "math"

// gauss2 holds the standard 2-point Gauss-Legendre rule on [-1,1].
var gauss2 = struct {
	Pts [2]float64
	Wts [2]float64
}{
	Pts: [2]float64{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)},
	Wts: [2]float64{1.0, 1.0},
}

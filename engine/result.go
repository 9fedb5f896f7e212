// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "github.com/cpmech/simpcore/extract"

// OptimizationResult is the terminal summary of a run: the final density
// field plus every geometry product the caller opted into.
type OptimizationResult struct {
	Iterations      int
	Converged       bool
	FinalCompliance float64
	Volume          float64
	SurfaceArea     float64

	Densities []float64

	Surface *extract.Mesh

	PointCloud   *extract.PointCloud
	CurveNetwork *extract.CurveNetwork
	Multipipe    *extract.Mesh
}

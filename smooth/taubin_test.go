// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/simpcore/extract"
	"github.com/cpmech/simpcore/grid"
)

func unitCubeMesh(tst *testing.T) *extract.Mesh {
	g, err := grid.NewGrid([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, 3, 3, 3)
	if err != nil {
		tst.Fatalf("NewGrid: %v", err)
	}
	rho := make([]float64, g.NElem())
	for i := range rho {
		rho[i] = 1
	}
	sg := extract.BuildNodeScalarField(g, rho)
	mesh, err := extract.ExtractIsosurface(sg, 0.5)
	if err != nil {
		tst.Fatalf("ExtractIsosurface: %v", err)
	}
	return mesh
}

func TestWrap01(tst *testing.T) {

	chk.PrintTitle("wrap01: smoothing a solid box does not change its volume much")

	mesh := unitCubeMesh(tst)
	volBefore := math.Abs(mesh.Volume())

	out := Wrap(mesh, Config{Lambda: 0.33, Mu: -0.34, Iterations: 10, WrapDistance: 0.1})
	volAfter := math.Abs(out.Volume())

	if math.Abs(volAfter-volBefore) > 0.1*volBefore {
		tst.Fatalf("volume drifted too much: before=%g after=%g", volBefore, volAfter)
	}
	if len(out.Normals) != len(out.Vertices) {
		tst.Fatalf("expected one normal per vertex")
	}
}

func TestWrap02(tst *testing.T) {

	chk.PrintTitle("wrap02: displacement never exceeds wrap_distance")

	mesh := unitCubeMesh(tst)
	original := make([][3]float64, len(mesh.Vertices))
	copy(original, mesh.Vertices)

	const wrapDist = 0.02
	out := Wrap(mesh, Config{Lambda: 0.5, Mu: -0.53, Iterations: 20, WrapDistance: wrapDist})

	for i, p := range out.Vertices {
		d := math.Sqrt(
			(p[0]-original[i][0])*(p[0]-original[i][0]) +
				(p[1]-original[i][1])*(p[1]-original[i][1]) +
				(p[2]-original[i][2])*(p[2]-original[i][2]))
		if d > wrapDist+1e-9 {
			tst.Fatalf("vertex %d moved %g beyond wrap_distance %g", i, d, wrapDist)
		}
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/simpcore/grid"
	"github.com/cpmech/simpcore/simperr"
)

func filledCube(tst *testing.T) *grid.Grid {
	g, err := grid.NewGrid([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, 4, 4, 4)
	if err != nil {
		tst.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestIsosurface01(tst *testing.T) {

	chk.PrintTitle("isosurface01: a uniformly solid cube extracts a closed box")

	g := filledCube(tst)
	rho := make([]float64, g.NElem())
	for i := range rho {
		rho[i] = 1
	}
	sg := BuildNodeScalarField(g, rho)
	mesh, err := ExtractIsosurface(sg, 0.5)
	if err != nil {
		tst.Fatalf("ExtractIsosurface: %v", err)
	}
	if len(mesh.Triangles) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
	vol := math.Abs(mesh.Volume())
	if math.Abs(vol-1.0) > 0.05 {
		tst.Fatalf("expected volume close to 1, got %g", vol)
	}
	for _, n := range mesh.Normals {
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l > 1e-9 && math.Abs(l-1) > 1e-6 {
			tst.Fatalf("normal not unit length: %g", l)
		}
	}
}

func TestIsosurface02(tst *testing.T) {

	chk.PrintTitle("isosurface02: an empty density field raises EXTRACTION_EMPTY")

	g := filledCube(tst)
	rho := make([]float64, g.NElem())
	sg := BuildNodeScalarField(g, rho)
	_, err := ExtractIsosurface(sg, 0.5)
	if err == nil {
		tst.Fatalf("expected an error")
	}
	if !simperr.IsKind(err, simperr.ExtractionEmpty) {
		tst.Fatalf("expected ExtractionEmpty, got %v", err)
	}
}

func TestIsosurface03(tst *testing.T) {

	chk.PrintTitle("isosurface03: extraction of a 2D grid still returns a mesh")

	g, err := grid.NewGrid([3]float64{0, 0, 0}, [3]float64{2, 1, 0}, 8, 4, 1)
	if err != nil {
		tst.Fatalf("NewGrid: %v", err)
	}
	rho := make([]float64, g.NElem())
	for i := range rho {
		rho[i] = 1
	}
	sg := BuildNodeScalarField(g, rho)
	mesh, err := ExtractIsosurface(sg, 0.5)
	if err != nil {
		tst.Fatalf("ExtractIsosurface: %v", err)
	}
	if len(mesh.Triangles) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
}

func TestSkeleton01(tst *testing.T) {

	chk.PrintTitle("skeleton01: two disjoint solid blocks yield two point-cloud points")

	g, err := grid.NewGrid([3]float64{0, 0, 0}, [3]float64{10, 1, 1}, 10, 1, 1)
	if err != nil {
		tst.Fatalf("NewGrid: %v", err)
	}
	rho := make([]float64, g.NElem())
	rho[0] = 1
	rho[1] = 1
	rho[8] = 1
	rho[9] = 1
	pc := ExtractPointCloud(g, rho, 0.5)
	if len(pc.Points) != 2 {
		tst.Fatalf("expected 2 components, got %d", len(pc.Points))
	}

	cn := ExtractCurveNetwork(pc, 100, 4)
	if len(cn.Edges) != 1 {
		tst.Fatalf("expected 1 edge linking the 2 points, got %d", len(cn.Edges))
	}

	pipe := ExtractMultipipe(cn, 0.1, 8)
	if len(pipe.Triangles) == 0 {
		tst.Fatalf("expected a non-empty pipe mesh")
	}
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package extract implements the isosurface (marching tetrahedra) and
// skeletal (point cloud, curve network, multipipe) geometry extraction
// from a SIMP density field, per spec §4.I.
package extract

import "math"

// Mesh is an indexed triangle mesh with one normal per vertex,
// area-weighted from its incident triangles.
type Mesh struct {
	Vertices  [][3]float64
	Normals   [][3]float64
	Triangles [][3]int
}

// Volume returns the (possibly negative, if inconsistently wound) signed
// volume enclosed by the mesh via the divergence theorem; callers take the
// absolute value.
func (m *Mesh) Volume() float64 {
	v := 0.0
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		v += signedTetVolume6(a, b, c)
	}
	return v / 6.0
}

// SurfaceArea returns the sum of triangle areas.
func (m *Mesh) SurfaceArea() float64 {
	a := 0.0
	for _, t := range m.Triangles {
		a += triArea(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])
	}
	return a
}

func signedTetVolume6(a, b, c [3]float64) float64 {
	return a[0]*(b[1]*c[2]-b[2]*c[1]) - a[1]*(b[0]*c[2]-b[2]*c[0]) + a[2]*(b[0]*c[1]-b[1]*c[0])
}

func triArea(a, b, c [3]float64) float64 {
	n := cross(sub(b, a), sub(c, a))
	return 0.5 * norm(n)
}

// PointCloud is a set of representative points, one per connected dense
// region.
type PointCloud struct {
	Points [][3]float64
}

// CurveNetwork connects points within a max span, up to a per-point degree
// cap.
type CurveNetwork struct {
	Points [][3]float64
	Edges  [][2]int
}

// computeNormals recomputes per-vertex normals as the area-weighted
// average of incident triangle face normals.
func computeNormals(verts [][3]float64, tris [][3]int) [][3]float64 {
	normals := make([][3]float64, len(verts))
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		n := cross(sub(b, a), sub(c, a)) // magnitude == 2*area, used directly as the weight
		for _, vi := range t {
			normals[vi][0] += n[0]
			normals[vi][1] += n[1]
			normals[vi][2] += n[2]
		}
	}
	for i, n := range normals {
		l := norm(n)
		if l > 1e-300 {
			normals[i] = [3]float64{n[0] / l, n[1] / l, n[2] / l}
		}
	}
	return normals
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func add(a, b [3]float64) [3]float64 { return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func scale(a [3]float64, s float64) [3]float64 { return [3]float64{a[0] * s, a[1] * s, a[2] * s} }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func norm(a [3]float64) float64 { return math.Sqrt(dot(a, a)) }

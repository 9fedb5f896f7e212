// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package smooth implements Taubin's alternating (lambda, mu) Laplacian
// smoothing, used as a "plastic wrap" post-pass over an extracted
// isosurface to remove the voxel-stair texture left by marching
// tetrahedra, per spec §4.J.
package smooth

import (
	"math"

	"github.com/cpmech/simpcore/extract"
)

// Config controls the Taubin smoothing pass.
type Config struct {
	Lambda       float64 // positive shrink step, e.g. 0.33
	Mu           float64 // negative inflate step, e.g. -0.34 (|Mu| > Lambda avoids net shrinkage)
	Iterations   int
	WrapDistance float64 // maximum per-vertex displacement from its original position; 0 disables the clamp
}

// Wrap applies Iterations rounds of (Lambda, Mu) Laplacian smoothing to a
// copy of m with degenerate faces removed and returns that copy with
// recomputed normals; m itself is left unchanged. Each vertex move is clamped to WrapDistance from
// its pre-smoothing position, per spec §4.J.
func Wrap(m *extract.Mesh, cfg Config) *extract.Mesh {
	m = removeDegenerate(m)
	if len(m.Vertices) == 0 {
		return m
	}
	adj := buildAdjacency(m)
	original := make([][3]float64, len(m.Vertices))
	copy(original, m.Vertices)

	for it := 0; it < cfg.Iterations; it++ {
		laplacianStep(m, adj, cfg.Lambda, original, cfg.WrapDistance)
		laplacianStep(m, adj, cfg.Mu, original, cfg.WrapDistance)
	}

	m.Normals = recomputeNormals(m)
	return m
}

func buildAdjacency(m *extract.Mesh) [][]int {
	seen := make([]map[int]bool, len(m.Vertices))
	for i := range seen {
		seen[i] = make(map[int]bool)
	}
	for _, t := range m.Triangles {
		edges := [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}}
		for _, e := range edges {
			seen[e[0]][e[1]] = true
			seen[e[1]][e[0]] = true
		}
	}
	adj := make([][]int, len(m.Vertices))
	for i, set := range seen {
		for j := range set {
			adj[i] = append(adj[i], j)
		}
	}
	return adj
}

func laplacianStep(m *extract.Mesh, adj [][]int, factor float64, original [][3]float64, wrapDist float64) {
	next := make([][3]float64, len(m.Vertices))
	copy(next, m.Vertices)
	for i, nbrs := range adj {
		if len(nbrs) == 0 {
			continue
		}
		var mean [3]float64
		for _, j := range nbrs {
			mean[0] += m.Vertices[j][0]
			mean[1] += m.Vertices[j][1]
			mean[2] += m.Vertices[j][2]
		}
		n := float64(len(nbrs))
		mean[0] /= n
		mean[1] /= n
		mean[2] /= n

		p := m.Vertices[i]
		moved := [3]float64{
			p[0] + factor*(mean[0]-p[0]),
			p[1] + factor*(mean[1]-p[1]),
			p[2] + factor*(mean[2]-p[2]),
		}
		if wrapDist > 0 {
			moved = clampDisplacement(moved, original[i], wrapDist)
		}
		next[i] = moved
	}
	m.Vertices = next
}

func clampDisplacement(p, origin [3]float64, maxDist float64) [3]float64 {
	d := [3]float64{p[0] - origin[0], p[1] - origin[1], p[2] - origin[2]}
	dist := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if dist <= maxDist || dist == 0 {
		return p
	}
	scale := maxDist / dist
	return [3]float64{
		origin[0] + d[0]*scale,
		origin[1] + d[1]*scale,
		origin[2] + d[2]*scale,
	}
}

// removeDegenerate drops triangles with two coincident vertices or an area
// below 1e-15. It does not check manifoldness across neighboring
// triangles, and it does not log what it drops.
func removeDegenerate(m *extract.Mesh) *extract.Mesh {
	kept := m.Triangles[:0:0]
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		if a == b || b == c || a == c {
			continue
		}
		if triangleArea(a, b, c) < 1e-15 {
			continue
		}
		kept = append(kept, t)
	}
	return &extract.Mesh{Vertices: m.Vertices, Triangles: kept}
}

func triangleArea(a, b, c [3]float64) float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	return 0.5 * math.Sqrt(nx*nx+ny*ny+nz*nz)
}

func recomputeNormals(m *extract.Mesh) [][3]float64 {
	normals := make([][3]float64, len(m.Vertices))
	for _, t := range m.Triangles {
		a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
		vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
		n := [3]float64{uy*vz - uz*vy, uz*vx - ux*vz, ux*vy - uy*vx}
		for _, vi := range t {
			normals[vi][0] += n[0]
			normals[vi][1] += n[1]
			normals[vi][2] += n[2]
		}
	}
	for i, n := range normals {
		l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l > 1e-300 {
			normals[i] = [3]float64{n[0] / l, n[1] / l, n[2] / l}
		}
	}
	return normals
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"math"
	"sort"

	"github.com/cpmech/simpcore/grid"
)

// ExtractPointCloud labels face-connected components among the elements
// with density >= threshold and returns one representative point (the
// density-weighted centroid) per component.
func ExtractPointCloud(g *grid.Grid, rho []float64, threshold float64) *PointCloud {
	labels := componentLabels(g, rho, threshold)
	nComp := 0
	for _, l := range labels {
		if l+1 > nComp {
			nComp = l + 1
		}
	}
	sumPos := make([][3]float64, nComp)
	sumW := make([]float64, nComp)
	for e, l := range labels {
		if l < 0 {
			continue
		}
		c := g.ElemCenter(e)
		w := rho[e]
		sumPos[l] = add(sumPos[l], scale(c, w))
		sumW[l] += w
	}
	pc := &PointCloud{}
	for i := 0; i < nComp; i++ {
		if sumW[i] <= 0 {
			continue
		}
		pc.Points = append(pc.Points, scale(sumPos[i], 1/sumW[i]))
	}
	return pc
}

// componentLabels assigns each element a 6-connected (3D) / 4-connected
// (2D) component id, or -1 if it is below threshold.
func componentLabels(g *grid.Grid, rho []float64, threshold float64) []int {
	n := g.NElem()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	neighbors := func(e int) []int {
		var ex, ey, ez int
		if g.Is2D() {
			ex, ey = e%g.Nx, e/g.Nx
		} else {
			ex = e % g.Nx
			ey = (e / g.Nx) % g.Ny
			ez = e / (g.Nx * g.Ny)
		}
		var out []int
		try := func(dx, dy, dz int) {
			nx, ny, nz := ex+dx, ey+dy, ez+dz
			if nx < 0 || nx >= g.Nx || ny < 0 || ny >= g.Ny {
				return
			}
			if !g.Is2D() && (nz < 0 || nz >= g.Nz) {
				return
			}
			out = append(out, g.ElemIndex(nx, ny, nz))
		}
		try(1, 0, 0)
		try(-1, 0, 0)
		try(0, 1, 0)
		try(0, -1, 0)
		if !g.Is2D() {
			try(0, 0, 1)
			try(0, 0, -1)
		}
		return out
	}

	next := 0
	queue := make([]int, 0, n)
	for start := 0; start < n; start++ {
		if rho[start] < threshold || labels[start] >= 0 {
			continue
		}
		label := next
		next++
		queue = queue[:0]
		queue = append(queue, start)
		labels[start] = label
		for len(queue) > 0 {
			e := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, nb := range neighbors(e) {
				if rho[nb] >= threshold && labels[nb] < 0 {
					labels[nb] = label
					queue = append(queue, nb)
				}
			}
		}
	}
	return labels
}

// ExtractCurveNetwork links every point to its nearest neighbors within
// maxSpan, up to maxLinks per point, greedily by ascending distance. This
// produces a sparse proximity graph suitable for rendering as a strut
// skeleton; it is not a minimum spanning tree or a guaranteed-connected
// graph.
func ExtractCurveNetwork(pc *PointCloud, maxSpan float64, maxLinks int) *CurveNetwork {
	type candidate struct {
		i, j int
		d    float64
	}
	var cands []candidate
	for i := 0; i < len(pc.Points); i++ {
		for j := i + 1; j < len(pc.Points); j++ {
			d := norm(sub(pc.Points[i], pc.Points[j]))
			if d <= maxSpan {
				cands = append(cands, candidate{i, j, d})
			}
		}
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].d < cands[b].d })

	degree := make([]int, len(pc.Points))
	cn := &CurveNetwork{Points: pc.Points}
	for _, c := range cands {
		if degree[c.i] >= maxLinks || degree[c.j] >= maxLinks {
			continue
		}
		cn.Edges = append(cn.Edges, [2]int{c.i, c.j})
		degree[c.i]++
		degree[c.j]++
	}
	return cn
}

// ExtractMultipipe sweeps a circular cross-section of the given radius and
// segment count along every edge of a curve network, producing a single
// mesh of tube side walls. The tube ends are left open (no caps) and
// joints are not filleted.
func ExtractMultipipe(cn *CurveNetwork, radius float64, segments int) *Mesh {
	m := &Mesh{}
	for _, e := range cn.Edges {
		a, b := cn.Points[e[0]], cn.Points[e[1]]
		appendPipe(m, a, b, radius, segments)
	}
	m.Normals = computeNormals(m.Vertices, m.Triangles)
	return m
}

func appendPipe(m *Mesh, a, b [3]float64, radius float64, segments int) {
	axis := sub(b, a)
	length := norm(axis)
	if length < 1e-12 || segments < 3 {
		return
	}
	axis = scale(axis, 1/length)
	u, v := orthonormalBasis(axis)

	base := len(m.Vertices)
	for _, center := range [2][3]float64{a, b} {
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			offset := add(scale(u, radius*math.Cos(theta)), scale(v, radius*math.Sin(theta)))
			m.Vertices = append(m.Vertices, add(center, offset))
		}
	}
	for s := 0; s < segments; s++ {
		s2 := (s + 1) % segments
		i0, i1 := base+s, base+s2
		j0, j1 := base+segments+s, base+segments+s2
		m.Triangles = append(m.Triangles, [3]int{i0, i1, j1})
		m.Triangles = append(m.Triangles, [3]int{i0, j1, j0})
	}
}

func orthonormalBasis(axis [3]float64) (u, v [3]float64) {
	ref := [3]float64{0, 0, 1}
	if math.Abs(axis[2]) > 0.9 {
		ref = [3]float64{1, 0, 0}
	}
	u = cross(axis, ref)
	u = scale(u, 1/norm(u))
	v = cross(axis, u)
	return u, v
}

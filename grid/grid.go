// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the uniform hex/quad element grid that
// the SIMP engine optimizes over: bounds-to-grid binding, node/dof
// numbering and anchor/load-to-dof mapping.
package grid

import (
	"math"

	"github.com/cpmech/simpcore/simperr"
)

// Grid holds a uniform hexahedral (3D) or quadrilateral (2D) element grid
// spanning an axis-aligned bounding box. Nz==1 signals a 2D (plane-stress)
// problem; the z extent is then ignored for element generation purposes.
type Grid struct {
	Nx, Ny, Nz int        // element counts along each axis
	Min, Max   [3]float64 // bounding box
	Dx, Dy, Dz float64    // element spacing
}

// Is2D reports whether this grid represents a plane-stress problem.
func (g *Grid) Is2D() bool { return g.Nz == 1 }

// Dof returns the number of translational dofs per node: 2 in 2D, 3 in 3D.
func (g *Grid) Dof() int {
	if g.Is2D() {
		return 2
	}
	return 3
}

// NElem returns the total number of elements.
func (g *Grid) NElem() int { return g.Nx * g.Ny * g.Nz }

// NNode returns the total number of nodes.
func (g *Grid) NNode() int {
	nz := g.Nz + 1
	if g.Is2D() {
		nz = 1
	}
	return (g.Nx + 1) * (g.Ny + 1) * nz
}

// NDof returns the total number of degrees of freedom.
func (g *Grid) NDof() int { return g.NNode() * g.Dof() }

// NewGrid validates the bounding box and element counts and derives element
// spacing. nz == 1 is interpreted as a 2D plane-stress problem (min.z ==
// max.z is then allowed and dz is set to 0).
func NewGrid(min, max [3]float64, nx, ny, nz int) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, simperr.NewError(simperr.InvalidDomain, "grid dimensions must be >= 1: nx=%d ny=%d nz=%d", nx, ny, nz)
	}
	is2D := nz == 1
	spanX := max[0] - min[0]
	spanY := max[1] - min[1]
	spanZ := max[2] - min[2]
	if spanX <= 0 || spanY <= 0 {
		return nil, simperr.NewError(simperr.InvalidDomain, "domain has zero or negative span in x/y: span=(%g,%g)", spanX, spanY)
	}
	if !is2D && spanZ <= 0 {
		return nil, simperr.NewError(simperr.InvalidDomain, "3D domain has zero or negative span in z: span=%g", spanZ)
	}
	g := &Grid{Nx: nx, Ny: ny, Nz: nz, Min: min, Max: max}
	g.Dx = spanX / float64(nx)
	g.Dy = spanY / float64(ny)
	if is2D {
		g.Dz = 0
	} else {
		g.Dz = spanZ / float64(nz)
	}
	return g, nil
}

// ElemIndex returns the flat element index for grid coordinates (ex,ey,ez).
func (g *Grid) ElemIndex(ex, ey, ez int) int {
	if g.Is2D() {
		return ey*g.Nx + ex
	}
	return ez*g.Nx*g.Ny + ey*g.Nx + ex
}

// ElemCenter returns the physical coordinates of the center of element e.
func (g *Grid) ElemCenter(e int) [3]float64 {
	var ex, ey, ez int
	if g.Is2D() {
		ex = e % g.Nx
		ey = e / g.Nx
	} else {
		ex = e % g.Nx
		ey = (e / g.Nx) % g.Ny
		ez = e / (g.Nx * g.Ny)
	}
	c := [3]float64{
		g.Min[0] + (float64(ex)+0.5)*g.Dx,
		g.Min[1] + (float64(ey)+0.5)*g.Dy,
	}
	if g.Is2D() {
		c[2] = g.Min[2]
	} else {
		c[2] = g.Min[2] + (float64(ez)+0.5)*g.Dz
	}
	return c
}

// NodeIndex returns the flat node index for grid node coordinates (ix,iy,iz).
func (g *Grid) NodeIndex(ix, iy, iz int) int {
	nxn := g.Nx + 1
	nyn := g.Ny + 1
	if g.Is2D() {
		return iy*nxn + ix
	}
	return iz*nxn*nyn + iy*nxn + ix
}

// NodeCoords returns the physical coordinates of node n.
func (g *Grid) NodeCoords(n int) [3]float64 {
	nxn := g.Nx + 1
	nyn := g.Ny + 1
	var ix, iy, iz int
	if g.Is2D() {
		ix = n % nxn
		iy = n / nxn
	} else {
		ix = n % nxn
		iy = (n / nxn) % nyn
		iz = n / (nxn * nyn)
	}
	p := [3]float64{g.Min[0] + float64(ix)*g.Dx, g.Min[1] + float64(iy)*g.Dy, g.Min[2]}
	if !g.Is2D() {
		p[2] = g.Min[2] + float64(iz)*g.Dz
	}
	return p
}

// ElemNodes returns the 8 global node ids of element e in canonical hex
// ordering (bottom face ccw then top face ccw), degenerating to the 4
// corners of a quad in 2D.
func (g *Grid) ElemNodes(e int) []int {
	var ex, ey, ez int
	if g.Is2D() {
		ex = e % g.Nx
		ey = e / g.Nx
	} else {
		ex = e % g.Nx
		ey = (e / g.Nx) % g.Ny
		ez = e / (g.Nx * g.Ny)
	}
	if g.Is2D() {
		return []int{
			g.NodeIndex(ex, ey, 0),
			g.NodeIndex(ex+1, ey, 0),
			g.NodeIndex(ex+1, ey+1, 0),
			g.NodeIndex(ex, ey+1, 0),
		}
	}
	return []int{
		g.NodeIndex(ex, ey, ez),
		g.NodeIndex(ex+1, ey, ez),
		g.NodeIndex(ex+1, ey+1, ez),
		g.NodeIndex(ex, ey+1, ez),
		g.NodeIndex(ex, ey, ez+1),
		g.NodeIndex(ex+1, ey, ez+1),
		g.NodeIndex(ex+1, ey+1, ez+1),
		g.NodeIndex(ex, ey+1, ez+1),
	}
}

// snapToNode maps a physical position to the nearest node grid indices,
// clamped to the grid extent.
func (g *Grid) snapToNode(p [3]float64) (ix, iy, iz int) {
	clampRound := func(v, lo, hi, span float64, n int) int {
		if span <= 0 {
			return 0
		}
		idx := int(math.Round((v - lo) / span * float64(n)))
		if idx < 0 {
			idx = 0
		}
		if idx > n {
			idx = n
		}
		return idx
	}
	ix = clampRound(p[0], g.Min[0], g.Max[0], g.Max[0]-g.Min[0], g.Nx)
	iy = clampRound(p[1], g.Min[1], g.Max[1], g.Max[1]-g.Min[1], g.Ny)
	if g.Is2D() {
		iz = 0
	} else {
		iz = clampRound(p[2], g.Min[2], g.Max[2], g.Max[2]-g.Min[2], g.Nz)
	}
	return
}

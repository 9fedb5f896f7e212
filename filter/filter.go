// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package filter implements the convolutional density filter used to
// regularize the SIMP design against checkerboarding and mesh
// dependence: a per-element sparse neighbor stencil within radius rmin,
// its forward application rho -> rhoBar, and its adjoint for the
// sensitivity chain rule.
package filter

import (
	"math"

	"github.com/cpmech/simpcore/grid"
)

// entry is one (neighbor element, weight) pair in an element's row.
type entry struct {
	elem   int
	weight float64
}

// Kernel holds the precomputed, row-normalized filter stencil: Kernel.rows[e]
// lists the neighbors contributing to element e's filtered density, with
// weights already normalized so they sum to 1 per row.
type Kernel struct {
	rows [][]entry
}

// Build precomputes the filter kernel for every element of g within
// Euclidean distance rmin (in grid length units) of its center, with
// weight = max(0, rmin - distance), normalized per element.
func Build(g *grid.Grid, rmin float64) *Kernel {
	n := g.NElem()
	k := &Kernel{rows: make([][]entry, n)}
	if rmin <= 0 {
		for e := 0; e < n; e++ {
			k.rows[e] = []entry{{elem: e, weight: 1}}
		}
		return k
	}

	// bound the neighbor search by the element count the radius can reach
	// along each axis, to avoid an O(n^2) scan on large grids.
	rx := int(rmin/g.Dx) + 1
	ry := int(rmin/g.Dy) + 1
	rz := 0
	if !g.Is2D() {
		rz = int(rmin/g.Dz) + 1
	}

	for e := 0; e < n; e++ {
		ce := g.ElemCenter(e)
		ex, ey, ez := elemGridCoords(g, e)
		var row []entry
		sum := 0.0
		for dz := -rz; dz <= rz; dz++ {
			jz := ez + dz
			if jz < 0 || (!g.Is2D() && jz >= g.Nz) || (g.Is2D() && jz != 0) {
				continue
			}
			for dy := -ry; dy <= ry; dy++ {
				jy := ey + dy
				if jy < 0 || jy >= g.Ny {
					continue
				}
				for dx := -rx; dx <= rx; dx++ {
					jx := ex + dx
					if jx < 0 || jx >= g.Nx {
						continue
					}
					j := g.ElemIndex(jx, jy, jz)
					cj := g.ElemCenter(j)
					d := dist(ce, cj)
					w := rmin - d
					if w <= 0 {
						continue
					}
					row = append(row, entry{elem: j, weight: w})
					sum += w
				}
			}
		}
		if sum > 0 {
			for i := range row {
				row[i].weight /= sum
			}
		}
		k.rows[e] = row
	}
	return k
}

// Apply computes rhoBar = W * rho.
func (k *Kernel) Apply(rho []float64) []float64 {
	rhoBar := make([]float64, len(rho))
	for e, row := range k.rows {
		s := 0.0
		for _, en := range row {
			s += en.weight * rho[en.elem]
		}
		rhoBar[e] = s
	}
	return rhoBar
}

// ApplyAdjoint computes grad_rho = W^T * gradRhoBar, the chain rule used to
// push the sensitivity from the filtered field back to the raw density.
func (k *Kernel) ApplyAdjoint(gradRhoBar []float64) []float64 {
	gradRho := make([]float64, len(gradRhoBar))
	for e, row := range k.rows {
		g := gradRhoBar[e]
		if g == 0 {
			continue
		}
		for _, en := range row {
			gradRho[en.elem] += en.weight * g
		}
	}
	return gradRho
}

func elemGridCoords(g *grid.Grid, e int) (ex, ey, ez int) {
	if g.Is2D() {
		ex = e % g.Nx
		ey = e / g.Nx
		return
	}
	ex = e % g.Nx
	ey = (e / g.Nx) % g.Ny
	ez = e / (g.Nx * g.Ny)
	return
}

func dist(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import "github.com/cpmech/simpcore/grid"

// ScalarGrid is a structured node-centered scalar field sampled on a
// uniform lattice, independent of the FE grid it may have been derived
// from. Marching tetrahedra operates on this generic representation so it
// can also serve a synthetic, artificially-thickened field for 2D runs.
type ScalarGrid struct {
	Nx, Ny, Nz int // node counts along each axis; Nz>=2 required for a genuine 3D lattice
	Min        [3]float64
	Dx, Dy, Dz float64
	Values     []float64 // length Nx*Ny*Nz, index = iz*Nx*Ny + iy*Nx + ix
}

func (s *ScalarGrid) index(ix, iy, iz int) int { return iz*s.Nx*s.Ny + iy*s.Nx + ix }

func (s *ScalarGrid) pos(ix, iy, iz int) [3]float64 {
	return [3]float64{
		s.Min[0] + float64(ix)*s.Dx,
		s.Min[1] + float64(iy)*s.Dy,
		s.Min[2] + float64(iz)*s.Dz,
	}
}

// averageToNodes converts element-centered densities to node-centered
// values by averaging over incident elements, the standard scheme used to
// feed an element-wise scalar field into a node-based isosurface method.
func averageToNodes(g *grid.Grid, rhoElem []float64) []float64 {
	n := g.NNode()
	sum := make([]float64, n)
	cnt := make([]int, n)
	for e := 0; e < g.NElem(); e++ {
		for _, nd := range g.ElemNodes(e) {
			sum[nd] += rhoElem[e]
			cnt[nd]++
		}
	}
	out := make([]float64, n)
	for i := range out {
		if cnt[i] > 0 {
			out[i] = sum[i] / float64(cnt[i])
		}
	}
	return out
}

// BuildNodeScalarField produces the ScalarGrid that isosurface extraction
// samples. A 2D grid has no out-of-plane extent for marching tetrahedra to
// operate on, so its single node layer is duplicated into a thin synthetic
// slab; the resulting "surface" is a thin shell enclosing the same in-plane
// footprint, not a meaningful 3D shape, but it keeps the extractor generic.
func BuildNodeScalarField(g *grid.Grid, rhoElem []float64) *ScalarGrid {
	nodeVals := averageToNodes(g, rhoElem)
	nxn, nyn := g.Nx+1, g.Ny+1
	if g.Is2D() {
		span := g.Dx
		if g.Dy < span {
			span = g.Dy
		}
		dz := 0.25 * span
		vals := make([]float64, nxn*nyn*2)
		copy(vals[:nxn*nyn], nodeVals)
		copy(vals[nxn*nyn:], nodeVals)
		return &ScalarGrid{
			Nx: nxn, Ny: nyn, Nz: 2,
			Min: [3]float64{g.Min[0], g.Min[1], -dz / 2},
			Dx:  g.Dx, Dy: g.Dy, Dz: dz,
			Values: vals,
		}
	}
	return &ScalarGrid{
		Nx: nxn, Ny: nyn, Nz: g.Nz + 1,
		Min: g.Min, Dx: g.Dx, Dy: g.Dy, Dz: g.Dz,
		Values: nodeVals,
	}
}

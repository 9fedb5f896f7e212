// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import "github.com/cpmech/simpcore/simperr"

// hexTetDecomposition splits a hex cell into 6 tets sharing the (0,6) main
// diagonal. The pattern is translation-invariant, so neighboring cells
// agree on the diagonal of every face they share and no cracks appear
// between adjacent cells.
var hexTetDecomposition = [6][4]int{
	{0, 1, 2, 6},
	{0, 2, 3, 6},
	{0, 3, 7, 6},
	{0, 7, 4, 6},
	{0, 4, 5, 6},
	{0, 5, 1, 6},
}

// ExtractIsosurface samples sg at threshold and returns the triangle mesh
// of {x : value(x) >= threshold}, via marching tetrahedra. The scalar
// field is piecewise linear on each tet (it is linearly interpolated from
// the 8 node values of the enclosing cell along one of 6 tets), so the cut
// within a tet is always exactly planar and the classic 1/3-split
// tetrahedron case table applies without approximation.
//
// One extra layer of cells past every face of the lattice is marched too:
// its outer nodes count as below threshold and sit on the boundary face,
// so a region that touches the lattice boundary is closed off there.
//
// Returns simperr.ExtractionEmpty if no node value reaches the threshold.
func ExtractIsosurface(sg *ScalarGrid, threshold float64) (*Mesh, error) {
	vertIndex := make(map[[3]float64]int)
	var verts [][3]float64
	var tris [][3]int

	addVertex := func(p [3]float64) int {
		if idx, ok := vertIndex[p]; ok {
			return idx
		}
		idx := len(verts)
		verts = append(verts, p)
		vertIndex[p] = idx
		return idx
	}

	var corner [8][3]float64
	var value [8]float64

	pad := threshold - 1
	clamp := func(i, n int) int { return max(0, min(i, n-1)) }
	for cz := -1; cz < sg.Nz; cz++ {
		for cy := -1; cy < sg.Ny; cy++ {
			for cx := -1; cx < sg.Nx; cx++ {
				offs := [8][3]int{
					{cx, cy, cz}, {cx + 1, cy, cz}, {cx + 1, cy + 1, cz}, {cx, cy + 1, cz},
					{cx, cy, cz + 1}, {cx + 1, cy, cz + 1}, {cx + 1, cy + 1, cz + 1}, {cx, cy + 1, cz + 1},
				}
				for i, o := range offs {
					ix, iy, iz := clamp(o[0], sg.Nx), clamp(o[1], sg.Ny), clamp(o[2], sg.Nz)
					corner[i] = sg.pos(ix, iy, iz)
					if ix != o[0] || iy != o[1] || iz != o[2] {
						value[i] = pad
					} else {
						value[i] = sg.Values[sg.index(ix, iy, iz)]
					}
				}
				for _, tet := range hexTetDecomposition {
					var tv [4][3]float64
					var tf [4]float64
					for i, ti := range tet {
						tv[i] = corner[ti]
						tf[i] = value[ti]
					}
					marchTet(tv, tf, threshold, addVertex, &tris)
				}
			}
		}
	}

	if len(tris) == 0 {
		return nil, simperr.NewError(simperr.ExtractionEmpty, "no node of the density field reaches threshold %g", threshold)
	}

	return &Mesh{Vertices: verts, Normals: computeNormals(verts, tris), Triangles: tris}, nil
}

// marchTet appends the 0, 1 or 2 triangles of the threshold cut within one
// tetrahedron. The scalar field being affine on the tet makes the cut an
// exact plane, so a minority-side construction (the 1 or 2 vertices on the
// smaller side of the threshold) is sufficient; no lookup table is needed.
func marchTet(v [4][3]float64, val [4]float64, threshold float64, addVertex func([3]float64) int, tris *[][3]int) {
	var inside [4]bool
	count := 0
	for i := 0; i < 4; i++ {
		inside[i] = val[i] >= threshold
		if inside[i] {
			count++
		}
	}
	if count == 0 || count == 4 {
		return
	}

	cut := func(a, b int) [3]float64 {
		t := (threshold - val[a]) / (val[b] - val[a])
		return [3]float64{
			v[a][0] + t*(v[b][0]-v[a][0]),
			v[a][1] + t*(v[b][1]-v[a][1]),
			v[a][2] + t*(v[b][2]-v[a][2]),
		}
	}

	switch count {
	case 1, 3:
		minority := count == 1 // the "true" side is the single one
		var lone int
		for i := 0; i < 4; i++ {
			if inside[i] == minority {
				lone = i
			}
		}
		var others []int
		for i := 0; i < 4; i++ {
			if i != lone {
				others = append(others, i)
			}
		}
		p0 := addVertex(cut(lone, others[0]))
		p1 := addVertex(cut(lone, others[1]))
		p2 := addVertex(cut(lone, others[2]))
		// every tet of hexTetDecomposition is positively oriented, so
		// (p0,p1,p2) faces away from the lone vertex when it sits at an even
		// position of the tet and toward it otherwise; wind so the normal
		// points away from the inside
		if (lone%2 == 0) == minority {
			*tris = append(*tris, [3]int{p0, p1, p2})
		} else {
			*tris = append(*tris, [3]int{p0, p2, p1})
		}
	case 2:
		var a, b []int
		for i := 0; i < 4; i++ {
			if inside[i] {
				a = append(a, i)
			} else {
				b = append(b, i)
			}
		}
		p00 := addVertex(cut(a[0], b[0]))
		p10 := addVertex(cut(a[1], b[0]))
		p11 := addVertex(cut(a[1], b[1]))
		p01 := addVertex(cut(a[0], b[1]))
		if (a[0]+a[1])%2 == 0 {
			// {0,2} or {1,3} inside: this order already faces the outside
			*tris = append(*tris, [3]int{p00, p10, p11})
			*tris = append(*tris, [3]int{p00, p11, p01})
		} else {
			*tris = append(*tris, [3]int{p00, p11, p10})
			*tris = append(*tris, [3]int{p00, p01, p11})
		}
	}
}

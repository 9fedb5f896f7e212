// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// LoadMarker is a point load applied at a physical position.
type LoadMarker struct {
	Pos   [3]float64
	Force [3]float64
}

// GoalMarkers holds the anchors (fixed supports) and loads the caller
// provides; positions are in the same physical units as the domain bounds.
type GoalMarkers struct {
	Anchors []([3]float64)
	Loads   []LoadMarker
}

// FEModel holds the dof bookkeeping derived from a Grid and GoalMarkers:
// which dofs are fixed and the assembled nodal force vector.
type FEModel struct {
	Grid      *Grid
	NElem     int
	NNode     int
	NDof      int
	FixedDofs []bool
	Forces    []float64
}

// BuildFEModel maps anchors and loads onto the grid's nodes and returns the
// resulting FEModel plus any non-fatal warnings (e.g. under-constrained BC
// augmentation, per the §4.A edge policy).
func BuildFEModel(g *Grid, markers GoalMarkers) (*FEModel, []string) {
	D := g.Dof()
	m := &FEModel{
		Grid:      g,
		NElem:     g.NElem(),
		NNode:     g.NNode(),
		NDof:      g.NDof(),
		FixedDofs: make([]bool, g.NDof()),
		Forces:    make([]float64, g.NDof()),
	}

	var warnings []string

	for _, a := range markers.Anchors {
		ix, iy, iz := g.snapToNode(a)
		n := g.NodeIndex(ix, iy, iz)
		for d := 0; d < D; d++ {
			m.FixedDofs[n*D+d] = true
		}
	}

	for _, l := range markers.Loads {
		ix, iy, iz := g.snapToNode(l.Pos)
		n := g.NodeIndex(ix, iy, iz)
		for d := 0; d < D; d++ {
			m.Forces[n*D+d] += l.Force[d]
		}
	}

	minFixed := 2 * D
	nFixed := countTrue(m.FixedDofs)
	if nFixed < minFixed {
		corners := gridCornerNodes(g)
		for _, n := range corners {
			if nFixed >= minFixed {
				break
			}
			for d := 0; d < D; d++ {
				if !m.FixedDofs[n*D+d] {
					m.FixedDofs[n*D+d] = true
					nFixed++
				}
			}
		}
		warnings = append(warnings, "under-constrained model: auto-augmented with corner-node supports")
	}

	return m, warnings
}

// gridCornerNodes returns the grid's corner node ids in a deterministic
// order: four corners in 2D, eight in 3D.
func gridCornerNodes(g *Grid) []int {
	if g.Is2D() {
		return []int{
			g.NodeIndex(0, 0, 0),
			g.NodeIndex(g.Nx, 0, 0),
			g.NodeIndex(g.Nx, g.Ny, 0),
			g.NodeIndex(0, g.Ny, 0),
		}
	}
	return []int{
		g.NodeIndex(0, 0, 0),
		g.NodeIndex(g.Nx, 0, 0),
		g.NodeIndex(g.Nx, g.Ny, 0),
		g.NodeIndex(0, g.Ny, 0),
		g.NodeIndex(0, 0, g.Nz),
		g.NodeIndex(g.Nx, 0, g.Nz),
		g.NodeIndex(g.Nx, g.Ny, g.Nz),
		g.NodeIndex(0, g.Ny, g.Nz),
	}
}

func countTrue(b []bool) int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}

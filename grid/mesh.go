// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// DomainMesh is an indexed triangle mesh used only to derive the
// axis-aligned bounding box of the optimization domain.
type DomainMesh struct {
	Positions [][3]float64
	Triangles [][3]int
}

// BoundingBox returns the axis-aligned min/max corners of the mesh.
func (m *DomainMesh) BoundingBox() (min, max [3]float64) {
	if len(m.Positions) == 0 {
		return
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return
}

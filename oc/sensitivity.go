// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package oc implements the SIMP sensitivity analysis and the
// Optimality-Criteria bisection update used to enforce the volume
// constraint each iteration.
package oc

import "math"

// ElementStrainEnergies computes c_e = u_e^T * Ke0 * u_e for every element,
// given each element's local-to-global dof map, the shared reference
// stencil Ke0 and the global displacement vector u.
func ElementStrainEnergies(elemMaps [][]int, ke0 [][]float64, u []float64) []float64 {
	n := len(elemMaps)
	c := make([]float64, n)
	for e, emap := range elemMaps {
		nd := len(emap)
		ue := make([]float64, nd)
		for i, g := range emap {
			ue[i] = u[g]
		}
		s := 0.0
		for i := 0; i < nd; i++ {
			row := ke0[i]
			acc := 0.0
			for j := 0; j < nd; j++ {
				acc += row[j] * ue[j]
			}
			s += ue[i] * acc
		}
		c[e] = s
	}
	return c
}

// Compliance computes f^T * u, the work done by the external loads; this
// equals u^T*K*u at equilibrium and is the quantity SIMP minimizes.
func Compliance(forces, u []float64) float64 {
	s := 0.0
	for i := range forces {
		s += forces[i] * u[i]
	}
	return s
}

// Sensitivity computes dC/drhoBar_e = -p*(E0-Eeff_min)*rhoBar_e^(p-1)*c_e
// for every element, the derivative of compliance with respect to the
// filtered density.
func Sensitivity(rhoBar, cE []float64, p, e0, eEffMin float64) []float64 {
	n := len(rhoBar)
	d := make([]float64, n)
	for e := 0; e < n; e++ {
		d[e] = -p * (e0 - eEffMin) * pow(rhoBar[e], p-1) * cE[e]
	}
	return d
}

func pow(base, exp float64) float64 {
	if exp == 1 {
		return base
	}
	// small integer fast-path avoids a math.Pow call in the hot per-element loop
	if exp == float64(int(exp)) && exp >= 0 && exp <= 8 {
		r := 1.0
		n := int(exp)
		for i := 0; i < n; i++ {
			r *= base
		}
		return r
	}
	return math.Pow(base, exp)
}

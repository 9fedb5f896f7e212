// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package simp implements the SIMP driver: the orchestration loop that
// sequences filter -> assemble -> solve -> sensitivity -> OC update each
// iteration and exposes it as a pull-based, cooperatively-yielding
// iterator of SolverFrame records.
package simp

// SolverFrame is an immutable snapshot emitted at the end of an iteration
// that matches the emit schedule. Densities is a copy, safe to retain
// across further Advance() calls.
type SolverFrame struct {
	Iter        int
	Compliance  float64
	Change      float64
	Vol         float64
	Densities   []float64
	Converged   bool
	FeIters     int
	FeConverged bool
}

// State is the driver's lifecycle state, per spec §4.H:
// idle -> running -> (paused <-> running) -> (converged | error | stopped).
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateConverged State = "converged"
	StateError     State = "error"
	StateStopped   State = "stopped"
)

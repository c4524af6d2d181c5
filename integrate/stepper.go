// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrate implements fixed-step integrators for continuous
// flows (RK4, Tsit5) and the discrete-map stepper. Step-size adaptation is
// the continuation engine's job (package palc), not the integrator's.
package integrate

// System is the minimal evaluation contract a stepper needs: write f(t,x)
// into out. eqsys.EquationSystem.Apply satisfies this directly.
type System interface {
	Apply(t float64, x, out []float64)
}

// Stepper advances the state by one fixed step dt. All steppers are
// allocation-free after construction.
type Stepper interface {
	Step(sys System, t float64, x []float64, dt float64)
}

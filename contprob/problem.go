// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contprob defines the continuation-problem contract shared by
// every curve type: equilibrium curves and limit-cycle curves (package
// colloc) in one parameter, and the bordered codim-2 curves in two
// parameters (package codim2). The PALC engine (package palc) drives any
// Problem without knowing its concrete kind, the same
// small-interface-many-implementers idiom as mdl/solid.Model with its
// Small/Large/OneD specializations.
package contprob

import "math/cmplx"

// TestFunctionValues records the six real-valued bifurcation detectors
// tracked along a curve. Inactive channels must carry the sentinel 1.0
// (never crosses zero) so sign-change logic in package bifurc stays
// uniform across problem kinds.
type TestFunctionValues struct {
	Fold           float64
	Hopf           float64
	NeutralSaddle  float64
	CycleFold      float64
	PeriodDoubling float64
	NeimarkSacker  float64
}

// Inactive is the sentinel for a channel a given problem kind does not
// produce.
const Inactive = 1.0

// Equilibrium builds TestFunctionValues for an equilibrium curve (package
// palc with a bare equilibrium Problem): the three cycle-only channels are
// inactive.
func Equilibrium(fold, hopf, neutralSaddle float64) TestFunctionValues {
	return TestFunctionValues{
		Fold: fold, Hopf: hopf, NeutralSaddle: neutralSaddle,
		CycleFold: Inactive, PeriodDoubling: Inactive, NeimarkSacker: Inactive,
	}
}

// LimitCycle builds TestFunctionValues for a limit-cycle curve (package
// colloc): the three equilibrium-only channels are inactive.
func LimitCycle(cycleFold, periodDoubling, neimarkSacker float64) TestFunctionValues {
	return TestFunctionValues{
		Fold: Inactive, Hopf: Inactive, NeutralSaddle: Inactive,
		CycleFold: cycleFold, PeriodDoubling: periodDoubling, NeimarkSacker: neimarkSacker,
	}
}

// IsFinite reports whether every channel is a finite float.
func (v TestFunctionValues) IsFinite() bool {
	for _, x := range []float64{v.Fold, v.Hopf, v.NeutralSaddle, v.CycleFold, v.PeriodDoubling, v.NeimarkSacker} {
		if x != x || x > 1e300 || x < -1e300 { // NaN check without importing math twice
			return false
		}
	}
	return true
}

// Diagnostics is the bundled return of one accepted continuation step:
// test values, Jacobian eigenvalues at that point, and (for limit-cycle
// problems) the discretized cycle profile points.
type Diagnostics struct {
	TestValues  TestFunctionValues
	Eigenvalues []complex128
	CyclePoints [][]float64 // nil for equilibrium problems
}

// DominantCrossingIsComplex reports whether the dominant crossing pair (the
// eigenvalue pair whose real parts sum closest to zero) has an imaginary
// part above tol, used by package bifurc to disambiguate Hopf from
// NeutralSaddle.
func (d Diagnostics) DominantCrossingIsComplex(tol float64) bool {
	ev := d.Eigenvalues
	if len(ev) < 2 {
		return false
	}
	sumAbs := func(i, j int) float64 { return cmplx.Abs(complex(real(ev[i])+real(ev[j]), 0)) }
	bestI, bestJ := 0, 1
	for i := 0; i < len(ev); i++ {
		for j := i + 1; j < len(ev); j++ {
			if sumAbs(i, j) < sumAbs(bestI, bestJ) {
				bestI, bestJ = i, j
			}
		}
	}
	return cmplx.Abs(complex(0, imag(ev[bestI]))) > tol || cmplx.Abs(complex(0, imag(ev[bestJ]))) > tol
}

// Problem is the uniform interface every curve type satisfies. aug is
// always exactly Dimension()+1 long, uniformly across every implementer:
// package palc's Engine treats the last coordinate as the tracked
// continuation parameter regardless of what it represents for a given
// curve family (the single parameter for EquilibriumProblem and
// colloc.Problem; p2 for codim2's fold/LPC/PD curves, which put p1 into
// the state portion of aug; kappa for codim2's Hopf/NS curves, which put
// both p1 and p2 into the state portion).
type Problem interface {
	// Dimension returns the number of equations the residual produces
	// (n_eq); the augmented system has n_eq+1 unknowns and equations once
	// PALC's arclength row is appended.
	Dimension() int

	// Residual evaluates F(aug) into out (length Dimension()).
	Residual(aug []float64, out []float64) error

	// ExtendedJacobian returns the Dimension() x (Dimension()+1) Jacobian
	// of Residual with respect to every augmented coordinate.
	ExtendedJacobian(aug []float64) ([][]float64, error)

	// Diagnostics computes the bifurcation test values, eigenvalues, and
	// optional cycle points at aug.
	Diagnostics(aug []float64) (Diagnostics, error)

	// UpdateAfterStep is called after an accepted step; the default
	// behavior (no-op) is satisfied by embedding NoPostStep.
	UpdateAfterStep(aug []float64) error
}

// NoPostStep gives UpdateAfterStep a no-op default so most Problem
// implementations need not define it explicitly (embed NoPostStep).
type NoPostStep struct{}

func (NoPostStep) UpdateAfterStep([]float64) error { return nil }

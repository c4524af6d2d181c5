// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colloc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/vm"
)

func harmonicOscillator(t *testing.T) *eqsys.EquationSystem {
	t.Helper()
	names := expr.NameIndex{Vars: map[string]int{"x": 0, "y": 1}, Params: map[string]int{"k": 0}}
	exprs := []string{"y", "0 - k*x"}
	progs := make([]*vm.Program, len(exprs))
	for i, src := range exprs {
		e, err := expr.Parse(src)
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		p, err := expr.Compile(names, e)
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		progs[i] = p
	}
	sys, err := eqsys.New(eqsys.Continuous, progs, []string{"x", "y"}, []string{"k"}, fun.Prms{{N: "k", V: 1}})
	if err != nil {
		t.Fatalf("eqsys.New: %v", err)
	}
	return sys
}

// TestMonodromyOnHarmonicOscillator checks a collocation BVP property:
// for the constant-period planar harmonic oscillator, the
// monodromy has the trivial +1 multiplier plus one additional multiplier
// within 1e-3 of its analytical value. The linear center x'=y, y'=-x has a
// monodromy equal to the identity over any period (eigenvalues {1,1}
// exactly), so both multipliers sit at the analytical value 1.
func TestMonodromyOnHarmonicOscillator(t *testing.T) {
	sys := harmonicOscillator(t)
	ntst, ncol := 8, 3
	anchor := []float64{1, 0}

	prob, err := NewProblem(sys, sys.ParamIndex("k"), ntst, ncol, anchor)
	if err != nil {
		t.Fatalf("NewProblem: %v", err)
	}

	dim := prob.Dimension()
	aug := make([]float64, dim+1)
	T := 2 * math.Pi
	h := T / float64(ntst)
	for i := 0; i <= ntst; i++ {
		theta := float64(i) * h
		m := aug[prob.meshOffset(i) : prob.meshOffset(i)+2]
		m[0] = math.Cos(theta)
		m[1] = -math.Sin(theta)
	}
	for i := 0; i < ntst; i++ {
		for s := 0; s < ncol; s++ {
			theta := (float64(i) + prob.Mesh.C[s]) * h
			z := aug[prob.stageOffset(i, s) : prob.stageOffset(i, s)+2]
			z[0] = math.Cos(theta)
			z[1] = -math.Sin(theta)
		}
	}
	aug[prob.periodIndex()] = T
	aug[dim] = 1 // parameter k

	diag, err := prob.Diagnostics(aug)
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if len(diag.Eigenvalues) != 2 {
		t.Fatalf("expected 2 multipliers, got %d: %v", len(diag.Eigenvalues), diag.Eigenvalues)
	}
	for _, mu := range diag.Eigenvalues {
		if math.Abs(real(mu)-1) > 1e-3 || math.Abs(imag(mu)) > 1e-3 {
			t.Fatalf("multiplier %v not within tolerance of the analytical value 1", mu)
		}
	}
}

func TestMeshCoefficientsReproduceConstantField(t *testing.T) {
	// b_k must sum to 1 (integral of 1 over [0,1] via the quadrature), a
	// sanity check on the precomputed Gauss-Lagrange coefficients.
	mesh, err := NewMesh(3)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}
	sum := 0.0
	for _, b := range mesh.B {
		sum += b
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("sum(B) = %v, want 1", sum)
	}
}

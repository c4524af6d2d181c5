// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/bifurc"
	"github.com/cpmech/gobif/branch"
	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/vm"
)

func buildSystem(t *testing.T, kind eqsys.Kind, exprs []string, vars, params []string, initial fun.Prms) *eqsys.EquationSystem {
	t.Helper()
	names := expr.NameIndex{Vars: indexMap(vars), Params: indexMap(params)}

	progs := make([]*vm.Program, len(exprs))
	for i, src := range exprs {
		e, err := expr.Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		p, err := expr.Compile(names, e)
		if err != nil {
			t.Fatalf("compile %q: %v", src, err)
		}
		progs[i] = p
	}

	sys, err := eqsys.New(kind, progs, vars, params, initial)
	if err != nil {
		t.Fatalf("eqsys.New: %v", err)
	}
	return sys
}

func indexMap(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func newFoldSystem(t *testing.T) *eqsys.EquationSystem {
	return buildSystem(t, eqsys.Continuous,
		[]string{"x^2 + a"},
		[]string{"x"}, []string{"a"},
		fun.Prms{{N: "a", V: -1}})
}

func newHopfSystem(t *testing.T) *eqsys.EquationSystem {
	return buildSystem(t, eqsys.Continuous,
		[]string{"mu*x - y", "x + mu*y"},
		[]string{"x", "y"}, []string{"mu"},
		fun.Prms{{N: "mu", V: -0.5}})
}

func TestFoldDetectionOnScalarSquarePlusParameter(t *testing.T) {
	sys := newFoldSystem(t)
	prob := contprob.NewEquilibriumProblem(sys, sys.ParamIndex("a"))

	settings := DefaultSettings()
	settings.StepSize = 0.1
	settings.MaxStepSize = 0.2
	settings.MaxSteps = 60

	eng, err := New(prob, settings, branch.Equilibrium)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// aug = [x, a]; start at (a=-1, x=1)
	b, _, err := eng.Run([]float64{1, -1}, +1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	foundFold := false
	for _, bf := range b.Bifurcations {
		if bf.Kind == bifurc.Fold {
			foundFold = true
		}
	}
	if !foundFold {
		t.Fatalf("expected a Fold bifurcation on dx/dt=x^2+a, got bifurcations %v", b.Bifurcations)
	}
}

func TestHopfDetectionOnLinearSpiral(t *testing.T) {
	sys := newHopfSystem(t)
	prob := contprob.NewEquilibriumProblem(sys, sys.ParamIndex("mu"))

	settings := DefaultSettings()
	settings.StepSize = 0.05
	settings.MaxStepSize = 0.1
	settings.MaxSteps = 60

	eng, err := New(prob, settings, branch.Equilibrium)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// aug = [x, y, mu]; start at (mu=-0.5, x=y=0)
	b, _, err := eng.Run([]float64{0, 0, -0.5}, +1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	found := false
	for _, bf := range b.Bifurcations {
		if bf.Kind == bifurc.Hopf {
			found = true
			muBif := b.Points[bf.Index].ParamValue
			if math.Abs(muBif) >= 1e-3 {
				t.Fatalf("Hopf detected at mu=%v, want |mu|<1e-3", muBif)
			}
		}
	}
	if !found {
		t.Fatalf("expected a Hopf bifurcation on the linear spiral, got bifurcations %v", b.Bifurcations)
	}
}

func TestTangentIsUnitNorm(t *testing.T) {
	sys := newFoldSystem(t)
	prob := contprob.NewEquilibriumProblem(sys, sys.ParamIndex("a"))
	eng, err := New(prob, DefaultSettings(), branch.Equilibrium)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tangent, err := eng.initialTangent([]float64{1, -1}, +1)
	if err != nil {
		t.Fatalf("initialTangent: %v", err)
	}
	norm := norm2(tangent)
	if math.Abs(norm-1) > 1e-9 {
		t.Fatalf("tangent norm = %v, want 1", norm)
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eqsys

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/vm"
)

// buildFoldSystem compiles f(x) = x^2 + a, the canonical fold example,
// for this file's evaluation and derivative tests.
func buildFoldSystem(t *testing.T) *EquationSystem {
	t.Helper()
	e, err := expr.Parse("x^2 + a")
	if err != nil {
		t.Fatal(err)
	}
	names := expr.NameIndex{Vars: map[string]int{"x": 0}, Params: map[string]int{"a": 0}}
	prog, err := expr.Compile(names, e)
	if err != nil {
		t.Fatal(err)
	}
	sys, err := New(Continuous, []*vm.Program{prog}, []string{"x"}, []string{"a"}, fun.Prms{{N: "a", V: -1}})
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func TestApply(t *testing.T) {
	sys := buildFoldSystem(t)
	out := make([]float64, 1)
	sys.Apply(0, []float64{1}, out)
	if math.Abs(out[0]-0) > 1e-12 {
		t.Fatalf("f(1) with a=-1 = %v, want 0", out[0])
	}
}

func TestJacobianWrtState(t *testing.T) {
	sys := buildFoldSystem(t)
	J := sys.EvaluateJacobianWrtState([]float64{2})
	want := 4.0 // d/dx(x^2+a) = 2x = 4
	if math.Abs(J[0][0]-want) > 1e-9 {
		t.Fatalf("J = %v, want %v", J[0][0], want)
	}
}

func TestDerivativeWrtParam(t *testing.T) {
	sys := buildFoldSystem(t)
	d := sys.EvaluateDerivativeWrtParam([]float64{2}, 0)
	if math.Abs(d[0]-1) > 1e-12 {
		t.Fatalf("df/da = %v, want 1", d[0])
	}
}

func TestWithParamRestoresOnError(t *testing.T) {
	sys := buildFoldSystem(t)
	before := sys.Param(0)
	err := sys.WithParam(0, 99, func() error { return errBoom })
	if err != errBoom {
		t.Fatalf("expected errBoom, got %v", err)
	}
	if sys.Param(0) != before {
		t.Fatalf("parameter not restored after error: got %v, want %v", sys.Param(0), before)
	}
}

func TestWithParamRestoresOnPanic(t *testing.T) {
	sys := buildFoldSystem(t)
	before := sys.Param(0)
	func() {
		defer func() { recover() }()
		sys.WithParam(0, 42, func() error {
			panic("boom")
		})
	}()
	if sys.Param(0) != before {
		t.Fatalf("parameter not restored after panic: got %v, want %v", sys.Param(0), before)
	}
}

type sentinelErr struct{ s string }

func (e *sentinelErr) Error() string { return e.s }

var errBoom = &sentinelErr{"boom"}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"math"
	"testing"

	"github.com/cpmech/gobif/scalar"
)

// program for x0^2 + p0, i.e. LoadVar(0), LoadConst(2), Pow, LoadParam(0), Add
func sampleProgram() *Program {
	return NewProgram([]Op{
		{Kind: LoadVar, Index: 0},
		{Kind: LoadConst, Const: 2},
		{Kind: OpPow},
		{Kind: LoadParam, Index: 0},
		{Kind: OpAdd},
	})
}

func TestExecuteReal(t *testing.T) {
	p := sampleProgram()
	sc := NewScratch[scalar.Real](p.Len())
	vars := []scalar.Real{3}
	params := []scalar.Real{-1}
	got := Execute(p, vars, params, sc, func(c float64) scalar.Real { return scalar.Real(c) })
	if math.Abs(float64(got)-8) > 1e-12 {
		t.Fatalf("x^2+p at x=3,p=-1 = %v, want 8", got)
	}
}

func TestExecuteDualSeededOnVar(t *testing.T) {
	p := sampleProgram()
	sc := NewScratch[scalar.Dual](p.Len())
	vars := []scalar.Dual{scalar.Seed(3)}
	params := []scalar.Dual{scalar.NewDual(-1)}
	got := Execute(p, vars, params, sc, scalar.NewDual)
	if math.Abs(got.Val-8) > 1e-12 {
		t.Fatalf("value = %v, want 8", got.Val)
	}
	if math.Abs(got.Eps-6) > 1e-12 { // d/dx (x^2+p) = 2x = 6
		t.Fatalf("tangent = %v, want 6", got.Eps)
	}
}

func TestExecuteReusesScratch(t *testing.T) {
	p := sampleProgram()
	sc := NewScratch[scalar.Real](p.Len())
	fromReal := func(c float64) scalar.Real { return scalar.Real(c) }
	for i := 0; i < 3; i++ {
		got := Execute(p, []scalar.Real{scalar.Real(i)}, []scalar.Real{0}, sc, fromReal)
		want := scalar.Real(i * i)
		if got != want {
			t.Fatalf("iteration %d: got %v want %v", i, got, want)
		}
	}
}

func TestExecutePanicsOnMalformedProgram(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on malformed program")
		}
	}()
	p := NewProgram([]Op{{Kind: OpAdd}}) // pops from an empty stack
	sc := NewScratch[scalar.Real](1)
	Execute(p, nil, nil, sc, func(c float64) scalar.Real { return scalar.Real(c) })
}

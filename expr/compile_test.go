// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"
	"testing"

	"github.com/cpmech/gobif/scalar"
	"github.com/cpmech/gobif/vm"
)

func TestCompileAndExecute(t *testing.T) {
	e, err := Parse("x^2 + a")
	if err != nil {
		t.Fatal(err)
	}
	names := NameIndex{Vars: map[string]int{"x": 0}, Params: map[string]int{"a": 0}}
	prog, err := Compile(names, e)
	if err != nil {
		t.Fatal(err)
	}
	sc := vm.NewScratch[scalar.Real](prog.Len())
	got := vm.Execute(prog, []scalar.Real{3}, []scalar.Real{-1}, sc, func(c float64) scalar.Real { return scalar.Real(c) })
	if math.Abs(float64(got)-8) > 1e-12 {
		t.Fatalf("x^2+a at x=3,a=-1 = %v, want 8", got)
	}
}

func TestCompileRejectsUnknownIdentifier(t *testing.T) {
	e, err := Parse("x + y")
	if err != nil {
		t.Fatal(err)
	}
	names := NameIndex{Vars: map[string]int{"x": 0}, Params: map[string]int{}}
	if _, err := Compile(names, e); err == nil {
		t.Fatal("expected compile-time error for unknown identifier y")
	}
}

func TestCompileRejectsUnknownFunction(t *testing.T) {
	e, err := Parse("sqrt(x)")
	if err != nil {
		t.Fatal(err)
	}
	names := NameIndex{Vars: map[string]int{"x": 0}}
	if _, err := Compile(names, e); err == nil {
		t.Fatal("expected compile-time error for unsupported function sqrt")
	}
}

func TestParsePrecedence(t *testing.T) {
	e, err := Parse("2 + 3 * 4 ^ 2")
	if err != nil {
		t.Fatal(err)
	}
	names := NameIndex{Vars: map[string]int{}, Params: map[string]int{}}
	prog, err := Compile(names, e)
	if err != nil {
		t.Fatal(err)
	}
	sc := vm.NewScratch[scalar.Real](prog.Len())
	got := vm.Execute(prog, nil, nil, sc, func(c float64) scalar.Real { return scalar.Real(c) })
	want := scalar.Real(2 + 3*16)
	if got != want {
		t.Fatalf("2+3*4^2 = %v, want %v", got, want)
	}
}

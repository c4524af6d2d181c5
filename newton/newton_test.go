// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/vm"
)

func buildLinear(t *testing.T, slope float64) *eqsys.EquationSystem {
	t.Helper()
	e, err := expr.Parse("k * x")
	if err != nil {
		t.Fatal(err)
	}
	names := expr.NameIndex{Vars: map[string]int{"x": 0}, Params: map[string]int{"k": 0}}
	prog, err := expr.Compile(names, e)
	if err != nil {
		t.Fatal(err)
	}
	sys, err := eqsys.New(eqsys.Continuous, []*vm.Program{prog}, []string{"x"}, []string{"k"}, fun.Prms{{N: "k", V: slope}})
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func TestSolveConvergesInFewIterations(t *testing.T) {
	sys := buildLinear(t, 2) // f(x) = 2x, root at x=0
	res, err := Solve(sys, []float64{3}, Settings{MaxIterations: 10, Tolerance: 1e-9, Damping: 1})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.X[0]) > 1e-9 {
		t.Fatalf("root = %v, want ~0", res.X[0])
	}
	if res.Iterations > 2 {
		t.Fatalf("converged in %d iterations, want <= 2", res.Iterations)
	}
}

func TestSolveFailsWithZeroIterationBudget(t *testing.T) {
	sys := buildLinear(t, 2)
	_, err := Solve(sys, []float64{3}, Settings{MaxIterations: 0, Tolerance: 1e-9, Damping: 1})
	if err == nil {
		t.Fatal("expected non-convergence error with MaxIterations=0")
	}
	if !IsNotConverged(err) {
		t.Fatalf("expected a not-converged error, got %v", err)
	}
}

func TestEigenPairsOnDiagonalMatrix(t *testing.T) {
	J := [][]float64{{2, 0}, {0, -3}}
	eig, err := EigenPairs(J)
	if err != nil {
		t.Fatal(err)
	}
	if len(eig) != 2 {
		t.Fatalf("expected 2 eigenpairs, got %d", len(eig))
	}
	found2, foundNeg3 := false, false
	for _, e := range eig {
		if math.Abs(real(e.Value)-2) < 1e-9 && math.Abs(imag(e.Value)) < 1e-9 {
			found2 = true
		}
		if math.Abs(real(e.Value)+3) < 1e-9 && math.Abs(imag(e.Value)) < 1e-9 {
			foundNeg3 = true
		}
	}
	if !found2 || !foundNeg3 {
		t.Fatalf("eigenvalues %v, want {2,-3}", eig)
	}
}

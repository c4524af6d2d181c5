// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codim2

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/branch"
	"github.com/cpmech/gobif/colloc"
	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/palc"
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

// rotation90 has eigenvalues +-i and 2. Its bialternate product is 3x3 with
// the pairwise sums lambda_i+lambda_j as eigenvalues, one of which is
// i+(-i) = 0, so BialternateProduct's determinant must vanish exactly.
func TestBialternateProductVanishesForImaginaryPair(t *testing.T) {
	a := [][]float64{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 2},
	}
	b2 := BialternateProduct(a)
	if len(b2) != 3 {
		t.Fatalf("bialternate dimension = %d, want 3 for n=3", len(b2))
	}
	det := Determinant(b2)
	if math.Abs(det) > 1e-9 {
		t.Fatalf("bialternate determinant = %v, want ~0 (eigenvalue pair +-i sums to 0)", det)
	}
}

func TestDeterminantOfIdentityIsOne(t *testing.T) {
	id := [][]float64{{1, 0}, {0, 1}}
	if d := Determinant(id); math.Abs(d-1) > 1e-12 {
		t.Fatalf("det(I) = %v, want 1", d)
	}
}

// TestSolveSquareBorderedOnSingularMatrix checks that the bordered solve's
// g proxy vanishes when j is exactly singular and v,w are its (matching)
// left/right null vectors.
func TestSolveSquareBorderedOnSingularMatrix(t *testing.T) {
	j := [][]float64{
		{1, 2},
		{2, 4}, // row2 = 2*row1: singular, right null vector (2,-1), left null vector (2,-1)
	}
	v := []float64{2, -1}
	w := []float64{2, -1}
	vn, _ := normalize(v)
	wn, _ := normalize(w)
	rhs := []float64{0, 0, 1}
	_, g, err := solveSquareBordered(j, vn, wn, rhs)
	if err != nil {
		t.Fatalf("solveSquareBordered: %v", err)
	}
	if math.Abs(g) > 1e-9 {
		t.Fatalf("g = %v, want ~0 at an exactly singular matrix with matching borders", g)
	}
}

func newFoldSystem(t *testing.T) *eqsys.EquationSystem {
	return buildSystem(t, eqsys.Continuous,
		[]string{"x^2 + a + b"},
		[]string{"x"}, []string{"a", "b"},
		fun.Prms{{N: "a", V: 0}, {N: "b", V: 0}})
}

func TestFoldCurveResidualVanishesAtKnownFold(t *testing.T) {
	sys := newFoldSystem(t)
	fc, err := NewFoldCurve(sys, sys.ParamIndex("a"), sys.ParamIndex("b"), []float64{0})
	if err != nil {
		t.Fatalf("NewFoldCurve: %v", err)
	}
	if fc.Dimension() != 2 {
		t.Fatalf("Dimension() = %d, want 2 (N=1 state + 1 g-equation)", fc.Dimension())
	}
	// x^2+a+b has a fold (dF/dx=2x=0) at x=0, any a+b=0.
	aug := []float64{0, 0, 0}
	out := make([]float64, fc.Dimension())
	if err := fc.Residual(aug, out); err != nil {
		t.Fatalf("Residual: %v", err)
	}
	if math.Abs(out[0]) > 1e-9 {
		t.Fatalf("F residual = %v, want 0 at x=0,a=0,b=0", out[0])
	}
	if math.Abs(out[1]) > 1e-6 {
		t.Fatalf("g residual = %v, want ~0: J=2x=0 is exactly singular at the fold", out[1])
	}
}

func TestFoldCurveExtendedJacobianHasRightShape(t *testing.T) {
	sys := newFoldSystem(t)
	fc, err := NewFoldCurve(sys, sys.ParamIndex("a"), sys.ParamIndex("b"), []float64{0})
	if err != nil {
		t.Fatalf("NewFoldCurve: %v", err)
	}
	aug := []float64{0, 0, 0}
	rows, err := fc.ExtendedJacobian(aug)
	if err != nil {
		t.Fatalf("ExtendedJacobian: %v", err)
	}
	if len(rows) != fc.Dimension() {
		t.Fatalf("got %d rows, want %d", len(rows), fc.Dimension())
	}
	for _, r := range rows {
		if len(r) != fc.Dimension()+1 {
			t.Fatalf("row width = %d, want %d (Dimension()+1 for the PALC arclength column)", len(r), fc.Dimension()+1)
		}
	}
}

// TestFoldCurveBorderRefreshKeepsUnitNorm exercises UpdateAfterStep and
// confirms the refreshed borders remain unit vectors.
func TestFoldCurveBorderRefreshKeepsUnitNorm(t *testing.T) {
	sys := newFoldSystem(t)
	fc, err := NewFoldCurve(sys, sys.ParamIndex("a"), sys.ParamIndex("b"), []float64{0})
	if err != nil {
		t.Fatalf("NewFoldCurve: %v", err)
	}
	if err := fc.UpdateAfterStep([]float64{0, 0, 0}); err != nil {
		t.Fatalf("UpdateAfterStep: %v", err)
	}
	if n := norm2(fc.V); math.Abs(n-1) > 1e-6 {
		t.Fatalf("|V| = %v, want ~1 after refresh", n)
	}
	if n := norm2(fc.W); math.Abs(n-1) > 1e-6 {
		t.Fatalf("|W| = %v, want ~1 after refresh", n)
	}
}

func norm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func newHopfSystem(t *testing.T) *eqsys.EquationSystem {
	return buildSystem(t, eqsys.Continuous,
		[]string{"mu*x - y + 0*b", "x + mu*y"},
		[]string{"x", "y"}, []string{"mu", "b"},
		fun.Prms{{N: "mu", V: -0.5}, {N: "b", V: 0}})
}

// TestHopfCurveResidualVanishesAtKnownHopfPoint checks the dimension
// bookkeeping and that both bordered g-channels vanish at the exact Hopf
// point of the linear spiral, where J has eigenvalues mu+-i and
// J^2+kappa*I is singular at mu=0, kappa=1.
func TestHopfCurveResidualVanishesAtKnownHopfPoint(t *testing.T) {
	sys := newHopfSystem(t)
	hc, err := NewHopfCurve(sys, sys.ParamIndex("mu"), sys.ParamIndex("b"), []float64{0, 0}, 0)
	if err != nil {
		t.Fatalf("NewHopfCurve: %v", err)
	}
	if hc.Dimension() != 4 {
		t.Fatalf("Dimension() = %d, want 4 (N=2 state + 2 g-equations)", hc.Dimension())
	}
	// mu=0: J = [[0,-1],[1,0]], J^2 = -I, so J^2+kappa*I is singular at kappa=1.
	aug := []float64{0, 0, 0, 0, 1}
	out := make([]float64, hc.Dimension())
	if err := hc.Residual(aug, out); err != nil {
		t.Fatalf("Residual: %v", err)
	}
	if math.Abs(out[0]) > 1e-9 || math.Abs(out[1]) > 1e-9 {
		t.Fatalf("F residual = (%v,%v), want (0,0) at the origin", out[0], out[1])
	}
	if math.Abs(out[2]) > 1e-6 || math.Abs(out[3]) > 1e-6 {
		t.Fatalf("g residuals = (%v,%v), want ~(0,0): J^2+I is exactly singular at mu=0,kappa=1", out[2], out[3])
	}
}

// oscillatorCycle builds a collocation problem sampling the exact harmonic
// oscillator solution x'=y, y'=-k*x at k=1, T=2*pi, used only to smoke-test
// the LPC/PD/NS curve wiring's dimension bookkeeping, not multiplier
// accuracy (see colloc's own TestMonodromyOnHarmonicOscillator for that).
func oscillatorCycle(t *testing.T) (*colloc.Problem, []float64) {
	t.Helper()
	sys := buildSystem(t, eqsys.Continuous,
		[]string{"y", "0 - k*x"},
		[]string{"x", "y"}, []string{"k", "b"},
		fun.Prms{{N: "k", V: 1}, {N: "b", V: 0}})
	ntst, ncol := 8, 3
	anchor := []float64{1, 0}
	prob, err := colloc.NewProblem(sys, sys.ParamIndex("k"), ntst, ncol, anchor)
	if err != nil {
		t.Fatalf("colloc.NewProblem: %v", err)
	}

	mesh, err := colloc.NewMesh(ncol)
	if err != nil {
		t.Fatalf("colloc.NewMesh: %v", err)
	}
	T := 2 * math.Pi
	aug := make([]float64, prob.Dimension()+1)
	for i := 0; i <= ntst; i++ {
		theta := T * float64(i) / float64(ntst)
		off := i * 2
		aug[off], aug[off+1] = math.Cos(theta), -math.Sin(theta)
	}
	stageOff := (ntst + 1) * 2
	for i := 0; i < ntst; i++ {
		for s := 0; s < ncol; s++ {
			theta0 := T * float64(i) / float64(ntst)
			dtheta := T / float64(ntst) * mesh.C[s]
			theta := theta0 + dtheta
			o := stageOff + (i*ncol+s)*2
			aug[o], aug[o+1] = math.Cos(theta), -math.Sin(theta)
		}
	}
	aug[(ntst+1)*2+ntst*ncol*2] = T
	aug[len(aug)-1] = 1 // k
	return prob, aug
}

func TestLPCCurveDimensionAndResidualShape(t *testing.T) {
	prob, aug := oscillatorCycle(t)
	lc, err := NewLPCCurve(prob, prob.ParamIndex, prob.Sys.ParamIndex("b"))
	if err != nil {
		t.Fatalf("NewLPCCurve: %v", err)
	}
	if lc.Dimension() != prob.Dimension()+1 {
		t.Fatalf("Dimension() = %d, want %d", lc.Dimension(), prob.Dimension()+1)
	}
	full := append(append([]float64(nil), aug...), prob.Sys.Param(prob.Sys.ParamIndex("b")))
	out := make([]float64, lc.Dimension())
	if err := lc.Residual(full, out); err != nil {
		t.Fatalf("Residual: %v", err)
	}
	rows, err := lc.ExtendedJacobian(full)
	if err != nil {
		t.Fatalf("ExtendedJacobian: %v", err)
	}
	if len(rows) != lc.Dimension() {
		t.Fatalf("got %d Jacobian rows, want %d", len(rows), lc.Dimension())
	}
}

func TestPDCurveDimensionAndResidualShape(t *testing.T) {
	prob, aug := oscillatorCycle(t)
	pc, err := NewPDCurve(prob, prob.ParamIndex, prob.Sys.ParamIndex("b"))
	if err != nil {
		t.Fatalf("NewPDCurve: %v", err)
	}
	full := append(append([]float64(nil), aug...), prob.Sys.Param(prob.Sys.ParamIndex("b")))
	out := make([]float64, pc.Dimension())
	if err := pc.Residual(full, out); err != nil {
		t.Fatalf("Residual: %v", err)
	}
}

// TestScanFoldCurveRunsWithoutError drives a short FoldCurve branch through
// palc.Engine and checks ScanFoldCurve can walk its points without error;
// it does not assert a specific organizing center is found (constructing a
// closed-form Bogdanov-Takens example is out of scope for a unit test).
func TestScanFoldCurveRunsWithoutError(t *testing.T) {
	sys := newFoldSystem(t)
	fc, err := NewFoldCurve(sys, sys.ParamIndex("a"), sys.ParamIndex("b"), []float64{0})
	if err != nil {
		t.Fatalf("NewFoldCurve: %v", err)
	}
	settings := palc.DefaultSettings()
	settings.StepSize = 0.05
	settings.MaxSteps = 10
	eng, err := palc.New(fc, settings, branch.FoldCurve)
	if err != nil {
		t.Fatalf("palc.New: %v", err)
	}
	b, _, err := eng.Run([]float64{0, 0, 0}, +1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	hits := ScanFoldCurve(fc, b)
	for _, h := range hits {
		if h.Index < 0 || h.Index >= len(b.Points) {
			t.Fatalf("hit index %d out of range [0,%d)", h.Index, len(b.Points))
		}
	}
}

func TestNSCurveDimensionAndResidualShape(t *testing.T) {
	prob, aug := oscillatorCycle(t)
	nc, err := NewNSCurve(prob, prob.ParamIndex, prob.Sys.ParamIndex("b"), 0.5)
	if err != nil {
		t.Fatalf("NewNSCurve: %v", err)
	}
	if nc.Dimension() != prob.Dimension()+2 {
		t.Fatalf("Dimension() = %d, want %d", nc.Dimension(), prob.Dimension()+2)
	}
	full := append(append([]float64(nil), aug...), prob.Sys.Param(prob.Sys.ParamIndex("b")), 0.5)
	out := make([]float64, nc.Dimension())
	if err := nc.Residual(full, out); err != nil {
		t.Fatalf("Residual: %v", err)
	}
}

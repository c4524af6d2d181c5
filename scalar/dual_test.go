// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scalar

import (
	"math"
	"testing"
)

const eps = 1e-6
const tolCentral = 1e-6

func centralDiff(f func(float64) float64, x float64) float64 {
	return (f(x+eps) - f(x-eps)) / (2 * eps)
}

func checkUnary(t *testing.T, name string, dualOp func(Dual) Scalar, realOp func(float64) float64, x float64) {
	t.Helper()
	got := dualOp(Seed(x)).(Dual)
	want := centralDiff(realOp, x)
	if math.Abs(got.Eps-want) > tolCentral {
		t.Errorf("%s: eps=%.10f, central diff=%.10f", name, got.Eps, want)
	}
	if math.Abs(got.Val-realOp(x)) > 1e-12 {
		t.Errorf("%s: val=%.10f, want=%.10f", name, got.Val, realOp(x))
	}
}

func TestDualUnaryDerivatives(t *testing.T) {
	checkUnary(t, "sqrt", func(a Dual) Scalar { return a.Sqrt() }, math.Sqrt, 4.2)
	checkUnary(t, "exp", func(a Dual) Scalar { return a.Exp() }, math.Exp, 0.7)
	checkUnary(t, "ln", func(a Dual) Scalar { return a.Ln() }, math.Log, 2.3)
	checkUnary(t, "sin", func(a Dual) Scalar { return a.Sin() }, math.Sin, 1.1)
	checkUnary(t, "cos", func(a Dual) Scalar { return a.Cos() }, math.Cos, 1.1)
	checkUnary(t, "tan", func(a Dual) Scalar { return a.Tan() }, math.Tan, 0.4)
	checkUnary(t, "abs-positive", func(a Dual) Scalar { return a.Abs() }, math.Abs, 3.0)
	checkUnary(t, "abs-negative", func(a Dual) Scalar { return a.Abs() }, math.Abs, -3.0)
}

func TestDualEmbedsReal(t *testing.T) {
	x := NewDual(5.0)
	if x.Eps != 0 {
		t.Fatalf("Dual(x,0) must have zero tangent")
	}
	got := x.Sin().(Dual)
	if got.Val != math.Sin(5.0) || got.Eps != 0 {
		t.Fatalf("Dual(x,0) round-trip broke: got %+v", got)
	}
}

func TestDualArithmeticProperties(t *testing.T) {
	a := Seed(1.5)
	b := Dual{Val: 2.25, Eps: 0.3}
	c := Dual{Val: -0.75, Eps: 1.2}

	ab := a.Mul(b).(Dual)
	ba := b.Mul(a).(Dual)
	if math.Abs(ab.Val-ba.Val) > 1e-12 {
		t.Fatalf("multiplication not commutative on primal: %v vs %v", ab.Val, ba.Val)
	}

	lhs := a.Mul(b.Add(c)).(Dual)
	rhs := a.Mul(b).(Dual).Add(a.Mul(c)).(Dual)
	if math.Abs(lhs.Val-rhs.Val) > 1e-12 {
		t.Fatalf("distributivity failed on primal: %v vs %v", lhs.Val, rhs.Val)
	}
}

func TestDualPowInt(t *testing.T) {
	x := Seed(2.0)
	got := x.PowInt(3)
	if math.Abs(got.Val-8) > 1e-12 {
		t.Fatalf("2^3 = %v, want 8", got.Val)
	}
	want := 3 * math.Pow(2.0, 2.0)
	if math.Abs(got.Eps-want) > 1e-12 {
		t.Fatalf("d(x^3)/dx at 2 = %v, want %v", got.Eps, want)
	}
}

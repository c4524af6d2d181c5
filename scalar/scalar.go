// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scalar provides a uniform numeric interface over plain real
// doubles and forward-mode dual numbers, so the same bytecode program
// (see package vm) can be evaluated either for its value or for one
// column of its Jacobian without duplicating the program.
package scalar

import (
	"fmt"
	"math"
)

// Scalar is the capability set required by the bytecode VM and by every
// defining equation built on top of it: field arithmetic, the unary
// transcendentals used by the expression language, and real-projection
// comparisons.
type Scalar interface {
	Add(b Scalar) Scalar
	Sub(b Scalar) Scalar
	Mul(b Scalar) Scalar
	Div(b Scalar) Scalar
	Neg() Scalar
	Pow(b Scalar) Scalar

	Abs() Scalar
	Sqrt() Scalar
	Exp() Scalar
	Ln() Scalar
	Sin() Scalar
	Cos() Scalar
	Tan() Scalar

	// Real returns the real projection (the value, dropping any tangent).
	Real() float64

	// IsNaN, IsInf report on the real projection.
	IsNaN() bool
	IsInf() bool

	String() string
}

// unsupported is returned by the rarer transcendentals (acos, atan, hypot,
// sinh, ...) that neither Real nor Dual implements: they fail loudly rather
// than silently returning zero.
func unsupported(op string) error {
	return fmt.Errorf("scalar: unsupported operation %q", op)
}

// ErrUnsupported returns the unsupported-operation error for op, the same
// error the unimplemented transcendentals fail with.
func ErrUnsupported(op string) error { return unsupported(op) }

// --- Real -------------------------------------------------------------

// Real is the plain double-precision scalar; Scalar methods are thin
// wrappers around math.* so the VM can execute a program polymorphically.
type Real float64

var _ Scalar = Real(0)

func (a Real) Add(b Scalar) Scalar { return a + b.(Real) }
func (a Real) Sub(b Scalar) Scalar { return a - b.(Real) }
func (a Real) Mul(b Scalar) Scalar { return a * b.(Real) }
func (a Real) Div(b Scalar) Scalar { return a / b.(Real) }
func (a Real) Neg() Scalar         { return -a }
func (a Real) Pow(b Scalar) Scalar { return Real(math.Pow(float64(a), float64(b.(Real)))) }

func (a Real) Abs() Scalar  { return Real(math.Abs(float64(a))) }
func (a Real) Sqrt() Scalar { return Real(math.Sqrt(float64(a))) }
func (a Real) Exp() Scalar  { return Real(math.Exp(float64(a))) }
func (a Real) Ln() Scalar   { return Real(math.Log(float64(a))) }
func (a Real) Sin() Scalar  { return Real(math.Sin(float64(a))) }
func (a Real) Cos() Scalar  { return Real(math.Cos(float64(a))) }
func (a Real) Tan() Scalar  { return Real(math.Tan(float64(a))) }

func (a Real) Real() float64 { return float64(a) }
func (a Real) IsNaN() bool   { return math.IsNaN(float64(a)) }
func (a Real) IsInf() bool   { return math.IsInf(float64(a), 0) }
func (a Real) String() string { return fmt.Sprintf("%g", float64(a)) }

// Additional real-only helpers outside the VM: min, max, floor, ceil, trunc, fract, signum, log, and a
// normality check, beyond the VM's own opcode set.
func (a Real) Min(b Real) Real    { return Real(math.Min(float64(a), float64(b))) }
func (a Real) Max(b Real) Real    { return Real(math.Max(float64(a), float64(b))) }
func (a Real) Floor() Real        { return Real(math.Floor(float64(a))) }
func (a Real) Ceil() Real         { return Real(math.Ceil(float64(a))) }
func (a Real) Trunc() Real        { return Real(math.Trunc(float64(a))) }
func (a Real) Fract() Real        { return a - a.Trunc() }
func (a Real) Signum() Real       { return Real(sign(float64(a))) }
func (a Real) Log(base Real) Real { return Real(math.Log(float64(a)) / math.Log(float64(base))) }
func (a Real) IsNormal() bool     { return !a.IsNaN() && !a.IsInf() }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Zero, One, NaN lift reals with a zero tangent; for Real they are trivial
// but exist so generic code can construct identity elements uniformly
// across Real and Dual.
func ZeroReal() Real { return 0 }
func OneReal() Real  { return 1 }
func NaNReal() Real  { return Real(math.NaN()) }

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

import (
	"math"
	"testing"
)

type linearDecay struct{ lambda float64 }

func (s linearDecay) Apply(t float64, x, out []float64) {
	_ = t
	out[0] = -s.lambda * x[0]
}

func TestRK4ExponentialDecay(t *testing.T) {
	sys := linearDecay{lambda: 1}
	x := []float64{1}
	st := NewRK4(1)
	st.Step(sys, 0, x, 0.1)
	want := math.Exp(-0.1) // dx/dt = -x, x0=1 => x(0.1) = e^-0.1
	if math.Abs(x[0]-want) > 1e-6 {
		t.Fatalf("RK4: got %v want %v", x[0], want)
	}
}

func TestTsit5ExponentialDecay(t *testing.T) {
	sys := linearDecay{lambda: 1}
	x := []float64{1}
	st := NewTsit5(1)
	st.Step(sys, 0, x, 0.1)
	want := math.Exp(-0.1)
	if math.Abs(x[0]-want) > 1e-6 {
		t.Fatalf("Tsit5: got %v want %v", x[0], want)
	}
}

type constantField struct{ v []float64 }

func (s constantField) Apply(t float64, x, out []float64) {
	_ = t
	copy(out, s.v)
}

func TestTsit5ConstantField(t *testing.T) {
	sys := constantField{v: []float64{1.5, -0.5}}
	x := []float64{2, 4}
	st := NewTsit5(2)
	st.Step(sys, 0, x, 0.2)
	if math.Abs(x[0]-2.3) > 1e-12 || math.Abs(x[1]-3.9) > 1e-12 {
		t.Fatalf("Tsit5 on constant field: got (%v, %v), want (2.3, 3.9)", x[0], x[1])
	}
}

func TestDiscreteMapAdvances(t *testing.T) {
	sys := constantField{v: []float64{7}}
	x := []float64{1}
	st := NewDiscreteMap(1)
	st.Step(sys, 0, x, 1)
	if x[0] != 7 {
		t.Fatalf("discrete map step: got %v want 7", x[0])
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

// RK4 is the classical fourth-order Runge-Kutta tableau. Scratch for
// k1..k4 and a combination buffer are allocated once in New and reused by
// every Step call.
type RK4 struct {
	dim        int
	k1, k2, k3, k4 []float64
	tmp        []float64
}

var _ Stepper = (*RK4)(nil)

// NewRK4 allocates scratch for a system of the given dimension.
func NewRK4(dim int) *RK4 {
	return &RK4{
		dim: dim,
		k1:  make([]float64, dim),
		k2:  make([]float64, dim),
		k3:  make([]float64, dim),
		k4:  make([]float64, dim),
		tmp: make([]float64, dim),
	}
}

// Step advances x in place by dt using the classical RK4 update
//
//	k1 = f(t, x)
//	k2 = f(t+dt/2, x+dt/2*k1)
//	k3 = f(t+dt/2, x+dt/2*k2)
//	k4 = f(t+dt, x+dt*k3)
//	x += dt/6 * (k1 + 2k2 + 2k3 + k4)
func (o *RK4) Step(sys System, t float64, x []float64, dt float64) {
	sys.Apply(t, x, o.k1)

	for i := 0; i < o.dim; i++ {
		o.tmp[i] = x[i] + 0.5*dt*o.k1[i]
	}
	sys.Apply(t+0.5*dt, o.tmp, o.k2)

	for i := 0; i < o.dim; i++ {
		o.tmp[i] = x[i] + 0.5*dt*o.k2[i]
	}
	sys.Apply(t+0.5*dt, o.tmp, o.k3)

	for i := 0; i < o.dim; i++ {
		o.tmp[i] = x[i] + dt*o.k3[i]
	}
	sys.Apply(t+dt, o.tmp, o.k4)

	for i := 0; i < o.dim; i++ {
		x[i] += dt / 6 * (o.k1[i] + 2*o.k2[i] + 2*o.k3[i] + o.k4[i])
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

// Tsit5 implements the Tsitouras (2011) 5(4) explicit Runge-Kutta pair,
// used here only for its 5th-order solution; the embedded 4th-order error
// estimate goes unused since this package has no adaptive step control.
// The published FSAL (first-same-as-last) tableau is used verbatim.
type Tsit5 struct {
	dim int
	k   [7][]float64
	tmp []float64
}

var _ Stepper = (*Tsit5)(nil)

// NewTsit5 allocates the seven stage buffers and one combination buffer
// once, so Step itself performs no further allocation.
func NewTsit5(dim int) *Tsit5 {
	o := &Tsit5{dim: dim, tmp: make([]float64, dim)}
	for i := range o.k {
		o.k[i] = make([]float64, dim)
	}
	return o
}

// Tsitouras 5(4) tableau constants.
const (
	c2 = 0.161
	c3 = 0.327
	c4 = 0.9
	c5 = 0.9800255409045097
	c6 = 1.0

	a21 = 0.161
	a31 = -0.008480655492356989
	a32 = 0.335480655492357
	a41 = 2.8971530571054935
	a42 = -6.359448489975075
	a43 = 4.3622954328695815
	a51 = 5.325864828439257
	a52 = -11.748883564062828
	a53 = 7.4955393428898365
	a54 = -0.09249506636175525
	a61 = 5.86145544294642
	a62 = -12.92096931784711
	a63 = 8.159367898576159
	a64 = -0.071584973281401
	a65 = -0.028269050394068383
	a71 = 0.09646076681806523
	a72 = 0.01
	a73 = 0.4798896504144996
	a74 = 1.379008574103742
	a75 = -3.290069515436080
	a76 = 2.324710524099774

	b1 = a71
	b2 = a72
	b3 = a73
	b4 = a74
	b5 = a75
	b6 = a76
)

// Step advances x in place by dt using the 5th-order solution of the
// Tsit5 pair.
func (o *Tsit5) Step(sys System, t float64, x []float64, dt float64) {
	n := o.dim
	k1, k2, k3, k4, k5, k6, k7 := o.k[0], o.k[1], o.k[2], o.k[3], o.k[4], o.k[5], o.k[6]

	sys.Apply(t, x, k1)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*a21*k1[i]
	}
	sys.Apply(t+c2*dt, o.tmp, k2)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*(a31*k1[i]+a32*k2[i])
	}
	sys.Apply(t+c3*dt, o.tmp, k3)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*(a41*k1[i]+a42*k2[i]+a43*k3[i])
	}
	sys.Apply(t+c4*dt, o.tmp, k4)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*(a51*k1[i]+a52*k2[i]+a53*k3[i]+a54*k4[i])
	}
	sys.Apply(t+c5*dt, o.tmp, k5)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*(a61*k1[i]+a62*k2[i]+a63*k3[i]+a64*k4[i]+a65*k5[i])
	}
	sys.Apply(t+c6*dt, o.tmp, k6)

	for i := 0; i < n; i++ {
		o.tmp[i] = x[i] + dt*(a71*k1[i]+a72*k2[i]+a73*k3[i]+a74*k4[i]+a75*k5[i]+a76*k6[i])
	}
	sys.Apply(t+dt, o.tmp, k7) // FSAL: k7 is the first stage of the next step

	for i := 0; i < n; i++ {
		x[i] += dt * (b1*k1[i] + b2*k2[i] + b3*k3[i] + b4*k4[i] + b5*k5[i] + b6*k6[i])
	}
}

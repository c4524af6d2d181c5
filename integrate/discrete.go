// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package integrate

// DiscreteMap applies x <- f(x) once per step. t is passed to f unchanged
// and dt is ignored: Step does not advance t (the Stepper signature returns
// nothing), so any time or iteration count is kept by the caller. Maps have
// no notion of a time derivative.
type DiscreteMap struct {
	dim int
	tmp []float64
}

var _ Stepper = (*DiscreteMap)(nil)

func NewDiscreteMap(dim int) *DiscreteMap {
	return &DiscreteMap{dim: dim, tmp: make([]float64, dim)}
}

func (o *DiscreteMap) Step(sys System, t float64, x []float64, dt float64) {
	_ = t
	_ = dt
	sys.Apply(t, x, o.tmp)
	copy(x, o.tmp)
}

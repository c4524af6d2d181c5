// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colloc

import (
	"github.com/cpmech/gobif/bifurc"
	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gobif/integrate"
	"gonum.org/v1/gonum/mat"
)

// variational augments the state with the flattened fundamental matrix
// Phi (n x n, row-major) so a plain Stepper can propagate both: dx/dt =
// f(x), dPhi/dt = J_f(x)*Phi. It satisfies integrate.System.
type variational struct {
	p *Problem
	n int
}

func (v *variational) Apply(t float64, y, out []float64) {
	n := v.n
	x := y[:n]
	phi := y[n:]
	fx := out[:n]
	v.p.Sys.Apply(t, x, fx)

	jf := v.p.Sys.EvaluateJacobianWrtState(x)
	dphi := out[n:]
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += jf[r][k] * phi[k*n+c]
			}
			dphi[r*n+c] = sum
		}
	}
}

// monodromy assembles the monodromy matrix via single-shoot accumulation
// of per-interval propagators, costing ntst*n^3 rather than the dense
// (ntst*n)x(ntst*n) eigenproblem. Each propagator is obtained by
// numerically re-integrating the variational equation across its interval
// with the converged mesh point as initial condition, substepping with RK4
// (monodromySubsteps steps per interval).
const monodromySubsteps = 12

// Monodromy exposes the per-interval-propagator accumulation (see monodromy
// below) for codim2's LPC/PD/NS curves, which border the monodromy matrix
// directly rather than the full collocation Jacobian.
func (p *Problem) Monodromy(x []float64, param float64) *mat.Dense {
	return p.monodromy(x, param)
}

func (p *Problem) monodromy(x []float64, param float64) *mat.Dense {
	n := p.N
	p.Sys.SetParam(p.ParamIndex, param)
	T := p.period(x)
	h := T / float64(p.Ntst)

	stepper := integrate.NewRK4(n + n*n)
	sys := &variational{p: p, n: n}

	result := identity(n)
	y := make([]float64, n+n*n)
	for i := 0; i < p.Ntst; i++ {
		mi := p.mesh(x, i)
		copy(y[:n], mi)
		setIdentity(y[n:], n)
		sub := h / monodromySubsteps
		t := 0.0
		for k := 0; k < monodromySubsteps; k++ {
			stepper.Step(sys, t, y, sub)
			t += sub
		}
		phi := mat.NewDense(n, n, append([]float64(nil), y[n:]...))
		var next mat.Dense
		next.Mul(phi, result)
		result = &next
	}
	return result
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

func setIdentity(buf []float64, n int) {
	for i := range buf {
		buf[i] = 0
	}
	for i := 0; i < n; i++ {
		buf[i*n+i] = 1
	}
}

// Diagnostics computes the three cycle-only test functions from the
// monodromy's non-trivial Floquet multipliers and returns the full
// multiplier set plus the discretized cycle profile (mesh points).
func (p *Problem) Diagnostics(aug []float64) (contprob.Diagnostics, error) {
	dim := p.Dimension()
	x := aug[:dim]
	param := aug[dim]

	mono := p.monodromy(x, param)
	mult, err := bifurc.Multipliers(mono)
	if err != nil {
		return contprob.Diagnostics{}, err
	}
	nonTrivial := bifurc.ExcludeTrivial(mult, 1e-6)
	cf, pd, ns := bifurc.CycleTestValues(nonTrivial)

	cycle := make([][]float64, p.Ntst+1)
	for i := range cycle {
		cycle[i] = append([]float64(nil), p.mesh(x, i)...)
	}

	return contprob.Diagnostics{
		TestValues:  contprob.LimitCycle(cf, pd, ns),
		Eigenvalues: mult,
		CyclePoints: cycle,
	}, nil
}

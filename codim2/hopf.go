// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codim2

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/newton"
)

// HopfCurve continues the Hopf locus of an equilibrium problem in two
// parameters. The singular object is J^2+kappa*I with kappa=omega^2 an
// explicit extra unknown: a genuine complex conjugate pair has a
// 2-dimensional near-kernel at the right kappa, which needs a pair of
// borders. This is realized here as two independently refreshed real
// border pairs, each contributing one bordered-determinant equation,
// rather than a single coupled 2x2 block solve, a fidelity trade
// documented in DESIGN.md.
type HopfCurve struct {
	Sys        *eqsys.EquationSystem
	P1, P2     int
	N          int
	V1, W1     []float64
	V2, W2     []float64

	diffStep float64
}

// NewHopfCurve builds a HopfCurve tracking parameters p1,p2 of sys,
// bootstrapping both border pairs from two independent standard basis
// vectors (generically independent) and one refresh pass at (x0,kappa0).
func NewHopfCurve(sys *eqsys.EquationSystem, p1, p2 int, x0 []float64, kappa0 float64) (*HopfCurve, error) {
	n := sys.NState()
	if n < 2 {
		return nil, chk.Err("codim2: Hopf curve requires state dimension >= 2, got %d", n)
	}
	if len(x0) != n {
		return nil, chk.Err("codim2: initial state has %d coordinates, want %d", len(x0), n)
	}
	hc := &HopfCurve{Sys: sys, P1: p1, P2: p2, N: n, diffStep: 1e-6}
	hc.V1, hc.W1 = unitAxis(n, 0), unitAxis(n, 0)
	hc.V2, hc.W2 = unitAxis(n, 1), unitAxis(n, 1)

	full := append(append([]float64(nil), x0...), sys.Param(p1), sys.Param(p2), kappa0)
	a := hc.singularAt(full)
	hc.V1, hc.W1 = refreshBorders(a, hc.V1, hc.W1)
	hc.V2, hc.W2 = refreshBorders(a, hc.V2, hc.W2)
	return hc, nil
}

func unitAxis(n, k int) []float64 {
	v := make([]float64, n)
	v[k] = 1
	return v
}

func (c *HopfCurve) Dimension() int { return c.N + 2 }

// singularAt returns J^2+kappa*I at the state/parameter/kappa packed in
// full = [x, p1, p2, kappa].
func (c *HopfCurve) singularAt(full []float64) [][]float64 {
	n := c.N
	x := full[:n]
	c.Sys.SetParam(c.P1, full[n])
	c.Sys.SetParam(c.P2, full[n+1])
	kappa := full[n+2]
	j := c.Sys.EvaluateJacobianWrtState(x)

	a := make([][]float64, n)
	for r := 0; r < n; r++ {
		a[r] = make([]float64, n)
		for cc := 0; cc < n; cc++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += j[r][k] * j[k][cc]
			}
			a[r][cc] = sum
		}
		a[r][r] += kappa
	}
	return a
}

func (c *HopfCurve) g1At(full []float64) (float64, error) {
	a := c.singularAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(a, c.V1, c.W1, rhs)
	return g, err
}

func (c *HopfCurve) g2At(full []float64) (float64, error) {
	a := c.singularAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(a, c.V2, c.W2, rhs)
	return g, err
}

func (c *HopfCurve) Residual(aug []float64, out []float64) error {
	n := c.N
	full := aug[:n+3]
	x := full[:n]
	c.Sys.SetParam(c.P1, full[n])
	c.Sys.SetParam(c.P2, full[n+1])
	c.Sys.Apply(0, x, out[:n])

	g1, err := c.g1At(full)
	if err != nil {
		return err
	}
	g2, err := c.g2At(full)
	if err != nil {
		return err
	}
	out[n] = g1
	out[n+1] = g2
	return nil
}

func (c *HopfCurve) ExtendedJacobian(aug []float64) ([][]float64, error) {
	n := c.N
	full := aug[:n+3]
	x := full[:n]
	c.Sys.SetParam(c.P1, full[n])
	c.Sys.SetParam(c.P2, full[n+1])

	jx := c.Sys.EvaluateJacobianWrtState(x)
	dp1 := c.Sys.EvaluateDerivativeWrtParam(x, c.P1)
	dp2 := c.Sys.EvaluateDerivativeWrtParam(x, c.P2)

	rows := make([][]float64, n+2)
	for r := 0; r < n; r++ {
		row := make([]float64, n+3)
		copy(row, jx[r])
		row[n] = dp1[r]
		row[n+1] = dp2[r]
		// row[n+2] (d/dkappa) is 0: F does not depend on kappa
		rows[r] = row
	}

	g1Row, err := centralDiffRow(c.g1At, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	g2Row, err := centralDiffRow(c.g2At, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	rows[n] = g1Row
	rows[n+1] = g2Row
	return rows, nil
}

func (c *HopfCurve) Diagnostics(aug []float64) (contprob.Diagnostics, error) {
	n := c.N
	x := aug[:n]
	c.Sys.SetParam(c.P1, aug[n])
	c.Sys.SetParam(c.P2, aug[n+1])
	j := c.Sys.EvaluateJacobianWrtState(x)
	eig, err := newton.EigenPairs(j)
	if err != nil {
		return contprob.Diagnostics{}, err
	}
	values := make([]complex128, len(eig))
	for i, e := range eig {
		values[i] = e.Value
	}
	return contprob.Diagnostics{
		TestValues:  contprob.Equilibrium(contprob.Inactive, contprob.Inactive, contprob.Inactive),
		Eigenvalues: values,
	}, nil
}

func (c *HopfCurve) UpdateAfterStep(aug []float64) error {
	full := aug[:c.N+3]
	a := c.singularAt(full)
	c.V1, c.W1 = refreshBorders(a, c.V1, c.W1)
	c.V2, c.W2 = refreshBorders(a, c.V2, c.W2)
	return nil
}

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

// FoldCurve continues the fold locus of an equilibrium problem in two
// parameters. Unknowns are (x, p1, p2); equations are F(x,p)=0 and the
// bordered-determinant proxy g(x,p), which vanishes exactly where the
// state Jacobian J is singular. The border vectors (v,w) are problem-owned
// state, not continuation unknowns, refreshed once per accepted step
// (UpdateAfterStep).
type FoldCurve struct {
	Sys    *eqsys.EquationSystem
	P1, P2 int
	N      int
	V, W   []float64

	diffStep float64
}

// NewFoldCurve builds a FoldCurve tracking parameters p1,p2 of sys,
// bootstrapping the border vectors at x0 by one refresh from a standard
// basis guess.
func NewFoldCurve(sys *eqsys.EquationSystem, p1, p2 int, x0 []float64) (*FoldCurve, error) {
	n := sys.NState()
	if len(x0) != n {
		return nil, chk.Err("codim2: initial state has %d coordinates, want %d", len(x0), n)
	}
	fc := &FoldCurve{Sys: sys, P1: p1, P2: p2, N: n, diffStep: 1e-6}
	v := make([]float64, n)
	w := make([]float64, n)
	v[0], w[0] = 1, 1
	fc.V, fc.W = v, w
	j := sys.EvaluateJacobianWrtState(x0)
	fc.V, fc.W = refreshBorders(j, fc.V, fc.W)
	return fc, nil
}

func (c *FoldCurve) Dimension() int { return c.N + 1 }

func (c *FoldCurve) jacobianAt(full []float64) [][]float64 {
	x := full[:c.N]
	c.Sys.SetParam(c.P1, full[c.N])
	c.Sys.SetParam(c.P2, full[c.N+1])
	return c.Sys.EvaluateJacobianWrtState(x)
}

func (c *FoldCurve) gAt(full []float64) (float64, error) {
	j := c.jacobianAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(j, c.V, c.W, rhs)
	return g, err
}

func (c *FoldCurve) Residual(aug []float64, out []float64) error {
	x := aug[:c.N]
	c.Sys.SetParam(c.P1, aug[c.N])
	c.Sys.SetParam(c.P2, aug[c.N+1])
	c.Sys.Apply(0, x, out[:c.N])

	g, err := c.gAt(aug[:c.N+2])
	if err != nil {
		return err
	}
	out[c.N] = g
	return nil
}

func (c *FoldCurve) ExtendedJacobian(aug []float64) ([][]float64, error) {
	n := c.N
	full := aug[:n+2]
	x := full[:n]
	c.Sys.SetParam(c.P1, full[n])
	c.Sys.SetParam(c.P2, full[n+1])

	jx := c.Sys.EvaluateJacobianWrtState(x)
	dp1 := c.Sys.EvaluateDerivativeWrtParam(x, c.P1)
	dp2 := c.Sys.EvaluateDerivativeWrtParam(x, c.P2)

	rows := make([][]float64, n+1)
	for r := 0; r < n; r++ {
		row := make([]float64, n+2)
		copy(row, jx[r])
		row[n] = dp1[r]
		row[n+1] = dp2[r]
		rows[r] = row
	}

	gRow, err := centralDiffRow(c.gAt, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	rows[n] = gRow
	return rows, nil
}

func (c *FoldCurve) Diagnostics(aug []float64) (contprob.Diagnostics, error) {
	j := c.jacobianAt(aug[:c.N+2])
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

func (c *FoldCurve) UpdateAfterStep(aug []float64) error {
	j := c.jacobianAt(aug[:c.N+2])
	c.V, c.W = refreshBorders(j, c.V, c.W)
	return nil
}

// Codim2Values computes the organizing-center test functions available
// along a fold curve: Bogdanov-Takens is v.w, and for n>=3 Zero-Hopf is
// the determinant of the bialternate
// product of J. Cusp is not computed: no code in this module evaluates a
// cusp coefficient, and ScanFoldCurve reports that channel as Inactive.
func (c *FoldCurve) Codim2Values(aug []float64) CodimValuesPartial {
	j := c.jacobianAt(aug[:c.N+2])
	bt := dot(c.V, c.W)
	zh := contprob.Inactive
	if c.N >= 3 {
		zh = Determinant(BialternateProduct(j))
	}
	return CodimValuesPartial{BogdanovTakens: bt, ZeroHopf: zh}
}

// CodimValuesPartial carries the codim-2 channels a given curve type can
// compute from a single point; ScanFoldCurve embeds these into
// bifurc.Codim2Values with every other channel, Cusp included, Inactive.
type CodimValuesPartial struct {
	BogdanovTakens float64
	ZeroHopf       float64
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

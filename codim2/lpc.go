// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codim2

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gobif/colloc"
	"github.com/cpmech/gobif/contprob"
)

// LPCCurve continues the limit-point-of-cycles locus, targeting the
// singular direction at multiplier +1, of a periodic orbit in two
// parameters. Unknowns are (x, p1, p2) where x is the full collocation
// BVP state; equations are the BVP residual F(x,p)=0 plus a bordered proxy
// g(x,p) on the n x n monodromy matrix M, singular exactly where M has an
// eigenvalue at +1.
type LPCCurve struct {
	Cyc    *colloc.Problem
	P1, P2 int
	Dim    int // Cyc.Dimension(), the BVP state size
	N      int // Cyc.N, the ODE state size (monodromy is N x N)
	V, W   []float64

	diffStep float64
}

// NewLPCCurve builds an LPCCurve tracking parameters p1,p2 of the equation
// system underlying cyc. cyc.ParamIndex must equal p1: the wrapped
// collocation problem's own Residual/ExtendedJacobian always re-applies its
// tracked parameter column as p1's value, so p2 is driven purely through
// Sys.SetParam here and never touched by the wrapped calls.
func NewLPCCurve(cyc *colloc.Problem, p1, p2 int) (*LPCCurve, error) {
	n := cyc.N
	if n < 1 {
		return nil, chk.Err("codim2: LPC curve requires state dimension >= 1")
	}
	if cyc.ParamIndex != p1 {
		return nil, chk.Err("codim2: LPC curve requires cyc.ParamIndex == p1 (got %d, want %d)", cyc.ParamIndex, p1)
	}
	lc := &LPCCurve{Cyc: cyc, P1: p1, P2: p2, Dim: cyc.Dimension(), N: n, diffStep: 1e-6}
	v := make([]float64, n)
	w := make([]float64, n)
	v[0], w[0] = 1, 1
	lc.V, lc.W = v, w
	return lc, nil
}

func (c *LPCCurve) Dimension() int { return c.Dim + 1 }

func (c *LPCCurve) singularAt(full []float64) [][]float64 {
	x := full[:c.Dim]
	c.Cyc.Sys.SetParam(c.P1, full[c.Dim])
	c.Cyc.Sys.SetParam(c.P2, full[c.Dim+1])
	m := c.Cyc.Monodromy(x, full[c.Dim])
	return subtractIdentity(m, -1)
}

// subtractIdentity returns M + sign*I as a plain [][]float64.
func subtractIdentity(m *mat.Dense, sign float64) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = make([]float64, r)
		for j := 0; j < r; j++ {
			out[i][j] = m.At(i, j)
		}
		out[i][i] += sign
	}
	return out
}

func (c *LPCCurve) gAt(full []float64) (float64, error) {
	a := c.singularAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(a, c.V, c.W, rhs)
	return g, err
}

func (c *LPCCurve) Residual(aug, out []float64) error {
	x := aug[:c.Dim]
	c.Cyc.Sys.SetParam(c.P1, aug[c.Dim])
	c.Cyc.Sys.SetParam(c.P2, aug[c.Dim+1])
	if err := c.Cyc.Residual(append(append([]float64(nil), x...), aug[c.Dim]), out[:c.Dim]); err != nil {
		return err
	}
	g, err := c.gAt(aug[:c.Dim+2])
	if err != nil {
		return err
	}
	out[c.Dim] = g
	return nil
}

func (c *LPCCurve) ExtendedJacobian(aug []float64) ([][]float64, error) {
	full := aug[:c.Dim+2]
	c.Cyc.Sys.SetParam(c.P2, full[c.Dim+1])
	rows, err := c.Cyc.ExtendedJacobian(append(append([]float64(nil), full[:c.Dim]...), full[c.Dim]))
	if err != nil {
		return nil, err
	}
	out := make([][]float64, c.Dim+1)
	for r := 0; r < c.Dim; r++ {
		row := make([]float64, c.Dim+2)
		copy(row, rows[r][:c.Dim])
		row[c.Dim] = rows[r][c.Dim] // dF/dp1, reusing the wrapped problem's own tracked-parameter column
		out[r] = row
	}
	// dF/dp2 by central differences: the wrapped problem only differentiates in p1
	xp1 := append(append([]float64(nil), full[:c.Dim]...), full[c.Dim])
	fd := [2][]float64{make([]float64, c.Dim), make([]float64, c.Dim)}
	p2 := full[c.Dim+1]
	for k, s := range []float64{1, -1} {
		c.Cyc.Sys.SetParam(c.P2, p2+s*c.diffStep)
		if err := c.Cyc.Residual(xp1, fd[k]); err != nil {
			return nil, err
		}
	}
	c.Cyc.Sys.SetParam(c.P2, p2)
	for r := 0; r < c.Dim; r++ {
		out[r][c.Dim+1] = (fd[0][r] - fd[1][r]) / (2 * c.diffStep)
	}
	gRow, err := centralDiffRow(c.gAt, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	out[c.Dim] = gRow
	return out, nil
}

// Diagnostics reuses the wrapped cycle problem's own Floquet-multiplier
// extraction; the LPC/PD/NS channels it would report (fold-of-cycles,
// period-doubling, Neimark-Sacker) are not meaningful while tracing the
// curve itself, since the tracked multiplier is already pinned to the
// curve's own defining value.
func (c *LPCCurve) Diagnostics(aug []float64) (contprob.Diagnostics, error) {
	x := aug[:c.Dim]
	c.Cyc.Sys.SetParam(c.P2, aug[c.Dim+1])
	diag, err := c.Cyc.Diagnostics(append(append([]float64(nil), x...), aug[c.Dim]))
	if err != nil {
		return contprob.Diagnostics{}, err
	}
	return contprob.Diagnostics{
		TestValues:  contprob.Equilibrium(contprob.Inactive, contprob.Inactive, contprob.Inactive),
		Eigenvalues: diag.Eigenvalues,
		CyclePoints: diag.CyclePoints,
	}, nil
}

func (c *LPCCurve) UpdateAfterStep(aug []float64) error {
	a := c.singularAt(aug[:c.Dim+2])
	c.V, c.W = refreshBorders(a, c.V, c.W)
	return nil
}

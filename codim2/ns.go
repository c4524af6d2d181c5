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

// NSCurve continues the Neimark-Sacker locus, targeting a complex
// conjugate pair on the unit circle (which requires a pair of borders),
// of a periodic orbit in two parameters. The singular object is
// S = M^2 - 2*kappa*M + I, real kappa = cos(theta) an explicit extra
// unknown: S is singular exactly when M has an eigenvalue e^{+-i*theta},
// mirroring HopfCurve's J^2+kappa*I construction one level up (monodromy
// in place of the state Jacobian, unit circle in place of the imaginary
// axis). As with HopfCurve, the 2-dimensional near-kernel at the true
// crossing is realized with two independently refreshed border pairs
// rather than a coupled 2x2 block solve.
type NSCurve struct {
	Cyc        *colloc.Problem
	P1, P2     int
	Dim        int
	N          int
	V1, W1     []float64
	V2, W2     []float64

	diffStep float64
}

// NewNSCurve builds an NSCurve; see NewLPCCurve for the cyc.ParamIndex==p1
// convention this shares. kappa0 should be cos(theta0) for an initial
// guess of the rotation angle theta0 of the targeted complex multiplier
// pair.
func NewNSCurve(cyc *colloc.Problem, p1, p2 int, kappa0 float64) (*NSCurve, error) {
	n := cyc.N
	if n < 2 {
		return nil, chk.Err("codim2: NS curve requires state dimension >= 2, got %d", n)
	}
	if cyc.ParamIndex != p1 {
		return nil, chk.Err("codim2: NS curve requires cyc.ParamIndex == p1 (got %d, want %d)", cyc.ParamIndex, p1)
	}
	nc := &NSCurve{Cyc: cyc, P1: p1, P2: p2, Dim: cyc.Dimension(), N: n, diffStep: 1e-6}
	nc.V1, nc.W1 = unitAxis(n, 0), unitAxis(n, 0)
	nc.V2, nc.W2 = unitAxis(n, 1), unitAxis(n, 1)
	return nc, nil
}

func (c *NSCurve) Dimension() int { return c.Dim + 2 }

func (c *NSCurve) singularAt(full []float64) [][]float64 {
	n := c.N
	x := full[:c.Dim]
	c.Cyc.Sys.SetParam(c.P1, full[c.Dim])
	c.Cyc.Sys.SetParam(c.P2, full[c.Dim+1])
	kappa := full[c.Dim+2]
	m := c.Cyc.Monodromy(x, full[c.Dim])

	var m2 mat.Dense
	m2.Mul(m, m)
	s := make([][]float64, n)
	for r := 0; r < n; r++ {
		s[r] = make([]float64, n)
		for col := 0; col < n; col++ {
			s[r][col] = m2.At(r, col) - 2*kappa*m.At(r, col)
		}
		s[r][r] += 1
	}
	return s
}

func (c *NSCurve) g1At(full []float64) (float64, error) {
	a := c.singularAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(a, c.V1, c.W1, rhs)
	return g, err
}

func (c *NSCurve) g2At(full []float64) (float64, error) {
	a := c.singularAt(full)
	rhs := make([]float64, c.N+1)
	rhs[c.N] = 1
	_, g, err := solveSquareBordered(a, c.V2, c.W2, rhs)
	return g, err
}

func (c *NSCurve) Residual(aug, out []float64) error {
	x := aug[:c.Dim]
	c.Cyc.Sys.SetParam(c.P1, aug[c.Dim])
	c.Cyc.Sys.SetParam(c.P2, aug[c.Dim+1])
	if err := c.Cyc.Residual(append(append([]float64(nil), x...), aug[c.Dim]), out[:c.Dim]); err != nil {
		return err
	}
	full := aug[:c.Dim+3]
	g1, err := c.g1At(full)
	if err != nil {
		return err
	}
	g2, err := c.g2At(full)
	if err != nil {
		return err
	}
	out[c.Dim] = g1
	out[c.Dim+1] = g2
	return nil
}

func (c *NSCurve) ExtendedJacobian(aug []float64) ([][]float64, error) {
	full := aug[:c.Dim+3]
	c.Cyc.Sys.SetParam(c.P2, full[c.Dim+1])
	rows, err := c.Cyc.ExtendedJacobian(append(append([]float64(nil), full[:c.Dim]...), full[c.Dim]))
	if err != nil {
		return nil, err
	}
	out := make([][]float64, c.Dim+2)
	for r := 0; r < c.Dim; r++ {
		row := make([]float64, c.Dim+3)
		copy(row, rows[r][:c.Dim])
		row[c.Dim] = rows[r][c.Dim]
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
	g1Row, err := centralDiffRow(c.g1At, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	g2Row, err := centralDiffRow(c.g2At, full, c.diffStep)
	if err != nil {
		return nil, err
	}
	out[c.Dim] = g1Row
	out[c.Dim+1] = g2Row
	return out, nil
}

func (c *NSCurve) Diagnostics(aug []float64) (contprob.Diagnostics, error) {
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

func (c *NSCurve) UpdateAfterStep(aug []float64) error {
	full := aug[:c.Dim+3]
	a := c.singularAt(full)
	c.V1, c.W1 = refreshBorders(a, c.V1, c.W1)
	c.V2, c.W2 = refreshBorders(a, c.V2, c.W2)
	return nil
}

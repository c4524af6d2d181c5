// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colloc implements the Gauss-Lagrange orthogonal collocation BVP
// for periodic orbits, the same small-interface contprob.Problem the
// equilibrium and bordered-curve problems implement.
// Grounded on shp/'s precompute-once, evaluate-many idiom for isoparametric
// shape functions (shp/auxiliary.go), here applied to a 1-D temporal mesh
// of ntst collocation intervals instead of a spatial finite element.
package colloc

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Mesh holds the Gauss-Lagrange nodes and collocation coefficients for a
// degree-ncol scheme, precomputed once and reused by every Problem built
// with the same ncol.
type Mesh struct {
	Ncol int
	C    []float64   // Gauss-Legendre nodes on (0,1), length ncol
	A    [][]float64 // A[s][k] = integral_0^{c_s} of Lagrange basis l_k
	B    []float64   // B[k] = integral_0^1 of l_k (= Gauss-Legendre weight on [0,1])
}

// NewMesh builds the collocation scheme for ncol >= 1 stages per interval.
func NewMesh(ncol int) (*Mesh, error) {
	if ncol < 1 {
		return nil, chk.Err("colloc: ncol must be >= 1, got %d", ncol)
	}
	nodes, _ := gaussLegendre(ncol)
	c := make([]float64, ncol)
	for i, x := range nodes {
		c[i] = (x + 1) / 2 // map [-1,1] -> (0,1)
	}

	// Lagrange basis l_k through {c_0..c_{ncol-1}}, represented as ascending
	// polynomial coefficients, integrated in closed form (power rule).
	a := make([][]float64, ncol)
	for s := range a {
		a[s] = make([]float64, ncol)
	}
	b := make([]float64, ncol)
	for k := 0; k < ncol; k++ {
		coeffs := lagrangeBasisCoeffs(c, k)
		prim := integratePoly(coeffs) // antiderivative, prim[0]=0
		for s := 0; s < ncol; s++ {
			a[s][k] = evalPoly(prim, c[s])
		}
		b[k] = evalPoly(prim, 1.0)
	}
	return &Mesh{Ncol: ncol, C: c, A: a, B: b}, nil
}

// gaussLegendre returns the ncol Gauss-Legendre nodes and weights on
// [-1,1] via Newton's method on the Legendre polynomial, the standard
// hand-rolled alternative to Golub-Welsch for small ncol.
func gaussLegendre(ncol int) (nodes, weights []float64) {
	nodes = make([]float64, ncol)
	weights = make([]float64, ncol)
	m := (ncol + 1) / 2
	for i := 0; i < m; i++ {
		x := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(ncol) + 0.5))
		for iter := 0; iter < 100; iter++ {
			p, dp := legendreAndDeriv(ncol, x)
			dx := -p / dp
			x += dx
			if math.Abs(dx) < 1e-15 {
				break
			}
		}
		_, dp := legendreAndDeriv(ncol, x)
		w := 2 / ((1 - x*x) * dp * dp)
		nodes[i] = -x
		nodes[ncol-1-i] = x
		weights[i] = w
		weights[ncol-1-i] = w
	}
	return
}

// legendreAndDeriv evaluates the degree-n Legendre polynomial and its
// derivative at x via the standard three-term recurrence.
func legendreAndDeriv(n int, x float64) (p, dp float64) {
	p0, p1 := 1.0, x
	if n == 0 {
		return 1, 0
	}
	for k := 2; k <= n; k++ {
		p2 := ((2*float64(k)-1)*x*p1 - (float64(k)-1)*p0) / float64(k)
		p0, p1 = p1, p2
	}
	dp = float64(n) * (x*p1 - p0) / (x*x - 1)
	return p1, dp
}

// lagrangeBasisCoeffs returns the ascending-order polynomial coefficients
// of the k-th Lagrange basis polynomial through nodes.
func lagrangeBasisCoeffs(nodes []float64, k int) []float64 {
	coeffs := []float64{1}
	denom := 1.0
	for j, cj := range nodes {
		if j == k {
			continue
		}
		coeffs = polyMulLinear(coeffs, -cj)
		denom *= nodes[k] - cj
	}
	for i := range coeffs {
		coeffs[i] /= denom
	}
	return coeffs
}

// polyMulLinear multiplies polynomial p (ascending coeffs) by (t + c).
func polyMulLinear(p []float64, c float64) []float64 {
	out := make([]float64, len(p)+1)
	for i, v := range p {
		out[i+1] += v
		out[i] += v * c
	}
	return out
}

// integratePoly returns the antiderivative of p (ascending coeffs) with
// zero constant of integration.
func integratePoly(p []float64) []float64 {
	out := make([]float64, len(p)+1)
	for i, v := range p {
		out[i+1] = v / float64(i+1)
	}
	return out
}

func evalPoly(p []float64, x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

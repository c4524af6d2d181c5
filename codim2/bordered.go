// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codim2 implements the bordered codim-1-in-2-parameter curves:
// fold, Hopf, LPC, PD and NS curves, each a contprob.Problem whose own
// defining equation appends a bordered-determinant proxy g to the
// underlying system's residual, continued by the same palc.Engine used
// for equilibrium curves. The border vectors are owned-and-refreshed-
// once-per-step fields rather than continuation unknowns, mirroring
// msolid.Driver's own internal-state-carried-across-steps idiom.
package codim2

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// solveSquareBordered solves [[J, w],[v^T, 0]] [ext; g] = rhs for the
// bordered determinant proxy g and its companion vector ext; the fold and
// Hopf curve defining systems both reduce to exactly this shape.
func solveSquareBordered(j [][]float64, v, w []float64, rhs []float64) (ext []float64, g float64, err error) {
	n := len(j)
	dim := n + 1
	data := make([]float64, 0, dim*dim)
	for r := 0; r < n; r++ {
		data = append(data, j[r]...)
		data = append(data, w[r])
	}
	data = append(data, v...)
	data = append(data, 0)
	m := mat.NewDense(dim, dim, data)

	var lu mat.LU
	lu.Factorize(m)
	if lu.Cond() > 1e14 {
		return nil, 0, chk.Err("codim2: bordered system is numerically singular (cond=%v)", lu.Cond())
	}
	b := mat.NewVecDense(dim, rhs)
	var x mat.VecDense
	if serr := lu.SolveVecTo(&x, false, b); serr != nil {
		return nil, 0, chk.Err("codim2: bordered solve failed: %v", serr)
	}
	ext = make([]float64, n)
	for i := 0; i < n; i++ {
		ext[i] = x.AtVec(i)
	}
	return ext, x.AtVec(n), nil
}

// transpose returns the transpose of a dense n x n matrix.
func transpose(j [][]float64) [][]float64 {
	n := len(j)
	t := make([][]float64, n)
	for i := range t {
		t[i] = make([]float64, n)
		for k := range t[i] {
			t[i][k] = j[k][i]
		}
	}
	return t
}

func normalize(v []float64) ([]float64, float64) {
	ss := 0.0
	for _, x := range v {
		ss += x * x
	}
	norm := math.Sqrt(ss)
	if norm == 0 {
		return v, 0
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out, norm
}

// refreshBorders re-solves Bord*ext = e_last with the current borders
// plugged in (for J and its transpose), renormalizes, and keeps the
// previous borders whenever a renormalization falls below 1e-12,
// preventing degeneracy at turning points.
func refreshBorders(j [][]float64, v, w []float64) (newV, newW []float64) {
	n := len(j)
	eLast := make([]float64, n+1)
	eLast[n] = 1

	newW, newV = w, v
	if extW, _, err := solveSquareBordered(j, v, w, eLast); err == nil {
		if cand, norm := normalize(extW); norm >= 1e-12 {
			newW = cand
		}
	}
	jt := transpose(j)
	if extV, _, err := solveSquareBordered(jt, w, v, eLast); err == nil {
		if cand, norm := normalize(extV); norm >= 1e-12 {
			newV = cand
		}
	}
	return newV, newW
}

// centralDiffRow numerically differentiates g (a scalar function of the
// full augmented coordinate vector) via central differences, used for the
// bordered-determinant row of ExtendedJacobian: differentiating the
// bordered solve analytically would require a second-order AD pass this
// module does not carry.
func centralDiffRow(g func([]float64) (float64, error), full []float64, h float64) ([]float64, error) {
	row := make([]float64, len(full))
	pert := append([]float64(nil), full...)
	for i := range full {
		pert[i] = full[i] + h
		gPlus, err := g(pert)
		if err != nil {
			return nil, err
		}
		pert[i] = full[i] - h
		gMinus, err := g(pert)
		if err != nil {
			return nil, err
		}
		pert[i] = full[i]
		row[i] = (gPlus - gMinus) / (2 * h)
	}
	return row, nil
}

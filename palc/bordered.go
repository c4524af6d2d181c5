// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palc

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// solveBordered assembles the square (n+1)x(n+1) system formed by stacking
// the n x (n+1) extended Jacobian jacRows on top of one border row, then
// solves it for rhs via dense LU. Both the tangent and the corrector step
// reduce to this same bordered solve. n is len(jacRows); every row of
// jacRows and borderRow must have length n+1.
func solveBordered(jacRows [][]float64, borderRow []float64, rhs []float64) ([]float64, error) {
	n := len(jacRows)
	dim := n + 1
	data := make([]float64, 0, dim*dim)
	for _, row := range jacRows {
		if len(row) != dim {
			return nil, chk.Err("palc: extended Jacobian row has %d entries, want %d", len(row), dim)
		}
		data = append(data, row...)
	}
	data = append(data, borderRow...)
	m := mat.NewDense(dim, dim, data)

	var lu mat.LU
	lu.Factorize(m)
	if cond := lu.Cond(); cond > 1e14 {
		return nil, chk.Err("palc: bordered system is numerically singular (cond=%v)", cond)
	}

	b := mat.NewVecDense(dim, rhs)
	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		return nil, chk.Err("palc: bordered solve failed: %v", err)
	}
	out := make([]float64, dim)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}

// normalize scales v to unit Euclidean norm in place and returns the
// pre-scaling norm.
func normalize(v []float64) float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	n := math.Sqrt(ss)
	if n > 0 {
		for i := range v {
			v[i] /= n
		}
	}
	return n
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codim2

import "math"

// pairIndex enumerates the n(n-1)/2 index pairs (i,j), i<j, in the
// canonical order the bialternate product uses for both rows and columns
// of the compound matrix.
func pairIndex(n int) [][2]int {
	var pairs [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}

// BialternateProduct builds the n(n-1)/2-dimensional second compound
// matrix A^[2]: entry at row (i,j), column (k,l) is
// A_ik*delta_jl - A_il*delta_jk + A_jl*delta_ik - A_jk*delta_il. Its
// determinant vanishes exactly when A has an eigenvalue pair summing to
// zero (the Zero-Hopf indicator for n>=3).
func BialternateProduct(a [][]float64) [][]float64 {
	n := len(a)
	pairs := pairIndex(n)
	m := len(pairs)
	out := make([][]float64, m)
	for r, p := range pairs {
		i, j := p[0], p[1]
		out[r] = make([]float64, m)
		for c, q := range pairs {
			k, l := q[0], q[1]
			out[r][c] = a[i][k]*delta(j, l) - a[i][l]*delta(j, k) + a[j][l]*delta(i, k) - a[j][k]*delta(i, l)
		}
	}
	return out
}

func delta(a, b int) float64 {
	if a == b {
		return 1
	}
	return 0
}

// Determinant computes det(m) via Gaussian elimination with partial
// pivoting, used both for the bialternate Zero-Hopf indicator and
// anywhere a small dense determinant is needed in this package.
func Determinant(m [][]float64) float64 {
	n := len(m)
	if n == 0 {
		return 1
	}
	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), m[i]...)
	}
	det := 1.0
	for col := 0; col < n; col++ {
		piv := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[piv][col]) {
				piv = r
			}
		}
		if a[piv][col] == 0 {
			return 0
		}
		if piv != col {
			a[piv], a[col] = a[col], a[piv]
			det = -det
		}
		det *= a[col][col]
		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
		}
	}
	return det
}

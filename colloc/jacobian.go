// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colloc

// ExtendedJacobian fills the analytic block-sparse Jacobian: each
// collocation row contributes I on its own stage column, -I on
// its mesh column, and -h*a_{s,k}*J_f(z_{i,k}) for every stage in the same
// interval (including k==s, where it combines with the I term); each
// continuity row contributes -I/+I on its interval's mesh columns and
// -h*b_k*J_f(z_{i,k}) per stage; the phase row is a single direction
// vector on mesh column 0; the periodic BC rows are +I/-I on the last and
// first mesh columns. The whole matrix is built dense (small BVPs only;
// real sparse assembly is out of scope here) via [][]float64 rows to match
// contprob.Problem's interface.
func (p *Problem) ExtendedJacobian(aug []float64) ([][]float64, error) {
	n := p.N
	dim := p.Dimension()
	x := aug[:dim]
	param := aug[dim]
	p.Sys.SetParam(p.ParamIndex, param)

	T := p.period(x)
	h := T / float64(p.Ntst)

	// Per-stage-point state Jacobian and parameter derivative, cached once.
	Jf := make([][][]float64, p.Ntst*p.Ncol)
	dFdp := make([][]float64, p.Ntst*p.Ncol)
	F := make([][]float64, p.Ntst*p.Ncol)
	for i := 0; i < p.Ntst; i++ {
		for s := 0; s < p.Ncol; s++ {
			idx := i*p.Ncol + s
			z := p.stage(x, i, s)
			Jf[idx] = p.Sys.EvaluateJacobianWrtState(z)
			dFdp[idx] = p.Sys.EvaluateDerivativeWrtParam(z, p.ParamIndex)
			fz := make([]float64, n)
			p.Sys.Apply(0, z, fz)
			F[idx] = fz
		}
	}

	rows := make([][]float64, dim)
	for i := range rows {
		rows[i] = make([]float64, dim+1)
	}

	paramCol := dim
	tCol := p.periodIndex()

	row := 0
	for i := 0; i < p.Ntst; i++ {
		mCol := p.meshOffset(i)
		for s := 0; s < p.Ncol; s++ {
			zCol := p.stageOffset(i, s)
			for c := 0; c < n; c++ {
				r := rows[row+c]
				r[zCol+c] += 1
				r[mCol+c] -= 1
				dTsum := 0.0
				for k := 0; k < p.Ncol; k++ {
					a := p.Mesh.A[s][k]
					idx := i*p.Ncol + k
					kCol := p.stageOffset(i, k)
					for cc := 0; cc < n; cc++ {
						r[kCol+cc] -= h * a * Jf[idx][c][cc]
					}
					r[paramCol] -= h * a * dFdp[idx][c]
					dTsum += a * F[idx][c]
				}
				r[tCol] -= dTsum / float64(p.Ntst)
			}
			row += n
		}

		mNextCol := p.meshOffset(i + 1)
		for c := 0; c < n; c++ {
			r := rows[row+c]
			r[mNextCol+c] += 1
			r[mCol+c] -= 1
			dTsum := 0.0
			for k := 0; k < p.Ncol; k++ {
				b := p.Mesh.B[k]
				idx := i*p.Ncol + k
				kCol := p.stageOffset(i, k)
				for cc := 0; cc < n; cc++ {
					r[kCol+cc] -= h * b * Jf[idx][c][cc]
				}
				r[paramCol] -= h * b * dFdp[idx][c]
				dTsum += b * F[idx][c]
			}
			r[tCol] -= dTsum / float64(p.Ntst)
		}
		row += n
	}

	phaseRow := rows[row]
	m0Col := p.meshOffset(0)
	for c := 0; c < n; c++ {
		phaseRow[m0Col+c] = p.direction[c]
	}
	row++

	mNtstCol := p.meshOffset(p.Ntst)
	for c := 0; c < n; c++ {
		r := rows[row+c]
		r[mNtstCol+c] += 1
		r[m0Col+c] -= 1
	}

	return rows, nil
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package newton implements a damped-Newton equilibrium solver: iterate
// x <- x - alpha*J^-1*F(x) with damping alpha in (0,1] until the residual
// falls below tolerance or an iteration cap is reached. The iteration
// discipline (tolerance-gated convergence, damping factor) is adapted from
// msolid.Driver.Run's predictor-corrector loop.
package newton

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"

	"github.com/cpmech/gobif/eqsys"
)

// Settings configures the equilibrium solver independently from the
// continuation loop's Settings (package palc).
type Settings struct {
	MaxIterations int
	Tolerance     float64
	Damping       float64 // alpha in (0,1]; 1 = undamped Newton
	Verbose       bool
}

// DefaultSettings returns conservative defaults: at most 50 iterations,
// tolerance 1e-9 (tighter than the TolD = 1e-8 msolid.Driver uses for its
// own convergence checks), undamped.
func DefaultSettings() Settings {
	return Settings{MaxIterations: 50, Tolerance: 1e-9, Damping: 1.0}
}

// EigenPair bundles a complex eigenvalue of the Jacobian at the fixed
// point with its normalized eigenvector.
type EigenPair struct {
	Value  complex128
	Vector []complex128
}

// Result is returned on convergence: the fixed point, the residual
// Jacobian at that point (J for continuous systems, J-I for maps), and the
// eigenpairs used by bifurcation classification.
type Result struct {
	X          []float64
	Jacobian   [][]float64
	Eigen      []EigenPair
	Iterations int
}

// notConvergedError reports that Solve exhausted its iteration cap without
// reaching tolerance.
type notConvergedError struct{ steps int }

func (e *notConvergedError) Error() string {
	return chk.Err("newton: did not converge in %d steps", e.steps).Error()
}

// IsNotConverged reports whether err is the non-convergence sentinel.
func IsNotConverged(err error) bool {
	_, ok := err.(*notConvergedError)
	return ok
}

// Solve iterates x <- x - alpha * J^-1 * F(x) with damping alpha in (0,1]
// until ||F(x)||_2 <= tol (success) or the iteration cap is reached
// (failure). p is fixed for the duration of the solve.
func Solve(sys *eqsys.EquationSystem, x0 []float64, s Settings) (*Result, error) {
	n := sys.NState()
	x := append([]float64(nil), x0...)
	F := make([]float64, n)
	alpha := s.Damping
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}

	var J [][]float64
	iter := 0
	for ; iter < s.MaxIterations; iter++ {
		sys.Apply(0, x, F)
		if sys.Kind == eqsys.Discrete {
			for i := range F {
				F[i] -= x[i]
			}
		}
		if norm2(F) <= s.Tolerance {
			break
		}

		J = sys.EvaluateJacobianWrtState(x)
		if sys.Kind == eqsys.Discrete {
			for i := 0; i < n; i++ {
				J[i][i] -= 1
			}
		}

		delta, err := solveLinear(J, F)
		if err != nil {
			return nil, chk.Err("newton: singular Jacobian at iteration %d: %v", iter, err)
		}
		for i := 0; i < n; i++ {
			x[i] -= alpha * delta[i]
		}
		if s.Verbose {
			io.Pf("newton: iter %d |F|=%g\n", iter, norm2(F))
		}
	}

	sys.Apply(0, x, F)
	if sys.Kind == eqsys.Discrete {
		for i := range F {
			F[i] -= x[i]
		}
	}
	if norm2(F) > s.Tolerance {
		return nil, &notConvergedError{steps: s.MaxIterations}
	}

	J = sys.EvaluateJacobianWrtState(x)
	if sys.Kind == eqsys.Discrete {
		for i := 0; i < n; i++ {
			J[i][i] -= 1
		}
	}
	eig, err := EigenPairs(J)
	if err != nil {
		return nil, chk.Err("newton: eigendecomposition failed: %v", err)
	}
	return &Result{X: x, Jacobian: J, Eigen: eig, Iterations: iter}, nil
}

func norm2(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

func toDense(J [][]float64) *mat.Dense {
	n := len(J)
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, J[i][j])
		}
	}
	return d
}

func solveLinear(J [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	A := toDense(J)
	var lu mat.LU
	lu.Factorize(A)
	if lu.Cond() > 1e14 {
		return nil, chk.Err("matrix is (near) singular, condition number %g", lu.Cond())
	}
	bv := mat.NewVecDense(n, b)
	var xv mat.VecDense
	if err := lu.SolveVecTo(&xv, false, bv); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = xv.AtVec(i)
	}
	return out, nil
}

// EigenPairs returns every eigenvalue of J with an eigenvector computed by
// shifted SVD: the right singular vector of the smallest singular value of
// J-lambda*I, normalized. A complex shift J-lambda*I is realized as the
// standard 2n x 2n real block embedding [[Re,-Im],[Im,Re]] so gonum's real
// SVD can be used; the smallest right singular vector's two n-blocks give
// the real and imaginary parts of the eigenvector.
func EigenPairs(J [][]float64) ([]EigenPair, error) {
	A := toDense(J)
	var eig mat.Eigen
	if ok := eig.Factorize(A, mat.EigenNone); !ok {
		return nil, chk.Err("eigenvalue decomposition did not converge")
	}
	values := eig.Values(nil)

	out := make([]EigenPair, len(values))
	for k, lambda := range values {
		vec, err := eigenvectorViaShiftedSVD(J, lambda)
		if err != nil {
			return nil, err
		}
		out[k] = EigenPair{Value: lambda, Vector: vec}
	}
	return out, nil
}

func eigenvectorViaShiftedSVD(J [][]float64, lambda complex128) ([]complex128, error) {
	n := len(J)
	re, im := real(lambda), imag(lambda)
	// A = J - lambda*I = (J - re*I) - i*im*I; real embedding
	// M = [[Re(A), -Im(A)], [Im(A), Re(A)]] = [[J-re*I, im*I], [-im*I, J-re*I]]
	M := mat.NewDense(2*n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := J[i][j]
			if i == j {
				a -= re
			}
			M.Set(i, j, a)
			M.Set(n+i, n+j, a)
		}
		M.Set(i, n+i, im)
		M.Set(n+i, i, -im)
	}

	var svd mat.SVD
	if ok := svd.Factorize(M, mat.SVDFull); !ok {
		return nil, chk.Err("SVD did not converge while computing eigenvector")
	}
	var V mat.Dense
	svd.VTo(&V)
	// smallest singular value is the last column in gonum's descending order
	last := 2*n - 1
	vec := make([]complex128, n)
	var norm float64
	for i := 0; i < n; i++ {
		vr := V.At(i, last)
		vi := V.At(n+i, last)
		vec[i] = complex(vr, vi)
		norm += vr*vr + vi*vi
	}
	norm = math.Sqrt(norm)
	if norm < 1e-300 {
		return nil, chk.Err("degenerate eigenvector (zero norm)")
	}
	for i := range vec {
		vec[i] = vec[i] / complex(norm, 0)
	}
	return vec, nil
}

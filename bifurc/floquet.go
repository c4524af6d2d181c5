// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bifurc

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Multipliers computes the complex eigenvalues (Floquet multipliers) of a
// monodromy matrix. Package colloc owns monodromy assembly (the
// per-interval propagator product); this function only does the
// eigendecomposition, which stays cheap because the monodromy matrix is
// n x n rather than the dense (ntst*n)x(ntst*n) alternative.
func Multipliers(monodromy *mat.Dense) ([]complex128, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(monodromy, mat.EigenNone); !ok {
		return nil, chk.Err("bifurc: monodromy eigendecomposition did not converge")
	}
	return eig.Values(nil), nil
}

// ExcludeTrivial drops the one multiplier nearest +1 (the trivial
// multiplier arising from autonomy) and returns the rest.
func ExcludeTrivial(mult []complex128, tol float64) []complex128 {
	if len(mult) == 0 {
		return mult
	}
	best := 0
	bestDist := cmplx.Abs(mult[0] - 1)
	for i := 1; i < len(mult); i++ {
		d := cmplx.Abs(mult[i] - 1)
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	if bestDist > tol {
		// no multiplier close enough to +1 to be the trivial one; return
		// the full set unmodified rather than discarding a real multiplier.
		return mult
	}
	out := make([]complex128, 0, len(mult)-1)
	for i, m := range mult {
		if i != best {
			out = append(out, m)
		}
	}
	return out
}

// CycleTestValues derives the three cycle-only test functions from the
// non-trivial multipliers: cycle_fold from the multiplier (real or
// complex) nearest +1, period_doubling from the multiplier nearest -1, and
// neimark_sacker from the modulus-1 complex pair nearest the unit circle.
func CycleTestValues(nonTrivial []complex128) (cycleFold, periodDoubling, neimarkSacker float64) {
	cycleFold, periodDoubling, neimarkSacker = 1, 1, 1 // sentinel defaults, overwritten below if data exists
	if len(nonTrivial) == 0 {
		return
	}
	bestPlus, bestMinus, bestUnit := math.Inf(1), math.Inf(1), math.Inf(1)
	for _, m := range nonTrivial {
		if d := cmplx.Abs(m - 1); d < bestPlus {
			bestPlus = d
		}
		if d := cmplx.Abs(m + 1); d < bestMinus {
			bestMinus = d
		}
		if math.Abs(imag(m)) > 1e-9 {
			if d := math.Abs(cmplx.Abs(m) - 1); d < bestUnit {
				bestUnit = d
			}
		}
	}
	// test functions vanish exactly at the bifurcation; here they are
	// reported as a signed distance to +1/-1/unit-circle so the sign of the
	// *product* of consecutive steps still drives detection like any other
	// channel. The sign convention follows det(multiplier - target): it is
	// the real part of (closest multiplier - target) that determines sign.
	cycleFold = signedDistance(nonTrivial, 1)
	periodDoubling = signedDistance(nonTrivial, -1)
	neimarkSacker = signedModulusDistance(nonTrivial)
	return
}

func signedDistance(mult []complex128, target float64) float64 {
	best := mult[0]
	bestDist := cmplx.Abs(best - complex(target, 0))
	for _, m := range mult[1:] {
		if d := cmplx.Abs(m - complex(target, 0)); d < bestDist {
			bestDist, best = d, m
		}
	}
	return real(best) - target
}

func signedModulusDistance(mult []complex128) float64 {
	best := mult[0]
	bestDist := math.Abs(cmplx.Abs(best) - 1)
	found := false
	for _, m := range mult {
		if math.Abs(imag(m)) < 1e-9 {
			continue
		}
		if d := math.Abs(cmplx.Abs(m) - 1); !found || d < bestDist {
			bestDist, best, found = d, m, true
		}
	}
	if !found {
		return 1 // sentinel: no complex pair present, channel inactive
	}
	return cmplx.Abs(best) - 1
}

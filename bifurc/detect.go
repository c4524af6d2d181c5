// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bifurc

import (
	"math"

	"github.com/cpmech/gobif/contprob"
)

// signChange is a sign-product test: for two finite values, a negative
// product marks a zero crossing between them. Non-finite inputs never
// report a crossing.
func signChange(prev, curr float64) bool {
	if math.IsNaN(prev) || math.IsNaN(curr) || math.IsInf(prev, 0) || math.IsInf(curr, 0) {
		return false
	}
	return prev*curr < 0
}

// Bracket is one detected zero crossing: the fractional position within
// [prev,curr] (linear interpolation of the sign-changing test function;
// higher-order interpolation is not done here) and the classified kind.
type Bracket struct {
	Kind Kind
	// Frac in [0,1]: the crossing sits at prev_point + Frac*(curr_point-prev_point).
	Frac float64
}

// DetectCodim1 inspects consecutive TestFunctionValues and the diagnostics
// at the current point to find and classify exactly the channels that
// crossed zero between prev and curr. Hopf vs. NeutralSaddle
// is disambiguated by whether the dominant crossing eigenvalue pair at
// curr has nonzero imaginary part.
func DetectCodim1(prev, curr contprob.TestFunctionValues, currDiag contprob.Diagnostics) []Bracket {
	var out []Bracket

	if signChange(prev.Fold, curr.Fold) {
		out = append(out, Bracket{Kind: Fold, Frac: fraction(prev.Fold, curr.Fold)})
	}
	if signChange(prev.Hopf, curr.Hopf) {
		kind := Hopf
		if !currDiag.DominantCrossingIsComplex(1e-9) {
			kind = NeutralSaddle
		}
		out = append(out, Bracket{Kind: kind, Frac: fraction(prev.Hopf, curr.Hopf)})
	}
	if signChange(prev.NeutralSaddle, curr.NeutralSaddle) {
		out = append(out, Bracket{Kind: NeutralSaddle, Frac: fraction(prev.NeutralSaddle, curr.NeutralSaddle)})
	}
	if signChange(prev.CycleFold, curr.CycleFold) {
		out = append(out, Bracket{Kind: CycleFold, Frac: fraction(prev.CycleFold, curr.CycleFold)})
	}
	if signChange(prev.PeriodDoubling, curr.PeriodDoubling) {
		out = append(out, Bracket{Kind: PeriodDoubling, Frac: fraction(prev.PeriodDoubling, curr.PeriodDoubling)})
	}
	if signChange(prev.NeimarkSacker, curr.NeimarkSacker) {
		out = append(out, Bracket{Kind: NeimarkSacker, Frac: fraction(prev.NeimarkSacker, curr.NeimarkSacker)})
	}
	return out
}

// fraction is the linear-interpolation root position of a value crossing
// zero between prev and curr, clamped to [0,1] for robustness against
// rounding at the bracket edges.
func fraction(prev, curr float64) float64 {
	if prev == curr {
		return 0.5
	}
	f := prev / (prev - curr)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}

// Codim2Values are the detectors that classify organizing centers along a
// codim-1 curve continued in two parameters. Channels not produced by a
// given curve type carry the same Inactive sentinel as
// contprob.TestFunctionValues.
type Codim2Values struct {
	Cusp                      float64
	BogdanovTakens            float64
	ZeroHopf                  float64
	DoubleHopf                float64
	GeneralizedHopf           float64
	CuspOfCycles              float64
	FoldFlip                  float64
	FoldNeimarkSacker         float64
	FlipNeimarkSacker         float64
	DoubleNeimarkSacker       float64
	GeneralizedPeriodDoubling float64
	Chenciner                 float64
}

// DetectCodim2 finds every channel that crossed zero between prev and
// curr, one Codim2Kind per crossing.
func DetectCodim2(prev, curr Codim2Values) []Codim2Kind {
	var out []Codim2Kind
	check := func(p, c float64, kind Codim2Kind) {
		if signChange(p, c) {
			out = append(out, kind)
		}
	}
	check(prev.Cusp, curr.Cusp, Cusp)
	check(prev.BogdanovTakens, curr.BogdanovTakens, BogdanovTakens)
	check(prev.ZeroHopf, curr.ZeroHopf, ZeroHopf)
	check(prev.DoubleHopf, curr.DoubleHopf, DoubleHopf)
	check(prev.GeneralizedHopf, curr.GeneralizedHopf, GeneralizedHopf)
	check(prev.CuspOfCycles, curr.CuspOfCycles, CuspOfCycles)
	check(prev.FoldFlip, curr.FoldFlip, FoldFlip)
	check(prev.FoldNeimarkSacker, curr.FoldNeimarkSacker, FoldNeimarkSacker)
	check(prev.FlipNeimarkSacker, curr.FlipNeimarkSacker, FlipNeimarkSacker)
	check(prev.DoubleNeimarkSacker, curr.DoubleNeimarkSacker, DoubleNeimarkSacker)
	check(prev.GeneralizedPeriodDoubling, curr.GeneralizedPeriodDoubling, GeneralizedPeriodDoubling)
	check(prev.Chenciner, curr.Chenciner, Chenciner)
	return out
}

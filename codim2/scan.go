// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codim2

import (
	"github.com/cpmech/gobif/bifurc"
	"github.com/cpmech/gobif/branch"
	"github.com/cpmech/gobif/contprob"
)

// Codim2Hit is one organizing center found along a completed fold-curve
// branch, naming the point index (into Branch.Points) straddling the
// crossing and its classification.
type Codim2Hit struct {
	Index int
	Kind  bifurc.Codim2Kind
}

// ScanFoldCurve walks a completed fold-curve Branch (built by driving a
// *FoldCurve through palc.Engine) and finds every Bogdanov-Takens/Zero-Hopf
// organizing center, by recomputing CodimValuesPartial at each consecutive
// pair of points and handing the results to bifurc.DetectCodim2.
//
// This is deliberately a post-processing pass rather than wired into
// palc.Engine's generic driving loop: the fold/Hopf/LPC/PD/NS curves are
// Problem implementers like any equilibrium or cycle curve, and keeping
// Engine ignorant of codim-2 detection preserves that genericity.
// Cusp is not reported here: its normal-form coefficient needs a
// second-derivative estimate across accepted steps that belongs to the
// driving loop, not a single point, so it is not computed by this pass.
func ScanFoldCurve(fc *FoldCurve, b *branch.Branch) []Codim2Hit {
	var hits []Codim2Hit
	if len(b.Points) == 0 {
		return hits
	}
	prev := fc.Codim2Values(pointAug(b.Points[0]))
	prevFull := toFullValues(prev)
	for i := 1; i < len(b.Points); i++ {
		curr := fc.Codim2Values(pointAug(b.Points[i]))
		currFull := toFullValues(curr)
		for _, kind := range bifurc.DetectCodim2(prevFull, currFull) {
			hits = append(hits, Codim2Hit{Index: i, Kind: kind})
		}
		prevFull = currFull
	}
	return hits
}

func pointAug(p branch.Point) []float64 {
	return append(append([]float64(nil), p.State...), p.ParamValue)
}

// toFullValues embeds a CodimValuesPartial into bifurc.Codim2Values,
// leaving every channel FoldCurve cannot compute from a single point at
// the Inactive sentinel.
func toFullValues(v CodimValuesPartial) bifurc.Codim2Values {
	return bifurc.Codim2Values{
		Cusp:                      contprob.Inactive,
		BogdanovTakens:            v.BogdanovTakens,
		ZeroHopf:                  v.ZeroHopf,
		DoubleHopf:                contprob.Inactive,
		GeneralizedHopf:           contprob.Inactive,
		CuspOfCycles:              contprob.Inactive,
		FoldFlip:                  contprob.Inactive,
		FoldNeimarkSacker:         contprob.Inactive,
		FlipNeimarkSacker:         contprob.Inactive,
		DoubleNeimarkSacker:       contprob.Inactive,
		GeneralizedPeriodDoubling: contprob.Inactive,
		Chenciner:                 contprob.Inactive,
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palc

import (
	"math"

	"github.com/cpmech/gobif/bifurc"
	"github.com/cpmech/gobif/branch"
	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// StopReason names why a run ended, for the host layer to report.
type StopReason int

const (
	StopMaxSteps StopReason = iota
	StopStalled
	StopBoundingBox
	StopProblemError
)

func (r StopReason) String() string {
	switch r {
	case StopMaxSteps:
		return "max-steps"
	case StopStalled:
		return "stalled"
	case StopBoundingBox:
		return "bounding-box"
	case StopProblemError:
		return "problem-error"
	default:
		return "unknown"
	}
}

// Bounds optionally terminates a run once a tracked parameter coordinate
// leaves [Min,Max]. Index selects which augmented coordinate to watch,
// typically the continuation parameter at index Dimension(). A zero-value
// Bounds (Min==Max==0, guarded by Enabled) never triggers.
type Bounds struct {
	Enabled    bool
	Index      int
	Min, Max   float64
}

// Engine drives one contprob.Problem forward (or backward) along its
// solution curve, producing a branch.Branch.
type Engine struct {
	Problem  contprob.Problem
	Settings Settings
	Bounds   Bounds
	BType    branch.BranchType
	Verbose  bool
}

// New validates settings and constructs an Engine.
func New(problem contprob.Problem, settings Settings, btype branch.BranchType) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Engine{Problem: problem, Settings: settings, BType: btype}, nil
}

// Run continues the curve from aug0 for at most Settings.MaxSteps steps,
// advancing in the direction of sign(direction) (>=0 forward, <0 backward),
// and returns the resulting branch and the reason the run stopped.
func (e *Engine) Run(aug0 []float64, direction float64) (*branch.Branch, StopReason, error) {
	n := e.Problem.Dimension()
	dim := n + 1
	if len(aug0) != dim {
		return nil, StopProblemError, chk.Err("palc: initial point has %d coordinates, want %d", len(aug0), dim)
	}

	b := &branch.Branch{Type: e.BType}

	aug := append([]float64(nil), aug0...)
	tangent, err := e.initialTangent(aug, direction)
	if err != nil {
		return b, StopProblemError, err
	}

	diag, err := e.Problem.Diagnostics(aug)
	if err != nil {
		return b, StopProblemError, err
	}
	b.Append(e.toPoint(aug, diag))

	return e.runLoop(b, aug, tangent, e.Settings.StepSize, diag.TestValues)
}

// Resume continues a previously paused run from the exact point and
// tangent a prior Run/Resume call left off at (branch.ResumeState), without
// recomputing the initial tangent or re-appending the resume point itself
// (the caller's branch already has it as its last entry). This is what
// host.Analysis uses to drive a curve by batches. b is the branch to keep
// appending to; its last point's test values seed the bifurcation-detection
// sign comparison for the first step of this batch.
func (e *Engine) Resume(b *branch.Branch, state *branch.ResumeState) (StopReason, error) {
	n := e.Problem.Dimension()
	dim := n + 1
	if len(state.AugmentedState) != dim || len(state.Tangent) != dim {
		return StopProblemError, chk.Err("palc: resume state has wrong dimension, want %d", dim)
	}
	diag, err := e.Problem.Diagnostics(state.AugmentedState)
	if err != nil {
		return StopProblemError, err
	}
	_, reason, rerr := e.runLoop(b, append([]float64(nil), state.AugmentedState...),
		append([]float64(nil), state.Tangent...), state.LastStepSize, diag.TestValues)
	return reason, rerr
}

func (e *Engine) runLoop(b *branch.Branch, aug, tangent []float64, h float64, prevTV contprob.TestFunctionValues) (*branch.Branch, StopReason, error) {
	n := e.Problem.Dimension()
	dim := n + 1
	for step := 0; step < e.Settings.MaxSteps; step++ {
		pred := make([]float64, dim)
		for i := range pred {
			pred[i] = aug[i] + h*tangent[i]
		}

		corrected, iters, ok, err := e.correct(pred, tangent)
		if err != nil {
			return b, StopProblemError, err
		}
		if !ok {
			h /= 2
			if h < e.Settings.MinStepSize {
				return b, StopStalled, nil
			}
			continue
		}

		nextTangent, err := e.tangentAt(corrected, tangent)
		if err != nil || !finiteVec(nextTangent) {
			h /= 2
			if h < e.Settings.MinStepSize {
				return b, StopStalled, nil
			}
			continue
		}

		diag, err := e.Problem.Diagnostics(corrected)
		if err != nil {
			return b, StopProblemError, err
		}
		if err := e.Problem.UpdateAfterStep(corrected); err != nil {
			return b, StopProblemError, err
		}

		aug = corrected
		tangent = nextTangent
		b.Append(e.toPoint(aug, diag))

		for _, br := range bifurc.DetectCodim1(prevTV, diag.TestValues, diag) {
			b.MarkBifurcation(br.Kind)
		}
		prevTV = diag.TestValues

		if e.Bounds.Enabled {
			v := aug[e.Bounds.Index]
			if v < e.Bounds.Min || v > e.Bounds.Max {
				return b, StopBoundingBox, nil
			}
		}

		if iters <= e.Settings.CorrectorSteps/2 {
			h = math.Min(h*1.5, e.Settings.MaxStepSize)
		}

		if e.Verbose {
			io.Pforan("palc: step=%d h=%v iters=%d param=%v\n", step, h, iters, aug[n])
		}
	}

	b.ResumeForward = &branch.ResumeState{
		AugmentedState: append([]float64(nil), aug...),
		Tangent:        append([]float64(nil), tangent...),
		LastStepSize:   h,
	}
	return b, StopMaxSteps, nil
}

// correct runs the Newton corrector (full, undamped updates) on the augmented residual
// [F(aug); tangentPrev . (aug-pred)] = 0, bordered by tangentPrev, starting
// from the predictor pred.
func (e *Engine) correct(pred, tangentPrev []float64) (corrected []float64, iters int, ok bool, err error) {
	n := e.Problem.Dimension()
	dim := n + 1
	aug := append([]float64(nil), pred...)
	fOut := make([]float64, n)

	for iters = 0; iters < e.Settings.CorrectorSteps; iters++ {
		if err = e.Problem.Residual(aug, fOut); err != nil {
			return nil, iters, false, err
		}
		arclength := 0.0
		for i := 0; i < dim; i++ {
			arclength += tangentPrev[i] * (aug[i] - pred[i])
		}

		resNorm := norm2(fOut)
		if math.Abs(arclength) < e.Settings.CorrectorTol && resNorm < e.Settings.CorrectorTol {
			return aug, iters, true, nil
		}

		jac, jerr := e.Problem.ExtendedJacobian(aug)
		if jerr != nil {
			return nil, iters, false, jerr
		}

		rhs := make([]float64, dim)
		for i := 0; i < n; i++ {
			rhs[i] = -fOut[i]
		}
		rhs[n] = -arclength

		delta, serr := solveBordered(jac, tangentPrev, rhs)
		if serr != nil {
			return nil, iters, false, nil // singular Jacobian: corrector failure, not a fatal error
		}
		if !finiteVec(delta) {
			return nil, iters, false, nil
		}
		for i := range aug {
			aug[i] += delta[i]
		}
		if norm2(delta) < e.Settings.StepTol {
			return aug, iters + 1, true, nil
		}
	}
	return nil, iters, false, nil
}

// initialTangent computes the first tangent at aug by trying bordering axes
// {0, n, 1} in order, keeping the first candidate with a positive, finite
// norm, oriented by the requested direction: for direction >= 0 the
// continuation-parameter component (index n) is non-negative, for
// direction < 0 it is non-positive.
func (e *Engine) initialTangent(aug []float64, direction float64) ([]float64, error) {
	n := e.Problem.Dimension()
	dim := n + 1
	jac, err := e.Problem.ExtendedJacobian(aug)
	if err != nil {
		return nil, err
	}

	axes := []int{0, n, 1}
	rhs := make([]float64, dim)
	rhs[dim-1] = 1

	var tangent []float64
	for _, k := range axes {
		if k >= dim {
			continue
		}
		border := make([]float64, dim)
		border[k] = 1
		cand, serr := solveBordered(jac, border, rhs)
		if serr != nil || !finiteVec(cand) {
			continue
		}
		if normalize(cand) > 0 {
			tangent = cand
			break
		}
	}
	if tangent == nil {
		return nil, chk.Err("palc: no bordering axis among {0,%d,1} produced a usable initial tangent", n)
	}
	if (tangent[n] < 0) != (direction < 0) {
		for i := range tangent {
			tangent[i] = -tangent[i]
		}
	}
	return tangent, nil
}

// tangentAt recomputes the tangent at aug and flips its sign if needed to
// keep it oriented with prev: maximize the inner product with the
// previous tangent.
func (e *Engine) tangentAt(aug, prev []float64) ([]float64, error) {
	n := e.Problem.Dimension()
	dim := n + 1
	jac, err := e.Problem.ExtendedJacobian(aug)
	if err != nil {
		return nil, err
	}

	axes := []int{0, n, 1}
	rhs := make([]float64, dim)
	rhs[dim-1] = 1

	var best []float64
	for _, k := range axes {
		if k >= dim {
			continue
		}
		border := make([]float64, dim)
		border[k] = 1
		cand, serr := solveBordered(jac, border, rhs)
		if serr != nil || !finiteVec(cand) {
			continue
		}
		if normalize(cand) > 0 {
			best = cand
			break
		}
	}
	if best == nil {
		return nil, chk.Err("palc: no bordering axis produced a usable tangent")
	}

	dot := 0.0
	for i := range best {
		dot += best[i] * prev[i]
	}
	if dot < 0 {
		for i := range best {
			best[i] = -best[i]
		}
	}
	return best, nil
}

func (e *Engine) toPoint(aug []float64, diag contprob.Diagnostics) branch.Point {
	n := e.Problem.Dimension()
	stability := bifurc.None
	return branch.Point{
		State:       append([]float64(nil), aug[:n]...),
		ParamValue:  aug[n],
		Stability:   stability,
		Eigenvalues: diag.Eigenvalues,
		CyclePoints: diag.CyclePoints,
	}
}

func norm2(v []float64) float64 {
	var ss float64
	for _, x := range v {
		ss += x * x
	}
	return math.Sqrt(ss)
}

func finiteVec(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return len(v) > 0
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host is the thin binding a language host drives, deliberately
// shallow since such bindings are treated as external collaborators.
// Grounded on fem.FEM's construct/run/retrieve shape (NewFEM, Run,
// SolveOneStage) and main.go's flag-parse + deferred-recover pattern.
package host

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/branch"
	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/expr"
	"github.com/cpmech/gobif/palc"
	"github.com/cpmech/gobif/vm"
)

// Progress is the batch-driving status report: done, current_step,
// max_steps, points_so_far, bifurcations_so_far, and current_param.
type Progress struct {
	Done              bool
	CurrentStep       int
	MaxSteps          int
	PointsSoFar       int
	BifurcationsSoFar int
	CurrentParam      float64
}

// Analysis is the host-facing handle on one continuation run: construct,
// drive by batches, retrieve the finished payload. It wraps any
// contprob.Problem, so it drives equilibrium curves, periodic-orbit
// curves (package colloc), and bordered codim-2 curves (package codim2)
// uniformly; NewEquilibriumAnalysis below is the convenience constructor
// for the common case of building the equilibrium problem directly from
// equation sources, parameter names, and a system kind.
type Analysis struct {
	engine  *palc.Engine
	b       *branch.Branch
	started bool
	done    bool
	reason  palc.StopReason
	lastErr error

	totalMaxSteps int
	stepsDone     int
	direction     float64
	initialAug    []float64
}

// NewAnalysis builds an Analysis driving prob with engine settings and
// branch type btype, starting from initialAug and advancing in the
// direction of sign(direction). Settings are validated at construction,
// so an invalid Settings value fails here and can never arise mid-run.
func NewAnalysis(prob contprob.Problem, settings palc.Settings, btype branch.BranchType, initialAug []float64, direction float64) (*Analysis, error) {
	eng, err := palc.New(prob, settings, btype)
	if err != nil {
		return nil, chk.Err("host: construction failed: %v", err)
	}
	dim := prob.Dimension() + 1
	if len(initialAug) != dim {
		return nil, chk.Err("host: construction failed: initial point has %d coordinates, want %d", len(initialAug), dim)
	}
	return &Analysis{
		engine:        eng,
		totalMaxSteps: settings.MaxSteps,
		direction:     direction,
		initialAug:    append([]float64(nil), initialAug...),
	}, nil
}

// NewEquilibriumAnalysis builds an equilibrium Analysis directly from a
// set of expression-language equation sources, named initial parameter
// values, parameter/variable name lists, and a system kind (eqsys.Kind),
// continuing the equilibrium curve in trackParam starting from
// initialState.
func NewEquilibriumAnalysis(
	equationSrcs []string, varNames, paramNames []string, initialParams fun.Prms,
	kind eqsys.Kind, trackParam string, initialState []float64,
	settings palc.Settings, direction float64,
) (*Analysis, error) {
	names := expr.NameIndex{Vars: indexOf(varNames), Params: indexOf(paramNames)}
	progs := make([]*vm.Program, len(equationSrcs))
	for i, src := range equationSrcs {
		e, err := expr.Parse(src)
		if err != nil {
			return nil, chk.Err("host: parse equation %d (%q): %v", i, src, err)
		}
		p, err := expr.Compile(names, e)
		if err != nil {
			return nil, chk.Err("host: compile equation %d (%q): %v", i, src, err)
		}
		progs[i] = p
	}
	sys, err := eqsys.New(kind, progs, varNames, paramNames, initialParams)
	if err != nil {
		return nil, chk.Err("host: construction failed: %v", err)
	}
	pIdx := sys.ParamIndex(trackParam)
	if pIdx < 0 {
		return nil, chk.Err("host: construction failed: unknown parameter %q", trackParam)
	}
	if len(initialState) != sys.NState() {
		return nil, chk.Err("host: construction failed: initial state has %d coordinates, want %d", len(initialState), sys.NState())
	}
	prob := contprob.NewEquilibriumProblem(sys, pIdx)
	initialAug := append(append([]float64(nil), initialState...), sys.Param(pIdx))
	return NewAnalysis(prob, settings, branch.Equilibrium, initialAug, direction)
}

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

// Drive advances the run by at most batchSize steps and reports progress.
// Calling Drive after Done() is a no-op returning the final progress.
// Numeric/step-control errors never abort the run: they end it cleanly
// and are visible only through Progress/StopReason, never returned here.
// A non-nil error return is reserved for a fatal condition, which
// truncates the branch but preserves it for Payload().
func (a *Analysis) Drive(batchSize int) (Progress, error) {
	if a.done {
		return a.progress(), nil
	}
	if batchSize < 1 {
		batchSize = 1
	}
	remaining := a.totalMaxSteps - a.stepsDone
	if remaining <= 0 {
		a.done = true
		return a.progress(), nil
	}
	if batchSize > remaining {
		batchSize = remaining
	}
	a.engine.Settings.MaxSteps = batchSize

	pointsBefore := 0
	if a.b != nil {
		pointsBefore = len(a.b.Points)
	}

	var reason palc.StopReason
	var err error
	if !a.started {
		a.b, reason, err = a.engine.Run(a.initialAug, a.direction)
		a.started = true
	} else {
		reason, err = a.engine.Resume(a.b, a.b.ResumeForward)
	}

	if err != nil {
		a.done, a.reason, a.lastErr = true, palc.StopProblemError, err
		return a.progress(), chk.Err("host: run failed: %v", err)
	}

	pointsAfter := len(a.b.Points)
	stepsTaken := pointsAfter - pointsBefore
	if pointsBefore == 0 && stepsTaken > 0 {
		stepsTaken-- // the first point of a fresh run is the seed, not a step
	}
	a.stepsDone += stepsTaken
	a.reason = reason
	if reason != palc.StopMaxSteps || a.stepsDone >= a.totalMaxSteps {
		a.done = true
	}
	return a.progress(), nil
}

// StopReason reports why the run stopped (meaningful once Done()).
func (a *Analysis) StopReason() palc.StopReason { return a.reason }

// Done reports whether the run has finished (reached max steps, stalled,
// left its bounding box, or hit a fatal problem error).
func (a *Analysis) Done() bool { return a.done }

// Payload retrieves the finished branch as a serializable record. Calling
// it before Done() still returns whatever has been produced so far: a
// truncated-but-valid payload, since a fatal error aborts the run with
// the current branch preserved rather than discarded.
func (a *Analysis) Payload() branch.Payload {
	if a.b == nil {
		return branch.Payload{}
	}
	return a.b.ToPayload()
}

func (a *Analysis) progress() Progress {
	p := Progress{Done: a.done, CurrentStep: a.stepsDone, MaxSteps: a.totalMaxSteps}
	if a.b != nil {
		p.PointsSoFar = len(a.b.Points)
		p.BifurcationsSoFar = len(a.b.Bifurcations)
		if p.PointsSoFar > 0 {
			p.CurrentParam = a.b.Points[p.PointsSoFar-1].ParamValue
		}
	}
	return p
}

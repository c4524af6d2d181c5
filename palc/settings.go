// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package palc implements pseudo-arclength continuation: predictor-
// corrector stepping along a one-parameter curve of solutions to a
// contprob.Problem, with adaptive step size and orientation-preserving
// tangents. Grounded on fem/fem.go's NewFEM/Run/SolveOneStage staged-loop
// idiom (construct once, drive a bounded number of steps, accumulate
// results, stop on a named condition) and msolid/driver.go's damped
// predictor-corrector iteration idiom.
package palc

import "github.com/cpmech/gosl/chk"

// Settings configures one continuation run: step sizing, the corrector's
// iteration budget and tolerances, and the overall step cap.
type Settings struct {
	StepSize         float64
	MinStepSize      float64
	MaxStepSize      float64
	MaxSteps         int
	CorrectorSteps   int
	CorrectorTol     float64
	StepTol          float64
}

// DefaultSettings returns conservative defaults suitable for the worked
// fold/Hopf examples in this package's tests.
func DefaultSettings() Settings {
	return Settings{
		StepSize:       0.1,
		MinStepSize:    1e-6,
		MaxStepSize:    1.0,
		MaxSteps:       1000,
		CorrectorSteps: 10,
		CorrectorTol:   1e-9,
		StepTol:        1e-10,
	}
}

// Validate checks the settings ranges, returning a chk.Err wrapped failure
// naming the first violated constraint.
func (s Settings) Validate() error {
	if s.StepSize <= 0 {
		return chk.Err("palc: step_size must be positive, got %v", s.StepSize)
	}
	if s.MinStepSize <= 0 || s.MinStepSize > s.StepSize {
		return chk.Err("palc: min_step_size must satisfy 0 < min_step_size <= step_size, got %v", s.MinStepSize)
	}
	if s.MaxStepSize < s.StepSize {
		return chk.Err("palc: max_step_size must be >= step_size, got %v", s.MaxStepSize)
	}
	if s.MaxSteps < 1 {
		return chk.Err("palc: max_steps must be >= 1, got %v", s.MaxSteps)
	}
	if s.CorrectorSteps < 1 {
		return chk.Err("palc: corrector_steps must be >= 1, got %v", s.CorrectorSteps)
	}
	if s.CorrectorTol <= 0 {
		return chk.Err("palc: corrector_tolerance must be positive, got %v", s.CorrectorTol)
	}
	if s.StepTol <= 0 {
		return chk.Err("palc: step_tolerance must be positive, got %v", s.StepTol)
	}
	return nil
}

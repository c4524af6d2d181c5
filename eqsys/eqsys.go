// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eqsys holds the compiled residual equations of a user-specified
// dynamical system.
package eqsys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/scalar"
	"github.com/cpmech/gobif/vm"
)

// Kind tags whether f is a continuous flow (dx/dt = f(x,p)) or a discrete
// map (x_{n+1} = f(x_n,p)). The equilibrium solver (package newton) uses it
// to decide whether to use J or J-I as the equilibrium residual Jacobian.
// Carried as an explicit tag rather than inferred from which stepper was
// invoked.
type Kind int

const (
	Continuous Kind = iota
	Discrete
)

// EquationSystem is an ordered collection of n bytecode programs (one per
// state coordinate of f), a mutable parameter vector p of length m, and
// name->index maps for variables and parameters. It is created once per
// analysis run and outlives every continuation problem that borrows it.
// Scratch stacks are owned here and reused across every evaluation, so
// EquationSystem must not be shared across goroutines without external
// synchronization.
type EquationSystem struct {
	Kind Kind

	progs  []*vm.Program
	nstate int
	nparam int

	varIndex   map[string]int
	paramIndex map[string]int
	paramNames []string
	params     []float64

	realScratch *vm.Scratch[scalar.Real]
	dualScratch *vm.Scratch[scalar.Dual]
}

// New builds an EquationSystem from already-compiled programs (one per
// state coordinate) and an initial parameter vector expressed gosl-style
// as fun.Prms, following
// the same per-name switch used by mdl/solid.SmallElasticity.Init.
func New(kind Kind, progs []*vm.Program, varNames []string, paramNames []string, initial fun.Prms) (*EquationSystem, error) {
	if len(progs) != len(varNames) {
		return nil, chk.Err("eqsys: %d programs but %d state variable names", len(progs), len(varNames))
	}
	o := &EquationSystem{
		Kind:       kind,
		progs:      progs,
		nstate:     len(varNames),
		nparam:     len(paramNames),
		varIndex:   indexOf(varNames),
		paramIndex: indexOf(paramNames),
		paramNames: append([]string(nil), paramNames...),
		params:     make([]float64, len(paramNames)),
	}
	maxLen := 0
	for _, p := range progs {
		if p.Len() > maxLen {
			maxLen = p.Len()
		}
	}
	o.realScratch = vm.NewScratch[scalar.Real](maxLen)
	o.dualScratch = vm.NewScratch[scalar.Dual](maxLen)

	for _, p := range initial {
		j, ok := o.paramIndex[p.N]
		if !ok {
			return nil, chk.Err("eqsys: unknown parameter %q in initial values", p.N)
		}
		o.params[j] = p.V
	}
	return o, nil
}

func indexOf(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

// NState, NParam report the declared dimensions: program indexing matches
// state coordinate indexing, and the parameter vector's length matches
// the declared parameter count.
func (o *EquationSystem) NState() int { return o.nstate }
func (o *EquationSystem) NParam() int { return o.nparam }

// ParamIndex resolves a parameter name to its slot, or -1 if unknown.
func (o *EquationSystem) ParamIndex(name string) int {
	if i, ok := o.paramIndex[name]; ok {
		return i
	}
	return -1
}

// Param returns the current value of parameter j.
func (o *EquationSystem) Param(j int) float64 { return o.params[j] }

// SetParam overwrites parameter j without any restoration discipline; used
// by continuation problems for the parameter(s) they are actively tracing.
func (o *EquationSystem) SetParam(j int, v float64) { o.params[j] = v }

// Apply writes f(x) into out; t is accepted for interface uniformity with
// package integrate's Stepper but autonomous systems ignore it.
func (o *EquationSystem) Apply(t float64, x []float64, out []float64) {
	_ = t
	vars := make([]scalar.Real, o.nstate)
	for i, v := range x {
		vars[i] = scalar.Real(v)
	}
	params := o.realParams()
	for i, p := range o.progs {
		out[i] = float64(vm.Execute(p, vars, params, o.realScratch, realFromFloat))
	}
}

func (o *EquationSystem) realParams() []scalar.Real {
	params := make([]scalar.Real, o.nparam)
	for j, v := range o.params {
		params[j] = scalar.Real(v)
	}
	return params
}

func realFromFloat(c float64) scalar.Real { return scalar.Real(c) }

// EvaluateJacobianWrtState runs Dual execution n times, seeding eps=1 in
// one state coordinate per pass, and extracts the column from the tangent
// part. For discrete maps, the caller (package newton) subtracts the
// identity to form the equilibrium residual Jacobian.
func (o *EquationSystem) EvaluateJacobianWrtState(x []float64) [][]float64 {
	J := make([][]float64, o.nstate)
	for i := range J {
		J[i] = make([]float64, o.nstate)
	}
	dualParams := make([]scalar.Dual, o.nparam)
	for j, v := range o.params {
		dualParams[j] = scalar.NewDual(v)
	}
	for col := 0; col < o.nstate; col++ {
		vars := make([]scalar.Dual, o.nstate)
		for i, v := range x {
			if i == col {
				vars[i] = scalar.Seed(v)
			} else {
				vars[i] = scalar.NewDual(v)
			}
		}
		for row, p := range o.progs {
			v := vm.Execute(p, vars, dualParams, o.dualScratch, scalar.NewDual)
			J[row][col] = v.Eps
		}
	}
	return J
}

// EvaluateDerivativeWrtParam seeds eps=1 on parameter j and returns the
// tangent of f.
func (o *EquationSystem) EvaluateDerivativeWrtParam(x []float64, j int) []float64 {
	vars := make([]scalar.Dual, o.nstate)
	for i, v := range x {
		vars[i] = scalar.NewDual(v)
	}
	params := make([]scalar.Dual, o.nparam)
	for k, v := range o.params {
		if k == j {
			params[k] = scalar.Seed(v)
		} else {
			params[k] = scalar.NewDual(v)
		}
	}
	out := make([]float64, o.nstate)
	for i, p := range o.progs {
		v := vm.Execute(p, vars, params, o.dualScratch, scalar.NewDual)
		out[i] = v.Eps
	}
	return out
}

// WithParam scopes a temporary mutation of parameter j to run, restoring
// the previous value on every exit path (success, error, or panic). Go
// has no destructors, so the scoped acquisition is realized as a defer.
func (o *EquationSystem) WithParam(j int, v float64, run func() error) (err error) {
	prev := o.params[j]
	o.params[j] = v
	defer func() { o.params[j] = prev }()
	return run()
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/host"
	"github.com/cpmech/gobif/palc"
)

// runSpec is the JSON input file describing one continuation run: a small,
// flat, json-tagged struct read straight off disk, in the same spirit as
// inp.Data's .sim files.
type runSpec struct {
	Desc       string        `json:"desc"`        // description of the run
	Equations  []string      `json:"equations"`   // one expr.Parse source per state variable
	Vars       []string      `json:"vars"`        // state variable names, in residual order
	Params     []string      `json:"params"`      // parameter names
	Initial    []namedValue  `json:"initial"`     // initial named parameter values
	Kind       string        `json:"kind"`        // "continuous" or "discrete"
	TrackParam string        `json:"track_param"` // which parameter to continue in
	State      []float64     `json:"state"`       // initial state vector
	Direction  float64       `json:"direction"`   // +1 forward, -1 backward

	StepSize       float64 `json:"step_size"`
	MinStepSize    float64 `json:"min_step_size"`
	MaxStepSize    float64 `json:"max_step_size"`
	MaxSteps       int     `json:"max_steps"`
	CorrectorSteps int     `json:"corrector_steps"`
	CorrectorTol   float64 `json:"corrector_tolerance"`
	StepTol        float64 `json:"step_tolerance"`
}

// namedValue is the JSON shape of one initial parameter; converted to a
// fun.Prm when handed to eqsys.New.
type namedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (r runSpec) initialParams() fun.Prms {
	prms := make(fun.Prms, len(r.Initial))
	for i, nv := range r.Initial {
		prms[i] = &fun.Prm{N: nv.Name, V: nv.Value}
	}
	return prms
}

// demoSpec is a fold continuation worked example (dx/dt = x^2+a, starting
// at a=-1,x=1, fold at a=0,x=0), used when no input file is given on the
// command line.
func demoSpec() runSpec {
	return runSpec{
		Desc:       "fold continuation of dx/dt = x^2 + a",
		Equations:  []string{"x^2 + a"},
		Vars:       []string{"x"},
		Params:     []string{"a"},
		Initial:    []namedValue{{Name: "a", Value: -1}},
		Kind:       "continuous",
		TrackParam: "a",
		State:      []float64{1},
		Direction:  +1,

		StepSize:       0.1,
		MinStepSize:    1e-6,
		MaxStepSize:    0.2,
		MaxSteps:       200,
		CorrectorSteps: 10,
		CorrectorTol:   1e-9,
		StepTol:        1e-10,
	}
}

func (r runSpec) settings() palc.Settings {
	s := palc.DefaultSettings()
	if r.StepSize > 0 {
		s.StepSize = r.StepSize
	}
	if r.MinStepSize > 0 {
		s.MinStepSize = r.MinStepSize
	}
	if r.MaxStepSize > 0 {
		s.MaxStepSize = r.MaxStepSize
	}
	if r.MaxSteps > 0 {
		s.MaxSteps = r.MaxSteps
	}
	if r.CorrectorSteps > 0 {
		s.CorrectorSteps = r.CorrectorSteps
	}
	if r.CorrectorTol > 0 {
		s.CorrectorTol = r.CorrectorTol
	}
	if r.StepTol > 0 {
		s.StepTol = r.StepTol
	}
	return s
}

func (r runSpec) systemKind() (eqsys.Kind, error) {
	switch r.Kind {
	case "", "continuous":
		return eqsys.Continuous, nil
	case "discrete":
		return eqsys.Discrete, nil
	}
	return 0, chk.Err("unknown system kind %q, want \"continuous\" or \"discrete\"", r.Kind)
}

const batchSize = 50

func main() {
	verbose := true

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.Pfred("ERROR: %v\n", err)
		}
	}()

	// run filenamepath
	flag.Parse()

	io.PfWhite("\ngobif -- numerical continuation and bifurcation analysis\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	var spec runSpec
	if len(flag.Args()) > 0 {
		fnamepath := flag.Arg(0)
		buf, err := io.ReadFile(fnamepath)
		if err != nil {
			chk.Panic("cannot read input file %q: %v\n", fnamepath, err)
		}
		if err := json.Unmarshal(buf, &spec); err != nil {
			chk.Panic("cannot parse input file %q: %v\n", fnamepath, err)
		}
	} else {
		io.Pf("no input file given; running the built-in fold-continuation demo\n")
		io.Pf("(pass a .json run file to continue a different system)\n\n")
		spec = demoSpec()
	}

	kind, err := spec.systemKind()
	if err != nil {
		chk.Panic("%v\n", err)
	}

	analysis, err := host.NewEquilibriumAnalysis(
		spec.Equations, spec.Vars, spec.Params, spec.initialParams(),
		kind, spec.TrackParam, spec.State,
		spec.settings(), spec.Direction,
	)
	if err != nil {
		chk.Panic("%v\n", err)
	}

	// drive the curve by batches, reporting progress after each one
	io.Pf("%s\n", spec.Desc)
	for !analysis.Done() {
		p, err := analysis.Drive(batchSize)
		if err != nil {
			chk.Panic("run failed: %v\n", err)
		}
		if verbose {
			io.Pforan("step=%d/%d points=%d bifurcations=%d param=%v\n",
				p.CurrentStep, p.MaxSteps, p.PointsSoFar, p.BifurcationsSoFar, p.CurrentParam)
		}
	}

	io.Pf("stopped: %v\n", analysis.StopReason())
	payload := analysis.Payload()
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		chk.Panic("cannot marshal payload: %v\n", err)
	}
	io.Pf("%s\n", string(out))
}

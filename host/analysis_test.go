// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gobif/bifurc"
	"github.com/cpmech/gobif/eqsys"
	"github.com/cpmech/gobif/palc"
)

// TestDriveByBatchesFindsFold drives the fold example (dx/dt = x^2+a,
// starting at a=-1,x=1, fold at a=0,x=0) in small batches and checks the
// batched run finds the fold bifurcation, with Progress bookkeeping
// reaching MaxSteps when the run stops for that reason.
func TestDriveByBatchesFindsFold(t *testing.T) {
	settings := palc.DefaultSettings()
	settings.StepSize = 0.1
	settings.MaxStepSize = 0.2
	settings.MaxSteps = 60

	a, err := NewEquilibriumAnalysis(
		[]string{"x^2 + a"}, []string{"x"}, []string{"a"},
		fun.Prms{{N: "a", V: -1}},
		eqsys.Continuous, "a", []float64{1},
		settings, +1,
	)
	if err != nil {
		t.Fatalf("NewEquilibriumAnalysis: %v", err)
	}

	var last Progress
	batches := 0
	for !a.Done() {
		last, err = a.Drive(7)
		if err != nil {
			t.Fatalf("Drive: %v", err)
		}
		batches++
		if batches > 100 {
			t.Fatalf("Drive did not converge to Done() within 100 batches")
		}
	}
	if last.CurrentStep != last.MaxSteps && a.StopReason() == palc.StopMaxSteps {
		t.Fatalf("CurrentStep=%d, want %d at StopMaxSteps", last.CurrentStep, last.MaxSteps)
	}

	payload := a.Payload()
	if len(payload.Points) == 0 {
		t.Fatalf("expected a non-empty payload")
	}
	foundFold := false
	for _, bf := range payload.Bifurcations {
		if bf.Kind == bifurc.Fold.String() {
			foundFold = true
		}
	}
	if !foundFold {
		t.Fatalf("expected a Fold bifurcation in the batched payload, got %v", payload.Bifurcations)
	}
}

// TestDriveAfterDoneIsNoOp ensures calling Drive past completion does not
// panic or mutate state further.
func TestDriveAfterDoneIsNoOp(t *testing.T) {
	settings := palc.DefaultSettings()
	settings.MaxSteps = 3
	a, err := NewEquilibriumAnalysis(
		[]string{"x^2 + a"}, []string{"x"}, []string{"a"},
		fun.Prms{{N: "a", V: -1}},
		eqsys.Continuous, "a", []float64{1},
		settings, +1,
	)
	if err != nil {
		t.Fatalf("NewEquilibriumAnalysis: %v", err)
	}
	for !a.Done() {
		if _, err := a.Drive(10); err != nil {
			t.Fatalf("Drive: %v", err)
		}
	}
	p1 := a.Payload()
	if _, err := a.Drive(10); err != nil {
		t.Fatalf("Drive after done: %v", err)
	}
	p2 := a.Payload()
	if len(p1.Points) != len(p2.Points) {
		t.Fatalf("Drive after Done() mutated the payload: %d -> %d points", len(p1.Points), len(p2.Points))
	}
}

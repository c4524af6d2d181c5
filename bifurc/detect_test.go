// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bifurc

import (
	"testing"

	"github.com/cpmech/gobif/contprob"
)

func TestDetectCodim1Fold(t *testing.T) {
	prev := contprob.Equilibrium(1.0, 1.0, 1.0)
	curr := contprob.Equilibrium(-1.0, 1.0, 1.0)
	got := DetectCodim1(prev, curr, contprob.Diagnostics{})
	if len(got) != 1 || got[0].Kind != Fold {
		t.Fatalf("expected a single Fold bracket, got %v", got)
	}
}

func TestDetectCodim1HopfVsNeutralSaddle(t *testing.T) {
	prev := contprob.Equilibrium(1.0, 1.0, 1.0)
	curr := contprob.Equilibrium(1.0, -1.0, 1.0)

	withComplex := contprob.Diagnostics{Eigenvalues: []complex128{complex(0, 2), complex(0, -2)}}
	got := DetectCodim1(prev, curr, withComplex)
	if len(got) != 1 || got[0].Kind != Hopf {
		t.Fatalf("expected Hopf with complex crossing pair, got %v", got)
	}

	withReal := contprob.Diagnostics{Eigenvalues: []complex128{complex(2, 0), complex(-2, 0)}}
	got = DetectCodim1(prev, curr, withReal)
	if len(got) != 1 || got[0].Kind != NeutralSaddle {
		t.Fatalf("expected NeutralSaddle with real crossing pair, got %v", got)
	}
}

func TestDetectCodim2CuspOnly(t *testing.T) {
	prev := Codim2Values{Cusp: 1.0, BogdanovTakens: -0.5}
	curr := Codim2Values{Cusp: -0.5, BogdanovTakens: -0.2}
	got := DetectCodim2(prev, curr)
	if len(got) != 1 || got[0] != Cusp {
		t.Fatalf("expected exactly {Cusp}, got %v", got)
	}
}

func TestExcludeTrivialMultiplier(t *testing.T) {
	mult := []complex128{1.0000001, 0.3, -0.5}
	got := ExcludeTrivial(mult, 1e-3)
	if len(got) != 2 {
		t.Fatalf("expected 2 non-trivial multipliers, got %d: %v", len(got), got)
	}
	for _, m := range got {
		if real(m) > 0.9 && imag(m) == 0 {
			t.Fatalf("trivial multiplier was not excluded: %v", got)
		}
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bifurc implements bifurcation test-function sign-change
// detection and classification, and Floquet multiplier extraction from a
// periodic orbit's monodromy matrix.
package bifurc

// Kind is the codim-1 bifurcation taxonomy.
type Kind int

const (
	None Kind = iota
	Fold
	Hopf
	NeutralSaddle
	CycleFold
	PeriodDoubling
	NeimarkSacker
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Fold:
		return "Fold"
	case Hopf:
		return "Hopf"
	case NeutralSaddle:
		return "NeutralSaddle"
	case CycleFold:
		return "CycleFold"
	case PeriodDoubling:
		return "PeriodDoubling"
	case NeimarkSacker:
		return "NeimarkSacker"
	default:
		return "Unknown"
	}
}

// Codim2Kind is the organizing-center taxonomy reached only while
// continuing a codim-1 curve in two parameters (package codim2).
type Codim2Kind int

const (
	Codim2None Codim2Kind = iota
	Cusp
	BogdanovTakens
	ZeroHopf
	DoubleHopf
	GeneralizedHopf
	CuspOfCycles
	FoldFlip
	FoldNeimarkSacker
	FlipNeimarkSacker
	DoubleNeimarkSacker
	GeneralizedPeriodDoubling
	Chenciner
	Resonance11
	Resonance12
	Resonance13
	Resonance14
)

func (k Codim2Kind) String() string {
	switch k {
	case Codim2None:
		return "None"
	case Cusp:
		return "Cusp"
	case BogdanovTakens:
		return "BogdanovTakens"
	case ZeroHopf:
		return "ZeroHopf"
	case DoubleHopf:
		return "DoubleHopf"
	case GeneralizedHopf:
		return "GeneralizedHopf"
	case CuspOfCycles:
		return "CuspOfCycles"
	case FoldFlip:
		return "FoldFlip"
	case FoldNeimarkSacker:
		return "FoldNeimarkSacker"
	case FlipNeimarkSacker:
		return "FlipNeimarkSacker"
	case DoubleNeimarkSacker:
		return "DoubleNeimarkSacker"
	case GeneralizedPeriodDoubling:
		return "GeneralizedPeriodDoubling"
	case Chenciner:
		return "Chenciner"
	case Resonance11:
		return "Resonance1:1"
	case Resonance12:
		return "Resonance1:2"
	case Resonance13:
		return "Resonance1:3"
	case Resonance14:
		return "Resonance1:4"
	default:
		return "Unknown"
	}
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package branch holds the append-only result of one continuation run,
// grounded on fem/output.go's accumulate-into-a-Summary pattern.
package branch

import "github.com/cpmech/gobif/bifurc"

// BranchType tags what kind of curve the branch traces.
type BranchType int

const (
	Equilibrium BranchType = iota
	LimitCycle
	FoldCurve
	HopfCurve
	LPCCurve
	PDCurve
	NSCurve
)

func (t BranchType) String() string {
	switch t {
	case Equilibrium:
		return "equilibrium"
	case LimitCycle:
		return "limit-cycle"
	case FoldCurve:
		return "fold-curve"
	case HopfCurve:
		return "hopf-curve"
	case LPCCurve:
		return "lpc-curve"
	case PDCurve:
		return "pd-curve"
	case NSCurve:
		return "ns-curve"
	default:
		return "unknown"
	}
}

// Point is one accepted continuation point.
type Point struct {
	State        []float64
	ParamValue   float64
	Stability    bifurc.Kind
	Eigenvalues  []complex128
	CyclePoints  [][]float64 // non-nil only for LimitCycle branches
}

// BifurcationRecord indexes a detected point within the branch together
// with its classified kind, letting a host list bifurcations without
// rescanning every point.
type BifurcationRecord struct {
	Index int
	Kind  bifurc.Kind
}

// ResumeState captures what is needed to extend a branch from one of its
// signed ends.
type ResumeState struct {
	AugmentedState []float64
	Tangent        []float64
	LastStepSize   float64
}

// Branch is the ordered, append-only sequence of points produced by one
// continuation run, plus the indices of detected bifurcations and the
// mesh parameters for limit-cycle branches.
type Branch struct {
	Type         BranchType
	Ntst, Ncol   int // only meaningful for BranchType == LimitCycle
	Points       []Point
	Bifurcations []BifurcationRecord

	ResumeForward  *ResumeState
	ResumeBackward *ResumeState
}

// Append adds a new point; Branches are append-only during a run, and the
// caller (package palc) is solely responsible for monotone step-index
// ordering.
func (b *Branch) Append(p Point) {
	b.Points = append(b.Points, p)
}

// MarkBifurcation records the most recently appended point as a detected
// bifurcation of the given kind.
func (b *Branch) MarkBifurcation(kind bifurc.Kind) {
	b.Bifurcations = append(b.Bifurcations, BifurcationRecord{Index: len(b.Points) - 1, Kind: kind})
}

// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package branch

import "encoding/json"

// complexPair is the {re, im} wire shape used for complex numbers in the
// branch payload.
type complexPair struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type pointPayload struct {
	State       []float64     `json:"state"`
	ParamValue  float64       `json:"param_value"`
	Stability   string        `json:"stability"`
	Eigenvalues []complexPair `json:"eigenvalues"`
	CyclePoints [][]float64   `json:"cycle_points,omitempty"`
}

type bifurcationPayload struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
}

// Payload is the serializable record: points, bifurcations, indices,
// branch type, and optional resume state. Bifurcation kinds are stable
// string tags, not integer enum values, so the wire format is stable
// across refactors of the Kind enum's ordering.
type Payload struct {
	Points         []pointPayload       `json:"points"`
	Bifurcations   []bifurcationPayload `json:"bifurcations"`
	BranchType     string               `json:"branch_type"`
	Ntst           int                  `json:"ntst,omitempty"`
	Ncol           int                  `json:"ncol,omitempty"`
	ResumeForward  *ResumeState         `json:"resume_forward,omitempty"`
	ResumeBackward *ResumeState         `json:"resume_backward,omitempty"`
}

// ToPayload converts a Branch into its serializable form.
func (b *Branch) ToPayload() Payload {
	p := Payload{
		BranchType:     b.Type.String(),
		Ntst:           b.Ntst,
		Ncol:           b.Ncol,
		ResumeForward:  b.ResumeForward,
		ResumeBackward: b.ResumeBackward,
	}
	for _, pt := range b.Points {
		eig := make([]complexPair, len(pt.Eigenvalues))
		for i, z := range pt.Eigenvalues {
			eig[i] = complexPair{Re: real(z), Im: imag(z)}
		}
		p.Points = append(p.Points, pointPayload{
			State:       pt.State,
			ParamValue:  pt.ParamValue,
			Stability:   pt.Stability.String(),
			Eigenvalues: eig,
			CyclePoints: pt.CyclePoints,
		})
	}
	for _, bf := range b.Bifurcations {
		p.Bifurcations = append(p.Bifurcations, bifurcationPayload{Index: bf.Index, Kind: bf.Kind.String()})
	}
	return p
}

// MarshalJSON serializes the branch directly to its wire format.
func (b *Branch) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToPayload())
}

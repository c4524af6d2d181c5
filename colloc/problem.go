// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colloc

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gobif/contprob"
	"github.com/cpmech/gobif/eqsys"
)

// Problem is the orthogonal collocation BVP: ntst mesh intervals of
// degree ncol, phase condition anchored at the profile point supplied at
// construction, periodic boundary condition. It implements
// contprob.Problem so package palc can continue a limit-cycle branch with
// exactly the same Engine used for equilibrium curves.
//
// Unknown layout (flat, ascending):
//
//	mesh states   m_0..m_ntst        (ntst+1)*n floats
//	stage states  z_{i,s}, i<ntst, s<ncol   ntst*ncol*n floats
//	period        T                  1 float
//
// The continuation parameter is the Dimension()+1'th augmented coordinate,
// exactly as for contprob.EquilibriumProblem.
type Problem struct {
	contprob.NoPostStep
	Sys        *eqsys.EquationSystem
	ParamIndex int
	Ntst, Ncol int
	N          int
	Mesh       *Mesh

	anchor    []float64
	direction []float64
}

// NewProblem builds a Problem for a periodic orbit of sys, anchoring the
// phase condition at anchorProfile (typically m_0 of an initial guess).
func NewProblem(sys *eqsys.EquationSystem, paramIndex, ntst, ncol int, anchorProfile []float64) (*Problem, error) {
	if ntst < 1 {
		return nil, chk.Err("colloc: ntst must be >= 1, got %d", ntst)
	}
	mesh, err := NewMesh(ncol)
	if err != nil {
		return nil, err
	}
	n := sys.NState()
	if len(anchorProfile) != n {
		return nil, chk.Err("colloc: anchor profile has %d coordinates, want %d", len(anchorProfile), n)
	}

	fAnchor := make([]float64, n)
	sys.Apply(0, anchorProfile, fAnchor)
	dir := append([]float64(nil), fAnchor...)
	if norm := norm2(dir); norm > 1e-12 {
		for i := range dir {
			dir[i] /= norm
		}
	} else {
		// degenerate flow at the anchor: fall back to a unit coordinate vector
		dir = make([]float64, n)
		dir[0] = 1
	}

	return &Problem{
		Sys: sys, ParamIndex: paramIndex, Ntst: ntst, Ncol: ncol, N: n, Mesh: mesh,
		anchor: append([]float64(nil), anchorProfile...), direction: dir,
	}, nil
}

func (p *Problem) meshOffset(i int) int  { return i * p.N }
func (p *Problem) stageOffset(i, s int) int {
	return (p.Ntst + 1) * p.N + (i*p.Ncol+s)*p.N
}
func (p *Problem) periodIndex() int {
	return (p.Ntst+1)*p.N + p.Ntst*p.Ncol*p.N
}

// Dimension is the number of scalar unknowns (equivalently, equations):
// mesh states + stage states + period.
func (p *Problem) Dimension() int {
	return (p.Ntst+1)*p.N + p.Ntst*p.Ncol*p.N + 1
}

func (p *Problem) mesh(x []float64, i int) []float64   { return x[p.meshOffset(i) : p.meshOffset(i)+p.N] }
func (p *Problem) stage(x []float64, i, s int) []float64 {
	o := p.stageOffset(i, s)
	return x[o : o+p.N]
}
func (p *Problem) period(x []float64) float64 { return x[p.periodIndex()] }

// stageField evaluates f at every stage point of every interval (entry
// i*Ncol+s for stage s of interval i), used by both the collocation and
// continuity equations of each interval.
func (p *Problem) stageField(x []float64) [][]float64 {
	out := make([][]float64, p.Ntst*p.Ncol)
	tmp := make([]float64, p.N)
	for i := 0; i < p.Ntst; i++ {
		for s := 0; s < p.Ncol; s++ {
			p.Sys.Apply(0, p.stage(x, i, s), tmp)
			out[i*p.Ncol+s] = append([]float64(nil), tmp...)
		}
	}
	return out
}

// Residual implements the four equation blocks in order: collocation,
// continuity (interleaved per interval), then phase and periodic BC.
func (p *Problem) Residual(aug []float64, out []float64) error {
	n := p.N
	x := aug[:p.Dimension()]
	param := aug[p.Dimension()]
	p.Sys.SetParam(p.ParamIndex, param)

	T := p.period(x)
	h := T / float64(p.Ntst)
	F := p.stageField(x)

	row := 0
	for i := 0; i < p.Ntst; i++ {
		mi := p.mesh(x, i)
		for s := 0; s < p.Ncol; s++ {
			zis := p.stage(x, i, s)
			for c := 0; c < n; c++ {
				sum := 0.0
				for k := 0; k < p.Ncol; k++ {
					sum += p.Mesh.A[s][k] * F[i*p.Ncol+k][c]
				}
				out[row+c] = zis[c] - mi[c] - h*sum
			}
			row += n
		}
		mip1 := p.mesh(x, i+1)
		for c := 0; c < n; c++ {
			sum := 0.0
			for k := 0; k < p.Ncol; k++ {
				sum += p.Mesh.B[k] * F[i*p.Ncol+k][c]
			}
			out[row+c] = mip1[c] - mi[c] - h*sum
		}
		row += n
	}

	m0 := p.mesh(x, 0)
	phase := 0.0
	for c := 0; c < n; c++ {
		phase += (m0[c] - p.anchor[c]) * p.direction[c]
	}
	out[row] = phase
	row++

	mntst := p.mesh(x, p.Ntst)
	for c := 0; c < n; c++ {
		out[row+c] = mntst[c] - m0[c]
	}
	row += n

	if row != p.Dimension() {
		panic("colloc: residual row count does not match Dimension(); interpreter bug")
	}
	return nil
}

func norm2(v []float64) float64 {
	ss := 0.0
	for _, x := range v {
		ss += x * x
	}
	return math.Sqrt(ss)
}

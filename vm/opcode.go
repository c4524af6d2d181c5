// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vm implements the stack-based arithmetic machine that evaluates
// compiled user expressions (see package expr) against a state vector and
// a parameter vector, polymorphically over package scalar's Scalar
// interface.
package vm

// Kind tags one bytecode instruction. The compiler (package expr) is
// solely responsible for producing well-formed programs, so the VM itself
// never validates names or arities at execution time.
type Kind uint8

const (
	LoadConst Kind = iota
	LoadVar
	LoadParam
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
	OpSin
	OpCos
	OpExp
)

// Op is one bytecode instruction. Const carries the literal value for
// LoadConst; Index carries the variable or parameter slot for LoadVar and
// LoadParam; it is otherwise unused.
type Op struct {
	Kind  Kind
	Index int
	Const float64
}

// Program is an immutable, well-formed sequence of opcodes. A well-formed
// program has net stack effect +1: every opcode pops its inputs and pushes
// exactly one result, and the final stack holds exactly one value.
// Programs are built once by package expr and never mutated.
type Program struct {
	ops []Op
}

// NewProgram wraps a slice of opcodes already validated by the compiler.
func NewProgram(ops []Op) *Program {
	cp := make([]Op, len(ops))
	copy(cp, ops)
	return &Program{ops: cp}
}

// Len returns the instruction count, useful for the VM's per-step cost
// accounting: cost is proportional to opcode count.
func (p *Program) Len() int { return len(p.ops) }

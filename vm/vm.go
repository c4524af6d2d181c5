// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vm

import (
	"fmt"

	"github.com/cpmech/gobif/scalar"
)

// Scratch is the VM's reusable evaluation stack, sized once at
// construction and cleared (not reallocated) before every Execute call, so
// that per-step evaluation cost is proportional to opcode count with no
// heap traffic.
type Scratch[T scalar.Scalar] struct {
	stack []T
	top   int
}

// NewScratch allocates a stack deep enough for any program this
// EquationSystem will execute; capacity equal to the longest program's
// opcode count is always sufficient since net stack effect per op is at
// most +1.
func NewScratch[T scalar.Scalar](capacity int) *Scratch[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Scratch[T]{stack: make([]T, capacity)}
}

func (s *Scratch[T]) reset() { s.top = 0 }

func (s *Scratch[T]) push(v T) {
	s.stack[s.top] = v
	s.top++
}

func (s *Scratch[T]) pop() T {
	s.top--
	return s.stack[s.top]
}

// Execute walks program's opcodes in order against vars and params and
// returns the value left on top of the stack. fromReal lifts literals into
// T, so the same function body runs unmodified for
// scalar.Real and scalar.Dual.
//
// Stack underflow on a malformed program is a fatal, unrecoverable
// interpreter bug (the compiler, package expr, is solely responsible for
// producing well-formed programs) and is reported as a panic, not an
// error return: there is no well-defined recovery for a corrupted
// bytecode stream.
func Execute[T scalar.Scalar](p *Program, vars, params []T, sc *Scratch[T], fromReal func(float64) T) T {
	sc.reset()
	for _, op := range p.ops {
		switch op.Kind {
		case LoadConst:
			sc.push(fromReal(op.Const))
		case LoadVar:
			sc.push(vars[op.Index])
		case LoadParam:
			sc.push(params[op.Index])
		case OpAdd:
			b, a := sc.pop(), sc.pop()
			sc.push(a.Add(b).(T))
		case OpSub:
			b, a := sc.pop(), sc.pop()
			sc.push(a.Sub(b).(T))
		case OpMul:
			b, a := sc.pop(), sc.pop()
			sc.push(a.Mul(b).(T))
		case OpDiv:
			b, a := sc.pop(), sc.pop()
			sc.push(a.Div(b).(T))
		case OpPow:
			b, a := sc.pop(), sc.pop()
			sc.push(a.Pow(b).(T))
		case OpNeg:
			a := sc.pop()
			sc.push(a.Neg().(T))
		case OpSin:
			a := sc.pop()
			sc.push(a.Sin().(T))
		case OpCos:
			a := sc.pop()
			sc.push(a.Cos().(T))
		case OpExp:
			a := sc.pop()
			sc.push(a.Exp().(T))
		default:
			panic(fmt.Sprintf("vm: unknown opcode %d", op.Kind))
		}
	}
	if sc.top != 1 {
		panic(fmt.Sprintf("vm: malformed program left %d values on the stack, want 1", sc.top))
	}
	return sc.pop()
}

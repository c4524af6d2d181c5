// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gobif/vm"
)

// NameIndex resolves an identifier to a variable or parameter slot.
// EquationSystem (package eqsys) owns the authoritative maps; Compile only
// needs read access to them.
type NameIndex struct {
	Vars   map[string]int
	Params map[string]int
}

// Compile lowers expr to a vm.Program by in-order traversal: literal ->
// LoadConst; identifier -> LoadVar if known else LoadParam if known else
// a compile-time error; binary op -> operands then operator; unary minus
// -> operand then Neg; call sin/cos/exp -> argument then the matching
// unary opcode. Any other function name is a compile-time error.
func Compile(names NameIndex, e Expr) (*vm.Program, error) {
	var ops []vm.Op
	if err := emit(&ops, names, e); err != nil {
		return nil, chk.Err("expr: compile: %v", err)
	}
	return vm.NewProgram(ops), nil
}

func emit(ops *[]vm.Op, names NameIndex, e Expr) error {
	switch n := e.(type) {

	case Lit:
		*ops = append(*ops, vm.Op{Kind: vm.LoadConst, Const: n.Value})
		return nil

	case Ident:
		if i, ok := names.Vars[n.Name]; ok {
			*ops = append(*ops, vm.Op{Kind: vm.LoadVar, Index: i})
			return nil
		}
		if j, ok := names.Params[n.Name]; ok {
			*ops = append(*ops, vm.Op{Kind: vm.LoadParam, Index: j})
			return nil
		}
		return chk.Err("unknown identifier %q (not a variable or parameter)", n.Name)

	case BinOp:
		if err := emit(ops, names, n.Left); err != nil {
			return err
		}
		if err := emit(ops, names, n.Right); err != nil {
			return err
		}
		kind, err := binOpKind(n.Op)
		if err != nil {
			return err
		}
		*ops = append(*ops, vm.Op{Kind: kind})
		return nil

	case Neg:
		if err := emit(ops, names, n.X); err != nil {
			return err
		}
		*ops = append(*ops, vm.Op{Kind: vm.OpNeg})
		return nil

	case Call:
		if err := emit(ops, names, n.Arg); err != nil {
			return err
		}
		kind, err := callKind(n.Name)
		if err != nil {
			return err
		}
		*ops = append(*ops, vm.Op{Kind: kind})
		return nil

	default:
		return chk.Err("unsupported expression node %T", e)
	}
}

func binOpKind(op byte) (vm.Kind, error) {
	switch op {
	case '+':
		return vm.OpAdd, nil
	case '-':
		return vm.OpSub, nil
	case '*':
		return vm.OpMul, nil
	case '/':
		return vm.OpDiv, nil
	case '^':
		return vm.OpPow, nil
	default:
		return 0, chk.Err("unknown binary operator %q", string(op))
	}
}

func callKind(name string) (vm.Kind, error) {
	switch name {
	case "sin":
		return vm.OpSin, nil
	case "cos":
		return vm.OpCos, nil
	case "exp":
		return vm.OpExp, nil
	default:
		return 0, chk.Err("unknown function %q (only sin, cos, exp are supported)", name)
	}
}

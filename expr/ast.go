// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr lowers a small recursive expression AST to vm.Program. The
// real expression language's tokenizer/parser is an external collaborator
// and is not designed in depth here; Parse below is a minimal
// recursive-descent stand-in used by package host (which the CLI example
// front-end in main.go drives) and by tests.
package expr

// Expr is the recursive AST the compiler lowers. It is owned by the
// compiler only: once Compile returns, the tree may be discarded, since
// nothing holds a cyclic reference into it.
type Expr interface {
	isExpr()
}

// Lit is a decimal literal.
type Lit struct{ Value float64 }

// Ident resolves to a variable or parameter name at compile time.
type Ident struct{ Name string }

// BinOp is one of +, -, *, /, ^.
type BinOp struct {
	Op          byte
	Left, Right Expr
}

// Neg is unary minus.
type Neg struct{ X Expr }

// Call is a function-call expression; only sin, cos, exp are accepted.
type Call struct {
	Name string
	Arg  Expr
}

func (Lit) isExpr()   {}
func (Ident) isExpr() {}
func (BinOp) isExpr() {}
func (Neg) isExpr()   {}
func (Call) isExpr()  {}

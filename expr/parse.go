// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"strconv"
	"strings"
)

// Parse is a minimal recursive-descent parser for the infix expression
// language: `+ - * /` with standard precedence, `^` binding tightest,
// unary minus, parentheses, identifiers, and sin/cos/exp calls. It is used
// by package host (which the CLI example front-end in main.go drives) and
// by this repository's tests; the production tokenizer/parser is an external
// collaborator and is not designed in depth here.
//
// Tokenization is greedy; unrecognized characters are silently skipped
// rather than rejected, since the real parser lives outside this module's
// scope.
func Parse(src string) (Expr, error) {
	toks := tokenize(src)
	p := &parser{toks: toks}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return e, nil
}

type tokKind int

const (
	tokNum tokKind = iota
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokKind
	text string
}

func tokenize(src string) []token {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case strings.ContainsRune("+-*/^", rune(c)):
			toks = append(toks, token{tokOp, string(c)})
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNum, src[i:j]})
			i = j
		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentPart(src[j]) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j]})
			i = j
		default:
			// unrecognized characters are silently skipped (documented laxness)
			i++
		}
	}
	toks = append(toks, token{tokEOF, ""})
	return toks
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// precedence: + - bind loosest, * / next, ^ tightest.
func precedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	case "^":
		return 3
	}
	return -1
}

func (p *parser) parseExpr(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp {
			break
		}
		prec := precedence(t.text)
		if prec < minPrec {
			break
		}
		p.next()
		nextMin := prec + 1
		if t.text == "^" {
			nextMin = prec // right-associative
		}
		right, err := p.parseExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = BinOp{Op: t.text[0], Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokOp && p.peek().text == "-" {
		p.next()
		x, err := p.parseExpr(precedence("^"))
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, err
		}
		return Lit{Value: v}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			p.next()
			arg, err := p.parseExpr(0)
			if err != nil {
				return nil, err
			}
			if p.peek().kind == tokRParen {
				p.next()
			}
			return Call{Name: t.text, Arg: arg}, nil
		}
		return Ident{Name: t.text}, nil
	case tokLParen:
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if p.peek().kind == tokRParen {
			p.next()
		}
		return e, nil
	default:
		return Lit{Value: 0}, nil
	}
}

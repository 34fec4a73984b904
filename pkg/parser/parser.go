// Package parser implements the expression parser and code emitter core
// spec.md describes: a recursive-descent, precedence-climbing parser over
// the C expression grammar that produces both a folded compile-time value
// (an exprdesc.ExprDesc) and, where folding isn't possible, pseudo-assembly
// through the shared *context.Context's emitter.
//
// The precedence cascade (comma lowest, primaries highest) is organised
// the way cc65's expr.c structures it: hie10 down to hie0, each level a
// thin wrapper around the next, with the binary-operator levels driven by
// a small generator-descriptor table instead of one hand-written loop per
// operator (see gen.go).
package parser

import (
	"github.com/gocc65/exprc/pkg/context"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
	"github.com/gocc65/exprc/pkg/util/source"
)

// Parser holds the token stream and the shared compilation context while
// descending through one expression.
type Parser struct {
	ctx  *context.Context
	toks []token.Token
	pos  int
}

// New returns a parser over toks (as produced by pkg/lexer), sharing ctx
// with the rest of the translation unit.
func New(ctx *context.Context, toks []token.Token) *Parser {
	return &Parser{ctx: ctx, toks: toks}
}

// CurTok returns the token at the parser's current position without
// consuming it.
func (p *Parser) CurTok() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	return p.toks[p.pos]
}

// PeekTok returns the token one past the current position, for the few
// constructs (computed goto, cast-vs-parenthesised-expr) that need one
// token of extra lookahead.
func (p *Parser) PeekTok() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	return p.toks[p.pos+1]
}

// NextTok consumes and returns the current token, advancing the stream.
func (p *Parser) NextTok() token.Token {
	t := p.CurTok()
	if p.pos < len(p.toks) {
		p.pos++
	}

	return t
}

// curSpan returns a pointer to a copy of the current token's span, since
// the token returned by CurTok is itself not addressable.
func (p *Parser) curSpan() *source.Span {
	s := p.CurTok().Span
	return &s
}

// accept consumes the current token if it has kind k, reporting whether it
// did.
func (p *Parser) accept(k token.Kind) bool {
	if p.CurTok().Kind == k {
		p.NextTok()
		return true
	}

	return false
}

// expect consumes the current token, which must have kind k; otherwise it
// reports a recoverable user error and synthesizes the token so parsing
// can continue (spec.md §7.1).
func (p *Parser) expect(k token.Kind) token.Token {
	if p.CurTok().Kind == k {
		return p.NextTok()
	}

	p.ctx.Diag.Error(p.curSpan(), nil, "expected %s, found %s", k, p.CurTok().Kind)

	return token.Token{Kind: k}
}

// Expression0 is the entry point for a full comma expression: the
// lowest-precedence level, spec.md §4.1's level 0.
func (p *Parser) Expression0() exprdesc.ExprDesc {
	e := p.assignExpr()

	for p.accept(token.COMMA) {
		p.DoDeferred(exprdesc.ExprDesc{})
		e = p.assignExpr()
	}

	return e
}

// BoolExpr parses a full expression and normalizes it to a tested boolean
// value: unless e already carries the Tested flag or is a constant, it
// emits a compare-against-zero (spec.md §4.9/§4.10's consumers: `if`, `&&`, `||`,
// `?:`).
func (p *Parser) BoolExpr() exprdesc.ExprDesc {
	e := p.Expression0()
	p.forceTest(&e)

	return e
}

func (p *Parser) forceTest(e *exprdesc.ExprDesc) {
	if e.Flags.Has(exprdesc.Tested) {
		return
	}

	if e.IsConst() {
		e.Flags |= exprdesc.Tested
		return
	}

	p.loadPrimary(e)
	p.ctx.Emit.Test(flagsOf(e.Type))
	e.Flags |= exprdesc.Tested
}

// NoCodeConstExpr parses an expression that must fold to a compile-time
// constant without emitting any code at all -- a `case` label or an array
// bound (spec.md's NeedsConst flag). sizeof does not use it: its operand
// need not be constant.
func (p *Parser) NoCodeConstExpr() exprdesc.ExprDesc {
	mark := p.ctx.Emit.Buffer().Mark()
	e := p.constExprWithFlag(exprdesc.NeedsConst)

	if !p.ctx.Emit.Buffer().RangeIsEmpty(mark) {
		p.ctx.Diag.Internal("NoCodeConstExpr emitted code for a supposedly constant expression")
	}

	return e
}

// NoCodeConstAbsIntExpr is NoCodeConstExpr further restricted to an
// absolute (non-pointer) integer result, as required by e.g. a bit-field
// width or an enumerator initializer.
func (p *Parser) NoCodeConstAbsIntExpr() exprdesc.ExprDesc {
	e := p.NoCodeConstExpr()

	if !e.IsConst() || !types.IsInteger(e.Type) {
		p.ctx.Diag.Error(nil, nil, "expected a constant integer expression")
		return exprdesc.NewConst(types.IntType, 0)
	}

	return e
}

func (p *Parser) constExprWithFlag(f exprdesc.Flag) exprdesc.ExprDesc {
	e := p.conditionalExpr()
	if !e.IsConst() {
		p.ctx.Diag.Error(p.curSpan(), nil, "expression is not constant")
		return exprdesc.NewConst(e.Type, 0)
	}

	e.Flags |= f

	return e
}


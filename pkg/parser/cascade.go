package parser

import "github.com/gocc65/exprc/pkg/exprdesc"

// The precedence cascade, spec.md §4.1, from lowest (just above comma) to
// highest (just below postfix/primary). Each level delegates to the next
// via binaryLevel and its generator-descriptor table, except the three
// short-circuiting/ternary levels which need their own control flow and
// the unary level which isn't a binary-operator cascade at all.

func (p *Parser) bitOrExpr() exprdesc.ExprDesc    { return p.binaryLevel(p.bitXorExpr, bitOrOps) }
func (p *Parser) bitXorExpr() exprdesc.ExprDesc   { return p.binaryLevel(p.bitAndExpr, bitXorOps) }
func (p *Parser) bitAndExpr() exprdesc.ExprDesc   { return p.binaryLevel(p.equalityExpr, bitAndOps) }
func (p *Parser) equalityExpr() exprdesc.ExprDesc {
	return p.binaryLevel(p.relationalExpr, equalityOps)
}
func (p *Parser) relationalExpr() exprdesc.ExprDesc {
	return p.binaryLevel(p.shiftExpr, relationalOps)
}
func (p *Parser) shiftExpr() exprdesc.ExprDesc { return p.binaryLevel(p.additiveExpr, shiftOps) }

// additiveExpr is not part of the genDesc cascade above: spec.md §4.1 calls
// out additive/subtractive as needing bespoke pointer-arithmetic handling,
// implemented in additive.go.
func (p *Parser) multiplicativeExpr() exprdesc.ExprDesc {
	return p.binaryLevel(p.unaryExpr, multiplicativeOps)
}

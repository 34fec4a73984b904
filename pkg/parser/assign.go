package parser

import (
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// compoundOps maps a compound-assignment token to the plain binary
// operator it implies (spec.md §4.7: `a += b` behaves as `a = a + b`,
// modulo evaluating `a`'s address only once).
var compoundOps = map[token.Kind]genDesc{
	token.PLUS_ASSIGN:    {helper: "tosadd", fold: func(a, b int64) int64 { return a + b }},
	token.MINUS_ASSIGN:   {helper: "tossub", fold: func(a, b int64) int64 { return a - b }},
	token.STAR_ASSIGN:    {helper: "tosmul", fold: func(a, b int64) int64 { return a * b }},
	token.SLASH_ASSIGN:   {helper: "tosdiv", fold: func(a, b int64) int64 { if b == 0 { return 0 }; return a / b }},
	token.PERCENT_ASSIGN: {helper: "tosmod", fold: func(a, b int64) int64 { if b == 0 { return 0 }; return a % b }},
	token.SHL_ASSIGN:     {helper: "tosshl", fold: func(a, b int64) int64 { return a << uint(b) }},
	token.SHR_ASSIGN:     {helper: "tosshr", fold: func(a, b int64) int64 { return a >> uint(b) }},
	token.AND_ASSIGN:     {helper: "tosand", fold: func(a, b int64) int64 { return a & b }},
	token.XOR_ASSIGN:     {helper: "tosxor", fold: func(a, b int64) int64 { return a ^ b }},
	token.OR_ASSIGN:      {helper: "tosor", fold: func(a, b int64) int64 { return a | b }},
}

// assignExpr implements spec.md §4.7: a conditional expression optionally
// followed by one assignment operator and a right-associative recursive
// call (so `a = b = c` parses as `a = (b = c)`).
func (p *Parser) assignExpr() exprdesc.ExprDesc {
	left := p.conditionalExpr()

	cur := p.CurTok().Kind

	if cur == token.ASSIGN {
		p.NextTok()

		if !left.IsLVal() {
			p.ctx.Diag.Error(p.curSpan(), nil, "assignment target is not an lvalue")
		}

		right := p.assignExpr()

		return p.Store(&left, &right)
	}

	if desc, ok := compoundOps[cur]; ok {
		p.NextTok()

		if !left.IsLVal() {
			p.ctx.Diag.Error(p.curSpan(), nil, "assignment target is not an lvalue")
		}

		right := p.assignExpr()

		if left.IsConst() && right.IsConst() && types.IsInteger(left.Type) && types.IsInteger(right.Type) {
			folded := exprdesc.NewConst(left.Type, desc.fold(left.IVal, right.IVal))
			return p.Store(&left, &folded)
		}

		if left.Loc == exprdesc.LocExpr {
			// The address of the lvalue is on the runtime stack; a
			// compound assignment both reads and writes through it, so
			// duplicate it before the first (reading) use consumes it.
			p.ctx.Emit.DupTOSAddr()
		}

		lcopy := left
		p.loadPrimary(&lcopy)
		p.ctx.Emit.Push(flagsOf(lcopy.Type))
		p.loadPrimary(&right)
		p.ctx.Emit.BinaryOp(flagsOf(left.Type), desc.helper)

		result := exprdesc.NewPrimary(left.Type)

		return p.Store(&left, &result)
	}

	return left
}

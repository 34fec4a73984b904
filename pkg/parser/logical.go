package parser

import (
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// logAndExpr implements `&&`, short-circuiting: once the left operand is
// known false at compile time, the right operand is parsed only to
// advance the token stream (spec.md §4.9's Uneval flag) and no code for it
// is emitted at all.
func (p *Parser) logAndExpr() exprdesc.ExprDesc {
	left := p.bitOrExpr()

	if p.CurTok().Kind != token.ANDAND {
		return left
	}

	p.forceTest(&left)

	if left.IsConst() && left.IVal == 0 {
		for p.accept(token.ANDAND) {
			p.parseUneval(p.bitOrExpr)
		}

		return exprdesc.NewConst(types.IntType, 0)
	}

	falseLbl := p.ctx.Labels.NewLocal()
	emittedBranch := false

	if !left.IsConst() {
		p.ctx.Emit.JumpIfZero(falseLbl.String())
		emittedBranch = true
	}

	var right exprdesc.ExprDesc

	for p.accept(token.ANDAND) {
		right = p.bitOrExpr()
		p.forceTest(&right)

		if right.IsConst() && right.IVal == 0 {
			if !emittedBranch {
				// Every earlier operand was a known-true constant, so the
				// whole expression is a known-false constant.
				for p.accept(token.ANDAND) {
					p.parseUneval(p.bitOrExpr)
				}

				return exprdesc.NewConst(types.IntType, 0)
			}

			p.ctx.Emit.Jump(falseLbl.String())

			continue
		}

		if !right.IsConst() {
			p.ctx.Emit.JumpIfZero(falseLbl.String())
			emittedBranch = true
		}
	}

	if !emittedBranch {
		// Every operand folded to a known-true constant.
		return exprdesc.NewConst(types.IntType, 1)
	}

	doneLbl := p.ctx.Labels.NewLocal()
	p.ctx.Emit.LoadConst(emit.Width16, 1)
	p.ctx.Emit.Jump(doneLbl.String())
	p.ctx.Emit.DefineLabel(falseLbl.String())
	p.ctx.Emit.LoadConst(emit.Width16, 0)
	p.ctx.Emit.DefineLabel(doneLbl.String())

	result := exprdesc.NewPrimary(types.IntType)
	result.Flags |= exprdesc.Tested

	return result
}

// logOrExpr implements `||`, mirroring logAndExpr with the truth value
// inverted.
func (p *Parser) logOrExpr() exprdesc.ExprDesc {
	left := p.logAndExpr()

	if p.CurTok().Kind != token.OROR {
		return left
	}

	p.forceTest(&left)

	if left.IsConst() && left.IVal != 0 {
		for p.accept(token.OROR) {
			p.parseUneval(p.logAndExpr)
		}

		return exprdesc.NewConst(types.IntType, 1)
	}

	trueLbl := p.ctx.Labels.NewLocal()
	emittedBranch := false

	if !left.IsConst() {
		p.ctx.Emit.JumpIfNotZero(trueLbl.String())
		emittedBranch = true
	}

	for p.accept(token.OROR) {
		right := p.logAndExpr()
		p.forceTest(&right)

		if right.IsConst() && right.IVal != 0 {
			if !emittedBranch {
				for p.accept(token.OROR) {
					p.parseUneval(p.logAndExpr)
				}

				return exprdesc.NewConst(types.IntType, 1)
			}

			p.ctx.Emit.Jump(trueLbl.String())

			continue
		}

		if !right.IsConst() {
			p.ctx.Emit.JumpIfNotZero(trueLbl.String())
			emittedBranch = true
		}
	}

	if !emittedBranch {
		return exprdesc.NewConst(types.IntType, 0)
	}

	doneLbl := p.ctx.Labels.NewLocal()
	p.ctx.Emit.LoadConst(emit.Width16, 0)
	p.ctx.Emit.Jump(doneLbl.String())
	p.ctx.Emit.DefineLabel(trueLbl.String())
	p.ctx.Emit.LoadConst(emit.Width16, 1)
	p.ctx.Emit.DefineLabel(doneLbl.String())

	result := exprdesc.NewPrimary(types.IntType)
	result.Flags |= exprdesc.Tested

	return result
}

// parseUneval parses (and discards) an operand purely to advance past it,
// marking any code it emits for removal: the untaken side of a
// short-circuit operator never runs (spec.md §4.9).
func (p *Parser) parseUneval(next func() exprdesc.ExprDesc) {
	mark := p.ctx.Emit.Buffer().Mark()
	next()
	p.ctx.Emit.Buffer().RemoveFrom(mark)
}

// conditionalExpr implements `?:` (spec.md §4.10). The untaken branch is
// parsed for side effects on the token stream only; when the condition is
// constant, only the taken branch's code is kept.
func (p *Parser) conditionalExpr() exprdesc.ExprDesc {
	cond := p.logOrExpr()

	if p.CurTok().Kind != token.QUESTION {
		return cond
	}

	p.NextTok()
	p.forceTest(&cond)

	if cond.IsConst() {
		if cond.IVal != 0 {
			thenVal := p.Expression0()
			p.expect(token.COLON)
			p.parseUneval(p.conditionalExpr)

			return thenVal
		}

		p.parseUneval(p.Expression0)
		p.expect(token.COLON)

		return p.conditionalExpr()
	}

	falseLbl := p.ctx.Labels.NewLocal()
	p.ctx.Emit.JumpIfZero(falseLbl.String())

	thenVal := p.Expression0()
	p.loadPrimary(&thenVal)

	p.expect(token.COLON)

	doneLbl := p.ctx.Labels.NewLocal()
	p.ctx.Emit.Jump(doneLbl.String())
	p.ctx.Emit.DefineLabel(falseLbl.String())

	elseVal := p.conditionalExpr()
	p.loadPrimary(&elseVal)

	p.ctx.Emit.DefineLabel(doneLbl.String())

	resType := types.ArithmeticConvert(thenVal.Type, elseVal.Type)
	if types.IsPointer(thenVal.Type) || types.IsPointer(elseVal.Type) {
		resType = thenVal.Type
	}

	return exprdesc.NewPrimary(resType)
}

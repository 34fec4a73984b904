package parser

import (
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// additiveExpr implements spec.md §4.1's additive/subtractive level with
// the bespoke pointer-arithmetic handling the spec calls out by name,
// instead of routing `+`/`-` through the shared binaryLevel/genDesc
// dispatcher the way the other binary levels do: `ptr +/- int` and
// `int + ptr` scale the integer operand by the pointee's size, and
// `ptr - ptr` scales the byte difference down by it, matching original
// cc65 expr.c's parseadd/parsesub.
func (p *Parser) additiveExpr() exprdesc.ExprDesc {
	left := p.multiplicativeExpr()

	for {
		var add bool

		switch p.CurTok().Kind {
		case token.PLUS:
			add = true
		case token.MINUS:
			add = false
		default:
			return left
		}

		p.NextTok()
		left = p.applyAdditive(left, add)
	}
}

// applyAdditive mirrors applyBinary's constant-folding-without-materializing
// trick (gen.go), but defers to emitAdditive to decide plain-integer vs.
// pointer-scaled combination once both operand types are known.
func (p *Parser) applyAdditive(left exprdesc.ExprDesc, add bool) exprdesc.ExprDesc {
	if left.IsConst() && !types.IsPointer(left.Type) {
		mark := p.ctx.Emit.Buffer().Mark()
		right := p.multiplicativeExpr()

		if right.IsConst() && !types.IsPointer(right.Type) &&
			types.IsInteger(left.Type) && types.IsInteger(right.Type) {
			resType := types.ArithmeticConvert(left.Type, right.Type)
			return exprdesc.NewConst(resType, foldAdd(add, left.IVal, right.IVal))
		}

		beforeLeft := p.ctx.Emit.Buffer().Mark()
		p.ensurePrimaryPushed(&left)
		afterLeft := p.ctx.Emit.Buffer().Mark()

		if afterLeft > beforeLeft {
			p.ctx.Emit.Buffer().MoveRange(beforeLeft, afterLeft, mark)
		}

		return p.emitAdditive(left, right, add)
	}

	p.ensurePrimaryPushed(&left)
	right := p.multiplicativeExpr()

	return p.emitAdditive(left, right, add)
}

func foldAdd(add bool, a, b int64) int64 {
	if add {
		return a + b
	}

	return a - b
}

// emitAdditive combines an already-pushed left operand (on the runtime
// stack) with right (not yet loaded). Exactly one pointer/array operand
// scales the integer side by the pointee's size; two scales the byte
// difference down by it; plain integers take the ordinary tosadd/tossub
// path.
func (p *Parser) emitAdditive(left, right exprdesc.ExprDesc, add bool) exprdesc.ExprDesc {
	leftPtr := types.IsPointer(left.Type) || types.IsArray(left.Type)
	rightPtr := types.IsPointer(right.Type) || types.IsArray(right.Type)

	switch {
	case leftPtr && rightPtr:
		if add {
			p.ctx.Diag.Error(nil, nil, "invalid operands to binary +: pointer plus pointer")
			return exprdesc.NewConst(types.IntType, 0)
		}

		return p.pointerDiff(left, right)

	case leftPtr:
		p.loadPrimary(&right)
		p.scalePrimaryBy(sizeOrOne(elementType(left.Type)), "tosmul")

		helper := "tosadd"
		if !add {
			helper = "tossub"
		}

		p.ctx.Emit.BinaryOp(emit.Width16|emit.Unsigned, helper)

		return exprdesc.NewPrimary(left.Type)

	case rightPtr:
		if !add {
			p.ctx.Diag.Error(nil, nil, "invalid operands to binary -: pointer subtracted from integer")
			return exprdesc.NewConst(types.IntType, 0)
		}

		// The left (integer) operand is already on the stack unscaled and
		// the pointer is about to land in the primary register -- swap
		// them so the scale multiply (which always scales whatever is in
		// the primary) hits the integer side, not the address.
		p.loadPrimary(&right)
		p.ctx.Emit.Swap(emit.Width16)
		p.scalePrimaryBy(sizeOrOne(elementType(right.Type)), "tosmul")
		p.ctx.Emit.BinaryOp(emit.Width16|emit.Unsigned, "tosadd")

		return exprdesc.NewPrimary(right.Type)

	default:
		resType := types.ArithmeticConvert(left.Type, right.Type)
		p.loadPrimary(&right)

		helper := "tosadd"
		if !add {
			helper = "tossub"
		}

		p.ctx.Emit.BinaryOp(flagsOf(resType), helper)

		return exprdesc.NewPrimary(resType)
	}
}

// pointerDiff implements `ptr - ptr`: left (already pushed) minus right
// (about to load), scaled down by the pointee's size to produce an
// element count rather than a byte count.
func (p *Parser) pointerDiff(left, right exprdesc.ExprDesc) exprdesc.ExprDesc {
	p.loadPrimary(&right)
	p.ctx.Emit.BinaryOp(emit.Width16|emit.Unsigned, "tossub")
	p.scalePrimaryBy(sizeOrOne(elementType(left.Type)), "tosdiv")

	return exprdesc.NewPrimary(types.IntType)
}

// scalePrimaryBy multiplies or divides the primary register by a
// compile-time constant n, using the idiom subscript() also uses for
// element-size scaling: push the current primary, load the constant, then
// let the named runtime helper combine top-of-stack with it. A no-op when
// n is 1 (byte-sized elements need no scaling).
func (p *Parser) scalePrimaryBy(n uint, helper string) {
	if n <= 1 {
		return
	}

	p.ctx.Emit.Push(emit.Width16)
	p.ctx.Emit.LoadConst(emit.Width16, int64(n))
	p.ctx.Emit.BinaryOp(emit.Width16, helper)
}

// sizeOrOne is elem.Size(), guarding against an incomplete pointee (size
// 0) so scaling never divides or multiplies by zero.
func sizeOrOne(elem types.Type) uint {
	if sz := elem.Size(); sz > 0 {
		return sz
	}

	return 1
}

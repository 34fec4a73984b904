package parser

import (
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// unaryExpr implements spec.md §4.3/§4.5: prefix `++`/`--`, `sizeof`,
// unary `+`/`-`/`!`/`~`/`&`/`*`, falling through to postfixExpr for
// everything else.
func (p *Parser) unaryExpr() exprdesc.ExprDesc {
	switch p.CurTok().Kind {
	case token.INC:
		p.NextTok()
		return p.prefixIncDec(1)
	case token.DEC:
		p.NextTok()
		return p.prefixIncDec(-1)
	case token.KW_SIZEOF:
		return p.sizeofExpr()
	case token.PLUS:
		p.NextTok()
		return p.unaryExpr()
	case token.MINUS:
		p.NextTok()
		return p.unaryArith(func(v int64) int64 { return -v }, "negprimary")
	case token.NOT:
		p.NextTok()
		return p.unaryNot()
	case token.TILDE:
		p.NextTok()
		return p.unaryArith(func(v int64) int64 { return ^v }, "complprimary")
	case token.AMP:
		p.NextTok()
		return p.addressOf()
	case token.STAR:
		p.NextTok()
		return p.dereference()
	default:
		return p.postfixExpr()
	}
}

func (p *Parser) prefixIncDec(delta int64) exprdesc.ExprDesc {
	e := p.unaryExpr()

	if !e.IsLVal() {
		p.ctx.Diag.Error(nil, nil, "operand of ++/-- must be an lvalue")
		return e
	}

	if e.Loc == exprdesc.LocExpr {
		// The load and the store each consume the stacked address.
		p.ctx.Emit.DupTOSAddr()
	}

	val := e
	p.loadPrimary(&val)
	p.ctx.Emit.UnaryOp(flagsOf(e.Type), incDecHelper(delta))

	result := exprdesc.NewPrimary(e.Type)
	p.store(&e)

	return result
}

func (p *Parser) unaryArith(fold func(int64) int64, helper string) exprdesc.ExprDesc {
	e := p.castExprPlaceholder()

	if e.IsConst() && types.IsInteger(e.Type) {
		return exprdesc.NewConst(types.IntPromotion(e.Type), fold(e.IVal))
	}

	p.loadPrimary(&e)
	p.ctx.Emit.UnaryOp(flagsOf(e.Type), helper)

	return exprdesc.NewPrimary(types.IntPromotion(e.Type))
}

func (p *Parser) unaryNot() exprdesc.ExprDesc {
	e := p.castExprPlaceholder()

	if e.IsConst() {
		if e.IVal == 0 {
			return exprdesc.NewConst(types.IntType, 1)
		}

		return exprdesc.NewConst(types.IntType, 0)
	}

	p.forceTest(&e)
	p.ctx.Emit.UnaryOp(emit.Width16, "boolnot")

	result := exprdesc.NewPrimary(types.IntType)
	result.Flags |= exprdesc.Tested

	return result
}

// castExprPlaceholder stands in for a real cast-expression level: this
// module's scope (spec.md §1) never introduces new type names, so a cast
// is always just a parenthesized expression already handled by
// primaryExpr, and unary operators bind directly to the next unary
// expression.
func (p *Parser) castExprPlaceholder() exprdesc.ExprDesc {
	return p.unaryExpr()
}

// addressOf implements unary `&`: valid only on an lvalue, and disallowed
// on a bit-field (spec.md §4.4 -- a bit-field has no addressable storage
// unit of its own).
func (p *Parser) addressOf() exprdesc.ExprDesc {
	e := p.unaryExpr()

	if !e.IsLVal() {
		p.ctx.Diag.Error(nil, nil, "operand of unary & must be an lvalue")
		return exprdesc.NewConst(types.NewPointer(e.Type), 0)
	}

	if e.Flags.Has(exprdesc.BitField) {
		p.ctx.Diag.Error(nil, nil, "cannot take the address of a bit-field")
	}

	ptrType := types.NewPointer(e.Type)

	switch e.Loc {
	case exprdesc.LocGlobal, exprdesc.LocStatic:
		name := e.Name
		if e.Sym != nil {
			name = e.Sym.AsmName
		}

		p.ctx.Emit.LoadAddr(name, e.IVal)

		return exprdesc.NewPrimary(ptrType)
	case exprdesc.LocStack:
		p.ctx.Emit.LoadAddr("sp", int64(e.Sym.Offset)+e.IVal)
		return exprdesc.NewPrimary(ptrType)
	case exprdesc.LocExpr:
		// The address is already sitting on the runtime stack (it was
		// pushed to set up the pending indirect load/store); popping it
		// into the primary register *is* `&expr`.
		p.ctx.Emit.Pop(emit.Width16)
		return exprdesc.NewPrimary(ptrType)
	default:
		p.ctx.Diag.Internal("addressOf: unhandled lvalue location %v", e.Loc)
		return exprdesc.NewConst(ptrType, 0)
	}
}

// dereference implements unary `*`: the operand must be a pointer, and
// the result is an lvalue naming the pointed-to object.
func (p *Parser) dereference() exprdesc.ExprDesc {
	e := p.unaryExpr()

	pt := e.Type.AsPointer()
	if pt == nil {
		if at := e.Type.AsArray(); at != nil {
			pt = types.NewPointer(at.Elem)
		} else {
			p.ctx.Diag.Error(nil, nil, "operand of unary * must be a pointer")
			return exprdesc.NewConst(types.IntType, 0)
		}
	}

	p.loadPrimary(&e)
	p.ctx.Emit.Push(flagsOf(pt))

	return exprdesc.ExprDesc{Type: pt.Elem, Loc: exprdesc.LocExpr, Ref: exprdesc.LValue}
}

// sizeofExpr implements spec.md §4.5's `sizeof expr` form: it never emits
// code for its operand -- any code the operand's parse produced (a load
// that turns out unnecessary once only its type is needed) is discarded
// -- and always yields a compile-time unsigned constant. The declarator
// grammar needed for `sizeof(T)` on a bare type name belongs to the
// declaration parser, out of this module's scope.
func (p *Parser) sizeofExpr() exprdesc.ExprDesc {
	p.NextTok() // 'sizeof'

	mark := p.ctx.Emit.Buffer().Mark()

	e := p.unaryExpr()
	sz := e.Type.Size()

	if !p.ctx.Emit.Buffer().RangeIsEmpty(mark) {
		p.ctx.Emit.Buffer().RemoveFrom(mark)
	}

	return exprdesc.NewConst(types.UIntType, int64(sz))
}

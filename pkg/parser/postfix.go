package parser

import (
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// postfixExpr implements spec.md §4.3's postfix operators: `[]`, `()`,
// `.`, `->`, and postfix `++`/`--`, chaining left-to-right on top of a
// primary expression.
func (p *Parser) postfixExpr() exprdesc.ExprDesc {
	e := p.primaryExpr()

	for {
		switch p.CurTok().Kind {
		case token.LBRACKET:
			e = p.subscript(e)
		case token.LPAREN:
			e = p.call(e)
		case token.DOT:
			e = p.member(e, false)
		case token.ARROW:
			e = p.member(e, true)
		case token.INC:
			p.NextTok()
			pre := e
			p.deferPostOp(e, 1)
			pre.Ref = exprdesc.RValue

			return pre
		case token.DEC:
			p.NextTok()
			pre := e
			p.deferPostOp(e, -1)
			pre.Ref = exprdesc.RValue

			return pre
		default:
			return e
		}
	}
}

// subscript implements `base[index]` as `*(base + index)`: pointer
// arithmetic scaled by the element size, followed by a dereference
// (spec.md §4.3's array-decay rule).
func (p *Parser) subscript(base exprdesc.ExprDesc) exprdesc.ExprDesc {
	p.NextTok() // '['
	idx := p.Expression0()
	p.expect(token.RBRACKET)

	elem := elementType(base.Type)

	if base.IsConst() && idx.IsConst() {
		addr := base
		addr.AddOffset(idx.IVal * int64(elem.Size()))
		addr.Type = elem
		addr.Ref = exprdesc.LValue

		return addr
	}

	p.pushAddressOf(&base)
	p.loadPrimary(&idx)

	if elem.Size() > 1 {
		p.ctx.Emit.Push(emit.Width16)
		p.ctx.Emit.LoadConst(emit.Width16, int64(elem.Size()))
		p.ctx.Emit.BinaryOp(emit.Width16, "tosumul")
	}

	p.ctx.Emit.BinaryOp(emit.Width16|emit.Unsigned, "tosadd")
	p.ctx.Emit.Push(emit.Width16)

	return exprdesc.ExprDesc{Type: elem, Loc: exprdesc.LocExpr, Ref: exprdesc.LValue}
}

// pushAddressOf pushes base's address onto the runtime stack, decaying
// arrays to a pointer to their first element and loading an
// already-computed pointer value as-is.
func (p *Parser) pushAddressOf(base *exprdesc.ExprDesc) {
	if types.IsArray(base.Type) {
		switch base.Loc {
		case exprdesc.LocGlobal, exprdesc.LocStatic:
			name := base.Name
			if base.Sym != nil {
				name = base.Sym.AsmName
			}

			p.ctx.Emit.PushAddr(name, base.IVal)
		case exprdesc.LocStack:
			p.ctx.Emit.PushAddr("sp", int64(base.Sym.Offset)+base.IVal)
		default:
			p.ctx.Diag.Internal("pushAddressOf: unhandled array location %v", base.Loc)
		}

		return
	}

	p.ensurePrimaryPushed(base)
}

func elementType(t types.Type) types.Type {
	if at := t.AsArray(); at != nil {
		return at.Elem
	}

	if pt := t.AsPointer(); pt != nil {
		return pt.Elem
	}

	return types.IntType
}

// call implements a function call: arguments are evaluated left-to-right
// and pushed onto the runtime stack in that same order, first argument
// first, with the final (fastcall) argument instead left in the primary
// register when the callee is fastcall (spec.md §4.6).
func (p *Parser) call(callee exprdesc.ExprDesc) exprdesc.ExprDesc {
	p.NextTok() // '('

	fn := calleeFuncType(callee.Type)

	var args []exprdesc.ExprDesc

	if p.CurTok().Kind != token.RPAREN {
		args = append(args, p.assignExpr())

		for p.accept(token.COMMA) {
			args = append(args, p.assignExpr())
		}
	}

	p.expect(token.RPAREN)

	if fn == nil {
		p.ctx.Diag.Error(nil, nil, "called object is not a function")
		return exprdesc.NewConst(types.IntType, 0)
	}

	name := calleeName(callee)
	indirect := name == ""

	// A dynamically computed function pointer can't also hold the last
	// fastcall argument in the primary register at call time (the pointer
	// needs it first, to be called through), so an indirect call always
	// uses the cdecl argument convention: every argument pushed, and the
	// pointer loaded back into the primary right before the call.
	fastcall := !indirect && fn.IsFastcall(p.ctx.Config.AutoCDecl)

	var ptrDepth int
	if indirect {
		p.loadPrimary(&callee)
		p.ctx.Emit.Push(emit.Width16)
		ptrDepth = p.ctx.Emit.StackPtr
	}

	pushCount := len(args)
	if fastcall && pushCount > 0 {
		pushCount--
	}

	for i := 0; i < pushCount; i++ {
		a := args[i]
		p.loadPrimary(&a)
		p.ctx.Emit.Push(flagsOf(a.Type))
	}

	if fastcall && len(args) > 0 {
		last := args[len(args)-1]
		p.loadPrimary(&last)
	}

	if indirect {
		// The callee pointer is buried under however many argument bytes
		// were pushed after it; reload it from its stack slot without
		// disturbing them (spec.md §4.6's indirect-call path, original
		// cc65 expr.c's PtrOnStack/PtrOffs handling).
		p.ctx.Emit.LoadLocal(emit.Width16, p.ctx.Emit.StackPtr-ptrDepth)
		p.ctx.Emit.CallInd()
		p.ctx.Emit.Drop(2)
	} else {
		p.ctx.Emit.Call(name)
	}

	// Fastcall callees pop their own pushed arguments; cdecl/variadic
	// callees (and every indirect call, per the simplification above)
	// don't, so the caller drops them here (spec.md §4.6).
	if !fastcall {
		n := 0
		for i := 0; i < pushCount; i++ {
			n += int(args[i].Type.Size())
		}

		p.ctx.Emit.Drop(n)
	}

	return exprdesc.NewPrimary(fn.Ret)
}

func calleeFuncType(t types.Type) *types.FuncType {
	if ft := t.AsFunc(); ft != nil {
		return ft
	}

	if pt := t.AsPointer(); pt != nil {
		return calleeFuncType(pt.Elem)
	}

	return nil
}

func calleeName(callee exprdesc.ExprDesc) string {
	if callee.Sym != nil {
		return callee.Sym.AsmName
	}

	return callee.Name
}

// member implements `.`/`->` struct/union field access. arrow first
// dereferences the base pointer.
func (p *Parser) member(base exprdesc.ExprDesc, arrow bool) exprdesc.ExprDesc {
	p.NextTok() // '.' or '->'

	nameTok := p.expect(token.IDENT)

	recType := base.Type
	if arrow {
		if pt := recType.AsPointer(); pt != nil {
			recType = pt.Elem
		}
	}

	rec := recType.AsRecord()
	if rec == nil {
		p.ctx.Diag.Error(&nameTok.Span, nil, "member reference base type is not a struct or union")
		return exprdesc.NewConst(types.IntType, 0)
	}

	field := rec.Lookup(nameTok.SVal)
	if field == nil {
		p.ctx.Diag.Error(&nameTok.Span, nil, "no member named %q", nameTok.SVal)
		return exprdesc.NewConst(types.IntType, 0)
	}

	if arrow {
		p.loadPrimary(&base)

		if field.ByteOffset != 0 {
			p.ctx.Emit.Push(emit.Width16)
			p.ctx.Emit.LoadConst(emit.Width16, int64(field.ByteOffset))
			p.ctx.Emit.BinaryOp(emit.Width16|emit.Unsigned, "tosadd")
		}

		p.ctx.Emit.Push(emit.Width16)

		return exprdesc.ExprDesc{Type: field.Type, Loc: exprdesc.LocExpr, Ref: exprdesc.LValue}
	}

	result := base
	result.Type = field.Type
	result.AddOffset(int64(field.ByteOffset))

	return result
}

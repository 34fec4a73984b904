package parser

import (
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/types"
)

// flagsOf derives the emitter's Flags word (width + signedness) from a C
// type.
func flagsOf(t types.Type) emit.Flags {
	if t == nil {
		return emit.Width16
	}

	if b := t.AsBasic(); b != nil {
		return emit.FlagsForWidth(b.Kind.Width(), b.Kind.IsUnsigned())
	}

	if types.IsPointer(t) {
		return emit.Width16 | emit.Unsigned
	}

	return emit.Width16
}

// loadPrimary ensures e's value is sitting in the primary register,
// emitting whatever load instruction its current Location requires, and
// updates e in place to LocPrimary. A value already in the primary
// register is left untouched.
func (p *Parser) loadPrimary(e *exprdesc.ExprDesc) {
	f := flagsOf(e.Type)

	switch e.Loc {
	case exprdesc.LocPrimary:
		return
	case exprdesc.LocLiteral:
		p.ctx.Emit.LoadConst(f, e.IVal)
	case exprdesc.LocGlobal:
		p.ctx.Emit.LoadGlobal(f, e.Sym.AsmName, e.IVal)
	case exprdesc.LocStack:
		p.ctx.Emit.LoadLocal(f, e.Sym.Offset+int(e.IVal))
	case exprdesc.LocStatic:
		p.ctx.Emit.LoadGlobal(f, e.Name, e.IVal)
	case exprdesc.LocExpr:
		p.ctx.Emit.LoadIndirect(f)
	default:
		p.ctx.Diag.Internal("loadPrimary: unhandled location %v", e.Loc)
	}

	e.Loc = exprdesc.LocPrimary
	e.Ref = exprdesc.RValue
}

// store emits whatever instruction writes the primary register back into
// dst's location. dst must be an lvalue.
func (p *Parser) store(dst *exprdesc.ExprDesc) {
	f := flagsOf(dst.Type)

	switch dst.Loc {
	case exprdesc.LocGlobal, exprdesc.LocStatic:
		name := dst.Name
		if dst.Sym != nil {
			name = dst.Sym.AsmName
		}

		p.ctx.Emit.StoreGlobal(f, name, dst.IVal)
	case exprdesc.LocStack:
		p.ctx.Emit.StoreLocal(f, dst.Sym.Offset+int(dst.IVal))
	case exprdesc.LocExpr:
		p.ctx.Emit.StoreIndirect(f)
	default:
		p.ctx.Diag.Internal("store: unhandled lvalue location %v", dst.Loc)
	}
}

// Store implements spec.md's `Store` entry point: assign src's value into
// dst, reporting assignability and leaving the primary register holding
// the stored (possibly narrowed) value.
func (p *Parser) Store(dst *exprdesc.ExprDesc, src *exprdesc.ExprDesc) exprdesc.ExprDesc {
	if !dst.IsLVal() {
		p.ctx.Diag.Error(nil, nil, "assignment target is not an lvalue")
		return *src
	}

	if types.TypeCmp(dst.Type, src.Type) == types.Incompatible {
		p.ctx.Diag.Error(nil, nil, "assignment between incompatible types %s and %s", dst.Type, src.Type)
	}

	p.loadPrimary(src)
	p.store(dst)

	result := exprdesc.NewPrimary(dst.Type)

	return result
}

// PushAddr implements spec.md's `PushAddr` entry point: push the address
// of a statically addressed lvalue onto the runtime stack, e.g. before
// evaluating the right-hand side of a compound assignment whose left side
// isn't a simple variable.
func (p *Parser) PushAddr(e *exprdesc.ExprDesc) {
	switch e.Loc {
	case exprdesc.LocGlobal, exprdesc.LocStatic:
		name := e.Name
		if e.Sym != nil {
			name = e.Sym.AsmName
		}

		p.ctx.Emit.PushAddr(name, e.IVal)
	case exprdesc.LocStack:
		p.ctx.Emit.PushAddr("sp", int64(e.Sym.Offset)+e.IVal)
	default:
		p.ctx.Diag.Internal("PushAddr: unhandled lvalue location %v", e.Loc)
	}
}

// ensurePrimaryPushed loads e into the primary register if needed, then
// pushes it onto the runtime value stack -- the standard "materialize the
// left operand" step every binary-operator level performs before parsing
// its right operand.
func (p *Parser) ensurePrimaryPushed(e *exprdesc.ExprDesc) {
	p.loadPrimary(e)
	p.ctx.Emit.Push(flagsOf(e.Type))
}

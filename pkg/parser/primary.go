package parser

import (
	"github.com/gocc65/exprc/pkg/config"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/symtab"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// primaryExpr implements spec.md §4.3: identifiers, literals, and a fully
// parenthesized subexpression.
func (p *Parser) primaryExpr() exprdesc.ExprDesc {
	tok := p.CurTok()

	switch tok.Kind {
	case token.IDENT:
		p.NextTok()
		return p.resolveIdent(tok)

	case token.INTCONST:
		p.NextTok()
		return exprdesc.NewConst(intLiteralType(tok), tok.IVal)

	case token.CHARCONST:
		p.NextTok()
		return exprdesc.NewConst(types.SCharType, tok.IVal)

	case token.FLOATCONST:
		p.NextTok()
		return exprdesc.NewFloatConst(types.LongType, tok.FVal)

	case token.STRCONST:
		p.NextTok()
		lbl := p.ctx.Lits.UseLiteral(tok.SVal)
		e := exprdesc.ExprDesc{
			Type: types.NewPointer(types.UCharType),
			Loc:  exprdesc.LocStatic,
			Ref:  exprdesc.RValue,
			Name: lbl,
		}

		return e

	case token.LPAREN:
		p.NextTok()

		e := p.Expression0()

		p.expect(token.RPAREN)

		return e

	case token.ANDAND_LABEL:
		p.NextTok()
		return p.computedGotoAddr(tok)

	default:
		p.ctx.Diag.Error(&tok.Span, nil, "expected an expression, found %s", tok.Kind)
		p.NextTok()

		return exprdesc.NewConst(types.IntType, 0)
	}
}

// resolveIdent looks tok's spelling up in the symbol table, recognising
// the cc65 `A`/`AX`/`EAX` pseudo-registers and implicitly declaring an
// undeclared name called as a function the way a pre-C99 translation unit
// would (spec.md's supplemented "implicit function declaration" feature,
// grounded on cc65's Primary()).
func (p *Parser) resolveIdent(tok token.Token) exprdesc.ExprDesc {
	sym := p.ctx.Syms.Find(tok.SVal)

	if sym == nil {
		if pseudo, ok := pseudoRegisterType(tok.SVal); ok {
			return exprdesc.NewPrimary(pseudo)
		}

		if p.CurTok().Kind == token.LPAREN {
			implicit := types.NewFunc(types.IntType, nil, true)
			sym = p.ctx.Syms.AddGlobal(tok.SVal, implicit, symtab.Extern)
			if p.ctx.Config.Standard == config.StdC99 {
				p.ctx.Diag.Error(&tok.Span, nil, "implicit declaration of function %q", tok.SVal)
			} else {
				p.ctx.Diag.Warning(&tok.Span, nil, "implicit declaration of function %q", tok.SVal)
			}
		} else {
			p.ctx.Diag.Error(&tok.Span, nil, "undeclared identifier %q", tok.SVal)
			return exprdesc.NewConst(types.IntType, 0)
		}
	}

	switch sym.Class {
	case symtab.EnumConst:
		return exprdesc.NewConst(types.IntType, sym.Value)
	case symtab.Extern, symtab.Static:
		return exprdesc.NewGlobal(sym)
	default:
		return exprdesc.NewLocal(sym)
	}
}

// pseudoRegisterType recognises cc65's `A`/`AX`/`EAX` pseudo-register
// names (spec.md §4.3, cc65 expr.c's hie_pseudo): reading one yields
// whatever the primary register currently holds, at 8/16/32-bit width
// respectively, with no code emitted. Only these exact spellings trigger
// it, and only when no real symbol of that name is already in scope --
// declaring an ordinary local or global named e.g. `a` is unaffected.
func pseudoRegisterType(name string) (types.Type, bool) {
	switch name {
	case "A":
		return types.UCharType, true
	case "AX":
		return types.UIntType, true
	case "EAX":
		return types.ULongType, true
	default:
		return nil, false
	}
}

// computedGotoAddr implements the non-standard `&&label` computed-goto
// address extension (spec.md's supplemented features): valid only under
// the CC65 dialect, it yields the label's code address as a `void *`
// rvalue without emitting anything of its own -- the label's own
// definition point provides the actual value.
func (p *Parser) computedGotoAddr(tok token.Token) exprdesc.ExprDesc {
	if p.ctx.Config.Standard != config.StdCC65 {
		p.ctx.Diag.Error(&tok.Span, nil, "'&&' computed-goto label address is a CC65 extension")
		return exprdesc.NewConst(types.IntType, 0)
	}

	// This module parses expressions only; the label named here is defined
	// by a statement-level parser outside this package's scope. Its
	// assembly name follows the same user-symbol convention as any other
	// global (symtab.AddGlobal's "_"+name), so the two agree without this
	// package needing to track label declarations itself.
	return exprdesc.ExprDesc{
		Type: types.NewPointer(types.VoidType),
		Loc:  exprdesc.LocStatic,
		Ref:  exprdesc.RValue,
		Name: "_" + tok.SVal,
	}
}

func intLiteralType(tok token.Token) types.Type {
	if tok.LongKind > 0 {
		if tok.Unsigned {
			return types.ULongType
		}

		return types.LongType
	}

	if tok.Unsigned {
		return types.UIntType
	}

	return types.IntType
}

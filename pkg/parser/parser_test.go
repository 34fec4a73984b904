package parser

import (
	"os"
	"testing"

	"github.com/gocc65/exprc/pkg/config"
	"github.com/gocc65/exprc/pkg/context"
	"github.com/gocc65/exprc/pkg/diag"
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/lexer"
	"github.com/gocc65/exprc/pkg/symtab"
	"github.com/gocc65/exprc/pkg/types"
	"github.com/gocc65/exprc/pkg/util/source"
)

func newTestParser(t *testing.T, src string) (*Parser, *context.Context) {
	t.Helper()

	sink := diag.NewSink(os.Stderr, false)
	ctx := context.New(config.Default(), sink)

	file := source.NewSourceFile("test.c", []byte(src))
	toks := lexer.New(file, sink).ScanAll()

	return New(ctx, toks), ctx
}

func TestConstantFoldingNoCode(t *testing.T) {
	p, ctx := newTestParser(t, "3 + 4 * 5")

	e := p.Expression0()

	if !e.IsConst() || e.IVal != 23 {
		t.Fatalf("expected constant 23, got %+v", e)
	}

	if ctx.Emit.Buffer().Len() != 0 {
		t.Fatalf("expected no emitted code for a fully constant expression, got %d lines", ctx.Emit.Buffer().Len())
	}
}

func TestSizeofEmitsNoCode(t *testing.T) {
	p, ctx := newTestParser(t, "sizeof(3 + 4)")

	e := p.Expression0()

	if !e.IsConst() || e.IVal != int64(types.IntType.Size()) {
		t.Fatalf("expected sizeof(int-typed expr) = %d, got %+v", types.IntType.Size(), e)
	}

	if ctx.Emit.Buffer().Len() != 0 {
		t.Fatalf("expected sizeof to emit no code, got %d lines", ctx.Emit.Buffer().Len())
	}
}

func TestShortCircuitAndSkipsCall(t *testing.T) {
	p, ctx := newTestParser(t, "0 && f()")
	p.ctx.Syms.AddGlobal("f", types.NewFunc(types.IntType, nil, false), symtab.Extern)

	e := p.Expression0()

	if !e.IsConst() || e.IVal != 0 {
		t.Fatalf("expected constant 0 for short-circuited &&, got %+v", e)
	}

	for _, l := range ctx.Emit.Buffer().Lines() {
		if l.Args == "_f" || l.Args == "f" {
			t.Fatalf("expected no call to f to be emitted, found %v", l)
		}
	}
}

func TestPostIncrementDefersSideEffect(t *testing.T) {
	p, ctx := newTestParser(t, "a++")
	p.ctx.Syms.AddGlobal("a", types.IntType, symtab.Extern)

	e := p.Expression0()

	if e.Ref != exprdesc.RValue {
		t.Fatalf("expected post-increment result to be an rvalue")
	}

	if ctx.Deferred.Len() != 1 {
		t.Fatalf("expected one deferred increment queued, got %d", ctx.Deferred.Len())
	}

	p.DoDeferred(exprdesc.ExprDesc{})

	if ctx.Deferred.Len() != 0 {
		t.Fatalf("expected deferred queue drained")
	}
}

func TestAssignmentToNonLValueReportsError(t *testing.T) {
	p, ctx := newTestParser(t, "3 = 4")

	p.Expression0()

	if !ctx.Diag.HasErrors() {
		t.Fatalf("expected an error assigning to a non-lvalue")
	}
}

func TestVariableLoadEmitsCode(t *testing.T) {
	p, ctx := newTestParser(t, "a + 1")
	p.ctx.Syms.AddGlobal("a", types.IntType, symtab.Extern)

	e := p.Expression0()

	if e.Loc != exprdesc.LocPrimary {
		t.Fatalf("expected a non-constant expression to end up in the primary register, got %+v", e)
	}

	if ctx.Emit.Buffer().Len() == 0 {
		t.Fatalf("expected code to be emitted for a variable load")
	}
}

func TestTernaryConstantFoldsToTakenBranch(t *testing.T) {
	p, ctx := newTestParser(t, "1 ? 2 : 3")

	e := p.Expression0()

	if !e.IsConst() || e.IVal != 2 {
		t.Fatalf("expected constant 2, got %+v", e)
	}

	if ctx.Emit.Buffer().Len() != 0 {
		t.Fatalf("expected no code for a fully constant ternary, got %d lines", ctx.Emit.Buffer().Len())
	}
}

func TestCommaSequencesDeferredDrain(t *testing.T) {
	p, ctx := newTestParser(t, "a++, a")
	p.ctx.Syms.AddGlobal("a", types.IntType, symtab.Extern)

	p.Expression0()

	if ctx.Deferred.Len() != 0 {
		t.Fatalf("expected the comma operator to drain the deferred increment before its right operand")
	}
}

package symtab

import (
	"testing"

	"github.com/gocc65/exprc/pkg/types"
)

func TestLocalShadowsGlobal(t *testing.T) {
	tab := New()
	tab.AddGlobal("x", types.IntType, Extern)

	tab.OpenScope()
	tab.AddLocal("x", types.UCharType, Auto)

	sym := tab.Find("x")
	if sym == nil || sym.Type != types.Type(types.UCharType) {
		t.Fatalf("expected innermost local x to shadow global")
	}

	tab.CloseScope()

	sym = tab.Find("x")
	if sym == nil || sym.Class != Extern {
		t.Fatalf("expected global x to be visible after block exit")
	}
}

func TestFindUnbound(t *testing.T) {
	tab := New()
	if tab.Find("nope") != nil {
		t.Fatalf("expected nil for unbound name")
	}
}

func TestEnumConst(t *testing.T) {
	tab := New()
	tab.AddEnumConst("RED", 1)

	sym := tab.Find("RED")
	if sym == nil || sym.Class != EnumConst || sym.Value != 1 {
		t.Fatalf("expected enum constant RED = 1")
	}
}

func TestLocalOffsetsAccumulate(t *testing.T) {
	tab := New()
	tab.OpenScope()

	a := tab.AddLocal("a", types.IntType, Auto)
	b := tab.AddLocal("b", types.UCharType, Auto)

	if a.Offset != 0 || b.Offset != 2 {
		t.Fatalf("expected sequential offsets, got a=%d b=%d", a.Offset, b.Offset)
	}
}

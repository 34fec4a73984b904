package exprdesc

import (
	"testing"

	"github.com/gocc65/exprc/pkg/symtab"
	"github.com/gocc65/exprc/pkg/types"
)

func TestNewConstIsRValue(t *testing.T) {
	e := NewConst(types.IntType, 42)

	if e.Ref != RValue {
		t.Fatalf("expected a literal to be an rvalue")
	}

	if !e.IsConst() {
		t.Fatalf("expected IsConst true")
	}

	if e.IVal != 42 {
		t.Fatalf("expected IVal 42, got %d", e.IVal)
	}
}

func TestNewConstTruncatesToWidth(t *testing.T) {
	// unsigned int is 16-bit (pkg/types/type.go); 0x10001 must wrap to 1.
	if e := NewConst(types.UIntType, 0x10001); e.IVal != 1 {
		t.Fatalf("expected unsigned int overflow to wrap to 1, got %d", e.IVal)
	}

	// signed short is 16-bit; 0xFFFF must sign-extend to -1.
	if e := NewConst(types.ShortType, 0xFFFF); e.IVal != -1 {
		t.Fatalf("expected 0xFFFF as a short to sign-extend to -1, got %d", e.IVal)
	}

	// signed char is 8-bit; 200 (0xC8) must wrap to -56.
	if e := NewConst(types.SCharType, 200); e.IVal != -56 {
		t.Fatalf("expected 200 as a signed char to wrap to -56, got %d", e.IVal)
	}

	// unsigned char is 8-bit; 300 (0x12C) must wrap to 0x2C = 44.
	if e := NewConst(types.UCharType, 300); e.IVal != 44 {
		t.Fatalf("expected 300 as an unsigned char to wrap to 44, got %d", e.IVal)
	}

	// long is 32-bit and a multiply overflow must wrap within that width.
	if e := NewConst(types.LongType, 0x1_0000_0001); e.IVal != 1 {
		t.Fatalf("expected long overflow to wrap to 1, got %d", e.IVal)
	}
}

func TestNewGlobalIsLValue(t *testing.T) {
	sym := &symtab.Symbol{Name: "x", Type: types.IntType}
	e := NewGlobal(sym)

	if !e.IsLVal() {
		t.Fatalf("expected a global to be an lvalue")
	}

	if e.Sym != sym {
		t.Fatalf("expected Sym to be retained")
	}
}

func TestToRValDemotesPrimaryOnly(t *testing.T) {
	e := NewGlobal(&symtab.Symbol{Name: "x", Type: types.IntType})
	e.ToRVal()

	if e.Ref != LValue {
		t.Fatalf("ToRVal should not affect a global lvalue")
	}

	p := NewPrimary(types.IntType)
	p.Ref = LValue // shouldn't normally happen, but exercise the demotion path
	p.ToRVal()

	if p.Ref != RValue {
		t.Fatalf("ToRVal should demote a primary-register value to rvalue")
	}
}

func TestAddOffsetOnStaticLocations(t *testing.T) {
	e := NewConst(types.IntType, 10)
	e.AddOffset(5)

	if e.IVal != 15 {
		t.Fatalf("expected IVal 15, got %d", e.IVal)
	}
}

func TestAddOffsetPanicsOnPrimary(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected AddOffset on LocPrimary to panic")
		}
	}()

	e := NewPrimary(types.IntType)
	e.AddOffset(1)
}

func TestFlagHas(t *testing.T) {
	f := AddressOf | Tested

	if !f.Has(AddressOf) {
		t.Fatalf("expected Has(AddressOf) true")
	}

	if f.Has(NeedsConst) {
		t.Fatalf("expected Has(NeedsConst) false")
	}
}

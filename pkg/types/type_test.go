package types

import "testing"

func eq(t *testing.T, want, got any) {
	t.Helper()

	if want != got {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBasicSize(t *testing.T) {
	eq(t, uint(1), UCharType.Size())
	eq(t, uint(2), IntType.Size())
	eq(t, uint(4), LongType.Size())
}

func TestPointerSize(t *testing.T) {
	p := NewPointer(IntType)
	eq(t, uint(2), p.Size())
	eq(t, "int *", p.String())
}

func TestArraySize(t *testing.T) {
	a := NewArray(IntType, 4)
	eq(t, uint(8), a.Size())

	incomplete := NewArray(IntType, -1)
	eq(t, uint(0), incomplete.Size())
}

func TestIntPromotion(t *testing.T) {
	eq(t, IntType, IntPromotion(UCharType))
	eq(t, IntType, IntPromotion(SCharType))
	eq(t, IntType, IntPromotion(BoolType))
	// Already int-rank: passes through.
	if IntPromotion(LongType) != Type(LongType) {
		t.Fatalf("long should not be promoted")
	}
}

func TestArithmeticConvert(t *testing.T) {
	cases := []struct {
		a, b Type
		want Type
	}{
		{IntType, IntType, IntType},
		{IntType, UIntType, UIntType},
		{IntType, LongType, LongType},
		{UIntType, LongType, LongType},
		{ULongType, IntType, ULongType},
		{UCharType, SCharType, IntType}, // both promote to int first
	}

	for _, c := range cases {
		got := ArithmeticConvert(c.a, c.b)
		if got != c.want {
			t.Fatalf("ArithmeticConvert(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestTypeCmpPointers(t *testing.T) {
	voidP := NewPointer(VoidType)
	intP := NewPointer(IntType)

	if TypeCmp(voidP, intP) != Equal {
		t.Fatalf("void* should be compatible with any object pointer")
	}

	charP := NewPointer(UCharType)
	if TypeCmp(intP, charP) != PtrIncompatible {
		t.Fatalf("int* and unsigned char* should be pointer-incompatible")
	}
}

func TestPtrConversionDecay(t *testing.T) {
	arr := NewArray(IntType, 3)
	decayed := PtrConversion(arr)

	p := decayed.AsPointer()
	if p == nil || p.Elem != Type(IntType) {
		t.Fatalf("array should decay to pointer to element type")
	}
}

func TestRecordLookup(t *testing.T) {
	rec := &RecordType{
		Tag: "point",
		Fields: []Field{
			{Name: "x", Type: IntType, ByteOffset: 0},
			{Name: "y", Type: IntType, ByteOffset: 2},
		},
		ByteSize: 4,
	}

	f := rec.Lookup("y")
	if f == nil || f.ByteOffset != 2 {
		t.Fatalf("expected field y at offset 2")
	}

	if rec.Lookup("z") != nil {
		t.Fatalf("expected no field z")
	}
}

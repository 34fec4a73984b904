package emit

import "testing"

func TestCodeBufferMarkAndRemoveFrom(t *testing.T) {
	b := NewCodeBuffer()
	b.Emit("lda", "#$01")

	mark := b.Mark()
	b.Emit("sta", "tmp")
	b.Emit("lda", "#$02")

	if b.RangeIsEmpty(mark) {
		t.Fatalf("expected non-empty range after emitting two lines")
	}

	b.RemoveFrom(mark)

	if !b.RangeIsEmpty(mark) {
		t.Fatalf("expected range empty after RemoveFrom")
	}

	if b.Len() != 1 {
		t.Fatalf("expected 1 line remaining, got %d", b.Len())
	}
}

func TestCodeBufferMoveRangeBackward(t *testing.T) {
	b := NewCodeBuffer()
	b.Emit("a", "")
	b.Emit("b", "")
	b.Emit("c", "")
	b.Emit("d", "")
	b.Emit("e", "")

	// Move [c,d) (mark 2..3) to before mark 1 (before "b").
	b.MoveRange(2, 3, 1)

	want := []string{"a", "c", "b", "d", "e"}
	assertOps(t, b, want)
}

func TestCodeBufferMoveRangeForward(t *testing.T) {
	b := NewCodeBuffer()
	b.Emit("a", "")
	b.Emit("b", "")
	b.Emit("c", "")
	b.Emit("d", "")
	b.Emit("e", "")

	// Move [a,b) (mark 0..1) to before mark 4 ("e").
	b.MoveRange(0, 1, 4)

	want := []string{"b", "c", "d", "a", "e"}
	assertOps(t, b, want)
}

func assertOps(t *testing.T, b *CodeBuffer, want []string) {
	t.Helper()

	lines := b.Lines()
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}

	for i, l := range lines {
		if l.Op != want[i] {
			t.Fatalf("line %d: expected op %q, got %q", i, want[i], l.Op)
		}
	}
}

func TestNarrowImmediateFlags(t *testing.T) {
	f := NarrowImmediateFlags(Width32|Const, 5)
	if f.WidthOf() != 1 {
		t.Fatalf("expected small positive constant to narrow to 1 byte, got %d", f.WidthOf())
	}

	f = NarrowImmediateFlags(Width32|Const, 300)
	if f.WidthOf() != 2 {
		t.Fatalf("expected 300 to require 2 bytes, got %d", f.WidthOf())
	}

	f = NarrowImmediateFlags(Width32|Const|Unsigned, -1)
	if f.WidthOf() != 4 {
		t.Fatalf("expected -1 as unsigned to stay at 4 bytes, got %d", f.WidthOf())
	}

	notConst := NarrowImmediateFlags(Width32, 5)
	if notConst.WidthOf() != 4 {
		t.Fatalf("expected non-const flags to be left untouched")
	}
}

func TestEmitterPushPopTracksStackPtr(t *testing.T) {
	e := NewEmitter(NewCodeBuffer())

	e.Push(Width16)
	if e.StackPtr != 2 {
		t.Fatalf("expected StackPtr 2 after pushing a 16-bit value, got %d", e.StackPtr)
	}

	e.Push(Width8)
	if e.StackPtr != 3 {
		t.Fatalf("expected StackPtr 3, got %d", e.StackPtr)
	}

	e.Pop(Width8)
	e.Pop(Width16)

	if e.StackPtr != 0 {
		t.Fatalf("expected StackPtr back to 0, got %d", e.StackPtr)
	}
}

func TestEmitterBinaryOpPopsOperand(t *testing.T) {
	e := NewEmitter(NewCodeBuffer())
	e.Push(Width16)
	e.BinaryOp(Width16, "tosaddax")

	if e.StackPtr != 0 {
		t.Fatalf("expected StackPtr 0 after BinaryOp consumes the stacked operand, got %d", e.StackPtr)
	}
}

func TestEmitterDropIsNoOpOnZero(t *testing.T) {
	e := NewEmitter(NewCodeBuffer())
	e.Drop(0)

	if e.Buffer().Len() != 0 {
		t.Fatalf("expected Drop(0) to emit nothing")
	}
}

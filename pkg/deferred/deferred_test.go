package deferred

import (
	"testing"

	"github.com/gocc65/exprc/pkg/exprdesc"
)

func TestPushAndDrainFIFOOrder(t *testing.T) {
	q := New()

	a := exprdesc.ExprDesc{Name: "a"}
	b := exprdesc.ExprDesc{Name: "b"}

	q.Push(a, 1)
	q.Push(b, -1)

	if q.Len() != 2 {
		t.Fatalf("expected 2 queued ops, got %d", q.Len())
	}

	var seen []string

	q.Drain(func(op Op) { seen = append(seen, op.Target.Name) })

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("expected FIFO order [a b], got %v", seen)
	}

	if !q.CheckAllDone() {
		t.Fatalf("expected queue empty after drain")
	}
}

func TestDrainIntoGuardsPrimaryOnlyWhenNeeded(t *testing.T) {
	q := New()
	q.Push(exprdesc.ExprDesc{Name: "a"}, 1)

	var saved, restored bool

	preserve := exprdesc.ExprDesc{Loc: exprdesc.LocPrimary}
	q.DrainInto(preserve, func(Op) {}, func() { saved = true }, func() { restored = true })

	if !saved || !restored {
		t.Fatalf("expected primary register to be saved and restored")
	}

	q.Push(exprdesc.ExprDesc{Name: "b"}, 1)
	saved, restored = false, false

	notPrimary := exprdesc.ExprDesc{Loc: exprdesc.LocStack}
	q.DrainInto(notPrimary, func(Op) {}, func() { saved = true }, func() { restored = true })

	if saved || restored {
		t.Fatalf("expected no primary guard when preserve is not in the primary register")
	}
}

func TestDrainOnEmptyQueueDoesNothing(t *testing.T) {
	q := New()

	calls := 0
	q.Drain(func(Op) { calls++ })

	if calls != 0 {
		t.Fatalf("expected no callback invocations on an empty queue")
	}
}

// Package deferred implements the post-increment/post-decrement queue
// spec.md §5 describes: `expr++`/`expr--` defer their side effect until the
// next C sequence point instead of emitting it immediately, so that an
// expression like `a[i++] + a[i++]` reads both elements before either
// increment lands.
package deferred

import "github.com/gocc65/exprc/pkg/exprdesc"

// Op is one deferred post-increment/decrement, recorded in the order its
// operand was evaluated.
type Op struct {
	// Target is the lvalue to be incremented/decremented once drained.
	Target exprdesc.ExprDesc
	// Delta is +1 for `++`, -1 for `--`.
	Delta int64
}

// Queue is a FIFO of pending deferred operations. Operations drain in the
// order they were pushed (spec.md §5's left-to-right sequencing), never
// reordered or coalesced even if they target the same object.
type Queue struct {
	ops []Op
}

// New returns an empty queue.
func New() *Queue { return &Queue{} }

// Push enqueues a deferred post-inc/dec on target.
func (q *Queue) Push(target exprdesc.ExprDesc, delta int64) {
	q.ops = append(q.ops, Op{Target: target, Delta: delta})
}

// Len returns the number of operations currently queued.
func (q *Queue) Len() int { return len(q.ops) }

// CheckAllDone reports whether the queue is empty -- called at every C
// sequence point as an internal consistency check (spec.md §5: a
// non-empty queue past a sequence point is a compiler bug, not a user
// error).
func (q *Queue) CheckAllDone() bool { return len(q.ops) == 0 }

// DrainInto removes every queued operation, in FIFO order, invoking emit
// for each one. preserve is the ExprDesc whose value must survive the
// drain intact even if one of the deferred operations targets the same
// object (spec.md §5's preservation contract: `a = a++` must still store
// the pre-increment value of the right-hand side).
//
// If preserve currently lives in the primary register, draining an
// increment would clobber it while computing the new value, so
// DrainInto calls savePrimary before the first op and restorePrimary
// after the last one; when preserve lives anywhere else, neither is
// called. emit is responsible for actually generating the
// increment/decrement code; DrainInto only sequences the calls, guards
// the primary register, and clears the queue.
func (q *Queue) DrainInto(preserve exprdesc.ExprDesc, emit func(Op), savePrimary, restorePrimary func()) {
	ops := q.ops
	q.ops = nil

	if len(ops) == 0 {
		return
	}

	needsGuard := preserve.Loc == exprdesc.LocPrimary
	if needsGuard {
		savePrimary()
	}

	for _, op := range ops {
		emit(op)
	}

	if needsGuard {
		restorePrimary()
	}
}

// Drain is DrainInto without a value to protect, used at statement-level
// sequence points where nothing downstream needs the primary register
// preserved.
func (q *Queue) Drain(emit func(Op)) {
	q.DrainInto(exprdesc.ExprDesc{}, emit, func() {}, func() {})
}

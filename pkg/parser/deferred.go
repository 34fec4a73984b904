package parser

import (
	"github.com/gocc65/exprc/pkg/deferred"
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/exprdesc"
)

// deferPostOp enqueues expr++/expr-- (delta +1/-1) onto the shared
// deferred queue instead of emitting its side effect immediately (spec.md
// §5). expr must already be an lvalue; the value returned to the caller is
// its pre-increment value, untouched.
func (p *Parser) deferPostOp(expr exprdesc.ExprDesc, delta int64) {
	if !expr.IsLVal() {
		p.ctx.Diag.Error(nil, nil, "operand of ++/-- must be an lvalue")
		return
	}

	p.ctx.Deferred.Push(expr, delta)
}

// DoDeferred implements spec.md's `DoDeferred` entry point: drain every
// queued post-inc/dec, preserving preserve's value across the drain if it
// currently lives in the primary register.
func (p *Parser) DoDeferred(preserve exprdesc.ExprDesc) {
	savePrimary := func() { p.ctx.Emit.Push(emit.Width16) }
	restorePrimary := func() { p.ctx.Emit.Pop(emit.Width16) }

	p.ctx.Deferred.DrainInto(preserve, func(op deferred.Op) {
		target := op.Target
		val := target
		p.loadPrimary(&val)
		p.ctx.Emit.UnaryOp(flagsOf(target.Type), incDecHelper(op.Delta))
		p.store(&target)
	}, savePrimary, restorePrimary)
}

func incDecHelper(delta int64) string {
	if delta > 0 {
		return "incprimary"
	}

	return "decprimary"
}

// InitDeferredOps implements spec.md's `InitDeferredOps` entry point:
// called on entering a new full expression, asserting the queue starts
// empty (a non-empty queue here would mean a previous statement's
// sequence point was never drained -- a compiler bug).
func (p *Parser) InitDeferredOps() {
	if !p.ctx.Deferred.CheckAllDone() {
		p.ctx.Diag.Internal("deferred post-inc/dec queue not empty at start of expression")
	}
}

// DoneDeferredOps implements spec.md's `DoneDeferredOps` entry point,
// called at a statement-level sequence point once every deferred
// operation has been drained.
func (p *Parser) DoneDeferredOps() {
	p.CheckDeferredOpAllDone()
}

// CheckDeferredOpAllDone implements spec.md's consistency-check entry
// point of the same name.
func (p *Parser) CheckDeferredOpAllDone() {
	if !p.ctx.Deferred.CheckAllDone() {
		p.ctx.Diag.Internal("deferred post-inc/dec queue not drained at sequence point")
	}
}

// GetDeferredOpCount implements spec.md's entry point of the same name,
// used by callers that need to know whether draining is even necessary
// before paying for a primary-register save/restore.
func (p *Parser) GetDeferredOpCount() int {
	return p.ctx.Deferred.Len()
}

// Package context bundles the collaborators spec.md §6/§9 says the parser
// needs threaded through every call: configuration, diagnostics, the
// symbol table, literal pool, label allocator, code emitter, and the
// deferred post-inc/dec queue. One *Context travels down the whole
// recursive-descent call tree instead of each function taking six
// separate parameters.
package context

import (
	"github.com/gocc65/exprc/pkg/config"
	"github.com/gocc65/exprc/pkg/deferred"
	"github.com/gocc65/exprc/pkg/diag"
	"github.com/gocc65/exprc/pkg/emit"
	"github.com/gocc65/exprc/pkg/label"
	"github.com/gocc65/exprc/pkg/litpool"
	"github.com/gocc65/exprc/pkg/symtab"
)

// Context is the shared compilation state for one translation unit.
type Context struct {
	Config   config.Config
	Diag     *diag.Sink
	Syms     *symtab.Table
	Lits     *litpool.Pool
	Labels   *label.Allocator
	Emit     *emit.Emitter
	Deferred *deferred.Queue
}

// New constructs a Context with fresh, empty collaborators around cfg and
// sink.
func New(cfg config.Config, sink *diag.Sink) *Context {
	return &Context{
		Config:   cfg,
		Diag:     sink,
		Syms:     symtab.New(),
		Lits:     litpool.New(),
		Labels:   label.New(),
		Emit:     emit.NewEmitter(emit.NewCodeBuffer()),
		Deferred: deferred.New(),
	}
}

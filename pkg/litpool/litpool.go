// Package litpool implements the string/literal pool collaborator spec.md
// §6 requires: string literals are deduplicated and assigned an assembler
// label the first time they're seen, then reused on subsequent identical
// literals (a single literal may be referenced from many call sites).
package litpool

import "fmt"

// Pool deduplicates string literal contents against the label already
// assigned to them.
type Pool struct {
	byContent map[string]string
	order     []string
	next      int
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{byContent: make(map[string]string)}
}

// UseLiteral returns the assembler label for s, allocating a fresh one the
// first time s is seen.
func (p *Pool) UseLiteral(s string) string {
	if lbl, ok := p.byContent[s]; ok {
		return lbl
	}

	lbl := fmt.Sprintf("L%04X", p.next)
	p.next++
	p.byContent[s] = lbl
	p.order = append(p.order, s)

	return lbl
}

// Size returns the number of distinct literals registered so far.
func (p *Pool) Size() int { return len(p.order) }

// Label returns the label already assigned to s, or "" if s was never
// passed to UseLiteral.
func (p *Pool) Label(s string) string { return p.byContent[s] }

// Contents returns the literals in the order they were first seen, paired
// with their labels -- used by the final emission pass to lay out the
// rodata segment.
func (p *Pool) Contents() []struct{ Label, Value string } {
	out := make([]struct{ Label, Value string }, len(p.order))
	for i, s := range p.order {
		out[i] = struct{ Label, Value string }{p.byContent[s], s}
	}

	return out
}

// Package emit implements the code emitter façade and peephole buffer
// spec.md §6 specifies: an append-only sequence of pseudo-assembly lines
// that later passes can mark, delete ranges from, or relocate -- so that,
// e.g., an address computation that turns out to fold to a constant after
// all can be stripped without ever having been "truly" emitted.
package emit

import "fmt"

// Line is one emitted pseudo-assembly instruction.
type Line struct {
	Op   string
	Args string
}

// String renders a Line the way it would appear in a listing.
func (l Line) String() string {
	if l.Args == "" {
		return l.Op
	}

	return fmt.Sprintf("%-6s %s", l.Op, l.Args)
}

// Mark is an opaque position in a CodeBuffer, valid until anything before
// it is deleted or moved.
type Mark int

// CodeBuffer is the append-only instruction stream with positional marks
// and the peephole edits spec.md's Non-goals explicitly keep in scope:
// deleting a trailing range (a subexpression that folded away) and moving
// a range (hoisting a deferred increment past code emitted after it).
type CodeBuffer struct {
	lines []Line
}

// NewCodeBuffer returns an empty buffer.
func NewCodeBuffer() *CodeBuffer { return &CodeBuffer{} }

// Emit appends one instruction and returns nothing: callers that need to
// come back to this point first take a Mark.
func (b *CodeBuffer) Emit(op, args string) {
	b.lines = append(b.lines, Line{Op: op, Args: args})
}

// Mark returns a position denoting "just after the last emitted line".
func (b *CodeBuffer) Mark() Mark { return Mark(len(b.lines)) }

// RemoveFrom deletes every line from mark to the current end of the
// buffer, rewinding it as if those lines were never emitted.
func (b *CodeBuffer) RemoveFrom(mark Mark) {
	b.lines = b.lines[:mark]
}

// RangeIsEmpty reports whether no lines were emitted between mark and now.
func (b *CodeBuffer) RangeIsEmpty(mark Mark) bool {
	return int(mark) == len(b.lines)
}

// MoveRange relocates the half-open range [from, to) to immediately before
// dest, preserving the relative order of the moved lines and of the lines
// left behind. dest must not fall inside [from, to).
func (b *CodeBuffer) MoveRange(from, to, dest Mark) {
	if from >= to || (dest >= from && dest < to) {
		panic("emit: invalid MoveRange arguments")
	}

	moved := append([]Line(nil), b.lines[from:to]...)

	var out []Line

	switch {
	case dest < from:
		out = append(out, b.lines[:dest]...)
		out = append(out, moved...)
		out = append(out, b.lines[dest:from]...)
		out = append(out, b.lines[to:]...)
	default: // dest >= to
		out = append(out, b.lines[:from]...)
		out = append(out, b.lines[to:dest]...)
		out = append(out, moved...)
		out = append(out, b.lines[dest:]...)
	}

	b.lines = out
}

// Lines returns the buffer's full contents, for final emission or tests.
func (b *CodeBuffer) Lines() []Line { return append([]Line(nil), b.lines...) }

// Len returns the number of lines currently in the buffer.
func (b *CodeBuffer) Len() int { return len(b.lines) }

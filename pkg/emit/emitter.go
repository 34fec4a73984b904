package emit

import "fmt"

// Emitter is the code-generation façade spec.md §3.2 describes: a virtual
// model of the target machine's single primary register plus a runtime
// value stack, backed by a CodeBuffer. Every arithmetic/load/store
// operation goes through here rather than letting the parser format
// assembly text directly, so the parser stays target-independent.
type Emitter struct {
	buf *CodeBuffer
	// StackPtr tracks the virtual depth of the runtime value stack, in
	// bytes, relative to its level on function entry. Pushing the
	// primary register increments it by the pushed width; popping
	// decrements it. It never goes negative in a well-formed expression.
	StackPtr int
}

// NewEmitter returns an emitter writing into buf.
func NewEmitter(buf *CodeBuffer) *Emitter {
	return &Emitter{buf: buf}
}

// Buffer returns the underlying code buffer, e.g. so a caller can take a
// Mark before emitting a subexpression it might later discard.
func (e *Emitter) Buffer() *CodeBuffer { return e.buf }

// AddCodeLine appends a raw instruction, for the handful of primitives
// (inline asm, computed goto) that don't fit the typed helpers below.
func (e *Emitter) AddCodeLine(op, args string) {
	e.buf.Emit(op, args)
}

// LoadConst loads an immediate value into the primary register.
func (e *Emitter) LoadConst(f Flags, ival int64) {
	f = NarrowImmediateFlags(f|Const, ival)
	e.buf.Emit(ldaMnemonic(f), fmt.Sprintf("#$%02X", uint64(ival)&widthMask(f)))
}

// LoadGlobal loads a named global/static object into the primary
// register.
func (e *Emitter) LoadGlobal(f Flags, name string, offset int64) {
	e.buf.Emit(ldaMnemonic(f), operandFor(name, offset))
}

// LoadLocal loads a stack-frame local at byte offset into the primary
// register.
func (e *Emitter) LoadLocal(f Flags, offset int) {
	e.buf.Emit(ldaMnemonic(f), fmt.Sprintf("sp+%d", offset))
}

// StoreGlobal stores the primary register into a named global/static
// object.
func (e *Emitter) StoreGlobal(f Flags, name string, offset int64) {
	e.buf.Emit(staMnemonic(f), operandFor(name, offset))
}

// StoreLocal stores the primary register into a stack-frame local.
func (e *Emitter) StoreLocal(f Flags, offset int) {
	e.buf.Emit(staMnemonic(f), fmt.Sprintf("sp+%d", offset))
}

// Push pushes the primary register onto the runtime value stack, bumping
// StackPtr by the operand's width.
func (e *Emitter) Push(f Flags) {
	e.buf.Emit("jsr", "pusha"+widthSuffix(f))
	e.StackPtr += int(f.WidthOf())
}

// Pop pops the top of the runtime value stack into the primary register,
// reducing StackPtr by the popped width.
func (e *Emitter) Pop(f Flags) {
	e.buf.Emit("jsr", "popa"+widthSuffix(f))
	e.StackPtr -= int(f.WidthOf())
}

// Drop discards n bytes from the top of the runtime value stack without
// loading them anywhere, e.g. after a call whose arguments were pushed but
// whose callee doesn't clean its own stack.
func (e *Emitter) Drop(n int) {
	if n == 0 {
		return
	}

	e.buf.Emit("jsr", fmt.Sprintf("incsp%d", n))
	e.StackPtr -= n
}

// BinaryOp emits the runtime helper call implementing a binary operator
// between the value on top of the stack (left operand) and the primary
// register (right operand), leaving the result in the primary register and
// popping the stacked operand.
func (e *Emitter) BinaryOp(f Flags, name string) {
	e.buf.Emit("jsr", name+widthSuffix(f))
	e.StackPtr -= int(f.WidthOf())
}

// UnaryOp emits a runtime helper call operating on the primary register in
// place (negation, bitwise complement, logical not).
func (e *Emitter) UnaryOp(f Flags, name string) {
	e.buf.Emit("jsr", name+widthSuffix(f))
}

// Test emits a compare-against-zero of the primary register, setting the
// processor's condition flags for a following conditional branch -- the
// boolean-normalization primitive BoolExpr relies on (spec.md §4.9/§4.10).
func (e *Emitter) Test(f Flags) {
	e.buf.Emit("tst", widthSuffix(f)[1:])
}

// JumpIfZero emits a conditional branch to lbl taken when the primary
// register (after a preceding Test) is zero.
func (e *Emitter) JumpIfZero(lbl string) {
	e.buf.Emit("jeq", lbl)
}

// JumpIfNotZero emits a conditional branch to lbl taken when the primary
// register is non-zero.
func (e *Emitter) JumpIfNotZero(lbl string) {
	e.buf.Emit("jne", lbl)
}

// Jump emits an unconditional branch to lbl.
func (e *Emitter) Jump(lbl string) {
	e.buf.Emit("jmp", lbl)
}

// DefineLabel emits a label definition at the current position.
func (e *Emitter) DefineLabel(lbl string) {
	e.buf.Emit(lbl+":", "")
}

// LoadAddr loads the address of a statically-located object (global,
// local, or literal) into the primary register -- the `&expr` primitive
// spec.md §4.3/§4.5 needs, distinct from LoadGlobal/LoadLocal which load
// the object's *value*.
func (e *Emitter) LoadAddr(name string, offset int64) {
	e.buf.Emit("lda", "#<"+operandFor(name, offset))
	e.buf.Emit("ldx", "#>"+operandFor(name, offset))
}

// PushAddr pushes the address of a statically-located object onto the
// runtime stack, distinct from Push which pushes the primary register's
// current value.
func (e *Emitter) PushAddr(name string, offset int64) {
	e.LoadAddr(name, offset)
	e.Push(Width16)
}

// DupTOSAddr duplicates the 16-bit address on top of the runtime value
// stack, needed when an lvalue whose address isn't statically known (a
// dereferenced pointer, a subscript) is both read and written by the same
// compound-assignment operator.
func (e *Emitter) DupTOSAddr() {
	e.buf.Emit("jsr", "dupax")
	e.StackPtr += 2
}

// LoadIndirect dereferences the address currently on top of the runtime
// value stack, popping it and leaving the pointed-to value in the primary
// register -- the runtime half of unary `*` on a dynamically computed
// pointer.
func (e *Emitter) LoadIndirect(f Flags) {
	e.buf.Emit("jsr", "ldaidx"+widthSuffix(f))
	e.StackPtr -= 2
}

// StoreIndirect pops the address on top of the runtime value stack and
// stores the primary register through it -- the runtime half of
// `*ptr = value`.
func (e *Emitter) StoreIndirect(f Flags) {
	e.buf.Emit("jsr", "staidx"+widthSuffix(f))
	e.StackPtr -= 2
}

// Swap exchanges the primary register with the top of the runtime value
// stack (spec.md §6's `swap`), used when a scale factor or operator must
// apply to the stacked operand rather than the one most recently loaded
// (e.g. `int + ptr`, where the pointee size scales the integer, not the
// address just loaded into the primary).
func (e *Emitter) Swap(f Flags) {
	e.buf.Emit("jsr", "swap"+widthSuffix(f))
}

// Call emits a direct call to a named function (spec.md §6's `call`).
func (e *Emitter) Call(name string) {
	e.buf.Emit("jsr", name)
}

// CallInd emits an indirect call through the 16-bit function pointer
// currently in the primary register (spec.md §6's `callind`), used when
// the callee isn't a statically known symbol.
func (e *Emitter) CallInd() {
	e.buf.Emit("jsr", "callax")
}

func widthSuffix(f Flags) string {
	switch f.WidthOf() {
	case 1:
		return "1"
	case 4:
		return "l"
	default:
		return "ax"
	}
}

func widthMask(f Flags) uint64 {
	switch f.WidthOf() {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	default:
		return 0xFFFFFFFF
	}
}

func ldaMnemonic(f Flags) string {
	switch f.WidthOf() {
	case 1:
		return "lda"
	case 4:
		return "jsr ldeax"
	default:
		return "ldax"
	}
}

func staMnemonic(f Flags) string {
	switch f.WidthOf() {
	case 1:
		return "sta"
	case 4:
		return "jsr steax"
	default:
		return "stax"
	}
}

func operandFor(name string, offset int64) string {
	if offset == 0 {
		return name
	}

	if offset > 0 {
		return fmt.Sprintf("%s+%d", name, offset)
	}

	return fmt.Sprintf("%s-%d", name, -offset)
}

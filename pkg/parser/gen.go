package parser

import (
	"github.com/gocc65/exprc/pkg/exprdesc"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/types"
)

// genAttr is the attribute bitset spec.md's generator-descriptor table
// attaches to each binary operator.
type genAttr uint8

const (
	// genNoPush marks an operator whose right operand may be parsed
	// without first pushing the left one, because the left operand's
	// value is never needed to evaluate the right (no table entry in this
	// package sets it, including the compound-assignment table; kept for
	// parity with cc65's table shape).
	genNoPush genAttr = 1 << iota
	// genComm marks a commutative operator: constant-folding or
	// register-allocation shortcuts may swap operands freely.
	genComm
	// genNoFunc marks an operator implemented with a single target
	// instruction rather than a runtime helper call (unused by this
	// target, which routes every operator through a helper, but again
	// kept for table-shape parity with the original).
	genNoFunc
)

// genDesc is one row of a binary-operator generator-descriptor table: the
// token it fires on, its attribute bits, the runtime helper name the
// emitter calls for the non-constant case, and the constant-folding
// function for the all-literal case.
type genDesc struct {
	kind   token.Kind
	attr   genAttr
	helper string
	fold   func(a, b int64) int64
}

func (g genDesc) isCommutative() bool { return g.attr&genComm != 0 }

// binaryLevel parses left-associative binary operators at one precedence
// level: it parses an operand via next, then repeatedly matches any token
// in table, materializing the left operand and parsing a right operand for
// each one, folding when both sides are constants and emitting a helper
// call otherwise (spec.md §4.1/§4.2).
func (p *Parser) binaryLevel(next func() exprdesc.ExprDesc, table []genDesc) exprdesc.ExprDesc {
	left := next()

	for {
		desc, ok := lookupGen(table, p.CurTok().Kind)
		if !ok {
			return left
		}

		p.NextTok()
		left = p.applyBinary(left, desc, next)
	}
}

func lookupGen(table []genDesc, k token.Kind) (genDesc, bool) {
	for _, d := range table {
		if d.kind == k {
			return d, true
		}
	}

	return genDesc{}, false
}

func (p *Parser) applyBinary(left exprdesc.ExprDesc, desc genDesc, next func() exprdesc.ExprDesc) exprdesc.ExprDesc {
	if left.IsConst() {
		// Try to fold without emitting a load for the left operand at
		// all, in case the right operand also turns out constant.
		mark := p.ctx.Emit.Buffer().Mark()
		right := next()

		if right.IsConst() && types.IsInteger(left.Type) && types.IsInteger(right.Type) {
			resType := types.ArithmeticConvert(left.Type, right.Type)
			return exprdesc.NewConst(resType, desc.fold(left.IVal, right.IVal))
		}
		// Didn't fold after all: the left operand must now actually be
		// materialized and pushed, and since right may have already
		// emitted code of its own (now sitting at `mark`), that code
		// has to come after the left operand's push -- rather than
		// re-parsing, emit the left operand's load/push first and move
		// it before mark.
		beforeLeft := p.ctx.Emit.Buffer().Mark()
		p.ensurePrimaryPushed(&left)
		afterLeft := p.ctx.Emit.Buffer().Mark()

		if afterLeft > beforeLeft {
			p.ctx.Emit.Buffer().MoveRange(beforeLeft, afterLeft, mark)
		}

		return p.finishBinary(left, right, desc)
	}

	p.ensurePrimaryPushed(&left)
	right := next()

	return p.finishBinary(left, right, desc)
}

func (p *Parser) finishBinary(left, right exprdesc.ExprDesc, desc genDesc) exprdesc.ExprDesc {
	resType := types.ArithmeticConvert(left.Type, right.Type)

	if left.IsConst() && right.IsConst() && types.IsInteger(left.Type) && types.IsInteger(right.Type) {
		return exprdesc.NewConst(resType, desc.fold(left.IVal, right.IVal))
	}

	p.loadPrimary(&right)
	p.ctx.Emit.BinaryOp(flagsOf(resType), desc.helper)

	return exprdesc.NewPrimary(resType)
}

var multiplicativeOps = []genDesc{
	{kind: token.STAR, attr: genComm, helper: "tosmul", fold: func(a, b int64) int64 { return a * b }},
	{kind: token.SLASH, helper: "tosdiv", fold: func(a, b int64) int64 {
		if b == 0 {
			return 0
		}

		return a / b
	}},
	{kind: token.PERCENT, helper: "tosmod", fold: func(a, b int64) int64 {
		if b == 0 {
			return 0
		}

		return a % b
	}},
}

var shiftOps = []genDesc{
	{kind: token.SHL, helper: "tosshl", fold: func(a, b int64) int64 { return a << uint(b) }},
	{kind: token.SHR, helper: "tosshr", fold: func(a, b int64) int64 { return a >> uint(b) }},
}

var bitAndOps = []genDesc{
	{kind: token.AMP, attr: genComm, helper: "tosand", fold: func(a, b int64) int64 { return a & b }},
}

var bitXorOps = []genDesc{
	{kind: token.CARET, attr: genComm, helper: "tosxor", fold: func(a, b int64) int64 { return a ^ b }},
}

var bitOrOps = []genDesc{
	{kind: token.PIPE, attr: genComm, helper: "tosor", fold: func(a, b int64) int64 { return a | b }},
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

var equalityOps = []genDesc{
	{kind: token.EQ, attr: genComm, helper: "tiseq", fold: func(a, b int64) int64 { return boolToInt(a == b) }},
	{kind: token.NE, attr: genComm, helper: "tisne", fold: func(a, b int64) int64 { return boolToInt(a != b) }},
}

var relationalOps = []genDesc{
	{kind: token.LT, helper: "tislt", fold: func(a, b int64) int64 { return boolToInt(a < b) }},
	{kind: token.LE, helper: "tisle", fold: func(a, b int64) int64 { return boolToInt(a <= b) }},
	{kind: token.GT, helper: "tisgt", fold: func(a, b int64) int64 { return boolToInt(a > b) }},
	{kind: token.GE, helper: "tisge", fold: func(a, b int64) int64 { return boolToInt(a >= b) }},
}

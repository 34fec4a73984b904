// Package token defines the lexical token kinds and the Token value that the
// external token source (spec.md §6) hands to the expression parser.  The
// kind table follows the teacher's convention of one named `const X Kind = N`
// per token (see pkg/asm/assembler/lexer.go, read before it was deleted —
// DESIGN.md), generalised from a handful of assembler punctuation marks to
// the full C expression grammar spec.md §2 enumerates.
package token

import "github.com/gocc65/exprc/pkg/util/source"

// Kind identifies the lexical class of a Token.
type Kind uint

// End-of-input / error sentinels.
const (
	EOF Kind = iota
	INVALID
)

// Literals and identifiers.
const (
	IDENT Kind = iota + 10
	INTCONST
	FLOATCONST
	CHARCONST
	STRCONST
)

// Keywords relevant to expression parsing (the declaration/statement parser
// owns the rest of the C keyword set; only the ones expr.c itself consumes
// are listed here, per spec.md §1's scoping of this module).
const (
	KW_SIZEOF Kind = iota + 30
	KW_ASM
)

// Punctuation and operators, grouped by the precedence level spec.md §4.1
// assigns them to (comma lowest, primaries highest).
const (
	COMMA Kind = iota + 50

	ASSIGN
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	SHL_ASSIGN
	SHR_ASSIGN
	AND_ASSIGN
	XOR_ASSIGN
	OR_ASSIGN

	QUESTION
	COLON

	OROR
	ANDAND

	PIPE
	CARET
	AMP

	EQ
	NE

	LT
	LE
	GT
	GE

	SHL
	SHR

	PLUS
	MINUS

	STAR
	SLASH
	PERCENT

	NOT
	TILDE
	INC
	DEC
	ANDAND_LABEL // "&&" immediately followed by a label name: computed goto

	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	DOT
	ARROW
	SEMI
)

var names = map[Kind]string{
	EOF: "end of input", INVALID: "invalid token",
	IDENT: "identifier", INTCONST: "integer constant", FLOATCONST: "floating constant",
	CHARCONST: "character constant", STRCONST: "string literal",
	KW_SIZEOF: "sizeof", KW_ASM: "asm",
	COMMA: ",", ASSIGN: "=", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=",
	STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=",
	SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", AND_ASSIGN: "&=", XOR_ASSIGN: "^=", OR_ASSIGN: "|=",
	QUESTION: "?", COLON: ":", OROR: "||", ANDAND: "&&",
	PIPE: "|", CARET: "^", AMP: "&",
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
	SHL: "<<", SHR: ">>", PLUS: "+", MINUS: "-",
	STAR: "*", SLASH: "/", PERCENT: "%",
	NOT: "!", TILDE: "~", INC: "++", DEC: "--",
	ANDAND_LABEL: "&&<label>",
	LPAREN:       "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]",
	LBRACE: "{", RBRACE: "}", DOT: ".", ARROW: "->", SEMI: ";",
}

// String renders the kind as the source text it represents, for diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}

	return "?"
}

// Token is one lexical token, as produced by pkg/lexer and consumed by
// pkg/parser's CurTok/NextTok lookahead pair (spec.md §6).
type Token struct {
	Kind Kind
	// IVal holds the value of an INTCONST/CHARCONST, sign-extended to int64.
	IVal int64
	// FVal holds the value of a FLOATCONST (captured but, per spec.md §1, not
	// further used: floating point is out of scope for code generation).
	FVal float64
	// SVal holds the decoded payload of a STRCONST, or the spelling of an
	// IDENT/keyword.
	SVal string
	// Unsigned records whether an INTCONST carried an unsigned ('u'/'U')
	// suffix.
	Unsigned bool
	// LongKind records how many 'l'/'L' suffix characters an INTCONST
	// carried (0, 1 for long, 2 for "long long"). Any non-zero count types
	// the constant as long, since this target's widest integer is 32 bits
	// (spec.md §1); "long long" is not diagnosed.
	LongKind int
	// Span locates the token in the originating source file, for diagnostics.
	Span source.Span
}

// Is reports whether t has the given kind.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsAssignOp reports whether t is one of the compound/simple assignment
// operators (spec.md §4.7).
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		SHL_ASSIGN, SHR_ASSIGN, AND_ASSIGN, XOR_ASSIGN, OR_ASSIGN:
		return true
	default:
		return false
	}
}

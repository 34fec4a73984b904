// Package lexer implements the token source collaborator spec.md §6
// requires: it scans a source.File into the stream of token.Token values
// the parser's CurTok/NextTok lookahead pair consumes.
//
// The scanner never panics on malformed input; like the rest of this
// module's error handling (spec.md §7), it reports a diagnostic through
// the supplied *diag.Sink and emits an INVALID token so the parser can
// keep going and find further errors in the same file.
package lexer

import (
	"strconv"
	"strings"

	"github.com/gocc65/exprc/pkg/diag"
	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/util/source"
)

var keywords = map[string]token.Kind{
	"sizeof": token.KW_SIZEOF,
	"asm":    token.KW_ASM,
	"__asm__": token.KW_ASM,
}

// Lexer scans one source file into a flat token slice.
type Lexer struct {
	file *source.File
	src  []rune
	pos  int
	diag *diag.Sink
}

// New returns a lexer over file, reporting scan errors to sink.
func New(file *source.File, sink *diag.Sink) *Lexer {
	return &Lexer{file: file, src: file.Contents(), diag: sink}
}

// ScanAll scans the entire file and returns its tokens, always ending with
// an EOF token.
func (l *Lexer) ScanAll() []token.Token {
	var toks []token.Token

	for {
		tok := l.Next()
		toks = append(toks, tok)

		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	start := l.pos

	if l.pos >= len(l.src) {
		return l.tok(token.EOF, start)
	}

	c := l.src[l.pos]

	switch {
	case isIdentStart(c):
		return l.scanIdent(start)
	case isDigit(c):
		return l.scanNumber(start)
	case c == '\'':
		return l.scanChar(start)
	case c == '"':
		return l.scanString(start)
	default:
		return l.scanPunct(start)
	}
}

func (l *Lexer) tok(k token.Kind, start int) token.Token {
	return token.Token{Kind: k, Span: source.NewSpan(start, l.pos)}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]

		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peek(1) == '*':
			l.pos += 2

			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peek(1) == '/') {
				l.pos++
			}

			if l.pos < len(l.src) {
				l.pos += 2
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}

	return l.src[l.pos+off]
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c rune) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) scanIdent(start int) token.Token {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}

	text := string(l.src[start:l.pos])

	if kind, ok := keywords[text]; ok {
		t := l.tok(kind, start)
		t.SVal = text

		return t
	}

	t := l.tok(token.IDENT, start)
	t.SVal = text

	return t
}

func (l *Lexer) scanNumber(start int) token.Token {
	if l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.src) && isHexDigit(l.src[l.pos]) {
			l.pos++
		}

		return l.finishInt(start, 16)
	}

	isFloat := false

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++

		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		isFloat = true
		l.pos++

		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}

		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}

	if isFloat {
		numEnd := l.pos

		if l.pos < len(l.src) && (l.src[l.pos] == 'f' || l.src[l.pos] == 'F') {
			l.pos++
		}

		text := string(l.src[start:numEnd])

		fv, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.errorf(start, "invalid floating constant %q", text)
		}

		t := l.tok(token.FLOATCONST, start)
		t.FVal = fv

		return t
	}

	digitsEnd := l.pos

	base := 10
	if digitsEnd-start > 1 && l.src[start] == '0' {
		base = 8
	}

	return l.finishIntFrom(start, digitsEnd, base)
}

func (l *Lexer) finishInt(start, base int) token.Token {
	return l.finishIntFrom(start, l.pos, base)
}

func (l *Lexer) finishIntFrom(start, digitsEnd, base int) token.Token {
	text := string(l.src[start:digitsEnd])
	if base == 16 {
		text = text[2:]
	}

	unsigned := false
	longKind := 0

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case 'u', 'U':
			unsigned = true
			l.pos++
		case 'l', 'L':
			longKind++
			l.pos++
		default:
			goto done
		}
	}

done:
	iv, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		l.errorf(start, "invalid integer constant %q", text)
	}

	t := l.tok(token.INTCONST, start)
	t.IVal = int64(iv)
	t.Unsigned = unsigned
	t.LongKind = longKind

	return t
}

func (l *Lexer) scanChar(start int) token.Token {
	l.pos++ // opening '

	var val int64

	if l.pos < len(l.src) && l.src[l.pos] == '\\' {
		l.pos++
		val = int64(l.scanEscape())
	} else if l.pos < len(l.src) {
		val = int64(l.src[l.pos])
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '\'' {
		l.pos++
	} else {
		l.errorf(start, "unterminated character constant")
	}

	t := l.tok(token.CHARCONST, start)
	t.IVal = val

	return t
}

func (l *Lexer) scanString(start int) token.Token {
	l.pos++ // opening "

	var sb strings.Builder

	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			l.pos++
			sb.WriteRune(l.scanEscape())

			continue
		}

		sb.WriteRune(l.src[l.pos])
		l.pos++
	}

	if l.pos < len(l.src) {
		l.pos++ // closing "
	} else {
		l.errorf(start, "unterminated string literal")
	}

	t := l.tok(token.STRCONST, start)
	t.SVal = sb.String()

	return t
}

func (l *Lexer) scanEscape() rune {
	if l.pos >= len(l.src) {
		return 0
	}

	c := l.src[l.pos]
	l.pos++

	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case '\\', '\'', '"':
		return c
	default:
		return c
	}
}

func (l *Lexer) scanPunct(start int) token.Token {
	c := l.src[l.pos]
	c1 := l.peek(1)
	c2 := l.peek(2)

	three := map[string]token.Kind{
		"<<=": token.SHL_ASSIGN,
		">>=": token.SHR_ASSIGN,
	}

	if k, ok := three[string([]rune{c, c1, c2})]; ok {
		l.pos += 3
		return l.tok(k, start)
	}

	two := map[string]token.Kind{
		"+=": token.PLUS_ASSIGN, "-=": token.MINUS_ASSIGN, "*=": token.STAR_ASSIGN,
		"/=": token.SLASH_ASSIGN, "%=": token.PERCENT_ASSIGN,
		"&=": token.AND_ASSIGN, "^=": token.XOR_ASSIGN, "|=": token.OR_ASSIGN,
		"==": token.EQ, "!=": token.NE, "<=": token.LE, ">=": token.GE,
		"<<": token.SHL, ">>": token.SHR,
		"&&": token.ANDAND, "||": token.OROR,
		"++": token.INC, "--": token.DEC, "->": token.ARROW,
	}

	if k, ok := two[string([]rune{c, c1})]; ok {
		l.pos += 2

		if k == token.ANDAND && isIdentStart(c2) {
			return l.scanLabelRef(start)
		}

		return l.tok(k, start)
	}

	one := map[rune]token.Kind{
		',': token.COMMA, '=': token.ASSIGN, '?': token.QUESTION, ':': token.COLON,
		'|': token.PIPE, '^': token.CARET, '&': token.AMP,
		'<': token.LT, '>': token.GT, '+': token.PLUS, '-': token.MINUS,
		'*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
		'!': token.NOT, '~': token.TILDE,
		'(': token.LPAREN, ')': token.RPAREN, '[': token.LBRACKET, ']': token.RBRACKET,
		'{': token.LBRACE, '}': token.RBRACE, '.': token.DOT, ';': token.SEMI,
	}

	if k, ok := one[c]; ok {
		l.pos++
		return l.tok(k, start)
	}

	l.pos++
	l.errorf(start, "unexpected character %q", string(c))

	return l.tok(token.INVALID, start)
}

// scanLabelRef handles the CC65 computed-goto operand `&&label`: the `&&`
// was already consumed by the two-char punctuation table, so only the
// identifier remains.
func (l *Lexer) scanLabelRef(start int) token.Token {
	identStart := l.pos

	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}

	t := l.tok(token.ANDAND_LABEL, start)
	t.SVal = string(l.src[identStart:l.pos])

	return t
}

func (l *Lexer) errorf(start int, format string, args ...any) {
	if l.diag == nil {
		return
	}

	span := source.NewSpan(start, l.pos)
	l.diag.Error(&span, l.file, format, args...)
}

package lexer

import (
	"testing"

	"github.com/gocc65/exprc/pkg/token"
	"github.com/gocc65/exprc/pkg/util/assert"
	"github.com/gocc65/exprc/pkg/util/source"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()

	file := source.NewSourceFile("test.c", []byte(src))
	l := New(file, nil)

	return l.ScanAll()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}

	return out
}

func TestScanSimpleExpression(t *testing.T) {
	toks := scan(t, "3 + 4 * 5")

	want := []token.Kind{token.INTCONST, token.PLUS, token.INTCONST, token.STAR, token.INTCONST, token.EOF}
	got := kinds(toks)

	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScanIdentifierAndKeyword(t *testing.T) {
	toks := scan(t, "sizeof(a)")

	want := []token.Kind{token.KW_SIZEOF, token.LPAREN, token.IDENT, token.RPAREN, token.EOF}
	got := kinds(toks)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if toks[2].SVal != "a" {
		t.Fatalf("expected identifier spelling 'a', got %q", toks[2].SVal)
	}
}

func TestScanCompoundAssignAndIncrement(t *testing.T) {
	toks := scan(t, "a += b++")
	got := kinds(toks)
	want := []token.Kind{token.IDENT, token.PLUS_ASSIGN, token.IDENT, token.INC, token.EOF}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScanHexAndUnsignedLongSuffix(t *testing.T) {
	toks := scan(t, "0x10UL")

	tk := toks[0]
	assert.Equal(t, token.INTCONST, tk.Kind)
	assert.Equal(t, int64(16), tk.IVal)
	assert.Equal(t, true, tk.Unsigned)
	assert.Equal(t, 1, tk.LongKind)
}

func TestScanStringAndCharLiterals(t *testing.T) {
	toks := scan(t, `"hi\n" 'a'`)

	assert.Equal(t, token.STRCONST, toks[0].Kind)
	assert.Equal(t, "hi\n", toks[0].SVal)

	assert.Equal(t, token.CHARCONST, toks[1].Kind)
	assert.Equal(t, int64('a'), toks[1].IVal)
}

func TestScanComputedGotoLabel(t *testing.T) {
	toks := scan(t, "&&foo")

	assert.Equal(t, token.ANDAND_LABEL, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].SVal)
}

func TestScanSkipsComments(t *testing.T) {
	toks := scan(t, "1 /* skip */ + // trailing\n2")
	got := kinds(toks)
	want := []token.Kind{token.INTCONST, token.PLUS, token.INTCONST, token.EOF}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

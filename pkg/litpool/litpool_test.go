package litpool

import "testing"

func TestUseLiteralDedup(t *testing.T) {
	p := New()

	a := p.UseLiteral("hello")
	b := p.UseLiteral("world")
	c := p.UseLiteral("hello")

	if a != c {
		t.Fatalf("expected identical literals to share a label, got %q and %q", a, c)
	}

	if a == b {
		t.Fatalf("expected distinct literals to get distinct labels")
	}

	if p.Size() != 2 {
		t.Fatalf("expected 2 distinct literals, got %d", p.Size())
	}
}

func TestLabelLookup(t *testing.T) {
	p := New()
	lbl := p.UseLiteral("x")

	if p.Label("x") != lbl {
		t.Fatalf("expected Label to return the assigned label")
	}

	if p.Label("never seen") != "" {
		t.Fatalf("expected empty label for unseen literal")
	}
}

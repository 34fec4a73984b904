package label

import "testing"

func TestAllocatorIsSequentialAndUnique(t *testing.T) {
	a := New()

	l1 := a.NewLocal()
	l2 := a.NewLocal()

	if l1 == l2 {
		t.Fatalf("expected distinct labels")
	}

	if a.Count() != 2 {
		t.Fatalf("expected count 2, got %d", a.Count())
	}

	if l1.String() == "" || l2.String() == "" {
		t.Fatalf("expected non-empty label text")
	}
}

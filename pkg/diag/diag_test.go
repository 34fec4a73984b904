package diag

import (
	"bytes"
	"os"
	"testing"
)

func newTestSink(t *testing.T) (*Sink, *os.File, func() string) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	sink := NewSink(w, false)

	return sink, w, func() string {
		w.Close()

		var buf bytes.Buffer
		buf.ReadFrom(r)

		return buf.String()
	}
}

func TestWarningAndErrorCounts(t *testing.T) {
	sink, _, read := newTestSink(t)

	sink.Warning(nil, nil, "looks odd: %d", 1)
	sink.Error(nil, nil, "bad: %s", "nope")

	if sink.Warnings() != 1 {
		t.Fatalf("expected 1 warning, got %d", sink.Warnings())
	}

	if sink.Errors() != 1 {
		t.Fatalf("expected 1 error, got %d", sink.Errors())
	}

	if !sink.HasErrors() {
		t.Fatalf("expected HasErrors true")
	}

	out := read()
	if out == "" {
		t.Fatalf("expected rendered diagnostic output")
	}
}

func TestInternalPanics(t *testing.T) {
	sink, w, _ := newTestSink(t)
	defer w.Close()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected Internal to panic")
		}

		if _, ok := r.(*InternalError); !ok {
			t.Fatalf("expected panic value to be *InternalError, got %T", r)
		}
	}()

	sink.Internal("unexpected state: %d", 7)
}

// Package diag implements the diagnostics collaborator spec.md §7
// describes: user-facing errors and warnings are recoverable (the caller
// synthesizes a safe replacement value and keeps parsing, per spec.md
// §7.1), while internal errors abort immediately because they indicate a
// compiler bug rather than bad input.
//
// Rendering follows the teacher's termio-based colourised diagnostics
// (pkg/util/termio/escapes.go, kept from the teacher copy), gated on
// whether the output stream is actually a terminal via go-isatty, with a
// logrus logger underneath for internal tracing, enabled by NewSink's
// debug argument (the CLI's --verbose flag).
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/gocc65/exprc/pkg/util/source"
	"github.com/gocc65/exprc/pkg/util/termio"
)

// Severity classifies a diagnostic.
type Severity uint8

// Severities, in increasing order of how badly they interrupt
// compilation.
const (
	SevWarning Severity = iota
	SevError
	SevInternal
)

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     *source.Span
	File     *source.File
}

// InternalError is the panic value an internal diagnostic raises:
// recovering from it and printing .Message is the only thing a caller
// should do with it, since it signals a compiler bug rather than bad
// input (spec.md §7.2).
type InternalError struct {
	Message string
}

// Error implements the error interface.
func (e *InternalError) Error() string { return e.Message }

// Sink collects and renders diagnostics.
type Sink struct {
	out      io.Writer
	colour   bool
	width    uint
	log      *logrus.Logger
	errs     int
	warnings int
}

// NewSink returns a sink writing human-readable diagnostics to out,
// colourising them only when out is an actual terminal, and wrapping long
// messages to out's current terminal width (pkg/util/termio.WidthOf),
// falling back to termio.DefaultWidth when out isn't a terminal at all.
func NewSink(out *os.File, debug bool) *Sink {
	log := logrus.New()
	log.SetOutput(out)

	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}

	return &Sink{
		out:    out,
		colour: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
		width:  termio.WidthOf(int(out.Fd())),
		log:    log,
	}
}

// DisableColour turns off ANSI colouring regardless of what NewSink
// detected, for callers honouring an explicit --no-colour flag.
func (s *Sink) DisableColour() { s.colour = false }

// Errors returns the number of errors reported so far.
func (s *Sink) Errors() int { return s.errs }

// Warnings returns the number of warnings reported so far.
func (s *Sink) Warnings() int { return s.warnings }

// HasErrors reports whether any error (but not merely a warning) was
// reported.
func (s *Sink) HasErrors() bool { return s.errs > 0 }

// Warning reports a recoverable, non-fatal diagnostic.
func (s *Sink) Warning(span *source.Span, file *source.File, format string, args ...any) {
	s.warnings++
	s.render(SevWarning, span, file, fmt.Sprintf(format, args...))
}

// Error reports a recoverable user error: the caller must still synthesize
// a safe placeholder value (spec.md §7.1) and continue parsing so later
// errors in the same file are also found.
func (s *Sink) Error(span *source.Span, file *source.File, format string, args ...any) {
	s.errs++
	s.render(SevError, span, file, fmt.Sprintf(format, args...))
}

// Internal reports a compiler-bug diagnostic and panics with an
// *InternalError, unwinding compilation of the current translation unit
// entirely (spec.md §7.2: internal errors are never recovered from at the
// point they're detected).
func (s *Sink) Internal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.render(SevInternal, nil, nil, msg)

	panic(&InternalError{Message: msg})
}

// Debugf routes a low-level trace message through the logrus logger,
// shown only when the sink was created with debug set.
func (s *Sink) Debugf(format string, args ...any) {
	s.log.Debugf(format, args...)
}

func (s *Sink) render(sev Severity, span *source.Span, file *source.File, msg string) {
	label, colour := severityLabel(sev)

	prefix := label
	if s.colour {
		on := termio.NewAnsiEscape().FgColour(colour).Build()
		off := termio.ResetAnsiEscape().Build()
		prefix = on + label + off
	}

	loc := ""

	if span != nil && file != nil {
		line := file.FindFirstEnclosingLine(*span)
		loc = fmt.Sprintf("%s:%d: ", file.Filename(), line.Number())
	}

	head := fmt.Sprintf("%s%s: ", loc, label)
	wrapped := wrapMessage(msg, head, s.width)

	fmt.Fprintf(s.out, "%s%s: %s\n", loc, prefix, wrapped)
}

// wrapMessage word-wraps msg to fit within width columns once head's length
// is accounted for, joining continuation lines with a newline indented to
// align under the first line's text -- so a long diagnostic doesn't run
// off the edge of a narrow terminal. head is measured without ANSI colour
// codes, since those add bytes but no visible columns.
func wrapMessage(msg, head string, width uint) string {
	if width == 0 {
		return msg
	}

	indent := strings.Repeat(" ", len(head))
	avail := int(width) - len(head)

	if avail < 16 {
		avail = 16
	}

	words := strings.Fields(msg)
	if len(words) == 0 {
		return msg
	}

	var b strings.Builder

	lineLen := 0

	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > avail {
				b.WriteString("\n")
				b.WriteString(indent)
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}

		b.WriteString(w)
		lineLen += len(w)
	}

	return b.String()
}

func severityLabel(sev Severity) (string, uint) {
	switch sev {
	case SevWarning:
		return "warning", termio.TERM_YELLOW
	case SevInternal:
		return "internal error", termio.TERM_MAGENTA
	default:
		return "error", termio.TERM_RED
	}
}

// Package termio's colour escapes are trimmed to what diag.Sink actually
// emits: the three severities (warning/error/internal) each get one
// foreground colour, plus a reset. The teacher's full palette and its
// background/bold/underline variants have no caller in this module.
package termio

import "fmt"

// TERM_RED represents red, used for error diagnostics.
const TERM_RED = uint(1)

// TERM_YELLOW represents yellow, used for warning diagnostics.
const TERM_YELLOW = uint(3)

// TERM_MAGENTA represents magenta, used for internal-error diagnostics.
const TERM_MAGENTA = uint(5)

// AnsiEscape represents an ANSI escape code used for formatting text in a terminal.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape construct an empty escape
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs a reset term.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	col += 30
	// Construct string
	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}
	// Done
	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}

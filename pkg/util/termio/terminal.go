package termio

import "golang.org/x/term"

// DefaultWidth is used when the output is not a terminal (e.g. redirected to
// a file or pipe) and no width can be queried.
const DefaultWidth uint = 80

// WidthOf returns the current width of the terminal attached to fd, or
// DefaultWidth if fd is not a terminal. Exported (rather than the teacher's
// pair of functions hardcoded to os.Stderr/os.Stdout) so pkg/diag.NewSink
// can query the width of whichever *os.File it was actually constructed
// with.
func WidthOf(fd int) uint {
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}

	return uint(w)
}

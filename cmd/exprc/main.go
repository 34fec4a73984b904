// Command exprc is a small driver around this module's expression parser
// and code emitter: it lexes and parses a single C expression given on the
// command line, folding what it can and printing the pseudo-assembly
// emitted for the rest, alongside any diagnostics.
package main

import (
	"os"

	"github.com/gocc65/exprc/pkg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

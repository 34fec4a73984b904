package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gocc65/exprc/pkg/config"
	"github.com/gocc65/exprc/pkg/context"
	"github.com/gocc65/exprc/pkg/diag"
	"github.com/gocc65/exprc/pkg/lexer"
	"github.com/gocc65/exprc/pkg/parser"
	"github.com/gocc65/exprc/pkg/util/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "parse and fold a single C expression, printing any emitted code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		cfg := config.Default()
		cfg.AutoCDecl = !getFlag(cmd, "fastcall")

		sink := diag.NewSink(os.Stdout, getFlag(cmd, "verbose"))
		if getFlag(cmd, "no-colour") {
			sink.DisableColour()
		}

		ctx := context.New(cfg, sink)

		file := source.NewSourceFile("<expression>", []byte(args[0]))
		toks := lexer.New(file, sink).ScanAll()

		e := parser.New(ctx, toks).Expression0()

		if e.IsConst() {
			fmt.Printf("constant: %d\n", e.IVal)
		}

		for _, line := range ctx.Emit.Buffer().Lines() {
			fmt.Println("\t" + line.String())
		}

		if sink.HasErrors() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

// Package cmd wires this module's core (lexer, parser, emitter) into a
// small cobra CLI, grounded on the same rootCmd/subcommand/init() shape the
// teacher repo's own pkg/cmd uses.
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd is the base command when exprc is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "exprc",
	Short: "An expression parser and code emitter for a small C subset.",
	Long:  "exprc parses and folds C expressions and emits pseudo-assembly for a small 8-bit accumulator/register-pair target.",
}

// Execute adds all child commands to rootCmd and runs it. Called once by
// main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("no-colour", false, "disable coloured diagnostic output")
	rootCmd.PersistentFlags().Bool("fastcall", false, "treat unqualified functions as fastcall by default")
}

// getFlag reads an expected bool flag, exiting on programmer error (an
// unknown flag name).
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func configureLogging(cmd *cobra.Command) {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

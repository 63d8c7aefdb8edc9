package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rusp/internal"
)

var (
	runExpression bool
	runAST        bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a rusp script",
	Long:  `Evaluate a script from a file, or inline source with -e.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		console := internal.StdConsole()

		absPath, source, err := readSource(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if runAST {
			if !internal.PrintAST(source, console.Stdout, console.Stderr) {
				os.Exit(1)
			}
			return
		}
		if !internal.RunSource(absPath, source, console) {
			os.Exit(1)
		}
	},
}

func readSource(arg string) (absPath, source string, err error) {
	if runExpression {
		return "<cmdline>", arg, nil
	}
	absPath, err = filepath.Abs(arg)
	if err != nil {
		return "", "", err
	}
	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", "", err
	}
	return absPath, string(b), nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret the argument as inline source instead of a file path")
	runCmd.Flags().BoolVar(&runAST, "ast", false,
		"Print the parsed expression tree instead of evaluating")
}

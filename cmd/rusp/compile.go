package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rusp/internal"
)

var compileOut string

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a rusp script to a JVM class file",
	Long:  `Compile the body of 'fn main' to a Main.class runnable with 'java Main'. Only a subset of the language is supported.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		console := internal.StdConsole()

		absPath, err := filepath.Abs(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		b, err := os.ReadFile(absPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if !internal.CompileSource(absPath, string(b), compileOut, console) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "Main.class",
		"Path of the class file to write")
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"rusp/internal"
)

const replPrompt = "rusp> "

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Run: func(cmd *cobra.Command, args []string) {
		runRepl()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl reads one input per line and evaluates it against a persistent
// session; non-Unit results are echoed back.
func runRepl() {
	rl, err := readline.New(replPrompt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer rl.Close()

	session := internal.NewSession(internal.StdConsole())

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, err)
			}
			return
		}
		if line == "" {
			continue
		}

		out, ok := session.Eval(line)
		if ok && out != "" {
			fmt.Println(out)
		}
	}
}

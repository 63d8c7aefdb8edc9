package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootDebug bool

var rootCmd = &cobra.Command{
	Use:   "rusp",
	Short: "The rusp programming language",
	Long:  `Interpreter and bytecode compiler for the rusp language. Without a subcommand an interactive session is started.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		runRepl()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false,
		"Enable debug logging of interpreter phases")
}

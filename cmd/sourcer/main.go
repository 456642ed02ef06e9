package main

import (
	"os"

	"github.com/Theworldzyours/TRADE-SOURCER/cmd/sourcer/commands"
)

// main is the entry point for the sourcer CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/rfarias/garimpo/cmd/garimpo/commands"
)

// main is the entry point for the garimpo CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

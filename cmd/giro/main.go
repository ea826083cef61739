package main

import (
	"os"

	"github.com/VerticalAgents/mischa-os-sub004/cmd/giro/commands"
)

// main is the entry point for the giro CLI: go run ./cmd/giro [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

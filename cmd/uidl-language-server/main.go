package main

import (
	"os"

	"bennypowers.dev/uidl/internal/log"
	"bennypowers.dev/uidl/lsp"
)

func main() {
	server := lsp.NewServer()

	// Run with stdio transport (for VSCode and other editors)
	if err := server.RunStdio(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}

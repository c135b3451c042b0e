// Package main is the entry point for the rsa-toolkit-cli application.
// It registers the textbook RSA, attack and benchmark sub-commands and executes the command-line interface.
package main

import (
	"log"
	"os"

	commands "github.com/MGTheTrain/rsa-toolkit/cmd/rsa-toolkit-cli/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}

package main

import (
	"os"

	"github.com/cleared-dev/bilanz/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

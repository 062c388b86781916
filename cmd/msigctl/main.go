package main

import (
	"os"

	"msigctl/cmd/msigctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"udwallet/cmd/udwallet/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

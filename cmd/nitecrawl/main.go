package main

import (
	"os"

	"github.com/jwebster45206/nitecrawlers/cmd/nitecrawl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

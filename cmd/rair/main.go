package main

import (
	"os"

	"github.com/msto63/rair/cmd/rair/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

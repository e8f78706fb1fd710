package main

import (
	"os"

	"github.com/induplan/pathopt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

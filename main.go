package main

import (
	"os"

	"github.com/spigell/cvwizard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/csl-lang/csl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

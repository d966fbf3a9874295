// Package main provides the ugen-stubgen command-line tool.
package main

import (
	"os"

	"github.com/jleen/supriya/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the filestats command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/filestats/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

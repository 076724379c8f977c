// Package main is the entry point for the qref CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/qref/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

// Package main is the entry point for the shadecost CLI.
package main

import (
	"os"

	"shadecost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

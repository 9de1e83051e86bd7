// Package main is the entry point for the parking-cost CLI.
package main

import (
	"os"

	"parking-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

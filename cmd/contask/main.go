// Package main provides the entry point for the contask CLI.
package main

import (
	"os"

	"github.com/contask/contask/cmd/contask/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

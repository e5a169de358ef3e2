// Package main provides the entry point for the radreport CLI.
package main

import (
	"os"

	"github.com/queryshv/rad-report/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

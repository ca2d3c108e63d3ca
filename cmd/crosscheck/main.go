// Package main provides the entry point for the crosscheck CLI tool.
package main

import (
	"github.com/crosscheck-ai/crosscheck/cmd/crosscheck/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}

// Package main is the entry point for the Ember CLI.
package main

import (
	"os"

	"github.com/emberwallet/ember/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}

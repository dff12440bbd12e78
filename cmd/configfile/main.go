// Package main provides the entry point for the configfile CLI.
package main

import (
	"fmt"
	"os"

	"github.com/wjaoss/configfile/cmd/configfile/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

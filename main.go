// ABOUTME: Entry point for the epay CLI
// ABOUTME: Terminal storefront client for the Epay commerce API

package main

import (
	"fmt"
	"os"

	"github.com/sixthson6/epay-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

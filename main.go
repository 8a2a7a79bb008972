// ABOUTME: Entry point for the promptdeck CLI
// ABOUTME: Terminal client for browsing and moderating a prompt library

package main

import (
	"fmt"
	"os"

	"github.com/promptlib/promptdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

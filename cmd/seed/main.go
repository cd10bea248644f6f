// Package main is the dataset seeding command. It loads quotes and authors
// from a local directory or a remote base URL into the SQLite database.
package main

import (
	"context"
	"fmt"
	"os"
)

// Version is injected at build time.
var Version = "dev"

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

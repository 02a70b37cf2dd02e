// Command streamdemo runs a stream-driven counter in the terminal and
// renders headless snapshots of it.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/streamwidget/cmd/streamdemo/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

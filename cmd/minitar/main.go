// Command minitar creates, appends to, lists, updates, and extracts ustar
// archives.
//
//	minitar -c|-a|-t|-u|-x -f ARCHIVE [FILE...]
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "minitar: %v\n", err)
		os.Exit(1)
	}
}

// Command tabellonectl evaluates scoring rules locally and drives a running
// tabellone service.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tabellonectl: %v\n", err)
		os.Exit(1)
	}
}

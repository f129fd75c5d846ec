// Package main implements guidectl, a CLI for inspecting the assistant guide
// registry locally or on a running assistantd.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

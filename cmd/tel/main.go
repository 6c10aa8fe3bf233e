// Package main is the entry point for the tel telescope control client.
package main

import (
	"os"

	"github.com/stargrove/telctl/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

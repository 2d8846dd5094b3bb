// Package main is the single-binary entrypoint for the Senior Strength
// progress engine.
package main

import "github.com/phildaponte/senior-strength/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

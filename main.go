// Package main is the entry point for the mender CLI.
package main

import "mender.dev/pkg/mender/cmd"

func main() {
	cmd.Execute()
}

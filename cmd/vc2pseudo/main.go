// File: main.go
// Title: vc2pseudo Entry Point
// Description: Runs the vc2pseudo command line tool and exits with the
//              status derived from the error code of a failed command.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial entry point

package main

import (
	"os"

	"github.com/msto63/vc2pseudo/cmd/vc2pseudo/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

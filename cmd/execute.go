// Package cmd contains the biomentor command line entry points.
//
// Following the pattern used by kubectl, hugo, and other standard Go
// CLI tools, all application logic lives here and main.go stays a
// minimal entry point.
package cmd

import (
	"fmt"
	"os"
)

// Version information (injected at build time via ldflags).
var (
	AppVersion = "0.1.0"
	BuildTime  = "unknown"
	GitCommit  = "unknown"
)

// Execute is the main entry point for the biomentor CLI.
func Execute() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version", "--version", "-v":
			printVersionInfo()
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "serve":
			return runServe()
		default:
			printHelp()
			return fmt.Errorf("unknown command %q", os.Args[1])
		}
	}

	// Serving is the default behavior.
	return runServe()
}

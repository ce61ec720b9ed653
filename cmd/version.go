package cmd

import "fmt"

// printVersionInfo displays version information.
func printVersionInfo() {
	fmt.Printf("BioMentor v%s\n", AppVersion)
	fmt.Printf("Build: %s\n", BuildTime)
	fmt.Printf("Commit: %s\n", GitCommit)
}

// printHelp displays command usage.
func printHelp() {
	fmt.Print(`BioMentor AI — biotechnology tutoring backend

Usage:
  biomentor [serve] [addr]     Start the HTTP API server (default)
  biomentor serve --addr :8000 Start with an explicit listen address
  biomentor version            Show version information
  biomentor help               Show this help

Environment:
  GEMINI_API_KEY               Gemini API key (omit for demo mode)
  DATABASE_URL                 PostgreSQL URL for vector retrieval (optional)
  BIOMENTOR_LOG_LEVEL          debug|info|warn|error (default: info)
`)
}

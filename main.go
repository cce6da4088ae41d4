// =============================================================================
// Ordemtex - Main Entry Point
// =============================================================================
//
// This is the entry point for the Ordemtex CLI. It initializes the Cobra
// framework and delegates command execution to the cmd package.
//
// USAGE:
//   ordemtex import <file>    - Parse an export and report validation results
//   ordemtex report <file>... - Compute dashboard aggregates
//   ordemtex timeline <file>  - Print sector bar geometry
//   ordemtex version          - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : core business logic (not for external import)
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/jmtavares/ordemtex/cmd"
)

func main() {
	cmd.Execute()
}

// Package tui drives the interactive setup flow and decides when it is safe
// to run one.
package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode.
type Mode int

const (
	// ModeNonInteractive is used for CI pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// DetectMode determines whether interactive prompts may be shown.
//
// Returns ModeNonInteractive if:
//   - stdin or stdout is not a terminal (piped input, CI)
//   - DICTHUB_NON_INTERACTIVE=1 is set
//   - CI is set (common CI convention)
//   - NO_COLOR is set (accessibility/automation indicator)
func DetectMode() Mode {
	if os.Getenv("DICTHUB_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if os.Getenv("CI") != "" {
		return ModeNonInteractive
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ModeNonInteractive
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeNonInteractive
	}

	return ModeInteractive
}

// IsInteractive returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

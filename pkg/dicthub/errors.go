package dicthub

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := runner.Run(ctx, cfg)
//	if errors.Is(err, dicthub.ErrInputNotFound) {
//	    // Report the missing spreadsheet without a stack of wrapping
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInputNotFound indicates the input spreadsheet or MCE file was not found.
	ErrInputNotFound = errors.New("input file not found")

	// ErrApprovalDenied indicates the user denied approval for emission.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrEmitFailed indicates the metadata service rejected a request.
	ErrEmitFailed = errors.New("emit failed")

	// ErrConnectionFailed indicates the metadata service or database was unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported auth method")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInputNotFound):
		return ExitInputMissing
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrEmitFailed):
		return ExitGeneralError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	}

	// Cobra reports CLI misuse as plain errors; classify by message
	errStr := err.Error()
	if strings.Contains(errStr, "unknown flag") ||
		strings.Contains(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "unknown command") ||
		strings.Contains(errStr, "arg(s)") ||
		strings.Contains(errStr, "required flag") ||
		strings.Contains(errStr, "missing required argument") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

package dicthub

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed, output written or emitted
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to reach the metadata service or database
	ExitApprovalDenied  = 12 // User denied emission approval
	ExitInputMissing    = 14 // Input spreadsheet or MCE file not found
)

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultServerEndpoint is the DataHub GMS endpoint used when none is configured.
	DefaultServerEndpoint = "http://localhost:8080"

	// DefaultActor is the corpuser URN stamped into ownership and audit aspects
	// when no actor is configured.
	DefaultActor = "urn:li:corpuser:datahub"

	// DefaultEnvironment is the fabric tag embedded in dataset URNs.
	DefaultEnvironment = "PROD"

	// DefaultGlossarySheet is the worksheet read by the simple glossary run.
	DefaultGlossarySheet = "GlossaryTerms"

	// DefaultEmitRate caps batch emission at this many requests per second.
	// A politeness limit, not a retry policy: failed requests are never retried.
	DefaultEmitRate = 10

	// MaxResponsePreviewLength is the maximum number of characters of a
	// metadata-service error response included in error messages.
	MaxResponsePreviewLength = 200
)

package dicthub

import "context"

// Approver handles user interaction for approval workflows,
// particularly before submitting records to a live metadata service.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to confirm the target endpoint
type Approver interface {
	// RequestApproval prompts for confirmation before emitting records.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - endpoint: Metadata service endpoint that will receive the records
	//   - count: Number of records about to be emitted
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, endpoint string, count int) (bool, error)
}

package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// ForcedApprover implements the Approver interface for non-interactive runs.
// It displays a countdown and approves automatically when it elapses, used
// when the --force flag is provided. Ctrl+C during the countdown cancels
// through context.
type ForcedApprover struct {
	out   io.Writer
	sleep func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover() dicthub.Approver {
	return &ForcedApprover{out: os.Stderr, sleep: time.Sleep}
}

// RequestApproval counts down and then approves.
func (a *ForcedApprover) RequestApproval(ctx context.Context, endpoint string, count int) (bool, error) {
	fmt.Fprintf(a.out, "\n--force: submitting %d metadata records to %s without confirmation\n", count, endpoint)

	countdownSeconds := int(dicthub.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.out, "\rEmitting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleep(1 * time.Second)
		}
	}

	fmt.Fprintf(a.out, "\rProceeding with emission...                              \n")
	return true, nil
}

var _ dicthub.Approver = (*ForcedApprover)(nil)

// Package ui implements the approval prompts shown before records are
// written to a live metadata service.
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkravets/dicthub/pkg/dicthub"
)

// InteractiveApprover implements the Approver interface for console-based
// confirmation. It prompts the user to type "yes" before records are
// submitted to a live service.
type InteractiveApprover struct {
	in  io.Reader
	out io.Writer
}

// NewInteractiveApprover creates an InteractiveApprover reading stdin and
// prompting on stderr.
func NewInteractiveApprover() dicthub.Approver {
	return &InteractiveApprover{in: os.Stdin, out: os.Stderr}
}

// RequestApproval prompts the user to confirm the emission.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, endpoint string, count int) (bool, error) {
	fmt.Fprintf(a.out, "\nAbout to submit %d metadata records to %s\n", count, endpoint)
	fmt.Fprint(a.out, "Type 'yes' to continue: ")

	// Read user input with context cancellation support
	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.in)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if strings.EqualFold(input, "yes") {
			fmt.Fprintln(a.out, "Confirmed. Emitting records...")
			return true, nil
		}
		fmt.Fprintf(a.out, "Input %q is not 'yes'. Emission cancelled.\n", input)
		return false, nil
	}
}

var _ dicthub.Approver = (*InteractiveApprover)(nil)

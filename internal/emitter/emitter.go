// Package emitter posts metadata records to the metadata service over REST.
//
// Emission is synchronous and never retried. A batch run paces itself with a
// rate limiter so a large record file does not hammer the service, but a
// failed request aborts the batch immediately; partially emitted batches are
// safe because every record is an UPSERT.
package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

// Header values required by the RestLi ingestion endpoints.
const (
	restliProtocolHeader  = "X-RestLi-Protocol-Version"
	restliProtocolVersion = "2.0.0"
)

// Emitter posts snapshots and proposals to one metadata service endpoint.
type Emitter struct {
	endpoint string
	token    string
	client   *http.Client
	logger   dicthub.Logger
}

// New creates an Emitter for the given endpoint. A trailing slash on the
// endpoint is tolerated. Token may be empty for unauthenticated services.
func New(endpoint, token string, logger dicthub.Logger) *Emitter {
	return &Emitter{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// snapshotClassName maps the Avro-generated snapshot class carried in record
// files to the class name the entities endpoint expects.
func snapshotClassName(class string) string {
	return strings.Replace(class, "pegasus2avro.", "", 1)
}

// EmitSnapshot posts one Metadata Change Event to /entities?action=ingest.
func (e *Emitter) EmitSnapshot(ctx context.Context, event mce.Event) error {
	payload := map[string]interface{}{
		"entity": map[string]interface{}{
			"value": map[string]interface{}{
				snapshotClassName(event.ProposedSnapshot.Class): event.ProposedSnapshot.Body,
			},
		},
	}
	return e.post(ctx, "/entities?action=ingest", payload, event.ProposedSnapshot.Body.URN)
}

// EmitProposal posts one Metadata Change Proposal to
// /aspects?action=ingestProposal.
func (e *Emitter) EmitProposal(ctx context.Context, proposal mce.Proposal) error {
	payload := map[string]interface{}{"proposal": proposal}
	return e.post(ctx, "/aspects?action=ingestProposal", payload, proposal.EntityURN)
}

// BatchResult reports how far a batch emission got.
type BatchResult struct {
	Emitted int
	Total   int
}

// EmitBatch posts every event in order, pacing requests at requestsPerSecond.
// The first failure aborts the batch; the result reports how many records
// made it through.
func (e *Emitter) EmitBatch(ctx context.Context, events []mce.Event, requestsPerSecond int) (BatchResult, error) {
	if requestsPerSecond <= 0 {
		requestsPerSecond = dicthub.DefaultEmitRate
	}
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), 1)

	result := BatchResult{Total: len(events)}
	for i, event := range events {
		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}
		if err := e.EmitSnapshot(ctx, event); err != nil {
			return result, fmt.Errorf("record %d of %d: %w", i+1, len(events), err)
		}
		result.Emitted++
		e.logger.Verbose("Emitted %d/%d: %s", result.Emitted, result.Total, event.ProposedSnapshot.Body.URN)
	}
	return result, nil
}

func (e *Emitter) post(ctx context.Context, path string, payload interface{}, urn string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize request for %s: %w", urn, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliProtocolHeader, restliProtocolVersion)
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", dicthub.ErrConnectionFailed, e.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d for %s: %s",
			dicthub.ErrEmitFailed, path, resp.StatusCode, urn, responsePreview(resp))
	}
	return nil
}

// responsePreview reads a bounded prefix of the response body so error
// messages stay one screen long no matter what the service sends back.
func responsePreview(resp *http.Response) string {
	buf, _ := io.ReadAll(io.LimitReader(resp.Body, dicthub.MaxResponsePreviewLength))
	preview := strings.TrimSpace(string(buf))
	if preview == "" {
		return "(empty response body)"
	}
	return preview
}

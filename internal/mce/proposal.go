package mce

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ChangeTypeUpsert is the only change type the generators produce.
const ChangeTypeUpsert = "UPSERT"

// Proposal is a Metadata Change Proposal: a single aspect targeted at a
// single entity, submitted to the service's ingestProposal action.
type Proposal struct {
	EntityType     string          `json:"entityType"`
	EntityURN      string          `json:"entityUrn"`
	ChangeType     string          `json:"changeType"`
	AspectName     string          `json:"aspectName"`
	Aspect         GenericAspect   `json:"aspect"`
	SystemMetadata *SystemMetadata `json:"systemMetadata,omitempty"`
}

// GenericAspect carries the aspect payload as an embedded JSON string, the
// encoding the RestLi endpoint expects.
type GenericAspect struct {
	Value       string `json:"value"`
	ContentType string `json:"contentType"`
}

// SystemMetadata lets a run tag its writes so they can be correlated in the
// catalog afterwards.
type SystemMetadata struct {
	RunID        string `json:"runId,omitempty"`
	LastObserved int64  `json:"lastObserved,omitempty"`
}

// NewRunID returns a fresh identifier for tagging one emission run.
func NewRunID() string {
	return fmt.Sprintf("dicthub-%s", uuid.NewString())
}

// NewProposal builds an UPSERT proposal for one aspect of one entity.
// The aspect payload is serialized immediately; a proposal is immutable
// once constructed.
func NewProposal(entityType, entityURN, aspectName string, aspect interface{}) (Proposal, error) {
	value, err := json.Marshal(aspect)
	if err != nil {
		return Proposal{}, fmt.Errorf("serialize %s aspect for %s: %w", aspectName, entityURN, err)
	}
	return Proposal{
		EntityType: entityType,
		EntityURN:  entityURN,
		ChangeType: ChangeTypeUpsert,
		AspectName: aspectName,
		Aspect: GenericAspect{
			Value:       string(value),
			ContentType: "application/json",
		},
	}, nil
}

// WithRunID returns a copy of the proposal tagged with the given run id.
func (p Proposal) WithRunID(runID string, observedAt int64) Proposal {
	p.SystemMetadata = &SystemMetadata{RunID: runID, LastObserved: observedAt}
	return p
}

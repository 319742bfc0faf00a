// Package mce defines the Metadata Change Event and Metadata Change Proposal
// wire formats accepted by the DataHub metadata service.
//
// The JSON shapes here are a contract with an external system. Snapshots and
// aspects are encoded as single-key objects keyed by the full pegasus2avro
// class name:
//
//	{"com.linkedin.pegasus2avro.glossary.GlossaryTermInfo": {"definition": "..."}}
//
// Records are assembled in memory and serialized exactly once at the end of a
// run; nothing in this package mutates a record after construction.
package mce

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot class names recognized by the catalog.
const (
	ClassGlossaryTermSnapshot = "com.linkedin.pegasus2avro.metadata.snapshot.GlossaryTermSnapshot"
	ClassGlossaryNodeSnapshot = "com.linkedin.pegasus2avro.metadata.snapshot.GlossaryNodeSnapshot"
	ClassDatasetSnapshot      = "com.linkedin.pegasus2avro.metadata.snapshot.DatasetSnapshot"
)

// Aspect class names recognized by the catalog.
const (
	ClassGlossaryTermInfo       = "com.linkedin.pegasus2avro.glossary.GlossaryTermInfo"
	ClassGlossaryNodeInfo       = "com.linkedin.pegasus2avro.glossary.GlossaryNodeInfo"
	ClassOwnership              = "com.linkedin.pegasus2avro.common.Ownership"
	ClassInstitutionalMemory    = "com.linkedin.pegasus2avro.common.InstitutionalMemory"
	ClassGlobalTags             = "com.linkedin.pegasus2avro.common.GlobalTags"
	ClassEditableSchemaMetadata = "com.linkedin.pegasus2avro.schema.EditableSchemaMetadata"
	ClassStringType             = "com.linkedin.pegasus2avro.schema.StringType"
)

// Event is one Metadata Change Event: a proposed snapshot of a single
// entity's metadata. AuditHeader is always serialized as null.
//
// ProposedDelta toggles presence of the legacy "proposedDelta": null member.
// The glossary generator emits it, the data-dictionary generator does not;
// both shapes are accepted by the catalog but preserved here verbatim.
type Event struct {
	AuditHeader      *struct{}    `json:"auditHeader"`
	ProposedSnapshot Snapshot     `json:"proposedSnapshot"`
	ProposedDelta    ExplicitNull `json:"proposedDelta,omitempty"`
}

// ExplicitNull marshals as a JSON null when true and is omitted (via
// omitempty) when false.
type ExplicitNull bool

// MarshalJSON implements json.Marshaler.
func (ExplicitNull) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// UnmarshalJSON implements json.Unmarshaler. Any present value, including
// null, records presence.
func (n *ExplicitNull) UnmarshalJSON([]byte) error {
	*n = true
	return nil
}

// Snapshot is a single-key envelope: the snapshot class name mapped to the
// entity body.
type Snapshot struct {
	Class string
	Body  SnapshotBody
}

// SnapshotBody carries the entity URN and its proposed aspects, in order.
type SnapshotBody struct {
	URN     string   `json:"urn"`
	Aspects []Aspect `json:"aspects"`
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]SnapshotBody{s.Class: s.Body})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var m map[string]SnapshotBody
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("snapshot envelope must have exactly one class key, got %d", len(m))
	}
	for class, body := range m {
		s.Class = class
		s.Body = body
	}
	return nil
}

// Aspect is a single-key envelope: the aspect class name mapped to its
// payload. When decoded from JSON the payload is retained as raw bytes.
type Aspect struct {
	Class string
	Value interface{}
}

// MarshalJSON implements json.Marshaler.
func (a Aspect) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{a.Class: a.Value})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Aspect) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("aspect envelope must have exactly one class key, got %d", len(m))
	}
	for class, value := range m {
		a.Class = class
		a.Value = value
	}
	return nil
}

// NewEvent wraps a snapshot in the MCE envelope without the legacy
// proposedDelta member.
func NewEvent(class string, body SnapshotBody) Event {
	return Event{ProposedSnapshot: Snapshot{Class: class, Body: body}}
}

// NewEventWithDelta wraps a snapshot in the MCE envelope including
// "proposedDelta": null.
func NewEventWithDelta(class string, body SnapshotBody) Event {
	e := NewEvent(class, body)
	e.ProposedDelta = true
	return e
}

// WriteFile serializes the output collection once, pretty-printed with
// two-space indentation. The file is only created after every record has
// been assembled, so a failed run never leaves partial output behind.
func WriteFile(path string, events []Event) error {
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %d records: %w", len(events), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a previously generated output collection.
func ReadFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return events, nil
}

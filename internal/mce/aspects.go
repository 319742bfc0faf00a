package mce

import "time"

// AuditStamp records when and by whom a piece of metadata was written.
type AuditStamp struct {
	Time  int64  `json:"time"`
	Actor string `json:"actor"`
}

// StampNow returns an audit stamp for the given actor at the current time,
// in epoch milliseconds.
func StampNow(actor string) AuditStamp {
	return AuditStamp{Time: time.Now().UnixMilli(), Actor: actor}
}

// GlossaryTermInfo is the definition aspect of a glossary term.
//
// TermSource is a pointer because the glossary generator includes the member
// even when its value is empty, while the data-dictionary generator omits it
// entirely.
type GlossaryTermInfo struct {
	Name       string  `json:"name,omitempty"`
	Definition string  `json:"definition"`
	TermSource *string `json:"termSource,omitempty"`
	ParentNode string  `json:"parentNode,omitempty"`
}

// GlossaryNodeInfo names a glossary node (category).
type GlossaryNodeInfo struct {
	Name string `json:"name"`
}

// Ownership attaches owners and a modification stamp to an entity.
type Ownership struct {
	Owners       []Owner    `json:"owners"`
	LastModified AuditStamp `json:"lastModified"`
}

// Owner is a single ownership association.
type Owner struct {
	Owner string `json:"owner"`
	Type  string `json:"type"`
}

// OwnerTypeDataOwner is the ownership type stamped on generated terms.
const OwnerTypeDataOwner = "DATAOWNER"

// InstitutionalMemory carries reference links for an entity.
type InstitutionalMemory struct {
	Elements []Link `json:"elements"`
}

// Link is one reference link with a human-readable description.
type Link struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// GlobalTags carries tag associations for an entity.
type GlobalTags struct {
	Tags []TagAssociation `json:"tags"`
}

// TagAssociation references a tag entity by URN.
type TagAssociation struct {
	Tag string `json:"tag"`
}

// EditableSchemaMetadata documents a dataset's fields in a single aspect.
// All fields of one dataset accumulate into one record; the catalog replaces
// the whole aspect on ingestion.
type EditableSchemaMetadata struct {
	EditableSchemaFieldInfo []EditableSchemaFieldInfo `json:"editableSchemaFieldInfo"`
	Created                 AuditStamp                `json:"created"`
}

// EditableSchemaFieldInfo documents a single field of a dataset.
type EditableSchemaFieldInfo struct {
	FieldPath     string         `json:"fieldPath"`
	Description   string         `json:"description,omitempty"`
	GlossaryTerms *GlossaryTerms `json:"glossaryTerms,omitempty"`
}

// GlossaryTerms associates glossary terms with a field.
type GlossaryTerms struct {
	Terms []TermAssociation `json:"terms"`
}

// TermAssociation references a glossary term by URN.
type TermAssociation struct {
	URN string `json:"urn"`
}

// SchemaMetadata is the technical schema aspect for a dataset entity.
type SchemaMetadata struct {
	SchemaName     string         `json:"schemaName"`
	Platform       string         `json:"platform"`
	Version        int64          `json:"version"`
	Hash           string         `json:"hash"`
	PlatformSchema PlatformSchema `json:"platformSchema"`
	Created        AuditStamp     `json:"created"`
	LastModified   AuditStamp     `json:"lastModified"`
	Fields         []SchemaField  `json:"fields"`
}

// PlatformSchema is intentionally empty: the catalog accepts an empty object
// when no platform-native DDL is available.
type PlatformSchema struct{}

// SchemaField describes one column of a dataset's technical schema.
type SchemaField struct {
	FieldPath      string    `json:"fieldPath"`
	Type           FieldType `json:"type"`
	NativeDataType string    `json:"nativeDataType"`
	Description    string    `json:"description,omitempty"`
}

// FieldType wraps the field's logical type in its class envelope:
// {"type": {"com.linkedin.pegasus2avro.schema.StringType": {}}}.
type FieldType struct {
	Type Aspect `json:"type"`
}

// StringFieldType returns the catalog's string logical type. The generators
// do not infer logical types from native ones; everything is documented as a
// string, matching what the catalog renders for editable documentation.
func StringFieldType() FieldType {
	return FieldType{Type: Aspect{Class: ClassStringType, Value: struct{}{}}}
}

// Package dictionary assembles a full metadata description of a data
// dictionary worksheet: one glossary root node, one deduplicated glossary
// term per attribute, and one field-documentation record per destination
// dataset.
package dictionary

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
	"github.com/mkravets/dicthub/internal/urn"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

// Worksheet columns recognized by the dictionary run. ColSynonym spells
// "Syonym" because that is the header the source spreadsheets carry.
const (
	ColAttributeName = "Attribute/Column Name"
	ColFullName      = "Full Name"
	ColDefinition    = "Definition"
	ColSynonym       = "Syonym"
	ColListOfValues  = "List of Values"
	ColReferenceLink = "Reference Link"
	ColJiraReference = "Jira Reference#"
	ColOriginating   = "Originating System"
	ColTableName     = "physical dictionary table_name"
)

// Builder turns data-dictionary rows into a complete event collection.
// All run state (the dedup set, the dataset groups, the output collection)
// lives in the single Run call; a Builder carries only configuration.
type Builder struct {
	Config *config.ProjectConfig

	// Now supplies audit timestamps; overridable in tests.
	Now func() time.Time

	logger dicthub.Logger
}

// NewBuilder creates a Builder for the given project configuration.
func NewBuilder(cfg *config.ProjectConfig, logger dicthub.Logger) *Builder {
	return &Builder{Config: cfg, Now: time.Now, logger: logger}
}

// Result is the outcome of one dictionary run.
type Result struct {
	Events   []mce.Event
	Terms    int
	Datasets int
	Skipped  int
}

// datasetGroup accumulates field documentation for one dataset URN,
// preserving input row order.
type datasetGroup struct {
	urn    string
	fields []mce.EditableSchemaFieldInfo
}

// Run walks the table once. The glossary root node is always the first
// record, even when the table has no usable rows. Exactly one term record
// is emitted per distinct term URN regardless of how many rows repeat the
// attribute name. Field documentation is grouped by dataset URN in
// first-seen order.
func (b *Builder) Run(table *sheet.Table) Result {
	result := Result{Events: []mce.Event{b.nodeEvent()}}

	seenTerms := make(map[string]struct{})
	groupIndex := make(map[string]int)
	var groups []datasetGroup

	for _, row := range table.Rows {
		if !row.NotNull(ColAttributeName) {
			b.logger.Verbose("Skipping row %d: missing %q", row.Number, ColAttributeName)
			result.Skipped++
			continue
		}

		termURN := urn.GlossaryTerm(row.Cell(ColAttributeName).String())
		if _, seen := seenTerms[termURN]; !seen {
			result.Events = append(result.Events, b.termEvent(row, termURN))
			seenTerms[termURN] = struct{}{}
			result.Terms++
		}

		if !row.NotNull(ColTableName) {
			continue
		}
		tableName := row.Cell(ColTableName).String()

		for _, ds := range b.Config.Datastores {
			if !row.NotNull(ds.Column) {
				continue
			}
			datasetURN := urn.Dataset(ds.Platform, urn.ExpandPattern(ds.URNPattern, tableName), b.Config.Environment)
			idx, ok := groupIndex[datasetURN]
			if !ok {
				idx = len(groups)
				groupIndex[datasetURN] = idx
				groups = append(groups, datasetGroup{urn: datasetURN})
			}
			groups[idx].fields = append(groups[idx].fields, mce.EditableSchemaFieldInfo{
				FieldPath:     row.Cell(ds.Column).String(),
				GlossaryTerms: &mce.GlossaryTerms{Terms: []mce.TermAssociation{{URN: termURN}}},
			})
		}
	}

	for _, group := range groups {
		result.Events = append(result.Events, b.datasetEvent(group))
		result.Datasets++
	}
	return result
}

// nodeEvent is the glossary root node record, independent of row data.
func (b *Builder) nodeEvent() mce.Event {
	return mce.NewEvent(mce.ClassGlossaryNodeSnapshot, mce.SnapshotBody{
		URN: urn.GlossaryNode(b.Config.Glossary),
		Aspects: []mce.Aspect{
			{Class: mce.ClassGlossaryNodeInfo, Value: mce.GlossaryNodeInfo{Name: b.Config.Glossary}},
		},
	})
}

// termEvent assembles the rich glossary term for one dictionary row:
// a definition built from the optional Definition/Synonyms/Accepted-Values
// columns, reference links, and a provenance tag, each section included
// only when its source column is non-null.
func (b *Builder) termEvent(row sheet.Row, termURN string) mce.Event {
	var definitionParts []string
	if row.NotNull(ColDefinition) {
		definitionParts = append(definitionParts, row.Cell(ColDefinition).String())
	}
	if row.NotNull(ColSynonym) {
		definitionParts = append(definitionParts, fmt.Sprintf("\n\n**Synonyms:** %s", row.Cell(ColSynonym).String()))
	}
	if row.NotNull(ColListOfValues) {
		definitionParts = append(definitionParts, fmt.Sprintf("\n\n**Accepted Values:**\n%s", row.Cell(ColListOfValues).String()))
	}

	var links []mce.Link
	if row.NotNull(ColReferenceLink) {
		links = append(links, mce.Link{URL: row.Cell(ColReferenceLink).String(), Description: "Reference Link"})
	}
	if row.NotNull(ColJiraReference) {
		links = append(links, mce.Link{
			URL:         b.Config.JiraURLPrefix + row.Cell(ColJiraReference).String(),
			Description: "Jira Ticket",
		})
	}

	var tags []mce.TagAssociation
	if row.NotNull(ColOriginating) {
		tags = append(tags, mce.TagAssociation{
			Tag: urn.Tag("Source:" + row.Cell(ColOriginating).String()),
		})
	}

	aspects := []mce.Aspect{
		{Class: mce.ClassGlossaryTermInfo, Value: mce.GlossaryTermInfo{
			Name:       row.Cell(ColFullName).CoercedString(),
			Definition: strings.Join(definitionParts, "\n"),
			ParentNode: urn.GlossaryNode(b.Config.Glossary),
		}},
	}
	if len(links) > 0 {
		aspects = append(aspects, mce.Aspect{
			Class: mce.ClassInstitutionalMemory,
			Value: mce.InstitutionalMemory{Elements: links},
		})
	}
	if len(tags) > 0 {
		aspects = append(aspects, mce.Aspect{
			Class: mce.ClassGlobalTags,
			Value: mce.GlobalTags{Tags: tags},
		})
	}

	return mce.NewEvent(mce.ClassGlossaryTermSnapshot, mce.SnapshotBody{
		URN:     termURN,
		Aspects: aspects,
	})
}

// datasetEvent wraps one dataset's accumulated field documentation in a
// single EditableSchemaMetadata aspect.
func (b *Builder) datasetEvent(group datasetGroup) mce.Event {
	return mce.NewEvent(mce.ClassDatasetSnapshot, mce.SnapshotBody{
		URN: group.urn,
		Aspects: []mce.Aspect{
			{Class: mce.ClassEditableSchemaMetadata, Value: mce.EditableSchemaMetadata{
				EditableSchemaFieldInfo: group.fields,
				Created:                 mce.AuditStamp{Time: b.Now().UnixMilli(), Actor: b.Config.Actor},
			}},
		},
	})
}

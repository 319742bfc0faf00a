// Package glossary assembles glossary-term records from a terms worksheet.
//
// This is the simple generation path: one record per valid row, no
// deduplication (the data-dictionary path in internal/dictionary is the
// deduplicating one). Rows missing the term name are skipped with a notice
// and the run continues.
package glossary

import (
	"time"

	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
	"github.com/mkravets/dicthub/internal/urn"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

// Worksheet columns recognized by the glossary run. TermName and Definition
// are expected; TermSource and ParentTerm are optional.
const (
	ColTermName   = "TermName"
	ColDefinition = "Definition"
	ColTermSource = "TermSource"
	ColParentTerm = "ParentTerm"
)

// Builder turns worksheet rows into glossary-term events. It is a pure
// transformation of its inputs: the same table always produces the same
// records (up to audit timestamps).
type Builder struct {
	// Actor is the corpuser URN stamped into ownership aspects.
	Actor string

	// Now supplies audit timestamps; overridable in tests.
	Now func() time.Time

	logger dicthub.Logger
}

// NewBuilder creates a Builder stamping ownership with the given actor.
func NewBuilder(actor string, logger dicthub.Logger) *Builder {
	return &Builder{Actor: actor, Now: time.Now, logger: logger}
}

// Result is the outcome of one glossary run.
type Result struct {
	Events  []mce.Event
	Skipped int
}

// Run walks the table once and assembles one term event per row with a
// non-null term name. The full set of term names is collected up front so
// parent references can be resolved regardless of row order.
func (b *Builder) Run(table *sheet.Table) Result {
	allTerms := make(map[string]struct{})
	for _, name := range table.ColumnValues(ColTermName) {
		allTerms[name] = struct{}{}
	}

	var result Result
	for _, row := range table.Rows {
		if !row.NotNull(ColTermName) {
			b.logger.Info("Skipping row %d: missing %q", row.Number, ColTermName)
			result.Skipped++
			continue
		}
		result.Events = append(result.Events, b.TermEvent(row, allTerms))
	}
	return result
}

// TermEvent assembles the event for a single glossary term row.
//
// The definition is the coerced string of the Definition cell: a null cell
// yields the literal "nan", preserving what the catalog already holds from
// previous ingestion runs. The parent reference is attached only when the
// raw parent name is a member of the full term-name set; unresolved parents
// are silently dropped, not an error.
func (b *Builder) TermEvent(row sheet.Row, allTerms map[string]struct{}) mce.Event {
	termSource := row.CoerceDefault(ColTermSource, "")
	info := mce.GlossaryTermInfo{
		Definition: row.Cell(ColDefinition).CoercedString(),
		TermSource: &termSource,
	}

	if row.NotNull(ColParentTerm) {
		parentName := row.Cell(ColParentTerm).String()
		if _, known := allTerms[parentName]; known {
			info.ParentNode = urn.GlossaryTerm(parentName)
		}
	}

	stamp := mce.AuditStamp{Time: b.Now().UnixMilli(), Actor: b.Actor}
	return mce.NewEventWithDelta(mce.ClassGlossaryTermSnapshot, mce.SnapshotBody{
		URN: urn.GlossaryTerm(row.Cell(ColTermName).String()),
		Aspects: []mce.Aspect{
			{Class: mce.ClassGlossaryTermInfo, Value: info},
			{Class: mce.ClassOwnership, Value: mce.Ownership{
				Owners:       []mce.Owner{{Owner: b.Actor, Type: mce.OwnerTypeDataOwner}},
				LastModified: stamp,
			}},
		},
	})
}

// Package introspect reads a table's column inventory from a PostgreSQL
// catalog and turns it into a schemaMetadata aspect for the matching dataset
// entity.
package introspect

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/urn"
)

// Querier is the slice of pgxpool.Pool the reader needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Column is one row of information_schema.columns, plus the column comment
// when one is set.
type Column struct {
	Name     string
	DataType string
	Nullable bool
	Comment  string
}

const columnsQuery = `
SELECT c.column_name,
       c.data_type,
       c.is_nullable = 'YES',
       COALESCE(col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position), '')
FROM information_schema.columns c
WHERE c.table_schema = $1 AND c.table_name = $2
ORDER BY c.ordinal_position`

// ReadColumns returns the columns of one table in ordinal order. A table
// with no columns does not exist as far as the catalog is concerned, so an
// empty result is an error.
func ReadColumns(ctx context.Context, q Querier, schema, table string) ([]Column, error) {
	rows, err := q.Query(ctx, columnsQuery, schema, table)
	if err != nil {
		return nil, fmt.Errorf("query information_schema.columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.DataType, &col.Nullable, &col.Comment); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s.%s has no columns or does not exist", schema, table)
	}
	return columns, nil
}

// SchemaAspect maps the column inventory to the catalog's schemaMetadata
// aspect. Every field is documented as a string type; the native type is
// carried verbatim and nullability is noted in the description.
func SchemaAspect(columns []Column, schema, table, platform, actor string, now time.Time) mce.SchemaMetadata {
	stamp := mce.AuditStamp{Time: now.UnixMilli(), Actor: actor}

	fields := make([]mce.SchemaField, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, mce.SchemaField{
			FieldPath:      col.Name,
			Type:           mce.StringFieldType(),
			NativeDataType: col.DataType,
			Description:    fieldDescription(col),
		})
	}

	return mce.SchemaMetadata{
		SchemaName:     fmt.Sprintf("%s.%s", schema, table),
		Platform:       urn.DataPlatform(platform),
		Version:        0,
		Hash:           "",
		PlatformSchema: mce.PlatformSchema{},
		Created:        stamp,
		LastModified:   stamp,
		Fields:         fields,
	}
}

func fieldDescription(col Column) string {
	switch {
	case col.Comment != "" && col.Nullable:
		return col.Comment + " (nullable)"
	case col.Comment != "":
		return col.Comment
	case col.Nullable:
		return "(nullable)"
	default:
		return ""
	}
}

// Proposal wraps the schema aspect in an UPSERT proposal for the dataset.
func Proposal(datasetURN string, aspect mce.SchemaMetadata) (mce.Proposal, error) {
	return mce.NewProposal("dataset", datasetURN, "schemaMetadata", aspect)
}

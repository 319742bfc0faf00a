package glossary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dicthub/internal/logging"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
)

func testBuilder() *Builder {
	b := NewBuilder("urn:li:corpuser:datahub", logging.NewNullLogger())
	b.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return b
}

func termInfo(t *testing.T, e mce.Event) mce.GlossaryTermInfo {
	t.Helper()
	require.Equal(t, mce.ClassGlossaryTermSnapshot, e.ProposedSnapshot.Class)
	require.NotEmpty(t, e.ProposedSnapshot.Body.Aspects)
	aspect := e.ProposedSnapshot.Body.Aspects[0]
	require.Equal(t, mce.ClassGlossaryTermInfo, aspect.Class)
	info, ok := aspect.Value.(mce.GlossaryTermInfo)
	require.True(t, ok)
	return info
}

func TestRun_BasicTerm(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{{"Customer ID", "Unique id"}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 1)
	assert.Zero(t, result.Skipped)

	e := result.Events[0]
	assert.Equal(t, "urn:li:glossaryTerm:CustomerID", e.ProposedSnapshot.Body.URN)

	info := termInfo(t, e)
	assert.Equal(t, "Unique id", info.Definition)
	require.NotNil(t, info.TermSource)
	assert.Equal(t, "", *info.TermSource)
	assert.Empty(t, info.ParentNode)
}

func TestRun_SkipsRowsWithoutTermName(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{
			{"", "orphan definition"},
			{"Revenue", "Money in"},
		},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 1)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "urn:li:glossaryTerm:Revenue", result.Events[0].ProposedSnapshot.Body.URN)
}

// Preserved behavior: a null Definition cell coerces to the literal "nan".
func TestRun_NullDefinitionBecomesNan(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{{"Revenue", ""}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "nan", termInfo(t, result.Events[0]).Definition)
}

func TestRun_ParentResolution(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition", "ParentTerm"},
		[][]string{
			{"Customer ID", "Unique id", ""},
			{"Billing ID", "Billing key", "Customer ID"},
			{"Ghost Child", "Has unknown parent", "No Such Term"},
		},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 3)

	assert.Empty(t, termInfo(t, result.Events[0]).ParentNode)
	assert.Equal(t, "urn:li:glossaryTerm:CustomerID", termInfo(t, result.Events[1]).ParentNode)
	// Unresolved parent: silently dropped, no error, no field.
	assert.Empty(t, termInfo(t, result.Events[2]).ParentNode)
}

func TestRun_ParentResolvedRegardlessOfRowOrder(t *testing.T) {
	// Child appears before its parent; the name set is collected up front.
	table := sheet.NewTable(
		[]string{"TermName", "Definition", "ParentTerm"},
		[][]string{
			{"Billing ID", "Billing key", "Customer ID"},
			{"Customer ID", "Unique id", ""},
		},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 2)
	assert.Equal(t, "urn:li:glossaryTerm:CustomerID", termInfo(t, result.Events[0]).ParentNode)
}

func TestRun_TermSourcePresence(t *testing.T) {
	withColumn := sheet.NewTable(
		[]string{"TermName", "Definition", "TermSource"},
		[][]string{{"Revenue", "Money in", ""}},
	)
	result := testBuilder().Run(withColumn)
	require.Len(t, result.Events, 1)
	// Column present but cell null: coerced placeholder.
	require.NotNil(t, termInfo(t, result.Events[0]).TermSource)
	assert.Equal(t, "nan", *termInfo(t, result.Events[0]).TermSource)

	withoutColumn := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{{"Revenue", "Money in"}},
	)
	result = testBuilder().Run(withoutColumn)
	require.Len(t, result.Events, 1)
	// Column absent from the sheet: empty-string default.
	require.NotNil(t, termInfo(t, result.Events[0]).TermSource)
	assert.Equal(t, "", *termInfo(t, result.Events[0]).TermSource)
}

func TestRun_OwnershipStamp(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{{"Revenue", "Money in"}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 1)
	aspects := result.Events[0].ProposedSnapshot.Body.Aspects
	require.Len(t, aspects, 2)

	require.Equal(t, mce.ClassOwnership, aspects[1].Class)
	ownership, ok := aspects[1].Value.(mce.Ownership)
	require.True(t, ok)
	require.Len(t, ownership.Owners, 1)
	assert.Equal(t, "urn:li:corpuser:datahub", ownership.Owners[0].Owner)
	assert.Equal(t, "DATAOWNER", ownership.Owners[0].Type)
	assert.Equal(t, int64(1700000000000), ownership.LastModified.Time)
	assert.Equal(t, "urn:li:corpuser:datahub", ownership.LastModified.Actor)
}

// The glossary path serializes with the legacy "proposedDelta": null member.
func TestRun_WireShape(t *testing.T) {
	table := sheet.NewTable(
		[]string{"TermName", "Definition"},
		[][]string{{"Customer ID", "Unique id"}},
	)

	result := testBuilder().Run(table)
	data, err := json.Marshal(result.Events[0])
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "auditHeader")
	assert.Contains(t, decoded, "proposedSnapshot")
	assert.Contains(t, decoded, "proposedDelta")
	assert.Equal(t, "null", string(decoded["auditHeader"]))
	assert.Equal(t, "null", string(decoded["proposedDelta"]))

	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["proposedSnapshot"], &snapshot))
	assert.Contains(t, snapshot, mce.ClassGlossaryTermSnapshot)
}

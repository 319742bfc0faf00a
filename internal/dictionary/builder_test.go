package dictionary

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/logging"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
)

func testBuilder() *Builder {
	cfg := &config.ProjectConfig{
		Glossary:      "Test Glossary",
		Actor:         "urn:li:corpuser:datahub",
		JiraURLPrefix: "https://jira.example.com/browse/",
		Environment:   "PROD",
		Datastores: []config.Datastore{
			{
				Column:     "WarehouseColumn",
				Platform:   "snowflake",
				URNPattern: "prod_db.public.{table_name}",
			},
			{
				Column:     "ReportingColumn",
				Platform:   "postgres",
				URNPattern: "analytics_db.reporting.{table_name}",
			},
		},
	}
	b := NewBuilder(cfg, logging.NewNullLogger())
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

func aspectByClass(t *testing.T, e mce.Event, class string) mce.Aspect {
	t.Helper()
	for _, a := range e.ProposedSnapshot.Body.Aspects {
		if a.Class == class {
			return a
		}
	}
	t.Fatalf("no aspect with class %s", class)
	return mce.Aspect{}
}

func TestRun_EmptyTableStillEmitsGlossaryNode(t *testing.T) {
	table := sheet.NewTable([]string{ColAttributeName}, nil)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 1)
	assert.Zero(t, result.Terms)
	assert.Zero(t, result.Datasets)

	node := result.Events[0]
	assert.Equal(t, mce.ClassGlossaryNodeSnapshot, node.ProposedSnapshot.Class)
	assert.Equal(t, "urn:li:glossaryNode:TestGlossary", node.ProposedSnapshot.Body.URN)
	assert.False(t, bool(node.ProposedDelta))

	info, ok := node.ProposedSnapshot.Body.Aspects[0].Value.(mce.GlossaryNodeInfo)
	require.True(t, ok)
	assert.Equal(t, "Test Glossary", info.Name)
}

func TestRun_TermFromRow(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColFullName, ColDefinition},
		[][]string{{"customer_id", "Customer ID", "Unique customer identifier"}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 2)
	assert.Equal(t, 1, result.Terms)

	term := result.Events[1]
	assert.Equal(t, "urn:li:glossaryTerm:customer_id", term.ProposedSnapshot.Body.URN)
	assert.False(t, bool(term.ProposedDelta))

	info := termInfo(t, term)
	assert.Equal(t, "Customer ID", info.Name)
	assert.Equal(t, "Unique customer identifier", info.Definition)
	assert.Equal(t, "urn:li:glossaryNode:TestGlossary", info.ParentNode)
	assert.Nil(t, info.TermSource)
}

func TestRun_DuplicateAttributesEmitOneTerm(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColDefinition},
		[][]string{
			{"customer_id", "first definition wins"},
			{"customer_id", "ignored repeat"},
			{"customer_id ", "same urn after sanitization"},
		},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 2)
	assert.Equal(t, 1, result.Terms)
	assert.Equal(t, "first definition wins", termInfo(t, result.Events[1]).Definition)
}

func TestRun_SkipsRowsWithoutAttributeName(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColDefinition},
		[][]string{
			{"", "orphan"},
			{"revenue", "money in"},
		},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 2)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "urn:li:glossaryTerm:revenue", result.Events[1].ProposedSnapshot.Body.URN)
}

func TestRun_DefinitionSections(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColDefinition, ColSynonym, ColListOfValues},
		[][]string{{"status", "Order state", "state, stage", "OPEN\nCLOSED"}},
	)

	result := testBuilder().Run(table)
	info := termInfo(t, result.Events[1])
	assert.Equal(t,
		"Order state\n\n\n**Synonyms:** state, stage\n\n\n**Accepted Values:**\nOPEN\nCLOSED",
		info.Definition)
}

func TestRun_DefinitionSectionsSkipNullColumns(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColSynonym},
		[][]string{{"status", "state"}},
	)

	result := testBuilder().Run(table)
	assert.Equal(t, "\n\n**Synonyms:** state", termInfo(t, result.Events[1]).Definition)
}

// Preserved behavior: a null Full Name cell coerces to the literal "nan".
func TestRun_NullFullNameBecomesNan(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColFullName},
		[][]string{{"status", ""}},
	)

	result := testBuilder().Run(table)
	assert.Equal(t, "nan", termInfo(t, result.Events[1]).Name)
}

func TestRun_ReferenceAndJiraLinks(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColReferenceLink, ColJiraReference},
		[][]string{{"status", "https://wiki.example.com/status", "DATA-42"}},
	)

	result := testBuilder().Run(table)
	aspect := aspectByClass(t, result.Events[1], mce.ClassInstitutionalMemory)
	memory, ok := aspect.Value.(mce.InstitutionalMemory)
	require.True(t, ok)
	require.Len(t, memory.Elements, 2)
	assert.Equal(t, mce.Link{URL: "https://wiki.example.com/status", Description: "Reference Link"}, memory.Elements[0])
	assert.Equal(t, mce.Link{URL: "https://jira.example.com/browse/DATA-42", Description: "Jira Ticket"}, memory.Elements[1])
}

func TestRun_OriginatingSystemBecomesSourceTag(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColOriginating},
		[][]string{{"status", "Order Service"}},
	)

	result := testBuilder().Run(table)
	aspect := aspectByClass(t, result.Events[1], mce.ClassGlobalTags)
	tags, ok := aspect.Value.(mce.GlobalTags)
	require.True(t, ok)
	require.Len(t, tags.Tags, 1)
	assert.Equal(t, "urn:li:tag:SourceOrderService", tags.Tags[0].Tag)
}

func TestRun_NoOptionalAspectsWhenColumnsNull(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName},
		[][]string{{"status"}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events[1].ProposedSnapshot.Body.Aspects, 1)
}

func TestRun_DatasetGrouping(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColTableName, "WarehouseColumn", "ReportingColumn"},
		[][]string{
			{"customer_id", "customers", "CUSTOMER_ID", "customer_id"},
			{"signup_date", "customers", "SIGNUP_DT", ""},
			{"order_total", "orders", "", "order_total"},
		},
	)

	result := testBuilder().Run(table)
	// node + 3 terms + 3 datasets
	require.Len(t, result.Events, 7)
	assert.Equal(t, 3, result.Terms)
	assert.Equal(t, 3, result.Datasets)

	datasets := result.Events[4:]
	assert.Equal(t,
		"urn:li:dataset:(urn:li:dataPlatform:snowflake,prod_db.public.customers,PROD)",
		datasets[0].ProposedSnapshot.Body.URN)
	assert.Equal(t,
		"urn:li:dataset:(urn:li:dataPlatform:postgres,analytics_db.reporting.customers,PROD)",
		datasets[1].ProposedSnapshot.Body.URN)
	assert.Equal(t,
		"urn:li:dataset:(urn:li:dataPlatform:postgres,analytics_db.reporting.orders,PROD)",
		datasets[2].ProposedSnapshot.Body.URN)

	schema, ok := datasets[0].ProposedSnapshot.Body.Aspects[0].Value.(mce.EditableSchemaMetadata)
	require.True(t, ok)
	require.Len(t, schema.EditableSchemaFieldInfo, 2)
	assert.Equal(t, "CUSTOMER_ID", schema.EditableSchemaFieldInfo[0].FieldPath)
	require.NotNil(t, schema.EditableSchemaFieldInfo[0].GlossaryTerms)
	assert.Equal(t, "urn:li:glossaryTerm:customer_id",
		schema.EditableSchemaFieldInfo[0].GlossaryTerms.Terms[0].URN)
	assert.Equal(t, "SIGNUP_DT", schema.EditableSchemaFieldInfo[1].FieldPath)
	assert.Equal(t, int64(1700000000000), schema.Created.Time)
	assert.Equal(t, "urn:li:corpuser:datahub", schema.Created.Actor)
}

func TestRun_RowsWithoutTableStillEmitTerm(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColTableName, "WarehouseColumn"},
		[][]string{{"customer_id", "", "CUSTOMER_ID"}},
	)

	result := testBuilder().Run(table)
	require.Len(t, result.Events, 2)
	assert.Equal(t, 1, result.Terms)
	assert.Zero(t, result.Datasets)
}

func TestRun_DuplicateRowsStillDocumentEveryField(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColTableName, "WarehouseColumn"},
		[][]string{
			{"customer_id", "customers", "CUSTOMER_ID"},
			{"customer_id", "orders", "CUST_ID"},
		},
	)

	result := testBuilder().Run(table)
	// node + 1 term + 2 datasets
	require.Len(t, result.Events, 4)
	assert.Equal(t, 1, result.Terms)
	assert.Equal(t, 2, result.Datasets)
}

func TestRun_WireShape(t *testing.T) {
	table := sheet.NewTable(
		[]string{ColAttributeName, ColDefinition},
		[][]string{{"status", "Order state"}},
	)

	result := testBuilder().Run(table)
	data, err := json.Marshal(result.Events[1])
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"auditHeader":null`)
	assert.NotContains(t, body, "proposedDelta")
	assert.Contains(t, body, `"com.linkedin.pegasus2avro.metadata.snapshot.GlossaryTermSnapshot"`)
	assert.Contains(t, body, `"com.linkedin.pegasus2avro.glossary.GlossaryTermInfo"`)
	assert.NotContains(t, body, "termSource")
}

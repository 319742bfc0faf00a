package mce

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeEvent() Event {
	return NewEvent(ClassGlossaryNodeSnapshot, SnapshotBody{
		URN: "urn:li:glossaryNode:TestGlossary",
		Aspects: []Aspect{
			{Class: ClassGlossaryNodeInfo, Value: GlossaryNodeInfo{Name: "Test Glossary"}},
		},
	})
}

func TestNewEvent_WireShape(t *testing.T) {
	data, err := json.Marshal(nodeEvent())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"auditHeader": null,
		"proposedSnapshot": {
			"com.linkedin.pegasus2avro.metadata.snapshot.GlossaryNodeSnapshot": {
				"urn": "urn:li:glossaryNode:TestGlossary",
				"aspects": [
					{"com.linkedin.pegasus2avro.glossary.GlossaryNodeInfo": {"name": "Test Glossary"}}
				]
			}
		}
	}`, string(data))
	assert.NotContains(t, string(data), "proposedDelta")
}

func TestNewEventWithDelta_IncludesNullMember(t *testing.T) {
	event := NewEventWithDelta(ClassGlossaryTermSnapshot, SnapshotBody{URN: "urn:li:glossaryTerm:Revenue"})

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"proposedDelta":null`)
}

func TestEvent_RoundTrip(t *testing.T) {
	original := NewEventWithDelta(ClassGlossaryTermSnapshot, SnapshotBody{
		URN: "urn:li:glossaryTerm:Revenue",
		Aspects: []Aspect{
			{Class: ClassGlossaryTermInfo, Value: GlossaryTermInfo{Definition: "money in"}},
		},
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, ClassGlossaryTermSnapshot, decoded.ProposedSnapshot.Class)
	assert.Equal(t, "urn:li:glossaryTerm:Revenue", decoded.ProposedSnapshot.Body.URN)
	require.Len(t, decoded.ProposedSnapshot.Body.Aspects, 1)
	assert.Equal(t, ClassGlossaryTermInfo, decoded.ProposedSnapshot.Body.Aspects[0].Class)
	assert.True(t, bool(decoded.ProposedDelta))
}

func TestSnapshot_RejectsMultipleClassKeys(t *testing.T) {
	raw := `{"a.B": {"urn": "u"}, "c.D": {"urn": "v"}}`

	var s Snapshot
	err := json.Unmarshal([]byte(raw), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one class key")
}

func TestWriteFile_PrettyPrintedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mces.json")
	events := []Event{nodeEvent()}

	require.NoError(t, WriteFile(path, events))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {"), "output should be indented")

	decoded, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "urn:li:glossaryNode:TestGlossary", decoded[0].ProposedSnapshot.Body.URN)
}

func TestWriteFile_UnwritablePath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "mces.json"), nil)
	require.Error(t, err)
}

func TestNewProposal(t *testing.T) {
	aspect := map[string]string{"schemaName": "public.orders"}

	p, err := NewProposal("dataset", "urn:li:dataset:(urn:li:dataPlatform:postgres,db.public.orders,PROD)", "schemaMetadata", aspect)
	require.NoError(t, err)

	assert.Equal(t, "dataset", p.EntityType)
	assert.Equal(t, ChangeTypeUpsert, p.ChangeType)
	assert.Equal(t, "schemaMetadata", p.AspectName)
	assert.Equal(t, "application/json", p.Aspect.ContentType)
	assert.JSONEq(t, `{"schemaName": "public.orders"}`, p.Aspect.Value)
	assert.Nil(t, p.SystemMetadata)
}

func TestProposal_WithRunID(t *testing.T) {
	p, err := NewProposal("dataset", "urn:li:dataset:x", "schemaMetadata", struct{}{})
	require.NoError(t, err)

	tagged := p.WithRunID("dicthub-test-run", 1700000000000)
	require.NotNil(t, tagged.SystemMetadata)
	assert.Equal(t, "dicthub-test-run", tagged.SystemMetadata.RunID)
	assert.Equal(t, int64(1700000000000), tagged.SystemMetadata.LastObserved)
	assert.Nil(t, p.SystemMetadata, "the original proposal stays untagged")
}

func TestNewRunID(t *testing.T) {
	first := NewRunID()
	second := NewRunID()

	assert.True(t, strings.HasPrefix(first, "dicthub-"))
	assert.NotEqual(t, first, second)
}

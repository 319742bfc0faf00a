package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/urn"
)

func TestFindCollisions(t *testing.T) {
	raw := []string{"Customer ID", "CustomerID", "Customer_ID", "Revenue"}
	collisions := FindCollisions(raw, urn.GlossaryTerm)

	require.Len(t, collisions, 1)
	assert.Equal(t, "urn:li:glossaryTerm:CustomerID", collisions[0].URN)
	assert.Equal(t, []string{"Customer ID", "CustomerID"}, collisions[0].Sources)
}

func TestFindCollisions_NoneWhenDistinct(t *testing.T) {
	raw := []string{"Revenue", "Margin", "Churn"}
	assert.Empty(t, FindCollisions(raw, urn.GlossaryTerm))
}

func TestFindCollisions_RepeatedIdenticalValueIsNotACollision(t *testing.T) {
	raw := []string{"Revenue", "Revenue", "Revenue"}
	assert.Empty(t, FindCollisions(raw, urn.GlossaryTerm))
}

func TestRenderer_Records(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Records([]mce.Event{
		mce.NewEvent(mce.ClassGlossaryNodeSnapshot, mce.SnapshotBody{
			URN:     "urn:li:glossaryNode:Glossary",
			Aspects: []mce.Aspect{{Class: mce.ClassGlossaryNodeInfo, Value: struct{}{}}},
		}),
		mce.NewEvent(mce.ClassGlossaryTermSnapshot, mce.SnapshotBody{
			URN:     "urn:li:glossaryTerm:Revenue",
			Aspects: []mce.Aspect{{Class: mce.ClassGlossaryTermInfo, Value: struct{}{}}},
		}),
	})

	out := buf.String()
	assert.Contains(t, out, "glossaryNode")
	assert.Contains(t, out, "glossaryTerm")
	assert.Contains(t, out, "urn:li:glossaryTerm:Revenue")
}

func TestRenderer_CollisionsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Collisions(nil)
	assert.Equal(t, "No sanitization collisions.\n", buf.String())
}

func TestRenderer_CollisionsWarns(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Collisions([]Collision{
		{URN: "urn:li:glossaryTerm:CustomerID", Sources: []string{"Customer ID", "CustomerID"}},
	})

	out := buf.String()
	assert.Contains(t, out, "urn:li:glossaryTerm:CustomerID")
	assert.Contains(t, out, "Customer ID, CustomerID")
	assert.Contains(t, strings.ToLower(out), "overwrite")
}

func TestRenderer_Summary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Summary(Summary{Terms: 10, Nodes: 1, Datasets: 3, Skipped: 2})

	out := buf.String()
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "Skipped")
}

package urn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces deleted", "Customer ID", "CustomerID"},
		{"punctuation stripped", "Revenue (net)", "Revenuenet"},
		{"underscore kept", "order_id", "order_id"},
		{"hyphen kept", "first-name", "first-name"},
		{"case preserved", "CamelCase", "CamelCase"},
		{"colon stripped", "Source:JIRA", "SourceJIRA"},
		{"unicode stripped", "naïve café", "navecaf"},
		{"digits kept", "q3_2024", "q3_2024"},
		{"all punctuation", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

// Sanitizing an already-sanitized name must be a no-op.
func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{"Customer ID", "Revenue (net)", "order_id", "Source:JIRA", "Años"}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, "urn:li:glossaryTerm:CustomerID", GlossaryTerm("Customer ID"))
	}
}

func TestKindBuilders(t *testing.T) {
	assert.Equal(t, "urn:li:glossaryTerm:CustomerID", GlossaryTerm("Customer ID"))
	assert.Equal(t, "urn:li:glossaryNode:MyPlatformGlossary", GlossaryNode("MyPlatformGlossary"))
	assert.Equal(t, "urn:li:tag:SourceJIRA", Tag("Source:JIRA"))
	assert.Equal(t, "urn:li:corpuser:datahub", CorpUser("datahub"))
	assert.Equal(t, "urn:li:dataPlatform:snowflake", DataPlatform("snowflake"))
}

// Degenerate identifier: an all-punctuation name collapses to the bare prefix.
// Callers are responsible for validating the source name before calling.
func TestGenerate_DegenerateIdentifier(t *testing.T) {
	assert.Equal(t, "urn:li:glossaryTerm:", GlossaryTerm("???"))
}

func TestDataset_ExactFormat(t *testing.T) {
	got := Dataset("snowflake", "prod_db.public.orders", "PROD")
	assert.Equal(t, "urn:li:dataset:(urn:li:dataPlatform:snowflake,prod_db.public.orders,PROD)", got)
}

func TestExpandPattern(t *testing.T) {
	assert.Equal(t, "prod_db.public.orders", ExpandPattern("prod_db.public.{table_name}", "orders"))
	assert.Equal(t, "analytics_db.reporting.dim_date", ExpandPattern("analytics_db.reporting.{table_name}", "dim_date"))
	// No placeholder: pattern returned verbatim
	assert.Equal(t, "static.path", ExpandPattern("static.path", "orders"))
}

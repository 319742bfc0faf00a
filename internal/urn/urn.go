// Package urn derives the identifier strings the metadata catalog uses as
// primary keys. Every function here is a pure function of its inputs: the
// same name always yields the same URN, across runs and deployments.
//
// The textual formats are exact. The catalog treats these strings as opaque
// keys, so any change to prefixing, sanitization, or dataset punctuation
// would orphan previously ingested entities.
package urn

import (
	"fmt"
	"strings"
)

// Prefix is the namespace shared by every identifier this tool produces.
const Prefix = "urn:li"

// Entity kind tags recognized by the catalog.
const (
	KindGlossaryTerm = "glossaryTerm"
	KindGlossaryNode = "glossaryNode"
	KindTag          = "tag"
	KindCorpUser     = "corpuser"
	KindDataPlatform = "dataPlatform"
	KindDataset      = "dataset"
)

// Sanitize converts a free-text name into its URN-safe form: spaces are
// deleted (not substituted), then every rune outside [A-Za-z0-9_-] is
// stripped. Case is preserved and collisions after stripping are not
// detected; callers must validate that the source name is present, since an
// all-punctuation name sanitizes to the empty string and would produce a
// degenerate identifier.
//
// Sanitize is idempotent: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate builds "urn:li:<kind>:<sanitized name>".
func Generate(kind, name string) string {
	return fmt.Sprintf("%s:%s:%s", Prefix, kind, Sanitize(name))
}

// GlossaryTerm returns the glossary-term URN for a human-entered term name.
func GlossaryTerm(name string) string {
	return Generate(KindGlossaryTerm, name)
}

// GlossaryNode returns the glossary-node URN for a node (category) name.
func GlossaryNode(name string) string {
	return Generate(KindGlossaryNode, name)
}

// Tag returns the tag URN for a tag name. Note that sanitization strips
// punctuation, so "Source:JIRA" becomes "urn:li:tag:SourceJIRA".
func Tag(name string) string {
	return Generate(KindTag, name)
}

// CorpUser returns the corpuser URN for an actor name.
func CorpUser(name string) string {
	return Generate(KindCorpUser, name)
}

// DataPlatform returns the platform URN for a platform name ("snowflake",
// "postgres", ...). Platform names are config values, not free text, and are
// embedded as-is.
func DataPlatform(platform string) string {
	return fmt.Sprintf("%s:%s:%s", Prefix, KindDataPlatform, platform)
}

// Dataset returns the dataset URN for a table path on a platform in an
// environment. The parenthesized tuple form is the catalog's primary key for
// dataset entities:
//
//	urn:li:dataset:(urn:li:dataPlatform:snowflake,prod_db.public.orders,PROD)
//
// The table path is embedded verbatim; dots and other punctuation inside it
// are significant.
func Dataset(platform, tablePath, environment string) string {
	return fmt.Sprintf("%s:%s:(%s,%s,%s)", Prefix, KindDataset, DataPlatform(platform), tablePath, environment)
}

// ExpandPattern substitutes a table name into a dataset path pattern.
// Patterns use a single "{table_name}" placeholder:
//
//	ExpandPattern("prod_db.public.{table_name}", "orders") == "prod_db.public.orders"
func ExpandPattern(pattern, tableName string) string {
	return strings.ReplaceAll(pattern, "{table_name}", tableName)
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// sslModes contains valid PostgreSQL SSL modes for shell completion.
var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// platforms contains the DataHub platform names commonly used in dataset
// URNs, for shell completion. Any other platform string is still accepted.
var platforms = []string{"postgres", "snowflake", "mysql", "mssql", "oracle", "bigquery", "redshift", "kafka", "s3"}

// environments contains the DataHub fabric tags, for shell completion.
var environments = []string{"PROD", "DEV", "QA", "UAT", "EI", "PRE", "STG", "NON_PROD", "CORP"}

// completeSSLModes provides shell completion for SSL mode flag values.
func completeSSLModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(sslModes, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completePlatforms provides shell completion for platform flag values.
func completePlatforms(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(platforms, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeEnvironments provides shell completion for fabric tag flag values.
func completeEnvironments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return prefixMatches(environments, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func prefixMatches(candidates []string, toComplete string) []string {
	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			matches = append(matches, c)
		}
	}
	return matches
}

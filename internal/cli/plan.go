package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkravets/dicthub/internal/dictionary"
	"github.com/mkravets/dicthub/internal/report"
	"github.com/mkravets/dicthub/internal/sheet"
	"github.com/mkravets/dicthub/internal/urn"
)

var planCmd = &cobra.Command{
	Use:   "plan <spreadsheet>",
	Short: "Preview a dictionary run without writing records",
	Long: `Plan performs a dry run of the dictionary build: it reads the spreadsheet,
assembles every record, and reports what a real run would write, without
creating any output file.

The plan also checks for URN sanitization collisions. URNs delete spaces
and strip punctuation from spreadsheet identifiers, so distinct attribute
names like "Customer ID" and "CustomerID" can map to the same term URN.
Colliding records overwrite each other on ingestion; review them before
generating.

Examples:
  # Human-readable plan tables
  dicthub plan data_dictionary.xlsx

  # Machine-readable, for CI gates on collisions
  dicthub plan data_dictionary.xlsx --json`,
	Args: RequireSpreadsheet,
	RunE: runPlan,
}

type planFlagValues struct {
	sheetName  string
	configDir  string
	jsonOutput bool
}

var planFlags planFlagValues

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planFlags.sheetName, "sheet", "",
		"Worksheet name to read (default: first sheet; ignored for CSV input)")
	planCmd.Flags().StringVar(&planFlags.configDir, "config", ".",
		"Directory containing dicthub.yaml")
	planCmd.Flags().BoolVar(&planFlags.jsonOutput, "json", false,
		"Emit the plan as JSON instead of tables")
}

// planRecord is one generated record in JSON plan output.
type planRecord struct {
	URN     string `json:"urn"`
	Class   string `json:"class"`
	Aspects int    `json:"aspects"`
}

// planDocument is the full JSON plan output.
type planDocument struct {
	Records    []planRecord       `json:"records"`
	Collisions []report.Collision `json:"collisions"`
	Summary    report.Summary     `json:"summary"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	cfg, err := loadProject(planFlags.configDir, logger)
	if err != nil {
		return err
	}

	table, err := sheet.Read(args[0], planFlags.sheetName)
	if err != nil {
		return err
	}

	result := dictionary.NewBuilder(cfg, logger).Run(table)
	collisions := report.FindCollisions(
		table.ColumnValues(dictionary.ColAttributeName), urn.GlossaryTerm)
	summary := report.Summary{
		Terms:    result.Terms,
		Nodes:    1,
		Datasets: result.Datasets,
		Skipped:  result.Skipped,
	}

	if planFlags.jsonOutput {
		doc := planDocument{
			Records:    make([]planRecord, 0, len(result.Events)),
			Collisions: collisions,
			Summary:    summary,
		}
		for _, e := range result.Events {
			doc.Records = append(doc.Records, planRecord{
				URN:     e.ProposedSnapshot.Body.URN,
				Class:   e.ProposedSnapshot.Class,
				Aspects: len(e.ProposedSnapshot.Body.Aspects),
			})
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	renderer := report.NewRenderer(os.Stdout)
	renderer.Records(result.Events)
	renderer.Collisions(collisions)
	renderer.Summary(summary)
	return nil
}

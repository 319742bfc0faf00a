package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkravets/dicthub/internal/glossary"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary <spreadsheet>",
	Short: "Build glossary term records from a term worksheet",
	Long: `Glossary reads a worksheet of business terms and writes one metadata
record per term to a JSON file.

Expected columns:
  TermName     The glossary term (required; rows without one are skipped)
  Definition   Plain-text definition
  TermSource   Optional source system label
  ParentTerm   Optional name of another term in the same sheet

Parent references are resolved against the full sheet, so row order does
not matter. The output file is only written after every record has been
assembled.

Examples:
  # Read the GlossaryTerms sheet of a workbook
  dicthub glossary business_terms.xlsx

  # A CSV export, custom output path
  dicthub glossary terms.csv -o out/glossary_terms.json`,
	Args: RequireSpreadsheet,
	RunE: runGlossary,
}

type glossaryFlagValues struct {
	sheetName string
	output    string
	actor     string
}

var glossaryFlags glossaryFlagValues

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryCmd.Flags().StringVar(&glossaryFlags.sheetName, "sheet", dicthub.DefaultGlossarySheet,
		"Worksheet name to read (ignored for CSV input)")
	glossaryCmd.Flags().StringVarP(&glossaryFlags.output, "output", "o", "glossary_terms.json",
		"Output file for the generated records")
	glossaryCmd.Flags().StringVar(&glossaryFlags.actor, "actor", dicthub.DefaultActor,
		"Corpuser URN stamped as record owner")
}

func runGlossary(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	table, err := sheet.Read(args[0], glossaryFlags.sheetName)
	if err != nil {
		return err
	}

	result := glossary.NewBuilder(glossaryFlags.actor, logger).Run(table)
	if err := mce.WriteFile(glossaryFlags.output, result.Events); err != nil {
		return err
	}

	logger.Info("Wrote %d glossary term records to %s (%d rows skipped)",
		len(result.Events), glossaryFlags.output, result.Skipped)
	return nil
}

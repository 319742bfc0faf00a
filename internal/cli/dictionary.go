package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkravets/dicthub/internal/dictionary"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/sheet"
)

var dictionaryCmd = &cobra.Command{
	Use:   "dictionary <spreadsheet>",
	Short: "Build glossary and dataset records from a data dictionary",
	Long: `Dictionary reads a data-dictionary worksheet and writes the full record
set for it: the parent glossary node, one deduplicated glossary term per
attribute, and per-column documentation for every dataset the dictionary
maps its rows to.

Rows repeat one attribute per physical table, so the same attribute name
may appear many times; the first occurrence defines the term and later
ones only contribute dataset field documentation. Which datasets a row
documents comes from the datastores section of dicthub.yaml.

Examples:
  # Dictionary workbook with dicthub.yaml in the current directory
  dicthub dictionary data_dictionary.xlsx

  # Config elsewhere, explicit worksheet and output
  dicthub dictionary dict.xlsx --config ./metadata --sheet Attributes -o mces.json`,
	Args: RequireSpreadsheet,
	RunE: runDictionary,
}

type dictionaryFlagValues struct {
	sheetName string
	output    string
	configDir string
}

var dictionaryFlags dictionaryFlagValues

func init() {
	rootCmd.AddCommand(dictionaryCmd)

	dictionaryCmd.Flags().StringVar(&dictionaryFlags.sheetName, "sheet", "",
		"Worksheet name to read (default: first sheet; ignored for CSV input)")
	dictionaryCmd.Flags().StringVarP(&dictionaryFlags.output, "output", "o", "data_dictionary_mces.json",
		"Output file for the generated records")
	dictionaryCmd.Flags().StringVar(&dictionaryFlags.configDir, "config", ".",
		"Directory containing dicthub.yaml")
}

func runDictionary(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	cfg, err := loadProject(dictionaryFlags.configDir, logger)
	if err != nil {
		return err
	}

	table, err := sheet.Read(args[0], dictionaryFlags.sheetName)
	if err != nil {
		return err
	}

	result := dictionary.NewBuilder(cfg, logger).Run(table)
	if err := mce.WriteFile(dictionaryFlags.output, result.Events); err != nil {
		return err
	}

	logger.Info("Wrote %d records to %s: 1 glossary node, %d terms, %d datasets (%d rows skipped)",
		len(result.Events), dictionaryFlags.output, result.Terms, result.Datasets, result.Skipped)
	return nil
}

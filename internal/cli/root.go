package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/logging"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

const asciiLogo = `     _ _      _   _           _
  __| (_) ___| |_| |__  _   _| |__
 / _` + "`" + ` | |/ __| __| '_ \| | | | '_ \
| (_| | | (__| |_| | | | |_| | |_) |
 \__,_|_|\___|\__|_| |_|\__,_|_.__/`

var rootCmd = &cobra.Command{
	Use:   "dicthub",
	Short: "Data dictionaries into DataHub",
	Long: asciiLogo + `

dicthub turns spreadsheet data dictionaries into DataHub metadata: glossary
terms, glossary nodes, and per-column dataset documentation. Records are
written as a reviewable JSON file first; emission to a metadata service is a
separate, deliberate step.

The spreadsheet stays the source of truth. dicthub never edits it, and every
run regenerates the full record set from scratch.

Exit Codes:
  0  - Success
  1  - General error (build or emission failed)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Metadata service or database connection failed
  12 - User denied emission approval
  14 - Input spreadsheet or record file not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for dicthub")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the console logger every command shares.
func newLogger(cmd *cobra.Command) dicthub.Logger {
	return logging.NewConsoleLogger(getVerboseFlag(cmd))
}

// loadProject reads dicthub.yaml from dir. A missing file is not an error:
// the built-in defaults mirror what the original one-shot scripts hardcoded,
// so every command works out of the box in an unconfigured directory.
func loadProject(dir string, logger dicthub.Logger) (*config.ProjectConfig, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			logger.Verbose("No %s in %s, using defaults", config.ConfigFileName, dir)
			return config.Default(), nil
		}
		return nil, fmt.Errorf("load %s: %w", config.ConfigFileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Verbose("Loaded %s from %s", config.ConfigFileName, dir)
	return cfg, nil
}

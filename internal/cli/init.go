package cli

import (
	"github.com/spf13/cobra"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a dicthub.yaml configuration file",
	Long: `Init writes a starter dicthub.yaml into the given directory (default:
the current one). On a terminal a short interactive form asks for the
core values; otherwise the file is written from defaults and any flags.

An existing dicthub.yaml is never overwritten.

Examples:
  # Interactive setup in the current directory
  dicthub init

  # Non-interactive, for scripted project setup
  dicthub init ./metadata --glossary "Core Banking Glossary" \
    --actor urn:li:corpuser:metadata-bot --non-interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

type initFlagValues struct {
	glossary       string
	actor          string
	environment    string
	endpoint       string
	jiraPrefix     string
	nonInteractive bool
}

var initFlags initFlagValues

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initFlags.glossary, "glossary", "", "Glossary name")
	initCmd.Flags().StringVar(&initFlags.actor, "actor", "", "Corpuser URN stamped into generated records")
	initCmd.Flags().StringVar(&initFlags.environment, "environment", "", "Fabric tag for dataset URNs (PROD, DEV, ...)")
	initCmd.Flags().StringVar(&initFlags.endpoint, "endpoint", "", "Metadata service base URL")
	initCmd.Flags().StringVar(&initFlags.jiraPrefix, "jira-prefix", "", "Jira browse URL prefix for ticket links")
	initCmd.Flags().BoolVar(&initFlags.nonInteractive, "non-interactive", false,
		"Write the file from defaults and flags without the setup form")

	_ = initCmd.RegisterFlagCompletionFunc("environment", completeEnvironments)
}

// applyInitFlags overlays non-empty init flags onto a config.
func applyInitFlags(cfg *config.ProjectConfig, flags initFlagValues) *config.ProjectConfig {
	if flags.glossary != "" {
		cfg.Glossary = flags.glossary
	}
	if flags.actor != "" {
		cfg.Actor = flags.actor
	}
	if flags.environment != "" {
		cfg.Environment = flags.environment
	}
	if flags.endpoint != "" {
		cfg.Server.Endpoint = flags.endpoint
	}
	if flags.jiraPrefix != "" {
		cfg.JiraURLPrefix = flags.jiraPrefix
	}
	return cfg
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cfg := applyInitFlags(config.Default(), initFlags)

	if !initFlags.nonInteractive && tui.IsInteractive() {
		result, err := tui.RunSetup(cfg)
		if err != nil {
			return err
		}
		if result.Cancelled {
			logger.Info("Setup cancelled, no file written")
			return nil
		}
		cfg = result.Config
	}

	path, err := cfg.Write(dir)
	if err != nil {
		return err
	}

	logger.Info("Wrote %s", path)
	logger.Info("Next: review the datastores section, then run 'dicthub dictionary <spreadsheet>'")
	return nil
}

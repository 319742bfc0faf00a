package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkravets/dicthub/internal/config"
	"github.com/mkravets/dicthub/internal/emitter"
	"github.com/mkravets/dicthub/internal/mce"
	"github.com/mkravets/dicthub/internal/ui"
	"github.com/mkravets/dicthub/pkg/dicthub"
)

// Environment variables recognized by the emit command.
const (
	envGMSEndpoint = "DATAHUB_GMS_URL"
	envGMSToken    = "DATAHUB_GMS_TOKEN"
)

var emitCmd = &cobra.Command{
	Use:   "emit <records.json>",
	Short: "Submit generated records to a DataHub metadata service",
	Long: `Emit reads a previously generated record file and posts every record to
the metadata service, in file order, paced at a fixed request rate. A
failed request aborts the batch; nothing is retried.

Emission requires approval. Interactively you are asked to type 'yes';
with --force a short countdown runs instead, for unattended pipelines.

Token Authentication:
  For security, prefer not to pass the token as a CLI flag. Use one of:
    1. $DATAHUB_GMS_TOKEN environment variable (also read from .env)
    2. The server.token field of dicthub.yaml
    3. --prompt-token to type it without shell-history exposure

Examples:
  # Interactive emission to a local quickstart
  dicthub emit data_dictionary_mces.json

  # Unattended, endpoint from the environment
  DATAHUB_GMS_URL=https://datahub.example.com:8080 \
    dicthub emit data_dictionary_mces.json --force

  # Slow the batch down for a busy server
  dicthub emit data_dictionary_mces.json --rate 2`,
	Args: RequireRecordFile,
	RunE: runEmit,
}

type emitFlagValues struct {
	endpoint    string
	token       string
	rate        int
	force       bool
	promptToken bool
	configDir   string
}

var emitFlags emitFlagValues

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVarP(&emitFlags.endpoint, "endpoint", "e", "",
		"Metadata service base URL\n"+
			"Precedence: --endpoint > $DATAHUB_GMS_URL > dicthub.yaml > "+dicthub.DefaultServerEndpoint)
	emitCmd.Flags().StringVar(&emitFlags.token, "token", "",
		"Bearer token for authenticated deployments\n"+
			"Precedence: --token > $DATAHUB_GMS_TOKEN > dicthub.yaml")
	emitCmd.Flags().IntVar(&emitFlags.rate, "rate", 0,
		fmt.Sprintf("Requests per second (default %d)", dicthub.DefaultEmitRate))
	emitCmd.Flags().BoolVarP(&emitFlags.force, "force", "f", false,
		"Skip the interactive prompt; a countdown runs instead")
	emitCmd.Flags().BoolVar(&emitFlags.promptToken, "prompt-token", false,
		"Prompt for the bearer token on the terminal (no echo)")
	emitCmd.Flags().StringVar(&emitFlags.configDir, "config", ".",
		"Directory containing dicthub.yaml")
}

// resolveEmitConfig layers the emission parameters: flags beat environment
// variables beat dicthub.yaml. getenv is injected so tests control the
// environment without mutating the process.
func resolveEmitConfig(flags emitFlagValues, getenv func(string) string, cfg *config.ProjectConfig) dicthub.EmitConfig {
	endpoint := flags.endpoint
	if endpoint == "" {
		endpoint = getenv(envGMSEndpoint)
	}
	if endpoint == "" {
		endpoint = cfg.Server.Endpoint
	}

	token := flags.token
	if token == "" {
		token = getenv(envGMSToken)
	}
	if token == "" {
		token = cfg.Server.Token
	}

	return dicthub.EmitConfig{
		Endpoint:          endpoint,
		Token:             token,
		RequestsPerSecond: flags.rate,
		Force:             flags.force,
	}
}

// readTokenFromTerminal prompts for the bearer token without echoing it.
func readTokenFromTerminal() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("--prompt-token requires a terminal: %w", dicthub.ErrInvalidConfig)
	}
	fmt.Fprint(os.Stderr, "Bearer token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func runEmit(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := loadProject(emitFlags.configDir, logger)
	if err != nil {
		return err
	}

	emitConfig := resolveEmitConfig(emitFlags, os.Getenv, cfg)
	emitConfig.Verbose = getVerboseFlag(cmd)

	if emitFlags.promptToken {
		token, err := readTokenFromTerminal()
		if err != nil {
			return err
		}
		emitConfig.Token = token
	}

	if err := emitConfig.Validate(); err != nil {
		return err
	}

	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", path, dicthub.ErrInputNotFound)
	}
	events, err := mce.ReadFile(path)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		logger.Info("No records in %s, nothing to emit", path)
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var approver dicthub.Approver
	if emitConfig.Force {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover()
	}
	approved, err := approver.RequestApproval(ctx, emitConfig.Endpoint, len(events))
	if err != nil {
		return err
	}
	if !approved {
		return dicthub.ErrApprovalDenied
	}

	em := emitter.New(emitConfig.Endpoint, emitConfig.Token, logger)
	result, err := em.EmitBatch(ctx, events, emitConfig.RequestsPerSecond)
	if err != nil {
		logger.Error("Emission aborted after %d of %d records", result.Emitted, result.Total)
		return err
	}

	logger.Info("Emitted %d records to %s", result.Emitted, emitConfig.Endpoint)
	return nil
}

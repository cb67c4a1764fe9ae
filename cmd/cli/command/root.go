package command

// root.go defines the root command for the librarium console: global flags,
// configuration and the shared gateway client and session manager every
// subcommand uses.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"librarium/internal/config"
	"librarium/internal/gateway"
	"librarium/internal/logging"
	"librarium/internal/notify"
	"librarium/internal/session"
)

var (
	gatewayFlag string // --gateway override for the API gateway base URL

	cfg      *config.Config
	client   *gateway.Client
	sessions *session.Manager
	sink     notify.Sink
)

var rootCmd = &cobra.Command{
	Use:   "librarium",
	Short: "librarium - library management console",
	Long: `librarium is the terminal console for the library management system.
It drives the API gateway behind the screens librarians use day to day:
books, authors, users, loans, the dashboard and recommendations.

Use "librarium <command> -h" to see the available subcommands.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if gatewayFlag != "" {
		cfg.GatewayURL = gatewayFlag
	}

	client = gateway.NewClient(cfg.GatewayURL, cfg.HTTPTimeout)
	sink = notify.NewConsoleSink()
	sessions = session.NewManager(session.NewKeyringStore(), client, client)
	sessions.Restore()
	return nil
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayFlag, "gateway", "", "API gateway base URL (overrides LIBRARIUM_GATEWAY_URL)")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/brazucaphish/console/pkg/config"
	"github.com/spf13/cobra"
)

var version = "dev" // Set by build

// errReported is returned by commands that already printed why they failed.
var errReported = errors.New("command failed")

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	cfgFile string
	host    string
	port    int
	lang    string
	api     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "brazuca",
		Short: "BrazucaPhish console - phishing awareness campaigns",
		Long: `brazuca is the console of the BrazucaPhish backend.

It serves the web front end (register, confirm, login, the security assistant
and the campaign dashboard) and offers the same operations from the terminal.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Default to serve command when no subcommand is specified
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.cfgFile, "config", "c", "brazuca.yaml", "Path to configuration file")
	flags.StringVar(&opts.host, "host", "", "Web server host address")
	flags.IntVarP(&opts.port, "port", "p", 0, "Web server port number")
	flags.StringVar(&opts.lang, "lang", "", "Language (en or pt)")
	flags.StringVar(&opts.api, "api", "", "Backend API base URL")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log backend calls of terminal commands to stderr")

	root.AddCommand(
		newServeCmd(opts),
		newRegisterCmd(opts),
		newConfirmCmd(opts),
		newLoginCmd(opts),
		newChatCmd(opts),
		newDashboardCmd(opts),
		newCampaignCmd(opts),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, applies flag overrides and validates the
// result. A missing file is fine unless --config was given explicitly.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewFileLoader(o.cfgFile).Read()
	switch {
	case errors.Is(err, config.ErrConfigFileNotFound) && !cmd.Flags().Changed("config"):
		cfg = config.Default()
	case err != nil:
		return nil, err
	}

	o.override(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// override applies the flags that were set explicitly. Priority: flags > file > defaults.
func (o *rootOptions) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("lang") {
		cfg.Locale.Default = o.lang
	}
	if flags.Changed("api") {
		cfg.API.BaseURL = o.api
	}
	config.ApplyDefaults(cfg)
}

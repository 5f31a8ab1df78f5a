package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/netstring/internal/config"
	"github.com/danmuck/netstring/internal/logging"
	"github.com/danmuck/netstring/internal/netstring"
	"github.com/danmuck/netstring/internal/observability"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// appState is the resolved state shared by subcommands.
type appState struct {
	cfg    config.Config
	logger zerolog.Logger
	codec  *netstring.Codec
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "netstringctl",
		Short: "Encode, decode and relay netstring frames",
		Long: `netstringctl works with the netstring framing format <length>:<payload>,

It encodes items to frames, decodes frame streams back to items, and runs a
small TCP server/client pair that exchange items as netstrings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to TOML config")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (trace|debug|info|warn|error|off)")

	root.AddCommand(
		encodeCmd(opts),
		decodeCmd(opts),
		serveCmd(opts),
		sendCmd(opts),
		configCmd(),
		versionCmd(),
	)
	return root
}

func (o *globalOptions) load(cmd *cobra.Command) (*appState, error) {
	logging.ConfigureRuntime()

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := logging.ApplyLevel(cfg.LogLevel, o.logLevel); err != nil {
		return nil, err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "netstringctl")
	codec := netstring.New(cfg.CodecConfig(observability.NewObserver(logger, cfg.MetricsAddr != "")))
	return &appState{cfg: cfg, logger: logger, codec: codec}, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "netstringctl %s (%s)\n", version, commit)
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Config file helpers",
	}
	var overwrite bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config template (stdout when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.Template())
				return err
			}
			return config.WriteTemplate(args[0], overwrite)
		},
	}
	initCmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}

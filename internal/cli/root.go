package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/logger"
)

// Execute runs the recipes command line.
func Execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	relayURL   string
	imageHosts []string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{relayURL: "http://localhost:5000"}
	cfg, cfgErr := config.LoadClientConfig()
	if cfgErr == nil {
		opts.relayURL = cfg.EnvVars.RelayURL
		opts.imageHosts = cfg.EnvVars.ImageHosts
	}

	cmd := &cobra.Command{
		Use:          "recipes",
		Short:        "recipes - search recipes through the relay service",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if opts.debug {
				logger.Init(true)
			}
			if cfgErr != nil {
				return fmt.Errorf("invalid client config: %w", cfgErr)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.relayURL, "relay", opts.relayURL, "relay service base URL ($RELAY_URL)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log diagnostics to stderr")

	cmd.AddCommand(newSearchCmd(opts))
	return cmd
}

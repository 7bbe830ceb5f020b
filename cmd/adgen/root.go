package main

import (
	"github.com/spf13/cobra"

	"github.com/flipdirmatze/ad-video-generator/config"
)

// commandContext loads the configuration on first use so commands that run
// fully offline never need a config file or credentials.
type commandContext struct {
	configPath *string
	cfg        *config.Config
}

func (c *commandContext) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(*c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := &commandContext{configPath: &configFlag}

	rootCmd := &cobra.Command{
		Use:           "adgen",
		Short:         "Ad video generator: script segmentation and clip matching",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path (default config.yaml or $CONFIG_FILE)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMatchCommand(ctx))
	rootCmd.AddCommand(newSegmentCommand())
	return rootCmd
}

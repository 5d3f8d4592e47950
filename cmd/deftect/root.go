package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Satria0ibnu/deftection-sub000/internal/config"
	"github.com/Satria0ibnu/deftection-sub000/internal/logging"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           "deftect",
		Short:         "Defect selection and localization for segmentation masks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if flags.logLevel != "" {
				cfg.Log.Level = flags.logLevel
			}
			logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newAnalyzeCmd(func() *config.Config { return cfg }),
		newListCmd(func() *config.Config { return cfg }),
		newClassesCmd(),
	)
	return cmd
}

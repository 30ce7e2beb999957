package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
)

var (
	configPath string
	debug      bool
	verbose    bool

	cfg motion.Config
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "motion",
		Short:         "Play and inspect motion animations",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = motion.Config{}
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return fmt.Errorf("read config: %w", err)
				}
				if cfg, err = motion.LoadConfig(data); err != nil {
					return err
				}
			}
			if debug {
				cfg.Debug = true
			}
			if verbose {
				cfg.Verbose = true
			}
			if cfg.FrameInterval == 0 {
				cfg.FrameInterval = motion.DefaultFrameInterval
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log controller state changes and frame timing")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include stack traces in error reports")

	root.AddCommand(playCmd(), validateCmd(), easingsCmd(), sampleCmd())
	return root
}

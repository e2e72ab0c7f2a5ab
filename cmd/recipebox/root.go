package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	ctx := newCommandContext(flags)

	rootCmd := &cobra.Command{
		Use:           "recipebox",
		Short:         "Find recipes, plan the shopping and time the cooking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), ctx)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	pf.StringVar(&flags.logFile, "log-file", "", "File to write logs to (\"stderr\" logs to the console)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory holding the recipe database")
	pf.BoolVar(&flags.noSound, "no-sound", false, "Disable the timer alert tone")
	pf.BoolVar(&flags.noSpeech, "no-speech", false, "Disable reading recipes aloud")
	pf.BoolVar(&flags.offline, "offline", false, "Use the built-in recipes instead of the online catalog")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep everything in memory; nothing is saved")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newLookupCommand(ctx))
	rootCmd.AddCommand(newShoppingCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

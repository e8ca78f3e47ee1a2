package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:           "mapty",
	Short:         "CLI workout tracker for geo-tagged runs and rides",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/mapty/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep workouts in memory only")
}

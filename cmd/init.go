package cmd

import (
	"fmt"

	"github.com/misterclayt0n/mapty/internal/config"
	"github.com/spf13/cobra"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and its slots table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("Failed to load config: %w", err)
		}

		_, closer, err := openSlot(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("Failed to initialize database: %w", err)
		}
		defer closer.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Database initialized successfully (%s)\n", cfg.Storage.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}

package cmd

import (
	"fmt"

	"github.com/misterclayt0n/mapty/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all workouts to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "workouts.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := storage.ExportFile(outputFile, s.persist.Load(cmd.Context())); err != nil {
			return fmt.Errorf("error exporting workouts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Workouts exported successfully to %s\n", outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dump-file]",
	Short: "Replace all stored workouts with the ones in a TOML dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imported, err := storage.ImportFile(args[0])
		if err != nil {
			return fmt.Errorf("Failed to import workouts: %w", err)
		}

		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.persist.Save(cmd.Context(), imported); err != nil {
			return fmt.Errorf("Failed to import workouts: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d workouts from %s\n", imported.Len(), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

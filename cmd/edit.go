package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editInput inputFlags

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Replace a workout's values, keeping its id and location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		w, err := s.app.EditWorkout(cmd.Context(), s.resolve(args[0]), editInput.raw())
		if err != nil {
			if rejected(err) {
				return fmt.Errorf("Workout not changed: %w", err)
			}
			return fmt.Errorf("Failed to save workout: %w", err)
		}
		if w != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Workout %s updated\n", w.ID)
		}
		return nil
	},
}

func init() {
	editInput.register(editCmd)
	rootCmd.AddCommand(editCmd)
}

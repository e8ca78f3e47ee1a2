package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.app.DeleteWorkout(cmd.Context(), s.resolve(args[0])); err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}
		return nil
	},
}

var deleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every workout and wipe the stored data",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.app.DeleteAll(cmd.Context()); err != nil {
			return fmt.Errorf("Failed to delete workouts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ All workouts deleted")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(deleteAllCmd)
}

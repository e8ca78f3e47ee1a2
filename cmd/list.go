package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showMarkers bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all workouts in their stored order",
	RunE: func(cmd *cobra.Command, args []string) error {
		term := newTerminal(cmd.OutOrStdout())
		term.markers = showMarkers

		s, err := openSession(cmd.Context(), term, true)
		if err != nil {
			return err
		}
		defer s.Close()

		if len(s.app.Workouts()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workouts yet")
		}
		return nil
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Sort workouts by distance, longest first, and save that order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.app.SortByDistance(cmd.Context()); err != nil {
			return fmt.Errorf("Failed to sort workouts: %w", err)
		}
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [id]",
	Short: "Select a workout and centre the map on it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := s.app.SelectWorkout(cmd.Context(), s.resolve(args[0])); err != nil {
			return fmt.Errorf("Failed to save selection: %w", err)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&showMarkers, "markers", false, "Also print map markers")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(selectCmd)
}

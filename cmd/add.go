package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/mapty/internal/models"
)

// inputFlags are the form fields shared by add and edit.
type inputFlags struct {
	workoutType string
	distance    string
	duration    string
	cadence     string
	elevation   string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.workoutType, "type", "t", "running", "Workout type: running or cycling")
	cmd.Flags().StringVarP(&f.distance, "distance", "d", "", "Distance in km")
	cmd.Flags().StringVarP(&f.duration, "duration", "m", "", "Duration in minutes")
	cmd.Flags().StringVarP(&f.cadence, "cadence", "c", "", "Cadence in steps/min (running)")
	cmd.Flags().StringVarP(&f.elevation, "elevation", "e", "", "Elevation gain in meters (cycling)")
}

func (f *inputFlags) raw() models.RawInput {
	return models.RawInput{
		Type:      f.workoutType,
		Distance:  f.distance,
		Duration:  f.duration,
		Cadence:   f.cadence,
		Elevation: f.elevation,
	}
}

// rejected tells validation failures, already shown as alerts, apart from real errors.
func rejected(err error) bool {
	var verr *models.ValidationError
	return errors.As(err, &verr) || errors.Is(err, models.ErrUnknownType)
}

var (
	addInput inputFlags
	addLat   float64
	addLng   float64
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a workout at the given coordinates",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), newTerminal(cmd.OutOrStdout()), false)
		if err != nil {
			return err
		}
		defer s.Close()

		w, err := s.app.SubmitNewWorkout(cmd.Context(), models.Coords{Lat: addLat, Lng: addLng}, addInput.raw())
		if err != nil {
			if rejected(err) {
				return fmt.Errorf("Workout not saved: %w", err)
			}
			return fmt.Errorf("Failed to save workout: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged %s (%s)\n", w.Description, w.ID)
		return nil
	},
}

func init() {
	addInput.register(addCmd)
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "Latitude")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "Longitude")
	addCmd.MarkFlagRequired("lat")
	addCmd.MarkFlagRequired("lng")

	rootCmd.AddCommand(addCmd)
}

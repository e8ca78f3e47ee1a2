package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/misterclayt0n/mapty/internal/app"
	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/utils"
)

// terminal prints render commands. Markers are only shown with --markers.
type terminal struct {
	out     io.Writer
	muted   bool
	markers bool

	cyan, yellow, red, green func(a ...interface{}) string
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{
		out:    out,
		cyan:   color.New(color.FgCyan).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
	}
}

func icon(t models.WorkoutType) string {
	if t == models.TypeRunning {
		return "🏃"
	}
	return "🚴"
}

func (t *terminal) Render(cmd app.Command) {
	if t.muted {
		return
	}

	switch cmd.Kind {
	case app.AddMarker:
		if t.markers {
			fmt.Fprintf(t.out, "📍 %s %s at %.5f, %.5f\n", icon(cmd.Workout.Type), cmd.Workout.Description, cmd.Coords.Lat, cmd.Coords.Lng)
		}
	case app.RenderListItem:
		t.listItem(cmd.Workout)
	case app.RemoveItem:
		fmt.Fprintf(t.out, "🗑  Removed %s (%s)\n", cmd.Workout.Description, utils.ShortID(cmd.Workout.ID))
	case app.FullReset:
		fmt.Fprintln(t.out, t.yellow("── workouts ──"))
	case app.CenterMap:
		fmt.Fprintf(t.out, "🧭 Map centred on %.5f, %.5f (zoom %d)\n", cmd.Coords.Lat, cmd.Coords.Lng, cmd.Zoom)
	case app.Alert:
		fmt.Fprintf(t.out, "%s %s\n", t.red("⚠"), cmd.Message)
	case app.HideForm:
	}
}

func (t *terminal) listItem(w *models.Workout) {
	fmt.Fprintf(t.out, "%s %s %s\n", icon(w.Type), t.green(w.Description), t.cyan("["+utils.ShortID(w.ID)+"]"))
	fmt.Fprintf(t.out, "   %s km   ⏱ %s min", utils.Number(w.Distance), utils.Number(w.Duration))

	if pace, ok := w.Pace(); ok {
		fmt.Fprintf(t.out, "   ⚡️ %s min/km   🦶 %s spm", utils.Fixed1(pace), utils.Number(w.Running.Cadence))
	}
	if speed, ok := w.Speed(); ok {
		fmt.Fprintf(t.out, "   ⚡️ %s km/h   ⛰ %s m", utils.Fixed1(speed), utils.Number(w.Cycling.ElevationGain))
	}
	fmt.Fprintf(t.out, "\n   %s %s   %s %d\n", t.yellow("Logged:"), utils.FormatLocal(w.CreatedAt), t.yellow("Clicks:"), w.Clicks)
}

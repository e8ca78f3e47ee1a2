package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkoutType string

const (
	TypeRunning WorkoutType = "running"
	TypeCycling WorkoutType = "cycling"
)

// Coords is a [lat, lng] pair.
type Coords struct {
	Lat float64
	Lng float64
}

type Workout struct {
	ID          string
	Type        WorkoutType
	CreatedAt   time.Time
	Coords      Coords
	Distance    float64 // km
	Duration    float64 // min
	Clicks      int
	Description string

	// Exactly one of these is set, matching Type.
	Running *RunningMetrics
	Cycling *CyclingMetrics
}

type RunningMetrics struct {
	Cadence float64 // steps/min
	Pace    float64 // min/km
}

type CyclingMetrics struct {
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// Spec holds the already coerced values a workout is built from.
type Spec struct {
	Type          WorkoutType
	Coords        Coords
	Distance      float64
	Duration      float64
	Cadence       float64
	ElevationGain float64
}

// variant is the per-type behaviour: which inputs must hold and how the
// derived metrics are computed.
type variant struct {
	validate func(s Spec) error
	derive   func(w *Workout, s Spec)
}

var variants = map[WorkoutType]variant{
	TypeRunning: {
		validate: func(s Spec) error {
			return checkInputs(allFinite(s.Distance, s.Duration, s.Cadence) &&
				allPositive(s.Distance, s.Duration, s.Cadence) &&
				allFinite(CalcPace(s.Distance, s.Duration)))
		},
		derive: func(w *Workout, s Spec) {
			w.Running = &RunningMetrics{Cadence: s.Cadence, Pace: CalcPace(w.Distance, w.Duration)}
			w.Cycling = nil
		},
	},
	TypeCycling: {
		// Elevation gain only has to be finite, it may be zero or negative.
		validate: func(s Spec) error {
			return checkInputs(allFinite(s.Distance, s.Duration, s.ElevationGain) &&
				allPositive(s.Distance, s.Duration) &&
				allFinite(CalcSpeed(s.Distance, s.Duration)))
		},
		derive: func(w *Workout, s Spec) {
			w.Cycling = &CyclingMetrics{ElevationGain: s.ElevationGain, Speed: CalcSpeed(w.Distance, w.Duration)}
			w.Running = nil
		},
	},
}

// ValidType reports whether t is a known workout type.
func ValidType(t WorkoutType) bool {
	_, ok := variants[t]
	return ok
}

// NewWorkout validates s and builds a workout with a fresh id and all derived
// fields computed. On error nothing is returned.
func NewWorkout(s Spec, createdAt time.Time) (*Workout, error) {
	v, ok := variants[s.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
	}
	if err := v.validate(s); err != nil {
		return nil, err
	}

	w := &Workout{
		ID:        uuid.New().String(),
		Type:      s.Type,
		CreatedAt: createdAt,
		Coords:    s.Coords,
		Distance:  s.Distance,
		Duration:  s.Duration,
	}
	v.derive(w, s)
	w.Description = Describe(w.Type, w.CreatedAt)

	return w, nil
}

// CalcPace returns minutes per km.
func CalcPace(distance, duration float64) float64 {
	return duration / distance
}

// CalcSpeed returns km/h.
func CalcSpeed(distance, duration float64) float64 {
	return distance / (duration / 60)
}

// Describe builds the "Running on April 14" style label.
func Describe(t WorkoutType, at time.Time) string {
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s %d", name, at.Month(), at.Day())
}

func (w *Workout) Pace() (float64, bool) {
	if w.Running == nil {
		return 0, false
	}
	return w.Running.Pace, true
}

func (w *Workout) Speed() (float64, bool) {
	if w.Cycling == nil {
		return 0, false
	}
	return w.Cycling.Speed, true
}

func (w *Workout) Click() {
	w.Clicks++
}

// Clone returns a deep copy so callers can't mutate store-owned records.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	if w.Running != nil {
		r := *w.Running
		c.Running = &r
	}
	if w.Cycling != nil {
		cy := *w.Cycling
		c.Cycling = &cy
	}
	return &c
}

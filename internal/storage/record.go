package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/store"
)

var ErrCorruptRecord = errors.New("corrupt workout record")

// record is the flat shape a workout is persisted in. The type field says
// which of the variant fields are present.
type record struct {
	ID          string     `json:"id" toml:"id"`
	Type        string     `json:"type" toml:"type"`
	Coords      [2]float64 `json:"coords" toml:"coords"`
	Distance    float64    `json:"distance" toml:"distance"`
	Duration    float64    `json:"duration" toml:"duration"`
	CreatedAt   time.Time  `json:"createdAt" toml:"created_at"`
	ClickCount  int        `json:"clickCount" toml:"click_count"`
	Description string     `json:"description" toml:"description"`

	Cadence *float64 `json:"cadence,omitempty" toml:"cadence,omitempty"`
	Pace    *float64 `json:"pace,omitempty" toml:"pace,omitempty"`

	ElevationGain *float64 `json:"elevationGain,omitempty" toml:"elevation_gain,omitempty"`
	Speed         *float64 `json:"speed,omitempty" toml:"speed,omitempty"`
}

func toRecord(w *models.Workout) record {
	r := record{
		ID:          w.ID,
		Type:        string(w.Type),
		Coords:      [2]float64{w.Coords.Lat, w.Coords.Lng},
		Distance:    w.Distance,
		Duration:    w.Duration,
		CreatedAt:   w.CreatedAt,
		ClickCount:  w.Clicks,
		Description: w.Description,
	}
	if w.Running != nil {
		cadence, pace := w.Running.Cadence, w.Running.Pace
		r.Cadence, r.Pace = &cadence, &pace
	}
	if w.Cycling != nil {
		gain, speed := w.Cycling.ElevationGain, w.Cycling.Speed
		r.ElevationGain, r.Speed = &gain, &speed
	}
	return r
}

// toWorkout rebuilds the typed workout from its discriminator. Derived
// values are taken as stored, never recomputed.
func toWorkout(r record) (*models.Workout, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrCorruptRecord)
	}

	w := &models.Workout{
		ID:          r.ID,
		Type:        models.WorkoutType(r.Type),
		CreatedAt:   r.CreatedAt,
		Coords:      models.Coords{Lat: r.Coords[0], Lng: r.Coords[1]},
		Distance:    r.Distance,
		Duration:    r.Duration,
		Clicks:      r.ClickCount,
		Description: r.Description,
	}

	switch w.Type {
	case models.TypeRunning:
		if r.Cadence == nil || r.Pace == nil {
			return nil, fmt.Errorf("%w: running workout %s without cadence/pace", ErrCorruptRecord, r.ID)
		}
		w.Running = &models.RunningMetrics{Cadence: *r.Cadence, Pace: *r.Pace}
	case models.TypeCycling:
		if r.ElevationGain == nil || r.Speed == nil {
			return nil, fmt.Errorf("%w: cycling workout %s without elevationGain/speed", ErrCorruptRecord, r.ID)
		}
		w.Cycling = &models.CyclingMetrics{ElevationGain: *r.ElevationGain, Speed: *r.Speed}
	default:
		return nil, fmt.Errorf("%w: workout %s has unknown type %q", ErrCorruptRecord, r.ID, r.Type)
	}

	if w.Clicks < 0 {
		return nil, fmt.Errorf("%w: workout %s has negative click count", ErrCorruptRecord, r.ID)
	}

	return w, nil
}

func toRecords(s *store.Store) []record {
	ws := s.All()
	out := make([]record, 0, len(ws))
	for _, w := range ws {
		out = append(out, toRecord(w))
	}
	return out
}

func fromRecords(rs []record) (*store.Store, error) {
	st := &store.Store{}
	for _, r := range rs {
		w, err := toWorkout(r)
		if err != nil {
			return nil, err
		}
		if err := st.Add(w); err != nil {
			return nil, fmt.Errorf("%w: workout %s: %v", ErrCorruptRecord, r.ID, err)
		}
	}
	return st, nil
}

// Package store keeps the ordered, in-memory list of workouts.
package store

import (
	"errors"
	"sort"

	"github.com/misterclayt0n/mapty/internal/models"
)

var (
	ErrDuplicateID = errors.New("workout id already in store")
	ErrNilWorkout  = errors.New("nil workout")
)

// Store is ordered by insertion unless sorted. Not safe for concurrent use;
// the controller owns it.
type Store struct {
	workouts []*models.Workout
}

// New returns a store seeded with ws, in order. Duplicate ids are rejected.
func New(ws ...*models.Workout) (*Store, error) {
	s := &Store{}
	for _, w := range ws {
		if err := s.Add(w); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Add(w *models.Workout) error {
	if w == nil {
		return ErrNilWorkout
	}
	if s.indexOf(w.ID) >= 0 {
		return ErrDuplicateID
	}
	s.workouts = append(s.workouts, w)
	return nil
}

func (s *Store) FindByID(id string) (*models.Workout, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.workouts[i], true
}

// RemoveByID is idempotent. It reports whether a workout was removed.
func (s *Store) RemoveByID(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
	return true
}

// Replace swaps the workout stored under id for w, keeping its position.
// w takes over the id; every other field comes from w, including its type.
func (s *Store) Replace(id string, w *models.Workout) (*models.Workout, bool) {
	i := s.indexOf(id)
	if i < 0 || w == nil {
		return nil, false
	}
	w.ID = id
	s.workouts[i] = w
	return w, true
}

// SortByDistanceDescending is stable: equal distances keep their order.
func (s *Store) SortByDistanceDescending() {
	sort.SliceStable(s.workouts, func(i, j int) bool {
		return s.workouts[i].Distance > s.workouts[j].Distance
	})
}

func (s *Store) Clear() {
	s.workouts = nil
}

func (s *Store) Len() int {
	return len(s.workouts)
}

// All returns the workouts in display order. The slice is a copy, the
// workouts are not.
func (s *Store) All() []*models.Workout {
	out := make([]*models.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

func (s *Store) indexOf(id string) int {
	for i, w := range s.workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}

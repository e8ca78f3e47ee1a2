package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/mapty/internal/models"
)

func workout(id string, distance float64) *models.Workout {
	return &models.Workout{
		ID:       id,
		Type:     models.TypeCycling,
		Distance: distance,
		Duration: 60,
		Cycling:  &models.CyclingMetrics{Speed: distance},
	}
}

func ids(s *Store) []string {
	var out []string
	for _, w := range s.All() {
		out = append(out, w.ID)
	}
	return out
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s, err := New(workout("a", 1), workout("b", 2))
	require.NoError(t, err)
	require.NoError(t, s.Add(workout("c", 3)))
	require.Equal(t, []string{"a", "b", "c"}, ids(s))
	require.Equal(t, 3, s.Len())
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s, err := New(workout("a", 1))
	require.NoError(t, err)

	require.ErrorIs(t, s.Add(workout("a", 9)), ErrDuplicateID)
	require.ErrorIs(t, s.Add(nil), ErrNilWorkout)
	require.Equal(t, 1, s.Len())

	_, err = New(workout("x", 1), workout("x", 2))
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestFindByID(t *testing.T) {
	s, _ := New(workout("a", 1), workout("b", 2))

	w, ok := s.FindByID("b")
	require.True(t, ok)
	require.Equal(t, 2.0, w.Distance)

	w, ok = s.FindByID("missing")
	require.False(t, ok)
	require.Nil(t, w)
}

func TestRemoveByIDIsIdempotent(t *testing.T) {
	once, _ := New(workout("a", 1), workout("b", 2), workout("c", 3))
	twice, _ := New(workout("a", 1), workout("b", 2), workout("c", 3))

	require.True(t, once.RemoveByID("b"))

	require.True(t, twice.RemoveByID("b"))
	require.False(t, twice.RemoveByID("b"))

	require.Equal(t, ids(once), ids(twice))
	require.Equal(t, []string{"a", "c"}, ids(twice))
}

func TestRemoveMissingLeavesStoreUnchanged(t *testing.T) {
	s, _ := New(workout("a", 1), workout("b", 2))
	require.False(t, s.RemoveByID("nope"))
	require.Equal(t, []string{"a", "b"}, ids(s))
}

func TestReplaceKeepsIDAndPosition(t *testing.T) {
	s, _ := New(workout("a", 1), workout("b", 2), workout("c", 3))

	run, err := models.NewWorkout(models.Spec{
		Type: models.TypeRunning, Distance: 8, Duration: 40, Cadence: 170,
	}, time.Now())
	require.NoError(t, err)

	got, ok := s.Replace("b", run)
	require.True(t, ok)
	require.Equal(t, "b", got.ID)
	require.Equal(t, []string{"a", "b", "c"}, ids(s))

	w, _ := s.FindByID("b")
	require.Equal(t, models.TypeRunning, w.Type)
	require.Nil(t, w.Cycling)
	require.Equal(t, 5.0, w.Running.Pace)
}

func TestReplaceMissingIsNoop(t *testing.T) {
	s, _ := New(workout("a", 1))
	_, ok := s.Replace("zzz", workout("q", 5))
	require.False(t, ok)
	require.Equal(t, []string{"a"}, ids(s))
}

func TestSortByDistanceDescendingIsStable(t *testing.T) {
	s, _ := New(workout("1", 5), workout("2", 5), workout("3", 10))
	s.SortByDistanceDescending()
	require.Equal(t, []string{"3", "1", "2"}, ids(s))
}

func TestClear(t *testing.T) {
	s, _ := New(workout("a", 1), workout("b", 2))
	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.All())

	require.NoError(t, s.Add(workout("a", 1)))
}

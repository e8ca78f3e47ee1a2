package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func openSQLite(t *testing.T) *SQLSlot {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "mapty.db")
	slot, err := Open(context.Background(), DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { slot.Close() })
	return slot
}

func sampleStore(t *testing.T) *store.Store {
	t.Helper()
	created := time.Date(2026, time.March, 14, 7, 0, 0, 0, time.UTC)

	run, err := models.NewWorkout(models.Spec{
		Type: models.TypeRunning, Coords: models.Coords{Lat: 10, Lng: 10},
		Distance: 5, Duration: 25, Cadence: 180,
	}, created)
	require.NoError(t, err)
	run.Click()
	run.Click()

	ride, err := models.NewWorkout(models.Spec{
		Type: models.TypeCycling, Coords: models.Coords{Lat: 45.5, Lng: -73.6},
		Distance: 27, Duration: 95, ElevationGain: 0,
	}, created.Add(24*time.Hour))
	require.NoError(t, err)

	st, err := store.New(run, ride)
	require.NoError(t, err)
	return st
}

// requireSameWorkouts compares two stores field by field. Timestamps are
// compared as instants since a round trip may change their location.
func requireSameWorkouts(t *testing.T, want, got *store.Store) {
	t.Helper()
	wa, ga := want.All(), got.All()
	require.Len(t, ga, len(wa))
	for i := range wa {
		w, g := wa[i].Clone(), ga[i].Clone()
		require.True(t, w.CreatedAt.Equal(g.CreatedAt), "createdAt of %s: %v vs %v", w.ID, w.CreatedAt, g.CreatedAt)
		w.CreatedAt, g.CreatedAt = time.Time{}, time.Time{}
		require.Equal(t, w, g)
	}
}

func TestSQLSlotGetSetDelete(t *testing.T) {
	ctx := context.Background()
	slot := openSQLite(t)

	_, ok, err := slot.Get(ctx, "workouts")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, slot.Set(ctx, "workouts", "[]"))
	require.NoError(t, slot.Set(ctx, "workouts", `[{"id":"x"}]`))

	v, ok, err := slot.Get(ctx, "workouts")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"x"}]`, v)

	require.NoError(t, slot.Delete(ctx, "workouts"))
	require.NoError(t, slot.Delete(ctx, "workouts"))

	_, ok, err = slot.Get(ctx, "workouts")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "postgres://localhost/db")
	require.Error(t, err)

	_, err = Open(context.Background(), DriverSQLite, "")
	require.Error(t, err)
}

func TestSaveLoadRoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(openSQLite(t), "", quiet)

	original := sampleStore(t)
	require.NoError(t, p.Save(ctx, original))

	loaded := p.Load(ctx)
	requireSameWorkouts(t, original, loaded)

	run := loaded.All()[0]
	pace, ok := run.Pace()
	require.True(t, ok)
	require.Equal(t, 5.0, pace)
	require.Equal(t, 2, run.Clicks)

	ride := loaded.All()[1]
	require.Nil(t, ride.Running)
	require.NotNil(t, ride.Cycling)
	require.Equal(t, 0.0, ride.Cycling.ElevationGain)
}

func TestSaveLoadRoundTripAfterEdits(t *testing.T) {
	ctx := context.Background()
	p := NewPersistence(NewMemorySlot(), "workouts", quiet)

	st := sampleStore(t)
	first := st.All()[0]
	edited, err := models.NewWorkout(models.Spec{
		Type: models.TypeCycling, Coords: first.Coords, Distance: 40, Duration: 120, ElevationGain: 310,
	}, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	st.Replace(first.ID, edited)
	st.SortByDistanceDescending()
	require.NoError(t, p.Save(ctx, st))

	requireSameWorkouts(t, st, p.Load(ctx))
}

func TestSavedPayloadShape(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	p := NewPersistence(slot, "workouts", quiet)
	require.NoError(t, p.Save(ctx, sampleStore(t)))

	raw, ok, err := slot.Get(ctx, "workouts")
	require.NoError(t, err)
	require.True(t, ok)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &entries))
	require.Len(t, entries, 2)

	run := entries[0]
	require.Equal(t, "running", run["type"])
	require.Equal(t, []any{10.0, 10.0}, run["coords"])
	require.Equal(t, 5.0, run["pace"])
	require.Equal(t, 180.0, run["cadence"])
	require.Equal(t, 2.0, run["clickCount"])
	require.Equal(t, "Running on March 14", run["description"])
	require.Contains(t, run, "createdAt")
	require.NotContains(t, run, "speed")
	require.NotContains(t, run, "elevationGain")

	ride := entries[1]
	require.Equal(t, "cycling", ride["type"])
	require.Contains(t, ride, "speed")
	require.Contains(t, ride, "elevationGain")
	require.NotContains(t, ride, "cadence")
}

// TestLoadUsesStoredDerivedFields makes sure derived values are restored
// as data: a stored pace that disagrees with the formula survives.
func TestLoadUsesStoredDerivedFields(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, "workouts", `[{"id":"r1","type":"running","coords":[1,2],"distance":5,"duration":25,
		"createdAt":"2026-01-02T10:00:00Z","clickCount":3,"description":"Running on January 2","cadence":170,"pace":4.2}]`))

	st := NewPersistence(slot, "workouts", quiet).Load(ctx)
	require.Equal(t, 1, st.Len())
	w, ok := st.FindByID("r1")
	require.True(t, ok)
	require.Equal(t, 4.2, w.Running.Pace)
	require.Equal(t, 3, w.Clicks)
	require.Equal(t, "Running on January 2", w.Description)
	require.Equal(t, models.Coords{Lat: 1, Lng: 2}, w.Coords)
}

func TestLoadDegradesToEmpty(t *testing.T) {
	cases := map[string]string{
		"not json":         `{{{`,
		"wrong shape":      `{"id":"a"}`,
		"unknown type":     `[{"id":"a","type":"rowing","distance":1,"duration":1}]`,
		"running no pace":  `[{"id":"a","type":"running","distance":1,"duration":1,"cadence":100}]`,
		"cycling no speed": `[{"id":"a","type":"cycling","distance":1,"duration":1,"elevationGain":3}]`,
		"missing id":       `[{"type":"cycling","distance":1,"duration":1,"elevationGain":3,"speed":1}]`,
		"negative clicks":  `[{"id":"a","type":"cycling","distance":1,"duration":1,"elevationGain":3,"speed":1,"clickCount":-2}]`,
		"duplicate ids": `[{"id":"a","type":"cycling","distance":1,"duration":1,"elevationGain":3,"speed":1},
			{"id":"a","type":"cycling","distance":2,"duration":1,"elevationGain":3,"speed":2}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			slot := NewMemorySlot()
			require.NoError(t, slot.Set(ctx, "workouts", payload))
			st := NewPersistence(slot, "workouts", quiet).Load(ctx)
			require.NotNil(t, st)
			require.Equal(t, 0, st.Len())
		})
	}
}

func TestLoadAbsentSlot(t *testing.T) {
	st := NewPersistence(NewMemorySlot(), "workouts", quiet).Load(context.Background())
	require.Equal(t, 0, st.Len())
}

func TestLoadNullPayload(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, "workouts", "null"))
	require.Equal(t, 0, NewPersistence(slot, "workouts", quiet).Load(ctx).Len())
}

func TestClearRemovesSlot(t *testing.T) {
	ctx := context.Background()
	slot := openSQLite(t)
	p := NewPersistence(slot, "workouts", quiet)
	require.NoError(t, p.Save(ctx, sampleStore(t)))

	require.NoError(t, p.Clear(ctx))

	_, ok, err := slot.Get(ctx, "workouts")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, p.Load(ctx).Len())
}

func TestTOMLExportImport(t *testing.T) {
	original := sampleStore(t)

	var buf bytes.Buffer
	require.NoError(t, ExportTOML(&buf, original))
	require.Contains(t, buf.String(), "[[workout]]")
	require.Contains(t, buf.String(), `type = "cycling"`)

	imported, err := ImportTOML(strings.NewReader(buf.String()))
	require.NoError(t, err)
	requireSameWorkouts(t, original, imported)
}

func TestTOMLExportImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.toml")
	original := sampleStore(t)

	require.NoError(t, ExportFile(path, original))
	imported, err := ImportFile(path)
	require.NoError(t, err)
	requireSameWorkouts(t, original, imported)
}

func TestImportTOMLReportsCorruptRecords(t *testing.T) {
	_, err := ImportTOML(strings.NewReader(`
[[workout]]
id = "a"
type = "running"
coords = [1.0, 2.0]
distance = 5.0
duration = 20.0
`))
	require.ErrorIs(t, err, ErrCorruptRecord)

	_, err = ImportTOML(strings.NewReader("this is = = not toml"))
	require.Error(t, err)
}

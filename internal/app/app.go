// Package app wires raw UI events to the workout store, its persistence and
// the renderer.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/misterclayt0n/mapty/internal/store"
)

const DefaultZoom = 13

var (
	ErrNoMatch     = errors.New("no workout matches")
	ErrAmbiguousID = errors.New("id prefix matches several workouts")
)

// Persister is the durable side of the store.
type Persister interface {
	Save(ctx context.Context, s *store.Store) error
	Load(ctx context.Context) *store.Store
	Clear(ctx context.Context) error
}

type App struct {
	mu      sync.Mutex
	store   *store.Store
	persist Persister
	render  Renderer
	log     *slog.Logger
	now     func() time.Time
	zoom    int
}

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock sets the time source used for new workouts.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

func WithZoom(zoom int) Option {
	return func(a *App) {
		if zoom > 0 {
			a.zoom = zoom
		}
	}
}

// New builds the controller. A nil store starts empty and a nil renderer
// drops every command.
func New(st *store.Store, p Persister, r Renderer, opts ...Option) *App {
	if st == nil {
		st = &store.Store{}
	}
	if r == nil {
		r = discard{}
	}
	a := &App{
		store:   st,
		persist: p,
		render:  r,
		log:     slog.Default(),
		now:     time.Now,
		zoom:    DefaultZoom,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Restore replaces the in-memory store with the persisted one and renders
// every workout.
func (a *App) Restore(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store = a.persist.Load(ctx)
	for _, w := range a.store.All() {
		a.emit(Command{Kind: RenderListItem, Workout: w})
		a.emit(Command{Kind: AddMarker, Workout: w, Coords: w.Coords})
	}
	a.log.Info("workouts restored", "count", a.store.Len())
}

// SubmitNewWorkout validates the raw form input and records a workout at
// coords. Invalid input is alerted and returned, nothing is stored.
func (a *App) SubmitNewWorkout(ctx context.Context, coords models.Coords, raw models.RawInput) (*models.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, err := a.build(raw, coords)
	if err != nil {
		return nil, err
	}
	if err := a.store.Add(w); err != nil {
		return nil, fmt.Errorf("adding workout: %w", err)
	}

	a.emit(Command{Kind: AddMarker, Workout: w, Coords: w.Coords})
	a.emit(Command{Kind: RenderListItem, Workout: w})
	a.emit(Command{Kind: HideForm})

	a.log.Info("workout added", "id", w.ID, "type", w.Type)
	if err := a.persist.Save(ctx, a.store); err != nil {
		return w.Clone(), err
	}
	return w.Clone(), nil
}

// EditWorkout rebuilds the workout from raw input, keeping its id and
// coordinates. The type may change. An unknown id is a no-op.
func (a *App) EditWorkout(ctx context.Context, id string, raw models.RawInput) (*models.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	old, ok := a.store.FindByID(id)
	if !ok {
		a.log.Debug("edit of unknown workout ignored", "id", id)
		return nil, nil
	}

	w, err := a.build(raw, old.Coords)
	if err != nil {
		return nil, err
	}
	a.store.Replace(id, w)

	a.emit(Command{Kind: RemoveItem, Workout: old.Clone()})
	a.emit(Command{Kind: AddMarker, Workout: w, Coords: w.Coords})
	a.emit(Command{Kind: RenderListItem, Workout: w})
	a.emit(Command{Kind: HideForm})

	a.log.Info("workout edited", "id", id, "type", w.Type)
	if err := a.persist.Save(ctx, a.store); err != nil {
		return w.Clone(), err
	}
	return w.Clone(), nil
}

// DeleteWorkout removes the workout. Deleting an unknown id does nothing.
func (a *App) DeleteWorkout(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok := a.store.FindByID(id)
	if !ok || !a.store.RemoveByID(id) {
		a.log.Debug("delete of unknown workout ignored", "id", id)
		return nil
	}

	a.emit(Command{Kind: RemoveItem, Workout: w.Clone()})
	a.log.Info("workout deleted", "id", id)
	return a.persist.Save(ctx, a.store)
}

// DeleteAll empties the store and wipes the persisted slot.
func (a *App) DeleteAll(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// The slot goes first so a failed clear leaves memory matching it.
	if err := a.persist.Clear(ctx); err != nil {
		return err
	}
	a.store.Clear()
	a.emit(Command{Kind: FullReset})
	a.log.Info("all workouts deleted")
	return nil
}

// SortByDistance orders workouts longest first, saves that order and
// re-renders the whole list.
func (a *App) SortByDistance(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.store.SortByDistanceDescending()
	if err := a.persist.Save(ctx, a.store); err != nil {
		return err
	}

	a.emit(Command{Kind: FullReset})
	for _, w := range a.store.All() {
		a.emit(Command{Kind: RenderListItem, Workout: w})
		a.emit(Command{Kind: AddMarker, Workout: w, Coords: w.Coords})
	}
	return nil
}

// SelectWorkout counts a click on the workout and centres the map on it.
func (a *App) SelectWorkout(ctx context.Context, id string) (*models.Workout, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, ok := a.store.FindByID(id)
	if !ok {
		a.log.Debug("select of unknown workout ignored", "id", id)
		return nil, nil
	}

	w.Click()
	a.emit(Command{Kind: CenterMap, Workout: w, Coords: w.Coords, Zoom: a.zoom})

	if err := a.persist.Save(ctx, a.store); err != nil {
		return w.Clone(), err
	}
	return w.Clone(), nil
}

// Workouts returns copies of the workouts in display order.
func (a *App) Workouts() []*models.Workout {
	a.mu.Lock()
	defer a.mu.Unlock()

	ws := a.store.All()
	for i, w := range ws {
		ws[i] = w.Clone()
	}
	return ws
}

// ResolveID expands an id prefix to the full id. It returns ErrNoMatch when
// the prefix matches nothing and ErrAmbiguousID when it matches more than one
// workout.
func (a *App) ResolveID(prefix string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if prefix == "" {
		return "", ErrNoMatch
	}
	if _, ok := a.store.FindByID(prefix); ok {
		return prefix, nil
	}

	match := ""
	for _, w := range a.store.All() {
		if strings.HasPrefix(w.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
			}
			match = w.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNoMatch, prefix)
	}
	return match, nil
}

func (a *App) build(raw models.RawInput, coords models.Coords) (*models.Workout, error) {
	w, err := models.NewWorkout(models.ParseInput(raw, coords), a.now())
	if err != nil {
		a.emit(Command{Kind: Alert, Message: err.Error()})
		a.log.Debug("workout input rejected", "error", err)
		return nil, err
	}
	return w, nil
}

// emit hands the renderer a copy so it can't reach into the store.
func (a *App) emit(cmd Command) {
	if cmd.Workout != nil {
		cmd.Workout = cmd.Workout.Clone()
	}
	a.render.Render(cmd)
}

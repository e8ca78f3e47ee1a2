package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/misterclayt0n/mapty/internal/app"
	"github.com/misterclayt0n/mapty/internal/config"
	"github.com/misterclayt0n/mapty/internal/storage"
	"github.com/misterclayt0n/mapty/internal/utils"
)

// session is one CLI invocation: config, durable slot and a restored app.
type session struct {
	app     *app.App
	persist *storage.Persistence
	term    *terminal
	closer  io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openSlot(ctx context.Context, cfg *config.Config) (storage.Slot, io.Closer, error) {
	if ephemeral {
		return storage.NewMemorySlot(), nopCloser{}, nil
	}

	if cfg.Storage.Driver == storage.DriverSQLite {
		if dir := sqliteDir(cfg.Storage.ConnectionString); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("creating database dir: %w", err)
			}
		}
	}

	slot, err := storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.ConnectionString)
	if err != nil {
		return nil, nil, err
	}
	return slot, slot, nil
}

// sqliteDir extracts the directory of a "file:" DSN.
func sqliteDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return filepath.Dir(path)
}

// openSession loads config, opens storage and restores the workouts into
// term. When showRestored is false the restore renders nothing.
func openSession(ctx context.Context, term *terminal, showRestored bool) (*session, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}
	if cfg.Display.Timezone != "" {
		if err := utils.SetDisplayZone(cfg.Display.Timezone); err != nil {
			return nil, fmt.Errorf("Invalid display timezone: %w", err)
		}
	}

	log := newLogger()
	slot, closer, err := openSlot(ctx, cfg)
	if err != nil {
		return nil, err
	}

	persist := storage.NewPersistence(slot, cfg.Storage.SlotKey, log)
	a := app.New(nil, persist, term, app.WithLogger(log), app.WithZoom(cfg.Map.ZoomLevel))

	term.muted = !showRestored
	a.Restore(ctx)
	term.muted = false

	return &session{app: a, persist: persist, term: term, closer: closer}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// resolve turns an id prefix into a full id. Unknown and ambiguous prefixes
// are passed through so the app treats them as a no-op.
func (s *session) resolve(prefix string) string {
	id, err := s.app.ResolveID(prefix)
	switch {
	case err == nil:
		return id
	case errors.Is(err, app.ErrAmbiguousID):
		fmt.Fprintf(s.term.out, "%q matches several workouts, give more of the id\n", prefix)
	default:
		fmt.Fprintf(s.term.out, "No workout matches %q\n", prefix)
	}
	return prefix
}

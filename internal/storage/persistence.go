package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/misterclayt0n/mapty/internal/store"
)

const DefaultKey = "workouts"

// Persistence writes the whole store into one slot and reads it back.
type Persistence struct {
	slot Slot
	key  string
	log  *slog.Logger
}

func NewPersistence(slot Slot, key string, log *slog.Logger) *Persistence {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &Persistence{slot: slot, key: key, log: log}
}

// Save overwrites the slot with every workout in store order.
func (p *Persistence) Save(ctx context.Context, s *store.Store) error {
	data, err := json.Marshal(toRecords(s))
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := p.slot.Set(ctx, p.key, string(data)); err != nil {
		return fmt.Errorf("saving workouts: %w", err)
	}
	p.log.Debug("workouts saved", "key", p.key, "count", s.Len())
	return nil
}

// Load never fails: a missing, unreadable or corrupt slot gives an empty store.
func (p *Persistence) Load(ctx context.Context) *store.Store {
	value, ok, err := p.slot.Get(ctx, p.key)
	if err != nil {
		p.log.Warn("reading workouts failed, starting empty", "key", p.key, "error", err)
		return &store.Store{}
	}
	if !ok {
		return &store.Store{}
	}

	var rs []record
	if err := json.Unmarshal([]byte(value), &rs); err != nil {
		p.log.Warn("stored workouts are not valid JSON, starting empty", "key", p.key, "error", err)
		return &store.Store{}
	}

	st, err := fromRecords(rs)
	if err != nil {
		p.log.Warn("stored workouts are corrupt, starting empty", "key", p.key, "error", err)
		return &store.Store{}
	}
	p.log.Debug("workouts loaded", "key", p.key, "count", st.Len())
	return st
}

// Clear removes the slot entirely.
func (p *Persistence) Clear(ctx context.Context) error {
	if err := p.slot.Delete(ctx, p.key); err != nil {
		return fmt.Errorf("clearing workouts: %w", err)
	}
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog owns the recipe collection. Store holds the authoritative
// ordered list and writes the whole list back to a persist.Backend after
// every mutation; query.go derives filtered views and category lists from
// snapshots of it.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"recipebox/internal/models"
	"recipebox/internal/persist"
)

// DefaultKey is the backend key the collection is stored under.
const DefaultKey = "recipes"

// Store is the recipe collection. All methods are safe for concurrent use;
// operations are serialized so each mutation and its write-back happen as
// one step.
type Store struct {
	mu         sync.Mutex
	backend    persist.Backend
	key        string
	recipes    []models.Recipe
	persistErr error
	newID      func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the id source used by Add.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open loads the collection stored under key, falling back to a copy of seed
// when nothing usable is stored. A missing or corrupt value is not an error.
func Open(ctx context.Context, backend persist.Backend, key string, seed []models.Recipe, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     key,
		newID:   timeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}

	if stored, ok := persist.Load(ctx, backend, key, checkCollection); ok && stored != nil {
		s.recipes = stored
		slog.Info("recipe collection loaded", "key", key, "count", len(stored))
	} else {
		s.recipes = cloneAll(seed)
		slog.Info("recipe collection seeded", "key", key, "count", len(seed))
	}
	return s
}

// checkCollection rejects stored values that decode but cannot be a valid
// collection: entries without ids or with duplicate ids.
func checkCollection(recipes []models.Recipe) error {
	seen := make(map[string]struct{}, len(recipes))
	for i, r := range recipes {
		if r.ID == "" {
			return fmt.Errorf("recipe %d has no id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate recipe id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// timeOrderedID returns a UUIDv7 string, which sorts by creation time.
func timeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add assigns a fresh id to draft, normalizes it, prepends it to the
// collection and persists. It returns the stored recipe.
func (s *Store) Add(ctx context.Context, draft models.Draft) models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	r := draft.WithID(id).Normalize()
	s.recipes = slices.Insert(s.recipes, 0, r)
	s.persist(ctx)

	slog.Info("recipe added", "id", r.ID, "title", r.Title)
	return r.Clone()
}

// Update replaces the recipe with r.ID in place. It reports false and
// leaves the collection untouched when no recipe has that id.
func (s *Store) Update(ctx context.Context, r models.Recipe) (models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(r.ID)
	if i < 0 {
		slog.Debug("recipe update ignored, unknown id", "id", r.ID)
		return models.Recipe{}, false
	}

	r = r.Clone().Normalize()
	s.recipes[i] = r
	s.persist(ctx)

	slog.Info("recipe updated", "id", r.ID, "title", r.Title)
	return r.Clone(), true
}

// Remove deletes the recipe with id and returns it. It reports false when
// no recipe has that id.
func (s *Store) Remove(ctx context.Context, id string) (models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		slog.Debug("recipe remove ignored, unknown id", "id", id)
		return models.Recipe{}, false
	}

	removed := s.recipes[i]
	s.recipes = slices.Delete(s.recipes, i, i+1)
	s.persist(ctx)

	slog.Info("recipe removed", "id", id, "title", removed.Title)
	return removed, true
}

// List returns a copy of the collection in its current order.
func (s *Store) List() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.recipes)
}

// Get returns the recipe with id.
func (s *Store) Get(id string) (models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Recipe{}, false
	}
	return s.recipes[i].Clone(), true
}

// Filter applies q to the current collection.
func (s *Store) Filter(q Query) []models.Recipe {
	return Filter(s.List(), q)
}

// Categories lists the distinct categories in the current collection.
func (s *Store) Categories() []string {
	return Categories(s.List())
}

// Len returns the number of recipes in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipes)
}

// PersistErr returns the error from the most recent write-back, or nil if
// it succeeded. The in-memory collection stays authoritative either way.
func (s *Store) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// persist rewrites the whole collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	s.persistErr = persist.Save(ctx, s.backend, s.key, s.recipes)
}

// indexOf returns the position of id, or -1. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.recipes, func(r models.Recipe) bool { return r.ID == id })
}

func cloneAll(recipes []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(recipes))
	for i, r := range recipes {
		out[i] = r.Clone()
	}
	return out
}

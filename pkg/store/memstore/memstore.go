// Package memstore is an in-memory design store.
package memstore

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/matzehuels/dreamhouse/pkg/store"
)

// Store keeps designs in a map. Ids are decimal sequence numbers starting
// at 1, matching the SQL backends.
type Store struct {
	mu      sync.RWMutex
	next    int
	designs map[string]store.Design
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{next: 1, designs: make(map[string]store.Design)}
}

func (s *Store) Save(ctx context.Context, d store.Design) (string, error) {
	d, err := store.Prepare(d)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = strconv.Itoa(s.next)
	s.next++
	s.designs[d.ID] = d
	return d.ID, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]store.Summary, error) {
	s.mu.RLock()
	out := make([]store.Summary, 0, len(s.designs))
	for _, d := range s.designs {
		out = append(out, d.Summary())
	}
	s.mu.RUnlock()

	// Newest first; equal timestamps fall back to the higher id.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a > b
	})
	if limit = store.Limit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (store.Design, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.designs[id]
	if !ok {
		return store.Design{}, store.ErrNotFound(id)
	}
	d.Layout = d.Layout.Clone()
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.designs[id]; !ok {
		return store.ErrNotFound(id)
	}
	delete(s.designs, id)
	return nil
}

func (s *Store) Close() error { return nil }

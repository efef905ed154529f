// Package store holds the authoritative list of sources shown by the dashboard.
//
// The list is only ever replaced by a successful fetch; mutations go to the
// backend and the list follows by re-fetching.
package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/grundrisse/grundrisse/log"
	"github.com/grundrisse/grundrisse/source"
)

// ErrClosed is returned for operations started after Close.
var ErrClosed = errors.New("source store is closed")

// Backend is the remote registry.
type Backend interface {
	List(ctx context.Context) ([]source.Source, error)
	Create(ctx context.Context, draft source.Draft) (source.Source, error)
	Delete(ctx context.Context, id int) error
}

// Store is safe for concurrent use.
type Store struct {
	backend Backend

	mu         sync.RWMutex
	sources    []source.Source
	loading    bool
	generation uint64
	closed     bool
}

// New returns an empty store.
func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		sources: []source.Source{},
	}
}

// Sources returns a copy of the current list.
func (s *Store) Sources() []source.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sources)
}

// Len returns the number of sources in the current list.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sources)
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Close ends the store's lifetime. Responses that arrive later are dropped.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
}

// begin returns the generation a request started in, or false if the store is closed.
func (s *Store) begin() (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation, !s.closed
}

// Refresh replaces the list with the backend's.
// On failure the previous list is kept. Overlapping calls are allowed; whichever
// response arrives last wins.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	sources, err := s.backend.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return ErrClosed
	}

	s.loading = false
	if err != nil {
		log.Error(err)
		return err
	}

	s.sources = sources
	log.Infof("fetched %d sources", len(sources))
	return nil
}

// Create asks the backend to register draft. The list is left untouched;
// callers refresh once the submission is settled.
func (s *Store) Create(ctx context.Context, draft source.Draft) error {
	if _, ok := s.begin(); !ok {
		return ErrClosed
	}

	if _, err := s.backend.Create(ctx, draft); err != nil {
		log.Error(err)
		return err
	}

	log.WithFields(log.Fields{"name": draft.Name, "type": draft.Type}).Info("source created")
	return nil
}

// Remove deletes the source and then refreshes the list.
// A failed delete leaves the list untouched and skips the refresh. The error
// of the follow-up refresh, if any, is returned.
func (s *Store) Remove(ctx context.Context, id int) error {
	gen, ok := s.begin()
	if !ok {
		return ErrClosed
	}

	if err := s.backend.Delete(ctx, id); err != nil {
		log.Error(err)
		return err
	}

	log.WithFields(log.Fields{"id": id}).Info("source deleted")

	if current, ok := s.begin(); !ok || current != gen {
		return ErrClosed
	}
	return s.Refresh(ctx)
}

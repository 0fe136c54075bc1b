package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a mutex-guarded in-memory RecordStore with auto-increment
// IDs. Records are cloned on the way in and out, mirroring a backend that
// serializes everything, so callers never share memory with the store.
type MemoryStore[E Entity] struct {
	mu      sync.RWMutex
	records map[int64]E
	nextID  int64
	clone   func(E) E
}

// NewMemoryStore builds an empty MemoryStore. clone must return a deep copy
// of the entity.
func NewMemoryStore[E Entity](clone func(E) E) *MemoryStore[E] {
	return &MemoryStore[E]{
		records: make(map[int64]E),
		nextID:  1,
		clone:   clone,
	}
}

func (s *MemoryStore[E]) GetAll(ctx context.Context) ([]E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]E, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, s.clone(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID() < out[j].EntityID() })
	return out, nil
}

func (s *MemoryStore[E]) GetByID(ctx context.Context, id int64) (E, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero E
	rec, ok := s.records[id]
	if !ok {
		return zero, nil
	}
	return s.clone(rec), nil
}

func (s *MemoryStore[E]) Add(ctx context.Context, entity E) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	stored := s.clone(entity)
	stored.SetEntityID(id)
	s.records[id] = stored

	entity.SetEntityID(id)
	return id, nil
}

// Update replaces the stored record. A vanished record is not an error; the
// write is simply dropped, matching the contract's silent update semantics.
func (s *MemoryStore[E]) Update(ctx context.Context, entity E) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[entity.EntityID()]; !ok {
		return nil
	}
	s.records[entity.EntityID()] = s.clone(entity)
	return nil
}

func (s *MemoryStore[E]) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore[E]) Query(ctx context.Context, predicate func(E) bool) ([]E, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]E, 0)
	for _, rec := range all {
		if predicate(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

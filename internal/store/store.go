// Package store defines the generic record store contract the usecases are
// built on, plus its in-memory and Postgres backends. The backend is picked
// once at composition time; the core never knows which one it got.
package store

import "context"

// Entity is anything a RecordStore can persist. The store assigns the ID on
// Add, so entities must expose it for reading and writing.
type Entity interface {
	EntityID() int64
	SetEntityID(id int64)
}

// RecordStore is a per-entity CRUD plus predicate query contract.
//
// GetByID returns (nil, nil) when the record is absent; Delete on an absent
// record is a no-op. Query takes an arbitrary predicate — backends without
// native query support may load everything and filter in memory, which is
// O(n) and only acceptable at small record counts.
type RecordStore[E Entity] interface {
	GetAll(ctx context.Context) ([]E, error)
	GetByID(ctx context.Context, id int64) (E, error)
	Add(ctx context.Context, entity E) (int64, error)
	Update(ctx context.Context, entity E) error
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, predicate func(E) bool) ([]E, error)
}

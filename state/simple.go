// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
)

var _ Mutable = (*SimpleMutable)(nil)

// SimpleMutable buffers changes on top of a [Database] until [Commit].
type SimpleMutable struct {
	db Database

	changes map[string]maybe.Maybe[[]byte]
}

func NewSimpleMutable(db Database) *SimpleMutable {
	return &SimpleMutable{db, make(map[string]maybe.Maybe[[]byte])}
}

func (s *SimpleMutable) GetValue(_ context.Context, k []byte) ([]byte, error) {
	if v, ok := s.changes[string(k)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return v.Value(), nil
	}
	return s.db.Get(k)
}

func (s *SimpleMutable) Insert(_ context.Context, k []byte, v []byte) error {
	s.changes[string(k)] = maybe.Some(v)
	return nil
}

func (s *SimpleMutable) Remove(_ context.Context, k []byte) error {
	s.changes[string(k)] = maybe.Nothing[[]byte]()
	return nil
}

// Commit writes every buffered change to the underlying database and
// clears the buffer. The changes are applied in one batch when the
// database is a [Batcher].
func (s *SimpleMutable) Commit(_ context.Context) error {
	if err := s.write(); err != nil {
		return err
	}
	s.changes = make(map[string]maybe.Maybe[[]byte])
	return nil
}

func (s *SimpleMutable) write() error {
	b, ok := s.db.(Batcher)
	if !ok {
		return Apply(s.db, s.changes)
	}
	batch := b.NewBatch()
	if err := Apply(batch, s.changes); err != nil {
		return err
	}
	return batch.Write()
}

// Apply writes [changes] to [db], deleting keys mapped to nothing.
func Apply(db database.KeyValueWriterDeleter, changes map[string]maybe.Maybe[[]byte]) error {
	for k, v := range changes {
		if v.IsNothing() {
			if err := db.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := db.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}

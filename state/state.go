// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

type Immutable interface {
	GetValue(ctx context.Context, key []byte) (value []byte, err error)
}

type Mutable interface {
	Immutable

	Insert(ctx context.Context, key []byte, value []byte) error
	Remove(ctx context.Context, key []byte) error
}

// Database is the committed key/value store a ledger runs on. Both
// avalanchego's memdb and the pebble store satisfy it.
type Database interface {
	database.KeyValueReaderWriterDeleter
}

// Batch buffers writes until [Write] applies them atomically.
type Batch interface {
	database.KeyValueWriterDeleter

	Write() error
}

// Batcher is implemented by a [Database] that can write atomically.
type Batcher interface {
	NewBatch() Batch
}

var _ Immutable = (*ReadOnly)(nil)

// ReadOnly exposes committed values of a [Database] as [Immutable].
type ReadOnly struct {
	db database.KeyValueReader
}

func NewReadOnly(db database.KeyValueReader) *ReadOnly {
	return &ReadOnly{db}
}

func (r *ReadOnly) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}

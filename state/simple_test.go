// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestSimpleMutable(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	require.NoError(db.Put([]byte("a"), []byte("1")))
	require.NoError(db.Put([]byte("b"), []byte("2")))

	mu := NewSimpleMutable(db)
	require.NoError(mu.Insert(ctx, []byte("a"), []byte("3")))
	require.NoError(mu.Remove(ctx, []byte("b")))

	v, err := mu.GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("3"), v)
	_, err = mu.GetValue(ctx, []byte("b"))
	require.ErrorIs(err, database.ErrNotFound)

	// Nothing reaches the database before commit.
	v, err = db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)

	require.NoError(mu.Commit(ctx))
	v, err = NewReadOnly(db).GetValue(ctx, []byte("a"))
	require.NoError(err)
	require.Equal([]byte("3"), v)
	has, err := db.Has([]byte("b"))
	require.NoError(err)
	require.False(has)
}

type recordingBatch struct {
	db      *recordingDB
	changes map[string][]byte
}

func (b *recordingBatch) Put(k, v []byte) error {
	b.changes[string(k)] = v
	return nil
}

func (b *recordingBatch) Delete(k []byte) error {
	b.changes[string(k)] = nil
	return nil
}

func (b *recordingBatch) Write() error {
	b.db.writes++
	for k, v := range b.changes {
		if v == nil {
			if err := b.db.Database.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := b.db.Database.Put([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

// recordingDB counts batch writes and rejects direct writes.
type recordingDB struct {
	*memdb.Database

	writes int
}

func (*recordingDB) Put([]byte, []byte) error {
	return database.ErrClosed
}

func (*recordingDB) Delete([]byte) error {
	return database.ErrClosed
}

func (db *recordingDB) NewBatch() Batch {
	return &recordingBatch{db: db, changes: make(map[string][]byte)}
}

func TestSimpleMutableCommitsInBatch(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := &recordingDB{Database: memdb.New()}
	require.NoError(db.Database.Put([]byte("b"), []byte("2")))

	mu := NewSimpleMutable(db)
	require.NoError(mu.Insert(ctx, []byte("a"), []byte("1")))
	require.NoError(mu.Remove(ctx, []byte("b")))
	require.NoError(mu.Commit(ctx))
	require.Equal(1, db.writes)

	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)
	has, err := db.Has([]byte("b"))
	require.NoError(err)
	require.False(has)
}

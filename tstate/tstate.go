// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/countervm/state"
)

// TState defines a struct for storing temporary state. Delivery is
// serialized by the host, so TState is not safe for concurrent use.
type TState struct {
	changedKeys map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(changedSize int) *TState {
	return &TState{changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize)}
}

func (ts *TState) getChangedValue(_ context.Context, key string) ([]byte, bool, bool) {
	if v, ok := ts.changedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false
		}
		return v.Value(), true, true
	}
	return nil, false, false
}

// ChangedKeys returns the number of keys changed by committed views.
func (ts *TState) ChangedKeys() int {
	return len(ts.changedKeys)
}

// WriteTo applies every change committed to [TState] to [mu].
//
// Once [WriteTo] is called, [TState] should not be used again.
func (ts *TState) WriteTo(ctx context.Context, mu state.Mutable) error {
	for k, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := mu.Remove(ctx, []byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := mu.Insert(ctx, []byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}

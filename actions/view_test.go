// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
)

var _ chain.View = (*testView)(nil)

// testView writes straight through to an in-memory store. It cannot roll
// back, so it is only used where execution is expected to succeed.
type testView struct {
	*chaintest.InMemoryStore
}

func newTestView(store *chaintest.InMemoryStore) *testView {
	return &testView{InMemoryStore: store}
}

func (*testView) OpIndex() int { return 0 }

func (*testView) Rollback(context.Context, int) {}

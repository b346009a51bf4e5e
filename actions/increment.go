// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Increment)(nil)

// Increment advances the counter. Anyone may send it.
type Increment struct {
	Delta uint64 `json:"delta"`
}

func (*Increment) GetTypeID() uint32 {
	return consts.IncrementOp
}

func (*Increment) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.NumberKey()): state.Write,
		string(storage.RecentKey()): state.All,
	}
}

func (*Increment) Size() int {
	return consts.Uint64Len
}

func (i *Increment) Marshal(p *codec.Packer) {
	p.PackUint64(i.Delta)
}

func (i *Increment) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	actor codec.Address,
) ([]byte, []*chain.Transfer, error) {
	number, err := storage.AddNumber(ctx, mu, i.Delta)
	if errors.Is(err, storage.ErrNumberOverflow) {
		return nil, nil, fmt.Errorf("%w: %w", chain.ErrCounterOverflow, err)
	}
	if err != nil {
		return nil, nil, err
	}
	if err := storage.SetRecent(ctx, mu, actor); err != nil {
		return nil, nil, err
	}
	output, err := marshalOutput(IncrementResult{
		Number:        number,
		RecentAddress: actor,
	})
	return output, nil, err
}

func UnmarshalIncrement(p *codec.Packer) (chain.Action, error) {
	var increment Increment
	increment.Delta = p.UnpackUint64(false)
	return &increment, p.Err()
}

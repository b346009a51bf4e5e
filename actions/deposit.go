// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var (
	_ chain.Action = (*Deposit)(nil)
	_ chain.Action = (*NoCodeDeposit)(nil)
)

// Deposit is an explicit deposit. The host has already credited the
// attached value by the time it executes, so it only reports the balance.
type Deposit struct{}

func (*Deposit) GetTypeID() uint32 {
	return consts.DepositOp
}

func (*Deposit) StateKeys(codec.Address) state.Keys {
	return state.Keys{string(storage.BalanceKey()): state.Read}
}

func (*Deposit) Size() int {
	return 0
}

func (*Deposit) Marshal(*codec.Packer) {}

func (*Deposit) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ codec.Address,
) ([]byte, []*chain.Transfer, error) {
	return depositOutput(ctx, mu)
}

func UnmarshalDeposit(p *codec.Packer) (chain.Action, error) {
	return &Deposit{}, p.Err()
}

// NoCodeDeposit handles a bare value transfer with an empty body.
type NoCodeDeposit struct{}

func (*NoCodeDeposit) GetTypeID() uint32 {
	return consts.NoCodeDepositID
}

func (*NoCodeDeposit) StateKeys(codec.Address) state.Keys {
	return state.Keys{string(storage.BalanceKey()): state.Read}
}

func (*NoCodeDeposit) Size() int {
	return 0
}

func (*NoCodeDeposit) Marshal(*codec.Packer) {}

func (*NoCodeDeposit) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ codec.Address,
) ([]byte, []*chain.Transfer, error) {
	return depositOutput(ctx, mu)
}

func depositOutput(ctx context.Context, im state.Immutable) ([]byte, []*chain.Transfer, error) {
	balance, err := storage.GetBalance(ctx, im)
	if err != nil {
		return nil, nil, err
	}
	output, err := marshalOutput(DepositResult{Balance: balance})
	return output, nil, err
}

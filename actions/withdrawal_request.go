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

var _ chain.Action = (*WithdrawalRequest)(nil)

// WithdrawalRequest sends [Amount] from the contract balance to the owner.
// Only the owner may send it.
type WithdrawalRequest struct {
	Amount uint64 `json:"amount"`
}

func (*WithdrawalRequest) GetTypeID() uint32 {
	return consts.WithdrawalRequestOp
}

func (*WithdrawalRequest) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.OwnerKey()):   state.Read,
		string(storage.BalanceKey()): state.Write,
	}
}

func (*WithdrawalRequest) Size() int {
	return consts.Uint64Len
}

func (w *WithdrawalRequest) Marshal(p *codec.Packer) {
	p.PackUint64(w.Amount)
}

func (w *WithdrawalRequest) Execute(
	ctx context.Context,
	r chain.Rules,
	mu state.Mutable,
	actor codec.Address,
) ([]byte, []*chain.Transfer, error) {
	isOwner, err := storage.OwnerPredicate(ctx, mu)
	if err != nil {
		return nil, nil, err
	}
	if err := chain.RequireSender(actor, isOwner); err != nil {
		return nil, nil, err
	}
	owner, _, err := storage.GetOwner(ctx, mu)
	if err != nil {
		return nil, nil, err
	}
	balance, err := storage.SubBalance(ctx, mu, w.Amount, r.GetMinimumReserve())
	if errors.Is(err, storage.ErrInvalidBalance) {
		return nil, nil, fmt.Errorf("%w: %w", chain.ErrInsufficientBalance, err)
	}
	if err != nil {
		return nil, nil, err
	}
	output, err := marshalOutput(WithdrawalResult{
		Amount:  w.Amount,
		Balance: balance,
	})
	if err != nil {
		return nil, nil, err
	}
	return output, []*chain.Transfer{{To: owner, Value: w.Amount}}, nil
}

func UnmarshalWithdrawalRequest(p *codec.Packer) (chain.Action, error) {
	var withdrawal WithdrawalRequest
	withdrawal.Amount = p.UnpackUint64(false)
	return &withdrawal, p.Err()
}

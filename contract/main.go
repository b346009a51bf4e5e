// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract builds the messages understood by the counter contract
// and reads its state.
package contract

import (
	"context"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/storage"
)

// Sender delivers a message to the host ledger.
type Sender interface {
	Send(ctx context.Context, msg *chain.Message) (ledger.Transactions, error)
}

// Reader queries committed contract state.
type Reader interface {
	GetData(ctx context.Context) (*storage.Data, error)
	GetBalance(ctx context.Context) (uint64, error)
}

// Main is a handle on a deployed (or about to be deployed) contract.
type Main struct {
	Address codec.Address

	// init is only known when the handle was created from a config.
	init []byte
}

// CreateFromConfig derives the contract address from [g].
func CreateFromConfig(g *genesis.Genesis) (*Main, error) {
	init, err := g.InitBytes()
	if err != nil {
		return nil, err
	}
	return &Main{
		Address: genesis.ContractAddress(init),
		init:    init,
	}, nil
}

func CreateFromAddress(addr codec.Address) *Main {
	return &Main{Address: addr}
}

// InitBytes returns the init data carried by the deploy message.
func (m *Main) InitBytes() []byte {
	return m.init
}

// SendDeploy deploys the contract with [value] attached. Handles created
// from an address carry no init data.
func (m *Main) SendDeploy(ctx context.Context, s Sender, from codec.Address, value uint64) (ledger.Transactions, error) {
	return s.Send(ctx, &chain.Message{
		From:  from,
		To:    m.Address,
		Value: value,
		Init:  m.init,
	})
}

func (m *Main) SendIncrement(
	ctx context.Context,
	s Sender,
	from codec.Address,
	value uint64,
	delta uint64,
) (ledger.Transactions, error) {
	return m.send(ctx, s, from, value, &actions.Increment{Delta: delta})
}

func (m *Main) SendDeposit(ctx context.Context, s Sender, from codec.Address, value uint64) (ledger.Transactions, error) {
	return m.send(ctx, s, from, value, &actions.Deposit{})
}

// SendNoCodeDeposit transfers [value] with an empty body.
func (m *Main) SendNoCodeDeposit(ctx context.Context, s Sender, from codec.Address, value uint64) (ledger.Transactions, error) {
	return s.Send(ctx, &chain.Message{
		From:  from,
		To:    m.Address,
		Value: value,
	})
}

// SendWithdrawalRequest asks the contract to transfer [amount] to its owner.
// [value] only pays for processing.
func (m *Main) SendWithdrawalRequest(
	ctx context.Context,
	s Sender,
	from codec.Address,
	value uint64,
	amount uint64,
) (ledger.Transactions, error) {
	return m.send(ctx, s, from, value, &actions.WithdrawalRequest{Amount: amount})
}

func (m *Main) send(
	ctx context.Context,
	s Sender,
	from codec.Address,
	value uint64,
	action chain.Action,
) (ledger.Transactions, error) {
	body, err := chain.MarshalBody(action)
	if err != nil {
		return nil, err
	}
	return s.Send(ctx, &chain.Message{
		From:  from,
		To:    m.Address,
		Value: value,
		Body:  body,
	})
}

func (*Main) GetData(ctx context.Context, r Reader) (*storage.Data, error) {
	return r.GetData(ctx)
}

func (*Main) GetBalance(ctx context.Context, r Reader) (uint64, error) {
	return r.GetBalance(ctx)
}

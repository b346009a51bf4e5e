// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Parser = (*Parser)(nil)

// Parser is the action set of the contract.
type Parser struct {
	registry *codec.TypeParser[chain.Action]
}

func NewParser() (*Parser, error) {
	registry := codec.NewTypeParser[chain.Action]()
	errs := &wrappers.Errs{}
	errs.Add(
		// When registering new actions, ALWAYS make sure to append at the end.
		registry.Register(consts.IncrementOp, &Increment{}, UnmarshalIncrement),
		registry.Register(consts.DepositOp, &Deposit{}, UnmarshalDeposit),
		registry.Register(consts.WithdrawalRequestOp, &WithdrawalRequest{}, UnmarshalWithdrawalRequest),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return &Parser{registry: registry}, nil
}

func (p *Parser) ActionRegistry() *codec.TypeParser[chain.Action] {
	return p.registry
}

func (*Parser) NoCodeAction() chain.Action {
	return &NoCodeDeposit{}
}

func (*Parser) DeployAction(init []byte) (chain.Action, error) {
	return UnmarshalDeploy(init)
}

func (*Parser) Initialized(ctx context.Context, im state.Immutable) (bool, error) {
	return storage.IsInitialized(ctx, im)
}

// Name returns a human readable name for an action type ID.
func Name(typeID uint32) string {
	switch typeID {
	case consts.DeployID:
		return "deploy"
	case consts.IncrementOp:
		return "increment"
	case consts.DepositOp:
		return "deposit"
	case consts.WithdrawalRequestOp:
		return "withdrawal_request"
	case consts.NoCodeDepositID:
		return "no_code_deposit"
	default:
		return "unknown"
	}
}

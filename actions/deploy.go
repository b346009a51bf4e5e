// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
)

var _ chain.Action = (*Deploy)(nil)

// Deploy initializes the account from its init data. It runs once, when
// the first message carrying init data reaches an uninitialized account.
type Deploy struct {
	Number uint64 `json:"number"`

	// Address is informational and never used for authorization.
	Address codec.Address `json:"address"`

	OwnerAddress codec.Address `json:"owner_address"`
}

func NewDeploy(g *genesis.Genesis) *Deploy {
	return &Deploy{
		Number:       g.Number,
		Address:      g.Address,
		OwnerAddress: g.OwnerAddress,
	}
}

func (*Deploy) GetTypeID() uint32 {
	return consts.DeployID
}

func (*Deploy) StateKeys(codec.Address) state.Keys {
	return storage.Keys(state.All)
}

func (*Deploy) Size() int {
	return consts.Uint64Len + 2*codec.AddressLen
}

func (d *Deploy) Marshal(p *codec.Packer) {
	p.PackUint64(d.Number)
	p.PackAddress(d.Address)
	p.PackAddress(d.OwnerAddress)
}

func (d *Deploy) Execute(
	ctx context.Context,
	_ chain.Rules,
	mu state.Mutable,
	_ codec.Address,
) ([]byte, []*chain.Transfer, error) {
	if err := storage.SetOwner(ctx, mu, d.OwnerAddress); err != nil {
		return nil, nil, err
	}
	if err := storage.SetNumber(ctx, mu, d.Number); err != nil {
		return nil, nil, err
	}
	if err := storage.SetAddress(ctx, mu, d.Address); err != nil {
		return nil, nil, err
	}
	output, err := marshalOutput(DeployResult{
		Number:       d.Number,
		OwnerAddress: d.OwnerAddress,
	})
	return output, nil, err
}

// UnmarshalDeploy decodes init data.
func UnmarshalDeploy(init []byte) (chain.Action, error) {
	g, err := genesis.UnmarshalInit(init)
	if err != nil {
		return nil, err
	}
	return NewDeploy(g), nil
}

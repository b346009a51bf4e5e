// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/json"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/utils"
)

const initSize = consts.Uint64Len + 2*codec.AddressLen

// Genesis is the deploy configuration of the contract.
//
// Only [Number], [Address] and [OwnerAddress] are part of the init data,
// so they alone determine the contract address.
type Genesis struct {
	Number       uint64        `json:"number"`
	Address      codec.Address `json:"address"`
	OwnerAddress codec.Address `json:"owner_address"`

	Rules *Rules `json:"initialRules"`
}

func NewDefaultGenesis(number uint64, address, owner codec.Address) *Genesis {
	return &Genesis{
		Number:       number,
		Address:      address,
		OwnerAddress: owner,
		Rules:        NewDefaultRules(),
	}
}

// Load parses a JSON genesis. Missing rules fall back to the defaults.
func Load(b []byte) (*Genesis, error) {
	g := &Genesis{Rules: NewDefaultRules()}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, err
	}
	if g.Rules == nil {
		g.Rules = NewDefaultRules()
	}
	return g, g.Verify()
}

func (g *Genesis) GetRules() chain.Rules {
	return g.Rules
}

func (g *Genesis) Verify() error {
	if g.OwnerAddress == codec.EmptyAddress {
		return ErrMissingOwner
	}
	return nil
}

// InitBytes encodes the init data carried by the deployment message.
func (g *Genesis) InitBytes() ([]byte, error) {
	if err := g.Verify(); err != nil {
		return nil, err
	}
	p := codec.NewWriter(initSize, initSize)
	p.PackUint64(g.Number)
	p.PackAddress(g.Address)
	p.PackAddress(g.OwnerAddress)
	return p.Bytes(), p.Err()
}

// ContractAddress is derived from the init data, so it is known before
// the contract is deployed.
func (g *Genesis) ContractAddress() (codec.Address, error) {
	init, err := g.InitBytes()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return ContractAddress(init), nil
}

func ContractAddress(init []byte) codec.Address {
	return codec.CreateAddress(consts.ContractTypeID, utils.ToID(init))
}

// UnmarshalInit decodes init data produced by [Genesis.InitBytes]. The
// informational address may be empty; the owner may not.
func UnmarshalInit(b []byte) (*Genesis, error) {
	p := codec.NewReader(b, initSize)
	g := &Genesis{Number: p.UnpackUint64(false)}
	p.UnpackAddress(false, &g.Address)
	p.UnpackAddress(true, &g.OwnerAddress)
	if err := p.Done(); err != nil {
		return nil, err
	}
	return g, nil
}

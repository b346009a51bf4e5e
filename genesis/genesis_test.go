// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

func TestInitRoundTrip(t *testing.T) {
	require := require.New(t)
	deployer := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	g := NewDefaultGenesis(1337, deployer, owner)

	init, err := g.InitBytes()
	require.NoError(err)
	parsed, err := UnmarshalInit(init)
	require.NoError(err)
	require.Equal(uint64(1337), parsed.Number)
	require.Equal(deployer, parsed.Address)
	require.Equal(owner, parsed.OwnerAddress)

	_, err = UnmarshalInit(init[:len(init)-1])
	require.Error(err)
	_, err = UnmarshalInit(append(init, 0))
	require.ErrorIs(err, codec.ErrExtraBytes)
}

func TestInitWithoutAddress(t *testing.T) {
	require := require.New(t)
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	init, err := NewDefaultGenesis(0, codec.EmptyAddress, owner).InitBytes()
	require.NoError(err)
	parsed, err := UnmarshalInit(init)
	require.NoError(err)
	require.Equal(codec.EmptyAddress, parsed.Address)
}

func TestContractAddress(t *testing.T) {
	require := require.New(t)
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())

	a, err := NewDefaultGenesis(1337, owner, owner).ContractAddress()
	require.NoError(err)
	require.Equal(consts.ContractTypeID, a.TypeID())

	b, err := NewDefaultGenesis(1337, owner, owner).ContractAddress()
	require.NoError(err)
	require.Equal(a, b)

	c, err := NewDefaultGenesis(1338, owner, owner).ContractAddress()
	require.NoError(err)
	require.NotEqual(a, c)
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	g := NewDefaultGenesis(1337, owner, owner)
	g.Rules.MinimumReserve = 42

	b, err := json.Marshal(g)
	require.NoError(err)
	loaded, err := Load(b)
	require.NoError(err)
	require.Equal(g, loaded)

	loaded, err = Load([]byte(`{"number": 7, "owner_address": "` + owner.String() + `"}`))
	require.NoError(err)
	require.Equal(uint64(7), loaded.Number)
	require.Equal(DefaultMinimumReserve, loaded.GetRules().GetMinimumReserve())

	_, err = Load([]byte(`{"number": 7}`))
	require.ErrorIs(err, ErrMissingOwner)
}

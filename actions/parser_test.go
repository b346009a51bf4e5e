// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/chain/chaintest"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
)

func TestParserRegistry(t *testing.T) {
	require := require.New(t)
	parser, err := NewParser()
	require.NoError(err)
	require.Equal(
		[]uint32{consts.IncrementOp, consts.DepositOp, consts.WithdrawalRequestOp},
		parser.ActionRegistry().Indexes(),
	)
	require.IsType(&NoCodeDeposit{}, parser.NoCodeAction())
}

func TestParserRoundTrip(t *testing.T) {
	ctx := context.Background()
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	parser, err := NewParser()
	require.NoError(t, err)
	processor := chain.NewProcessor(parser, genesis.NewDefaultRules())

	for _, action := range []chain.Action{
		&Increment{Delta: 3},
		&Deposit{},
		&WithdrawalRequest{Amount: 1_000_000_000},
	} {
		t.Run(Name(action.GetTypeID()), func(t *testing.T) {
			require := require.New(t)
			body, err := chain.MarshalBody(action)
			require.NoError(err)
			parsed, err := processor.Parse(ctx, deployedStore(t, 0, owner), &chain.Message{Body: body})
			require.NoError(err)
			require.Equal(action, parsed)
		})
	}
}

func TestParserDeploy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	parser, err := NewParser()
	require.NoError(err)
	processor := chain.NewProcessor(parser, genesis.NewDefaultRules())
	init, err := genesis.NewDefaultGenesis(1337, codec.EmptyAddress, owner).InitBytes()
	require.NoError(err)

	store := chaintest.NewInMemoryStore()
	initialized, err := parser.Initialized(ctx, store)
	require.NoError(err)
	require.False(initialized)

	// The body of a deployment message is not dispatched.
	body, err := chain.MarshalBody(&Increment{Delta: 1})
	require.NoError(err)
	action, err := processor.Parse(ctx, store, &chain.Message{Body: body, Init: init})
	require.NoError(err)
	require.IsType(&Deploy{}, action)

	_, err = processor.Parse(ctx, store, &chain.Message{Body: body})
	require.ErrorIs(err, chain.ErrUninitialized)

	result := processor.Execute(ctx, newTestView(store), owner, action)
	require.True(result.Success)
	initialized, err = parser.Initialized(ctx, store)
	require.NoError(err)
	require.True(initialized)
}

func TestParserMalformed(t *testing.T) {
	ctx := context.Background()
	owner := codec.CreateAddress(consts.WalletTypeID, ids.GenerateTestID())
	parser, err := NewParser()
	require.NoError(t, err)
	processor := chain.NewProcessor(parser, genesis.NewDefaultRules())

	tests := []struct {
		name string
		body []byte
		code chain.ExitCode
	}{
		{"ShortOpCode", []byte{0x00, 0x01}, chain.ExitCodeMalformedBody},
		{"TruncatedIncrement", []byte{0x00, 0x00, 0x00, 0x01, 0x00}, chain.ExitCodeMalformedBody},
		{"TrailingBytes", []byte{0x00, 0x00, 0x00, 0x02, 0x01}, chain.ExitCodeMalformedBody},
		{"UnknownOp", []byte{0x00, 0x00, 0x00, 0x99}, chain.ExitCodeUnknownOp},
		// Increment carries a uint64 delta.
		{"IncrementNoDelta", []byte{0x00, 0x00, 0x00, 0x01}, chain.ExitCodeMalformedBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := processor.Parse(ctx, deployedStore(t, 0, owner), &chain.Message{Body: tt.body})
			require.Equal(t, tt.code, chain.Code(err))
		})
	}
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/contract"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/trace"
	"github.com/ava-labs/countervm/utils"
)

func TestJSONRPC(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	l, err := ledger.New(
		logging.NoLog{},
		trace.Noop("test"),
		config.NewDefault(),
		genesis.NewDefaultRules(),
		memdb.New(),
		prometheus.NewRegistry(),
	)
	require.NoError(err)
	handler, err := NewHandler(logging.NoLog{}, l)
	require.NoError(err)
	require.Equal(Endpoint, handler.Path)

	router := mux.NewRouter()
	router.Handle(handler.Path, handler.Handler)
	server := httptest.NewServer(router)
	defer server.Close()
	cli := NewJSONRPCClient(server.URL + "/")

	ok, err := cli.Ping(ctx)
	require.NoError(err)
	require.True(ok)

	_, deployed, _, err := cli.Status(ctx)
	require.NoError(err)
	require.False(deployed)

	deployer, err := l.Treasury(ctx, "deployer")
	require.NoError(err)
	main, err := contract.CreateFromConfig(genesis.NewDefaultGenesis(1337, deployer, deployer))
	require.NoError(err)
	_, err = main.SendDeploy(ctx, l, deployer, utils.MustParseBalance("0.05"))
	require.NoError(err)
	_, err = main.SendIncrement(ctx, l, deployer, utils.MustParseBalance("0.05"), 1)
	require.NoError(err)

	data, err := cli.GetData(ctx)
	require.NoError(err)
	require.Equal(uint64(1338), data.Number)
	require.True(data.HasRecent)
	require.Equal(deployer, data.RecentAddress)

	expected, err := l.GetBalance(ctx)
	require.NoError(err)
	balance, err := cli.GetBalance(ctx)
	require.NoError(err)
	require.Equal(expected, balance)

	addr, deployed, seqno, err := cli.Status(ctx)
	require.NoError(err)
	require.True(deployed)
	require.Equal(main.Address, addr)
	require.Equal(uint64(2), seqno)
}

func TestJSONRPCBackendErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	errUnavailable := errors.New("store unavailable")
	backend := NewMockBackend(ctrl)
	backend.EXPECT().GetData(gomock.Any()).Return(nil, errUnavailable)
	backend.EXPECT().GetBalance(gomock.Any()).Return(uint64(0), errUnavailable)
	backend.EXPECT().Contract().Return(codec.EmptyAddress, false)
	backend.EXPECT().LastSeqno().Return(uint64(7))

	handler, err := NewHandler(logging.NoLog{}, backend)
	require.NoError(err)
	router := mux.NewRouter()
	router.Handle(handler.Path, handler.Handler)
	server := httptest.NewServer(router)
	defer server.Close()
	cli := NewJSONRPCClient(server.URL)

	_, err = cli.GetData(ctx)
	require.ErrorContains(err, errUnavailable.Error())
	_, err = cli.GetBalance(ctx)
	require.ErrorContains(err, errUnavailable.Error())

	_, deployed, seqno, err := cli.Status(ctx)
	require.NoError(err)
	require.False(deployed)
	require.Equal(uint64(7), seqno)
}

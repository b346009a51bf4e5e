// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/countervm/api"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/storage"
)

type JSONRPCClient struct {
	requester rpc.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += Endpoint
	return &JSONRPCClient{requester: rpc.NewEndpointRequester(uri)}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		api.Name+".ping",
		struct{}{},
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) GetData(ctx context.Context) (*storage.Data, error) {
	resp := new(GetDataReply)
	err := cli.requester.SendRequest(
		ctx,
		api.Name+".getData",
		struct{}{},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return &storage.Data{
		Number:        resp.Number,
		RecentAddress: resp.RecentAddress,
		HasRecent:     resp.HasRecent,
	}, nil
}

func (cli *JSONRPCClient) GetBalance(ctx context.Context) (uint64, error) {
	resp := new(GetBalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		api.Name+".getBalance",
		struct{}{},
		resp,
	)
	return resp.Balance, err
}

// Status returns the hosted contract, whether it is deployed, and the
// sequence number of the latest transaction.
func (cli *JSONRPCClient) Status(ctx context.Context) (codec.Address, bool, uint64, error) {
	resp := new(StatusReply)
	err := cli.requester.SendRequest(
		ctx,
		api.Name+".status",
		struct{}{},
		resp,
	)
	return resp.Contract, resp.Deployed, resp.LastSeqno, err
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"context"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/api"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/storage"
)

const Endpoint = "/coreapi"

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=backend_mock_test.go -mock_names=Backend=MockBackend . Backend

// Backend is the read-only view of the ledger served over JSON-RPC.
type Backend interface {
	GetData(ctx context.Context) (*storage.Data, error)
	GetBalance(ctx context.Context) (uint64, error)
	Contract() (codec.Address, bool)
	LastSeqno() uint64
}

func NewHandler(log logging.Logger, backend Backend) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(api.Name, NewJSONRPCServer(log, backend))
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	log     logging.Logger
	backend Backend
}

func NewJSONRPCServer(log logging.Logger, backend Backend) *JSONRPCServer {
	return &JSONRPCServer{log: log, backend: backend}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type GetDataReply struct {
	Number        uint64        `json:"number"`
	RecentAddress codec.Address `json:"recent_address"`
	HasRecent     bool          `json:"has_recent"`
}

func (j *JSONRPCServer) GetData(req *http.Request, _ *struct{}, reply *GetDataReply) error {
	data, err := j.backend.GetData(req.Context())
	if err != nil {
		j.log.Warn("failed to read contract data", zap.Error(err))
		return err
	}
	reply.Number = data.Number
	reply.RecentAddress = data.RecentAddress
	reply.HasRecent = data.HasRecent
	return nil
}

type GetBalanceReply struct {
	Balance uint64 `json:"balance"`
}

func (j *JSONRPCServer) GetBalance(req *http.Request, _ *struct{}, reply *GetBalanceReply) error {
	balance, err := j.backend.GetBalance(req.Context())
	if err != nil {
		j.log.Warn("failed to read contract balance", zap.Error(err))
		return err
	}
	reply.Balance = balance
	return nil
}

type StatusReply struct {
	Contract  codec.Address `json:"contract"`
	Deployed  bool          `json:"deployed"`
	LastSeqno uint64        `json:"lastSeqno"`
}

func (j *JSONRPCServer) Status(_ *http.Request, _ *struct{}, reply *StatusReply) error {
	reply.Contract, reply.Deployed = j.backend.Contract()
	reply.LastSeqno = j.backend.LastSeqno()
	return nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/api/jsonrpc"
	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"
)

const endpointFlag = "endpoint"

// reader answers queries either from the local ledger or over JSON-RPC.
type reader interface {
	GetData(ctx context.Context) (*storage.Data, error)
	GetBalance(ctx context.Context) (uint64, error)
}

func readerFor(endpoint string) reader {
	if len(endpoint) > 0 {
		return jsonrpc.NewJSONRPCClient(endpoint)
	}
	return handler.Ledger()
}

func newQueryCmds() []*cobra.Command {
	var endpoint string
	getData := &cobra.Command{
		Use:   "get-data",
		Short: "Print the counter and the most recent sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readerFor(endpoint).GetData(cmd.Context())
			if err != nil {
				return err
			}
			cli.PrintData(data)
			return nil
		},
	}
	getBalance := &cobra.Command{
		Use:   "get-balance",
		Short: "Print the contract balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bal, err := readerFor(endpoint).GetBalance(cmd.Context())
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}balance:{{/}} %s %s\n", utils.FormatBalance(bal), consts.Symbol)
			return nil
		},
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "Print the hosted contract and the last sequence number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				addr     codec.Address
				deployed bool
				seqno    uint64
			)
			if len(endpoint) > 0 {
				var err error
				addr, deployed, seqno, err = jsonrpc.NewJSONRPCClient(endpoint).Status(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				addr, deployed = handler.Ledger().Contract()
				seqno = handler.Ledger().LastSeqno()
			}
			if !deployed {
				utils.Outf("{{orange}}no contract deployed{{/}}\n")
				return nil
			}
			utils.Outf("{{yellow}}contract:{{/}} %s\n", cli.AddressString(addr))
			utils.Outf("{{yellow}}last seqno:{{/}} %d\n", seqno)
			return nil
		},
	}
	for _, cmd := range []*cobra.Command{getData, getBalance, status} {
		cmd.Flags().StringVar(&endpoint, endpointFlag, "", "URI of a running sandbox (e.g. http://127.0.0.1:9650)")
	}
	return []*cobra.Command{getData, getBalance, status}
}

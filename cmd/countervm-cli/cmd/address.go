// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/utils"
)

// resolveAddress accepts a bech32 or hex address and falls back to the
// sandbox wallet called [s].
func resolveAddress(s string) codec.Address {
	if addr, err := codec.ParseAnyAddress(consts.HRP, s); err == nil {
		return addr
	}
	return ledger.WalletAddress(s)
}

func newAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address [name]",
		Short: "Print the address and balance of a sandbox wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := handler.Ledger().Treasury(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			bal, err := handler.Ledger().WalletBalance(cmd.Context(), addr)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}address:{{/}} %s\n", cli.AddressString(addr))
			utils.Outf("{{yellow}}hex:{{/}} %s\n", addr)
			utils.Outf("{{yellow}}balance:{{/}} %s %s\n", utils.FormatBalance(bal), consts.Symbol)
			return nil
		},
	}
}

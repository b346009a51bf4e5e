// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/utils"
)

func newGenesisCmd() *cobra.Command {
	var (
		number  uint64
		address string
		owner   string
		reserve string
	)
	cmd := &cobra.Command{
		Use:         "genesis",
		Short:       "Write a genesis file describing the contract to deploy",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{offline: "true"},
		RunE: func(*cobra.Command, []string) error {
			g := genesis.NewDefaultGenesis(number, resolveAddress(address), resolveAddress(owner))
			if len(reserve) > 0 {
				r, err := utils.ParseBalance(reserve)
				if err != nil {
					return err
				}
				g.Rules.MinimumReserve = r
			}
			if err := g.Verify(); err != nil {
				return err
			}
			b, err := json.MarshalIndent(g, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(genesisFile, b, fsModeWrite); err != nil {
				return err
			}
			addr, err := g.ContractAddress()
			if err != nil {
				return err
			}
			utils.Outf("{{green}}created genesis:{{/}} %s\n", genesisFile)
			utils.Outf("{{yellow}}contract address:{{/}} %s\n", cli.AddressString(addr))
			return nil
		},
	}
	cmd.Flags().Uint64Var(&number, "number", 0, "initial counter value")
	cmd.Flags().StringVar(&address, "address", "deployer", "address stored in the contract (wallet name or address)")
	cmd.Flags().StringVar(&owner, "owner", "deployer", "owner allowed to withdraw (wallet name or address)")
	cmd.Flags().StringVar(&reserve, "min-reserve", "", "minimum reserve kept by withdrawals (decimal units)")
	return cmd
}

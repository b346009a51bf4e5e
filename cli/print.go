// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/utils"
)

func AddressString(addr codec.Address) string {
	return codec.MustAddressBech32(consts.HRP, addr)
}

func (*Handler) PrintTransactions(txs ledger.Transactions) {
	for i, tx := range txs {
		if i > 0 {
			utils.Outf(
				"{{cyan}}outbound #%d:{{/}} %s %s -> %s\n",
				tx.Seqno,
				utils.FormatBalance(tx.Value),
				consts.Symbol,
				AddressString(tx.To),
			)
			continue
		}
		kind := actions.Name(tx.TypeID)
		if !tx.Success {
			utils.Outf(
				"{{red}}%s #%d failed:{{/}} exit code %d (%s) fee=%s\n",
				kind,
				tx.Seqno,
				tx.ExitCode,
				tx.Error,
				utils.FormatBalance(tx.Fee),
			)
			continue
		}
		utils.Outf(
			"{{green}}%s #%d succeeded:{{/}} value=%s fee=%s\n",
			kind,
			tx.Seqno,
			utils.FormatBalance(tx.Value),
			utils.FormatBalance(tx.Fee),
		)
		out, err := actions.DecodeOutput(tx.TypeID, tx.Output)
		if err != nil {
			utils.Outf("{{orange}}unable to decode output:{{/}} %v\n", err)
			continue
		}
		printOutput(out)
	}
}

func printOutput(out any) {
	switch o := out.(type) {
	case *actions.DeployResult:
		utils.Outf("{{yellow}}number:{{/}} %d {{yellow}}owner:{{/}} %s\n", o.Number, AddressString(o.OwnerAddress))
	case *actions.IncrementResult:
		utils.Outf("{{yellow}}number:{{/}} %d {{yellow}}recent:{{/}} %s\n", o.Number, AddressString(o.RecentAddress))
	case *actions.DepositResult:
		utils.Outf("{{yellow}}balance:{{/}} %s\n", utils.FormatBalance(o.Balance))
	case *actions.WithdrawalResult:
		utils.Outf("{{yellow}}withdrew:{{/}} %s {{yellow}}balance:{{/}} %s\n", utils.FormatBalance(o.Amount), utils.FormatBalance(o.Balance))
	}
}

func PrintData(data *storage.Data) {
	utils.Outf("{{yellow}}number:{{/}} %d\n", data.Number)
	if !data.HasRecent {
		utils.Outf("{{yellow}}recent:{{/}} none\n")
		return
	}
	utils.Outf("{{yellow}}recent:{{/}} %s\n", AddressString(data.RecentAddress))
}

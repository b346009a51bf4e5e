// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/contract"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/utils"
)

const defaultValue = "0.05"

// actionEnv is shared by the commands that send messages, so the same
// commands back both the CLI and scenario steps.
type actionEnv struct {
	handler     func() *cli.Handler
	interactive bool
	record      func(h *cli.Handler, txs ledger.Transactions) error
}

// printTransactions fails the command if the contract rejected the
// message.
func printTransactions(h *cli.Handler, txs ledger.Transactions) error {
	h.PrintTransactions(txs)
	if len(txs) > 0 && !txs[0].Success {
		return fmt.Errorf("%w: exit code %d", cli.ErrTxFailed, txs[0].ExitCode)
	}
	return nil
}

// senderFlags are the flags every message carries.
type senderFlags struct {
	from  string
	value string
}

func (f *senderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "deployer", "sandbox wallet sending the message")
	cmd.Flags().StringVar(&f.value, "value", defaultValue, "value attached to the message (decimal units)")
}

func newActionCmds(env *actionEnv) []*cobra.Command {
	return []*cobra.Command{
		newDeployCmd(env),
		newIncrementCmd(env),
		newDepositCmd(env),
		newWithdrawCmd(env),
	}
}

// deployedContract returns a handle on the contract the ledger hosts.
func deployedContract(h *cli.Handler) (*contract.Main, error) {
	addr, ok := h.Ledger().Contract()
	if !ok {
		return nil, cli.ErrNotDeployed
	}
	return contract.CreateFromAddress(addr), nil
}

func newDeployCmd(env *actionEnv) *cobra.Command {
	var (
		sf      senderFlags
		number  uint64
		address string
		owner   string
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the counter contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := env.handler()
			ctx := cmd.Context()
			from, err := h.Ledger().Treasury(ctx, sf.from)
			if err != nil {
				return err
			}
			value, err := utils.ParseBalance(sf.value)
			if err != nil {
				return err
			}

			// Flags win over the genesis file.
			var g *genesis.Genesis
			if !cmd.Flags().Changed("number") && !cmd.Flags().Changed("owner") {
				g, err = loadGenesis()
				if err != nil {
					return err
				}
			}
			if g == nil {
				if len(address) == 0 {
					address = sf.from
				}
				if len(owner) == 0 {
					owner = sf.from
				}
				g = genesis.NewDefaultGenesis(number, resolveAddress(address), resolveAddress(owner))
			}
			main, err := contract.CreateFromConfig(g)
			if err != nil {
				return err
			}
			h.Log().Info("deploying contract",
				zap.Stringer("address", main.Address),
				zap.Uint64("number", g.Number),
			)
			txs, err := main.SendDeploy(ctx, h.Ledger(), from, value)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}contract:{{/}} %s\n", cli.AddressString(main.Address))
			return env.record(h, txs)
		},
	}
	sf.bind(cmd)
	cmd.Flags().Uint64Var(&number, "number", 0, "initial counter value")
	cmd.Flags().StringVar(&address, "address", "", "address stored in the contract (defaults to --from)")
	cmd.Flags().StringVar(&owner, "owner", "", "owner allowed to withdraw (defaults to --from)")
	return cmd
}

func newIncrementCmd(env *actionEnv) *cobra.Command {
	var (
		sf    senderFlags
		delta uint64
	)
	cmd := &cobra.Command{
		Use:   "increment",
		Short: "Add to the counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := env.handler()
			ctx := cmd.Context()
			main, err := deployedContract(h)
			if err != nil {
				return err
			}
			from, err := h.Ledger().Treasury(ctx, sf.from)
			if err != nil {
				return err
			}
			value, err := utils.ParseBalance(sf.value)
			if err != nil {
				return err
			}
			txs, err := main.SendIncrement(ctx, h.Ledger(), from, value, delta)
			if err != nil {
				return err
			}
			return env.record(h, txs)
		},
	}
	sf.bind(cmd)
	cmd.Flags().Uint64Var(&delta, "delta", 1, "amount added to the counter")
	return cmd
}

func newDepositCmd(env *actionEnv) *cobra.Command {
	var (
		sf     senderFlags
		noCode bool
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Credit value to the contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := env.handler()
			ctx := cmd.Context()
			main, err := deployedContract(h)
			if err != nil {
				return err
			}
			from, err := h.Ledger().Treasury(ctx, sf.from)
			if err != nil {
				return err
			}
			value, err := utils.ParseBalance(sf.value)
			if err != nil {
				return err
			}
			var txs ledger.Transactions
			if noCode {
				txs, err = main.SendNoCodeDeposit(ctx, h.Ledger(), from, value)
			} else {
				txs, err = main.SendDeposit(ctx, h.Ledger(), from, value)
			}
			if err != nil {
				return err
			}
			return env.record(h, txs)
		},
	}
	sf.bind(cmd)
	cmd.Flags().BoolVar(&noCode, "no-code", false, "send a plain transfer with an empty body")
	return cmd
}

func newWithdrawCmd(env *actionEnv) *cobra.Command {
	var (
		sf     senderFlags
		amount string
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Ask the contract to pay its owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := env.handler()
			ctx := cmd.Context()
			main, err := deployedContract(h)
			if err != nil {
				return err
			}
			from, err := h.Ledger().Treasury(ctx, sf.from)
			if err != nil {
				return err
			}
			value, err := utils.ParseBalance(sf.value)
			if err != nil {
				return err
			}

			var withdrawal uint64
			switch {
			case len(amount) > 0:
				withdrawal, err = utils.ParseBalance(amount)
			case env.interactive:
				var bal uint64
				bal, err = main.GetBalance(ctx, h.Ledger())
				if err != nil {
					return err
				}
				withdrawal, err = h.PromptAmount("amount", bal)
			default:
				return ErrMissingAmount
			}
			if err != nil {
				return err
			}

			if env.interactive && !yes {
				question := fmt.Sprintf("withdraw %s %s to the owner", utils.FormatBalance(withdrawal), consts.Symbol)
				cont, err := h.PromptConfirm(question)
				if !cont || err != nil {
					return err
				}
			}
			txs, err := main.SendWithdrawalRequest(ctx, h.Ledger(), from, value, withdrawal)
			if err != nil {
				return err
			}
			return env.record(h, txs)
		},
	}
	sf.bind(cmd)
	cmd.Flags().StringVar(&amount, "amount", "", "amount to withdraw (decimal units)")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

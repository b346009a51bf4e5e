// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/cli"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/utils"
)

// Plan is a scripted sequence of messages run against the local ledger.
type Plan struct {
	// The name of the plan.
	Name string `yaml:"name"`
	// A description of the plan.
	Description string `yaml:"description"`
	// Steps to perform, in order.
	Steps []Step `yaml:"steps"`
}

type Step struct {
	// Description of the step.
	Description string `yaml:"description"`
	// A message command line, e.g. "increment --from alice --delta 2".
	Run string `yaml:"run"`
	// Assertions checked once the step has run.
	Require Require `yaml:"require,omitempty"`
}

// Require holds optional assertions. Unset fields are not checked.
type Require struct {
	// Outcome of the inbound message.
	Success  *bool   `yaml:"success,omitempty"`
	ExitCode *uint32 `yaml:"exitCode,omitempty"`
	// Number of outbound transfers produced.
	Outbound *int `yaml:"outbound,omitempty"`
	// Counter value after the step.
	Number *uint64 `yaml:"number,omitempty"`
	// Contract balance after the step, in decimal units.
	Balance string `yaml:"balance,omitempty"`
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [path]",
		Short: "Run a scenario plan against the sandbox",
		Long:  "Run a scenario plan against the sandbox. A path of \"-\" reads the plan from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runPlan(cmd.Context(), handler, plan)
		},
	}
}

func readPlan(path string, stdin io.Reader) (*Plan, error) {
	var (
		planBytes []byte
		err       error
	)
	if path == "-" {
		planBytes, err = io.ReadAll(stdin)
	} else {
		planBytes, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return parsePlan(planBytes)
}

func parsePlan(b []byte) (*Plan, error) {
	plan := &Plan{}
	if err := yaml.Unmarshal(b, plan); err != nil {
		return nil, err
	}
	if len(plan.Steps) == 0 {
		return nil, ErrEmptyPlan
	}
	return plan, nil
}

func runPlan(ctx context.Context, h *cli.Handler, plan *Plan) error {
	utils.Outf("{{cyan}}running plan:{{/}} %s\n", plan.Name)
	for i, step := range plan.Steps {
		utils.Outf("{{cyan}}step %d:{{/}} %s\n", i, step.Description)
		txs, err := runStep(ctx, h, step.Run)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := checkRequire(ctx, h, txs, step.Require); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		h.Log().Debug("step passed",
			zap.Int("step", i),
			zap.String("run", step.Run),
		)
	}
	utils.Outf("{{green}}plan passed:{{/}} %d steps\n", len(plan.Steps))
	return nil
}

// runStep executes [line] with a throwaway command tree, so flags never
// leak between steps.
func runStep(ctx context.Context, h *cli.Handler, line string) (ledger.Transactions, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, ErrEmptyStep
	}

	var txs ledger.Transactions
	root := &cobra.Command{
		Use:           "step",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(io.Discard)
	root.AddCommand(newActionCmds(&actionEnv{
		handler: func() *cli.Handler { return h },
		record: func(h *cli.Handler, t ledger.Transactions) error {
			h.PrintTransactions(t)
			txs = t
			return nil
		},
	})...)
	if sub, _, err := root.Find(args); err != nil || sub == root {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStepCommand, args[0])
	}
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}
	return txs, nil
}

func checkRequire(ctx context.Context, h *cli.Handler, txs ledger.Transactions, req Require) error {
	inbound := txs[0]
	if req.Success != nil && inbound.Success != *req.Success {
		return fmt.Errorf("%w: success=%t, expected %t (%s)", ErrRequirementFailed, inbound.Success, *req.Success, inbound.Error)
	}
	if req.ExitCode != nil && inbound.ExitCode != chain.ExitCode(*req.ExitCode) {
		return fmt.Errorf("%w: exit code %d, expected %d", ErrRequirementFailed, inbound.ExitCode, *req.ExitCode)
	}
	if req.Outbound != nil && len(txs)-1 != *req.Outbound {
		return fmt.Errorf("%w: %d outbound transfers, expected %d", ErrRequirementFailed, len(txs)-1, *req.Outbound)
	}
	if req.Number != nil {
		data, err := h.Ledger().GetData(ctx)
		if err != nil {
			return err
		}
		if data.Number != *req.Number {
			return fmt.Errorf("%w: number %d, expected %d", ErrRequirementFailed, data.Number, *req.Number)
		}
	}
	if len(req.Balance) > 0 {
		want, err := utils.ParseBalance(req.Balance)
		if err != nil {
			return err
		}
		bal, err := h.Ledger().GetBalance(ctx)
		if err != nil {
			return err
		}
		if bal != want {
			return fmt.Errorf("%w: balance %s, expected %s", ErrRequirementFailed, utils.FormatBalance(bal), utils.FormatBalance(want))
		}
	}
	return nil
}

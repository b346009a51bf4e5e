// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrMissingAmount      = errors.New("missing amount")
	ErrEmptyPlan          = errors.New("plan has no steps")
	ErrEmptyStep          = errors.New("step has nothing to run")
	ErrUnknownStepCommand = errors.New("unknown step command")
	ErrRequirementFailed  = errors.New("requirement failed")
	ErrNoTransactions     = errors.New("step produced no transactions")
)

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/utils"
)

// PromptAmount asks for a decimal amount no larger than [balance].
func (*Handler) PromptAmount(label string, balance uint64) (uint64, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			amount, err := utils.ParseBalance(input)
			if err != nil {
				return err
			}
			if amount > balance {
				return ErrInsufficientBalance
			}
			return nil
		},
	}
	rawAmount, err := promptText.Run()
	if err != nil {
		return 0, err
	}
	return utils.ParseBalance(strings.TrimSpace(rawAmount))
}

// PromptConfirm asks a yes/no question. Declining is not an error.
func (*Handler) PromptConfirm(question string) (bool, error) {
	promptText := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Validate: func(input string) error {
			switch strings.ToLower(input) {
			case "", "y", "n":
				return nil
			default:
				return ErrInvalidChoice
			}
		},
	}
	if _, err := promptText.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			utils.Outf("{{red}}exiting...{{/}}\n")
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrAddressMismatch   = errors.New("init data does not match recipient address")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidSender     = errors.New("sender is not a wallet")
	ErrBalanceOverflow   = errors.New("balance overflow")
)

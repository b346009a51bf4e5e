// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	Name = "countervm"

	Version = "v0.1.0"

	// HRP is the human-readable part of bech32 addresses.
	HRP = "counter"

	// Symbol of the native value unit.
	Symbol = "CNT"

	// NativeDecimals is the number of base units in one [Symbol] (10^9).
	NativeDecimals = 9
)

// Address type IDs
const (
	WalletTypeID   uint8 = 0
	ContractTypeID uint8 = 1
)

// Op-codes of the explicit message kinds. A message with an empty
// body carries no op-code and is a no-code deposit.
const (
	IncrementOp         uint32 = 0x1
	DepositOp           uint32 = 0x2
	WithdrawalRequestOp uint32 = 0x3
)

// DeployID identifies the deploy action. It is never encoded in a
// body; deployment is driven by init data.
const DeployID uint32 = 0

// NoCodeDepositID identifies the implicit action for an empty body.
const NoCodeDepositID uint32 = 0xffffffff

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"
	"reflect"

	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
)

// Outputs are borsh encoded so off-chain tooling in any language can read
// them.

type DeployResult struct {
	Number       uint64
	OwnerAddress codec.Address
}

type IncrementResult struct {
	Number        uint64
	RecentAddress codec.Address
}

type DepositResult struct {
	Balance uint64
}

type WithdrawalResult struct {
	Amount  uint64
	Balance uint64
}

// marshalOutput encodes the result value [v]. borsh encodes a pointer as
// an option, so pointers are dereferenced first.
func marshalOutput(v any) ([]byte, error) {
	return borsh.Serialize(reflect.Indirect(reflect.ValueOf(v)).Interface())
}

// UnmarshalOutput decodes [b] into [dest], which must be a pointer to one
// of the result types of this package.
func UnmarshalOutput(b []byte, dest any) error {
	return borsh.Deserialize(dest, b)
}

// DecodeOutput decodes the output of a successful action of [typeID].
func DecodeOutput(typeID uint32, b []byte) (any, error) {
	var dest any
	switch typeID {
	case consts.DeployID:
		dest = &DeployResult{}
	case consts.IncrementOp:
		dest = &IncrementResult{}
	case consts.DepositOp, consts.NoCodeDepositID:
		dest = &DepositResult{}
	case consts.WithdrawalRequestOp:
		dest = &WithdrawalResult{}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutput, typeID)
	}
	if err := UnmarshalOutput(b, dest); err != nil {
		return nil, err
	}
	return dest, nil
}

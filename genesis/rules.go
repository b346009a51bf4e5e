// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import "github.com/ava-labs/countervm/chain"

var _ chain.Rules = (*Rules)(nil)

// DefaultMinimumReserve is 0.01 of a unit.
const DefaultMinimumReserve uint64 = 10_000_000

type Rules struct {
	MinimumReserve uint64 `json:"minimumReserve"`
}

func NewDefaultRules() *Rules {
	return &Rules{
		MinimumReserve: DefaultMinimumReserve,
	}
}

func (r *Rules) GetMinimumReserve() uint64 {
	return r.MinimumReserve
}

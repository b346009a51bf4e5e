// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
)

// Transaction is a value movement recorded by the ledger: either an inbound
// message to the contract or an outbound transfer emitted by it.
type Transaction struct {
	Seqno uint64 `json:"seqno"`

	From  codec.Address `json:"from"`
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`

	// Fee is the compute fee charged on an inbound message.
	Fee    uint64 `json:"fee"`
	TypeID uint32 `json:"typeId"`

	Deploy   bool           `json:"deploy"`
	Success  bool           `json:"success"`
	ExitCode chain.ExitCode `json:"exitCode"`
	Error    string         `json:"error,omitempty"`
	Output   []byte         `json:"output,omitempty"`
}

// TxFilter matches transactions. Fields left as nothing match anything.
type TxFilter struct {
	From     maybe.Maybe[codec.Address]
	To       maybe.Maybe[codec.Address]
	Value    maybe.Maybe[uint64]
	Deploy   maybe.Maybe[bool]
	Success  maybe.Maybe[bool]
	ExitCode maybe.Maybe[chain.ExitCode]
}

func matches[T comparable](want maybe.Maybe[T], got T) bool {
	return want.IsNothing() || want.Value() == got
}

func (f TxFilter) Match(tx *Transaction) bool {
	return matches(f.From, tx.From) &&
		matches(f.To, tx.To) &&
		matches(f.Value, tx.Value) &&
		matches(f.Deploy, tx.Deploy) &&
		matches(f.Success, tx.Success) &&
		matches(f.ExitCode, tx.ExitCode)
}

// Transactions are ordered by sequence number.
type Transactions []*Transaction

// Find returns the first transaction matching [f].
func (txs Transactions) Find(f TxFilter) (*Transaction, bool) {
	for _, tx := range txs {
		if f.Match(tx) {
			return tx, true
		}
	}
	return nil, false
}

// Filter returns every transaction matching [f].
func (txs Transactions) Filter(f TxFilter) Transactions {
	var matched Transactions
	for _, tx := range txs {
		if f.Match(tx) {
			matched = append(matched, tx)
		}
	}
	return matched
}

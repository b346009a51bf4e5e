// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "github.com/ava-labs/countervm/codec"

// Message is an inbound message delivered by the host.
type Message struct {
	From  codec.Address `json:"from"`
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`

	// Body is empty for a no-code deposit. Otherwise it starts with a
	// 32-bit op-code.
	Body []byte `json:"body"`

	// Init carries deployment data. It is only read when [To] has not been
	// initialized yet.
	Init []byte `json:"init,omitempty"`
}

// Transfer is an outbound value transfer emitted by an action.
type Transfer struct {
	To    codec.Address `json:"to"`
	Value uint64        `json:"value"`
}

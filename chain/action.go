// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
)

// Rules are the contract parameters fixed by the host at deployment.
type Rules interface {
	// GetMinimumReserve is the balance the account must retain after any
	// withdrawal.
	GetMinimumReserve() uint64
}

// Action is a decoded inbound message.
type Action interface {
	// GetTypeID uniquely identifies the kind of action. For explicit
	// messages it is the op-code of the body.
	GetTypeID() uint32

	// StateKeys is the full set of keys [Execute] may touch, with the
	// permissions it needs on each.
	StateKeys(actor codec.Address) state.Keys

	// Size is the encoded size of the action's fields, without op-code.
	Size() int

	// Marshal encodes the action's fields, without op-code.
	Marshal(p *codec.Packer)

	// Execute applies the action on behalf of [actor]. Any returned error
	// discards every write made to [mu]. [transfers] are outbound value
	// transfers the host delivers once the state is committed.
	Execute(
		ctx context.Context,
		r Rules,
		mu state.Mutable,
		actor codec.Address,
	) (output []byte, transfers []*Transfer, err error)
}

// Parser provides the action set a [Processor] dispatches over.
type Parser interface {
	// ActionRegistry decodes explicit messages by op-code.
	ActionRegistry() *codec.TypeParser[Action]

	// NoCodeAction handles a message with an empty body.
	NoCodeAction() Action

	// DeployAction decodes the init data of a deployment message.
	DeployAction(init []byte) (Action, error)

	// Initialized reports whether the account has been deployed.
	Initialized(ctx context.Context, im state.Immutable) (bool, error)
}

// MarshalBody encodes [a] as a message body: the op-code followed by the
// action's fields.
func MarshalBody(a Action) ([]byte, error) {
	p := codec.NewWriter(consts.Uint32Len+a.Size(), consts.MaxMessageSize)
	p.PackInt(a.GetTypeID())
	a.Marshal(p)
	return p.Bytes(), p.Err()
}

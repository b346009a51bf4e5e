// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/countervm/codec"
)

// SenderPredicate decides whether a sender holds a capability.
type SenderPredicate func(codec.Address) bool

// RequireSender returns [ErrUnauthorized] unless [actor] satisfies [pred].
func RequireSender(actor codec.Address, pred SenderPredicate) error {
	if pred == nil || !pred(actor) {
		return fmt.Errorf("%w: sender %s", ErrUnauthorized, actor)
	}
	return nil
}

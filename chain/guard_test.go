// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/codec"
)

func TestRequireSender(t *testing.T) {
	require := require.New(t)
	owner := codec.CreateAddress(0, ids.GenerateTestID())
	other := codec.CreateAddress(0, ids.GenerateTestID())
	isOwner := func(a codec.Address) bool { return a == owner }

	require.NoError(RequireSender(owner, isOwner))

	err := RequireSender(other, isOwner)
	require.ErrorIs(err, ErrUnauthorized)
	require.Equal(ExitCodeUnauthorized, Code(err))

	require.ErrorIs(RequireSender(owner, nil), ErrUnauthorized)
}

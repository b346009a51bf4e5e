// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/countervm/consts"
)

func TestPackerInts(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(consts.Uint32Len+consts.Uint64Len, consts.MaxInt)
	wp.PackInt(7)
	wp.PackUint64(1337)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	require.Equal(uint32(7), rp.UnpackInt(true))
	require.Equal(uint64(1337), rp.UnpackUint64(true))
	require.NoError(rp.Done())
}

func TestPackerRequired(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(consts.Uint64Len, consts.MaxInt)
	wp.PackUint64(0)

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	require.Zero(rp.UnpackUint64(true))
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerAddress(t *testing.T) {
	require := require.New(t)
	addr := CreateAddress(0, ids.GenerateTestID())
	wp := NewWriter(AddressLen, consts.MaxInt)
	wp.PackAddress(addr)

	var parsed Address
	rp := NewReader(wp.Bytes(), consts.MaxInt)
	rp.UnpackAddress(true, &parsed)
	require.NoError(rp.Done())
	require.Equal(addr, parsed)

	rp = NewReader(make([]byte, AddressLen), consts.MaxInt)
	rp.UnpackAddress(false, &parsed)
	require.NoError(rp.Done())
	require.Equal(EmptyAddress, parsed)

	rp = NewReader(make([]byte, AddressLen), consts.MaxInt)
	rp.UnpackAddress(true, &parsed)
	require.ErrorIs(rp.Err(), ErrFieldNotPopulated)
}

func TestPackerShortRead(t *testing.T) {
	require := require.New(t)
	rp := NewReader([]byte{0x1, 0x2}, consts.MaxInt)
	rp.UnpackInt(false)
	require.Error(rp.Err())
}

func TestPackerExtraBytes(t *testing.T) {
	require := require.New(t)
	wp := NewWriter(consts.Uint64Len+consts.ByteLen, consts.MaxInt)
	wp.PackUint64(1)
	wp.PackByte(0xff)

	rp := NewReader(wp.Bytes(), consts.MaxInt)
	rp.UnpackUint64(true)
	require.ErrorIs(rp.Done(), ErrExtraBytes)
}

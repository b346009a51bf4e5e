// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	fromBits = 8
	toBits   = 5
)

// AddressBech32 returns a Bech32 address from [hrp] and [p].
func AddressBech32(hrp string, p Address) (string, error) {
	expanded, err := bech32.ConvertBits(p[:], fromBits, toBits, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, expanded)
}

// MustAddressBech32 panics if [AddressBech32] fails.
func MustAddressBech32(hrp string, p Address) string {
	addr, err := AddressBech32(hrp, p)
	if err != nil {
		panic(err)
	}
	return addr
}

// ParseAddressBech32 parses a Bech32 encoded address string and extracts
// its [Address]. If there is an error reading the address or the hrp
// value is not valid, ParseAddressBech32 returns an error.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, p, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, fmt.Errorf("%w: expected %s but got %s", ErrIncorrectHRP, hrp, phrp)
	}
	// The parsed data may be longer than [AddressLen] because bech32
	// pads to a multiple of 5 bits.
	b, err := bech32.ConvertBits(p, toBits, fromBits, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) < AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(b[:AddressLen]), nil
}

// ParseAnyAddress accepts either a Bech32 address with [hrp] or a hex
// address.
func ParseAnyAddress(hrp, saddr string) (Address, error) {
	if addr, err := ParseAddressBech32(hrp, saddr); err == nil {
		return addr, nil
	}
	return StringToAddress(saddr)
}

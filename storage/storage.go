// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// State
// 0x0/ (number)
// 0x1/ (owner address)
// 0x2/ (informational address)
// 0x3/ (recent increment sender)
// 0x4/ (balance)

const (
	numberPrefix byte = iota
	ownerPrefix
	addressPrefix
	recentPrefix
	balancePrefix
)

var (
	numberKey  = []byte{numberPrefix}
	ownerKey   = []byte{ownerPrefix}
	addressKey = []byte{addressPrefix}
	recentKey  = []byte{recentPrefix}
	balanceKey = []byte{balancePrefix}
)

func NumberKey() []byte  { return numberKey }
func OwnerKey() []byte   { return ownerKey }
func AddressKey() []byte { return addressKey }
func RecentKey() []byte  { return recentKey }
func BalanceKey() []byte { return balanceKey }

// Keys returns every key of the contract with [perm].
func Keys(perm state.Permissions) state.Keys {
	return state.Keys{
		string(numberKey):  perm,
		string(ownerKey):   perm,
		string(addressKey): perm,
		string(recentKey):  perm,
		string(balanceKey): perm,
	}
}

func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

func setUint64(ctx context.Context, mu state.Mutable, key []byte, val uint64) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, val))
}

func getAddress(ctx context.Context, im state.Immutable, key []byte) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	if len(v) != codec.AddressLen {
		return codec.EmptyAddress, false, fmt.Errorf("%w: address has %d bytes", ErrCorruptValue, len(v))
	}
	return codec.Address(v), true, nil
}

func setAddress(ctx context.Context, mu state.Mutable, key []byte, addr codec.Address) error {
	v := make([]byte, codec.AddressLen)
	copy(v, addr[:])
	return mu.Insert(ctx, key, v)
}

// GetNumber returns the counter, or 0 if the contract is not initialized.
func GetNumber(ctx context.Context, im state.Immutable) (uint64, error) {
	n, _, err := getUint64(ctx, im, numberKey)
	return n, err
}

func SetNumber(ctx context.Context, mu state.Mutable, n uint64) error {
	return setUint64(ctx, mu, numberKey, n)
}

// AddNumber advances the counter by [delta] and returns the new value.
// It never wraps: an overflow returns [ErrNumberOverflow].
func AddNumber(ctx context.Context, mu state.Mutable, delta uint64) (uint64, error) {
	n, err := GetNumber(ctx, mu)
	if err != nil {
		return 0, err
	}
	nn, err := smath.Add(n, delta)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add to number (number=%d, delta=%d)",
			ErrNumberOverflow,
			n,
			delta,
		)
	}
	return nn, SetNumber(ctx, mu, nn)
}

// GetOwner returns the owner address and whether it has been set.
func GetOwner(ctx context.Context, im state.Immutable) (codec.Address, bool, error) {
	return getAddress(ctx, im, ownerKey)
}

// SetOwner stores the owner. The owner can only be written once.
func SetOwner(ctx context.Context, mu state.Mutable, owner codec.Address) error {
	_, exists, err := GetOwner(ctx, mu)
	if err != nil {
		return err
	}
	if exists {
		return ErrOwnerImmutable
	}
	return setAddress(ctx, mu, ownerKey, owner)
}

// IsInitialized reports whether the contract has been deployed. The owner
// key is written exactly once, by deployment.
func IsInitialized(ctx context.Context, im state.Immutable) (bool, error) {
	_, exists, err := GetOwner(ctx, im)
	return exists, err
}

// OwnerPredicate returns a predicate matching the stored owner.
func OwnerPredicate(ctx context.Context, im state.Immutable) (func(codec.Address) bool, error) {
	owner, exists, err := GetOwner(ctx, im)
	if err != nil {
		return nil, err
	}
	return func(sender codec.Address) bool {
		return exists && sender == owner
	}, nil
}

func GetAddress(ctx context.Context, im state.Immutable) (codec.Address, error) {
	addr, _, err := getAddress(ctx, im, addressKey)
	return addr, err
}

func SetAddress(ctx context.Context, mu state.Mutable, addr codec.Address) error {
	return setAddress(ctx, mu, addressKey, addr)
}

// GetRecent returns the sender of the latest increment. The bool is false
// until the first increment.
func GetRecent(ctx context.Context, im state.Immutable) (codec.Address, bool, error) {
	return getAddress(ctx, im, recentKey)
}

func SetRecent(ctx context.Context, mu state.Mutable, sender codec.Address) error {
	return setAddress(ctx, mu, recentKey, sender)
}

func GetBalance(ctx context.Context, im state.Immutable) (uint64, error) {
	bal, _, err := getUint64(ctx, im, balanceKey)
	return bal, err
}

func SetBalance(ctx context.Context, mu state.Mutable, balance uint64) error {
	return setUint64(ctx, mu, balanceKey, balance)
}

func AddBalance(ctx context.Context, mu state.Mutable, amount uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, amount=%d)",
			ErrInvalidBalance,
			bal,
			amount,
		)
	}
	return nbal, SetBalance(ctx, mu, nbal)
}

// SubBalance removes [amount] from the balance while keeping at least
// [reserve] behind.
func SubBalance(ctx context.Context, mu state.Mutable, amount uint64, reserve uint64) (uint64, error) {
	bal, err := GetBalance(ctx, mu)
	if err != nil {
		return 0, err
	}
	required, err := smath.Add(amount, reserve)
	if err != nil || required > bal {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, amount=%d, reserve=%d)",
			ErrInvalidBalance,
			bal,
			amount,
			reserve,
		)
	}
	nbal := bal - amount
	return nbal, SetBalance(ctx, mu, nbal)
}

// Data is the read-only projection served by getData.
type Data struct {
	Number        uint64        `json:"number"`
	RecentAddress codec.Address `json:"recent_address"`
	HasRecent     bool          `json:"has_recent"`
}

func GetData(ctx context.Context, im state.Immutable) (*Data, error) {
	n, err := GetNumber(ctx, im)
	if err != nil {
		return nil, err
	}
	recent, ok, err := GetRecent(ctx, im)
	if err != nil {
		return nil, err
	}
	return &Data{Number: n, RecentAddress: recent, HasRecent: ok}, nil
}

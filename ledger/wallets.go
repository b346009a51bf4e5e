// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/utils"
)

// Host keys live above the contract key space (0x0-0x4).
const (
	walletPrefix   = 0x10
	contractPrefix = 0x11
)

var contractKey = []byte{contractPrefix}

// WalletAddress derives the wallet address of [name].
func WalletAddress(name string) codec.Address {
	return codec.CreateAddress(consts.WalletTypeID, utils.ToID([]byte(name)))
}

func walletKey(addr codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen)
	k[0] = walletPrefix
	copy(k[1:], addr[:])
	return k
}

// getWallet returns the balance of [addr] and whether the wallet exists.
func getWallet(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, bool, error) {
	v, err := im.GetValue(ctx, walletKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	bal, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, err
	}
	return bal, true, nil
}

func setWallet(ctx context.Context, mu state.Mutable, addr codec.Address, bal uint64) error {
	return mu.Insert(ctx, walletKey(addr), database.PackUInt64(bal))
}

func debitWallet(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	bal, _, err := getWallet(ctx, mu, addr)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf(
			"%w: wallet %s has %s, needs %s",
			ErrInsufficientFunds,
			addr,
			utils.FormatBalance(bal),
			utils.FormatBalance(amount),
		)
	}
	return setWallet(ctx, mu, addr, bal-amount)
}

func creditWallet(ctx context.Context, mu state.Mutable, addr codec.Address, amount uint64) error {
	bal, _, err := getWallet(ctx, mu, addr)
	if err != nil {
		return err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return fmt.Errorf("%w: wallet %s", ErrBalanceOverflow, addr)
	}
	return setWallet(ctx, mu, addr, nbal)
}

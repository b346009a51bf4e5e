// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/trace"
)

func newTestLedger(t *testing.T, db state.Database) *Ledger {
	l, err := New(
		logging.NoLog{},
		trace.Noop("test"),
		config.NewDefault(),
		genesis.NewDefaultRules(),
		db,
		prometheus.NewRegistry(),
	)
	require.NoError(t, err)
	return l
}

func deployMessage(t *testing.T, from codec.Address, value uint64) *chain.Message {
	g := genesis.NewDefaultGenesis(1337, from, from)
	init, err := g.InitBytes()
	require.NoError(t, err)
	return &chain.Message{
		From:  from,
		To:    genesis.ContractAddress(init),
		Value: value,
		Init:  init,
	}
}

func TestTreasury(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())

	addr, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	require.Equal(WalletAddress("alice"), addr)
	require.Equal(consts.WalletTypeID, addr.TypeID())

	bal, err := l.WalletBalance(ctx, addr)
	require.NoError(err)
	require.Equal(uint64(config.DefaultTreasuryBalance), bal)

	// A wallet is only funded once.
	_, err = l.Send(ctx, deployMessage(t, addr, 1_000))
	require.NoError(err)
	_, err = l.Treasury(ctx, "alice")
	require.NoError(err)
	bal, err = l.WalletBalance(ctx, addr)
	require.NoError(err)
	require.Equal(uint64(config.DefaultTreasuryBalance-1_000), bal)
}

func TestSendBeforeDeploy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	to := deployMessage(t, alice, 0).To

	body, err := chain.MarshalBody(&actions.Increment{Delta: 1})
	require.NoError(err)
	txs, err := l.Send(ctx, &chain.Message{From: alice, To: to, Value: 1_000, Body: body})
	require.NoError(err)
	require.Len(txs, 1)
	require.False(txs[0].Success)
	require.Equal(chain.ExitCodeUninitialized, txs[0].ExitCode)

	// The value stays with the sender.
	bal, err := l.WalletBalance(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(config.DefaultTreasuryBalance), bal)
	_, bound := l.Contract()
	require.False(bound)
}

func TestSendHostErrors(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	bob := WalletAddress("bob")

	// Recipient is a wallet.
	_, err = l.Send(ctx, &chain.Message{From: alice, To: bob})
	require.ErrorIs(err, ErrUnknownAccount)

	// Sender is not a wallet.
	msg := deployMessage(t, alice, 0)
	_, err = l.Send(ctx, &chain.Message{From: msg.To, To: msg.To})
	require.ErrorIs(err, ErrInvalidSender)

	// Init data must derive the recipient.
	mismatch := deployMessage(t, alice, 0)
	mismatch.To = codec.CreateAddress(consts.ContractTypeID, ids.GenerateTestID())
	_, err = l.Send(ctx, mismatch)
	require.ErrorIs(err, ErrAddressMismatch)

	// Unfunded sender.
	_, err = l.Send(ctx, deployMessage(t, bob, 1))
	require.ErrorIs(err, ErrInsufficientFunds)

	_, bound := l.Contract()
	require.False(bound)
	require.Empty(l.History())

	// Once bound, no other contract is hosted.
	require.NoError(deploy(ctx, l, alice))
	_, err = l.Send(ctx, &chain.Message{From: alice, To: mismatch.To})
	require.ErrorIs(err, ErrUnknownAccount)
}

func deploy(ctx context.Context, l *Ledger, from codec.Address) error {
	g := genesis.NewDefaultGenesis(1337, from, from)
	init, err := g.InitBytes()
	if err != nil {
		return err
	}
	_, err = l.Send(ctx, &chain.Message{
		From:  from,
		To:    genesis.ContractAddress(init),
		Value: 50_000_000,
		Init:  init,
	})
	return err
}

func TestComputeFee(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)

	txs, err := l.Send(ctx, deployMessage(t, alice, 50_000_000))
	require.NoError(err)
	require.True(txs[0].Deploy)
	require.Equal(uint64(config.DefaultComputeFee), txs[0].Fee)
	bal, err := l.GetBalance(ctx)
	require.NoError(err)
	require.Equal(uint64(50_000_000-config.DefaultComputeFee), bal)

	// Values below the fee are consumed entirely.
	contract, _ := l.Contract()
	txs, err = l.Send(ctx, &chain.Message{From: alice, To: contract, Value: 1_000})
	require.NoError(err)
	require.True(txs[0].Success)
	require.Equal(uint64(1_000), txs[0].Fee)
	bal, err = l.GetBalance(ctx)
	require.NoError(err)
	require.Equal(uint64(50_000_000-config.DefaultComputeFee), bal)
}

func TestCreditSurvivesRejection(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	require.NoError(deploy(ctx, l, alice))
	contract, _ := l.Contract()
	before, err := l.GetBalance(ctx)
	require.NoError(err)

	txs, err := l.Send(ctx, &chain.Message{
		From:  alice,
		To:    contract,
		Value: 10_000_000,
		Body:  []byte{0xff, 0xff, 0xff, 0xfe},
	})
	require.NoError(err)
	require.False(txs[0].Success)
	require.Equal(chain.ExitCodeUnknownOp, txs[0].ExitCode)

	after, err := l.GetBalance(ctx)
	require.NoError(err)
	require.Equal(before+10_000_000-config.DefaultComputeFee, after)
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := memdb.New()
	l := newTestLedger(t, db)
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	require.NoError(deploy(ctx, l, alice))
	contract, _ := l.Contract()

	l = newTestLedger(t, db)
	reopened, bound := l.Contract()
	require.True(bound)
	require.Equal(contract, reopened)
	data, err := l.GetData(ctx)
	require.NoError(err)
	require.Equal(uint64(1337), data.Number)
}

func TestHistory(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l := newTestLedger(t, memdb.New())
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)
	require.NoError(deploy(ctx, l, alice))
	contract, _ := l.Contract()

	body, err := chain.MarshalBody(&actions.WithdrawalRequest{Amount: 1})
	require.NoError(err)
	txs, err := l.Send(ctx, &chain.Message{From: alice, To: contract, Body: body})
	require.NoError(err)
	require.Len(txs, 2)
	require.Equal(contract, txs[1].From)
	require.Equal(alice, txs[1].To)
	require.Equal(uint64(1), txs[1].Value)

	history := l.History()
	require.Len(history, 3)
	require.Equal(uint64(3), l.LastSeqno())
	for i, tx := range history {
		require.Equal(uint64(i+1), tx.Seqno)
	}
	require.Len(history.Filter(TxFilter{From: maybe.Some(alice)}), 2)
	_, ok := history.Find(TxFilter{Success: maybe.Some(false)})
	require.False(ok)
}

var errWriteFailed = errors.New("write failed")

// failingDB rejects every write while [fail] is set.
type failingDB struct {
	*memdb.Database

	fail bool
}

func (db *failingDB) Put(k, v []byte) error {
	if db.fail {
		return errWriteFailed
	}
	return db.Database.Put(k, v)
}

func (db *failingDB) NewBatch() state.Batch {
	return &failingBatch{Batch: db.Database.NewBatch(), db: db}
}

type failingBatch struct {
	database.Batch

	db *failingDB
}

func (b *failingBatch) Write() error {
	if b.db.fail {
		return errWriteFailed
	}
	return b.Batch.Write()
}

func TestSendWriteFailureKeepsNothing(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	db := &failingDB{Database: memdb.New()}
	l := newTestLedger(t, db)
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)

	// A failed deploy leaves the contract unbound.
	db.fail = true
	_, err = l.Send(ctx, deployMessage(t, alice, 50_000_000))
	require.ErrorIs(err, errWriteFailed)
	_, bound := l.Contract()
	require.False(bound)
	require.Empty(l.History())
	require.Zero(l.LastSeqno())
	bal, err := l.WalletBalance(ctx, alice)
	require.NoError(err)
	require.Equal(uint64(config.DefaultTreasuryBalance), bal)

	db.fail = false
	require.NoError(deploy(ctx, l, alice))
	contract, _ := l.Contract()
	walletBefore, err := l.WalletBalance(ctx, alice)
	require.NoError(err)
	contractBefore, err := l.GetBalance(ctx)
	require.NoError(err)
	seqno := l.LastSeqno()

	// Neither the credit, the contract debit nor the payout survive a
	// withdrawal that cannot be written.
	body, err := chain.MarshalBody(&actions.WithdrawalRequest{Amount: 1_000})
	require.NoError(err)
	db.fail = true
	_, err = l.Send(ctx, &chain.Message{From: alice, To: contract, Value: 10_000_000, Body: body})
	require.ErrorIs(err, errWriteFailed)
	db.fail = false

	walletAfter, err := l.WalletBalance(ctx, alice)
	require.NoError(err)
	require.Equal(walletBefore, walletAfter)
	contractAfter, err := l.GetBalance(ctx)
	require.NoError(err)
	require.Equal(contractBefore, contractAfter)
	require.Equal(seqno, l.LastSeqno())
	require.Len(l.History(), int(seqno))

	// The next message carries on from the last recorded seqno.
	txs, err := l.Send(ctx, &chain.Message{From: alice, To: contract, Value: 10_000_000, Body: body})
	require.NoError(err)
	require.Len(txs, 2)
	require.Equal(seqno+1, txs[0].Seqno)
	require.Equal(seqno+2, txs[1].Seqno)
}

type recordingTracer struct {
	oteltrace.Tracer
}

func (recordingTracer) Close() error {
	return nil
}

func TestSendSpanValue(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	l, err := New(
		logging.NoLog{},
		recordingTracer{Tracer: tp.Tracer("test")},
		config.NewDefault(),
		genesis.NewDefaultRules(),
		memdb.New(),
		prometheus.NewRegistry(),
	)
	require.NoError(err)
	alice, err := l.Treasury(ctx, "alice")
	require.NoError(err)

	_, err = l.Send(ctx, deployMessage(t, alice, consts.MaxUint64))
	require.ErrorIs(err, ErrInsufficientFunds)

	var found bool
	for _, span := range recorder.Ended() {
		if span.Name() != "Ledger.Send" {
			continue
		}
		found = true
		require.Contains(span.Attributes(), attribute.String("value", "18446744073709551615"))
	}
	require.True(found)
}

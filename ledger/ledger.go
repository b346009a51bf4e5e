// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/genesis"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"
)

// Config is the host configuration the ledger needs.
type Config interface {
	GetComputeFee() uint64
	GetTreasuryBalance() uint64
}

// Ledger is a host sandbox for a single contract account. Messages are
// delivered one at a time, each processed to completion.
type Ledger struct {
	log       logging.Logger
	tracer    trace.Tracer
	cfg       Config
	db        state.Database
	processor *chain.Processor
	metrics   *metrics

	lock     sync.Mutex
	contract codec.Address
	bound    bool
	history  Transactions

	seqno atomic.Uint64
}

func New(
	log logging.Logger,
	tracer trace.Tracer,
	cfg Config,
	rules chain.Rules,
	db state.Database,
	registerer prometheus.Registerer,
) (*Ledger, error) {
	parser, err := actions.NewParser()
	if err != nil {
		return nil, err
	}
	metrics, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	l := &Ledger{
		log:       log,
		tracer:    tracer,
		cfg:       cfg,
		db:        db,
		processor: chain.NewProcessor(parser, rules),
		metrics:   metrics,
	}

	// Reopen a bound contract from disk.
	v, err := db.Get(contractKey)
	switch {
	case err == nil:
		if len(v) != codec.AddressLen {
			return nil, fmt.Errorf("%w: contract address of %d bytes", storage.ErrCorruptValue, len(v))
		}
		l.contract = codec.Address(v)
		l.bound = true
	case errors.Is(err, database.ErrNotFound):
	default:
		return nil, err
	}
	return l, nil
}

// Treasury returns the wallet of [name], funding it with the configured
// treasury balance the first time it is used.
func (l *Ledger) Treasury(ctx context.Context, name string) (codec.Address, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	addr := WalletAddress(name)
	mu := state.NewSimpleMutable(l.db)
	_, exists, err := getWallet(ctx, mu, addr)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if exists {
		return addr, nil
	}
	if err := setWallet(ctx, mu, addr, l.cfg.GetTreasuryBalance()); err != nil {
		return codec.EmptyAddress, err
	}
	if err := mu.Commit(ctx); err != nil {
		return codec.EmptyAddress, err
	}
	l.log.Debug("funded treasury wallet",
		zap.String("name", name),
		zap.Stringer("address", addr),
	)
	return addr, nil
}

// Send delivers [msg] to the contract and returns the transactions it
// produced: the inbound message first, followed by any outbound transfers.
//
// An error is returned only if the host could not deliver the message at
// all, in which case nothing it wrote is kept. A message rejected by the
// contract yields a failed transaction.
func (l *Ledger) Send(ctx context.Context, msg *chain.Message) (Transactions, error) {
	ctx, span := l.tracer.Start(ctx, "Ledger.Send", oteltrace.WithAttributes(
		attribute.String("from", msg.From.String()),
		attribute.String("value", strconv.FormatUint(msg.Value, 10)),
		attribute.Int("body", len(msg.Body)),
	))
	defer span.End()

	l.lock.Lock()
	defer l.lock.Unlock()

	if msg.From.TypeID() != consts.WalletTypeID {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSender, msg.From)
	}
	bind, err := l.checkRecipient(msg)
	if err != nil {
		return nil, err
	}

	committed := state.NewReadOnly(l.db)
	action, parseErr := l.processor.Parse(ctx, committed, msg)
	if errors.Is(parseErr, chain.ErrUninitialized) {
		// Nothing is deployed to take the value, so it stays with the
		// sender.
		tx := l.newTransaction(msg, 0)
		l.fail(tx, parseErr)
		l.metrics.record(tx, false)
		return l.finish(Transactions{tx}), nil
	}

	// Every write of the message goes through [mu] and is committed at
	// once.
	mu := state.NewSimpleMutable(l.db)

	// The value is credited whatever the contract decides.
	fee := min(msg.Value, l.cfg.GetComputeFee())
	credit := msg.Value - fee
	if err := debitWallet(ctx, mu, msg.From, msg.Value); err != nil {
		return nil, err
	}
	if _, err := storage.AddBalance(ctx, mu, credit); err != nil {
		return nil, err
	}
	if bind {
		if err := mu.Insert(ctx, contractKey, msg.To[:]); err != nil {
			return nil, err
		}
	}

	tx := l.newTransaction(msg, fee)
	txs := Transactions{tx}
	parsed := parseErr == nil
	if !parsed {
		l.fail(tx, parseErr)
	} else {
		tx.TypeID = action.GetTypeID()
		tx.Deploy = tx.TypeID == consts.DeployID

		result, err := l.execute(ctx, mu, msg.From, action)
		if err != nil {
			return nil, err
		}
		tx.Success = result.Success
		tx.ExitCode = result.ExitCode
		tx.Error = string(result.Error)
		tx.Output = result.Output
		if result.Success {
			for _, transfer := range result.Transfers {
				out, err := deliver(ctx, mu, msg.To, transfer)
				if err != nil {
					return nil, err
				}
				txs = append(txs, out)
			}
		}
	}

	if err := mu.Commit(ctx); err != nil {
		return nil, err
	}
	if bind {
		l.contract = msg.To
		l.bound = true
		l.log.Info("bound contract", zap.Stringer("address", msg.To))
	}
	l.metrics.credited.Add(float64(credit))
	l.metrics.fees.Add(float64(fee))
	l.metrics.record(tx, parsed)
	if parsed && !tx.Success {
		l.log.Debug("message rejected",
			zap.Stringer("from", msg.From),
			zap.String("kind", actions.Name(tx.TypeID)),
			zap.Uint32("exitCode", uint32(tx.ExitCode)),
			zap.String("error", tx.Error),
		)
	}
	for _, out := range txs[1:] {
		l.metrics.withdrawn.Add(float64(out.Value))
		l.log.Info("delivered transfer",
			zap.Stringer("to", out.To),
			zap.String("value", utils.FormatBalance(out.Value)),
		)
	}
	return l.finish(txs), nil
}

// checkRecipient reports whether [msg] deploys the contract the ledger
// hosts.
func (l *Ledger) checkRecipient(msg *chain.Message) (bool, error) {
	if l.bound {
		if msg.To != l.contract {
			return false, fmt.Errorf("%w: %s", ErrUnknownAccount, msg.To)
		}
		return false, nil
	}
	if msg.To.TypeID() != consts.ContractTypeID {
		return false, fmt.Errorf("%w: %s", ErrUnknownAccount, msg.To)
	}
	if len(msg.Init) == 0 {
		return false, nil
	}
	if addr := genesis.ContractAddress(msg.Init); addr != msg.To {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrAddressMismatch, addr, msg.To)
	}
	return true, nil
}

// execute runs [action] in a view scoped to its state keys and writes the
// view to [mu] if it succeeds.
func (l *Ledger) execute(ctx context.Context, mu state.Mutable, actor codec.Address, action chain.Action) (*chain.Result, error) {
	ctx, span := l.tracer.Start(ctx, "Ledger.execute", oteltrace.WithAttributes(
		attribute.String("kind", actions.Name(action.GetTypeID())),
	))
	defer span.End()

	keys := action.StateKeys(actor)
	scope := make(map[string][]byte, len(keys))
	for k := range keys {
		v, err := mu.GetValue(ctx, []byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		scope[k] = v
	}

	ts := tstate.New(len(keys))
	view := ts.NewView(keys, scope)
	result := l.processor.Execute(ctx, view, actor, action)
	if !result.Success {
		return result, nil
	}
	view.Commit()
	if err := ts.WriteTo(ctx, mu); err != nil {
		return nil, err
	}
	return result, nil
}

// deliver pays out a transfer the contract has already debited itself for.
func deliver(ctx context.Context, mu state.Mutable, from codec.Address, transfer *chain.Transfer) (*Transaction, error) {
	if err := creditWallet(ctx, mu, transfer.To, transfer.Value); err != nil {
		return nil, err
	}
	return &Transaction{
		From:    from,
		To:      transfer.To,
		Value:   transfer.Value,
		Success: true,
	}, nil
}

func (*Ledger) newTransaction(msg *chain.Message, fee uint64) *Transaction {
	return &Transaction{
		From:  msg.From,
		To:    msg.To,
		Value: msg.Value,
		Fee:   fee,
	}
}

func (*Ledger) fail(tx *Transaction, err error) {
	tx.Success = false
	tx.ExitCode = chain.Code(err)
	tx.Error = err.Error()
}

// finish numbers [txs] and appends them to the history.
func (l *Ledger) finish(txs Transactions) Transactions {
	for _, tx := range txs {
		tx.Seqno = l.seqno.Inc()
	}
	l.history = append(l.history, txs...)
	return txs
}

// Contract returns the address of the hosted contract, once deployed.
func (l *Ledger) Contract() (codec.Address, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.contract, l.bound
}

// LastSeqno is the sequence number of the latest recorded transaction.
func (l *Ledger) LastSeqno() uint64 {
	return l.seqno.Load()
}

// History returns every transaction recorded since the ledger was created.
func (l *Ledger) History() Transactions {
	l.lock.Lock()
	defer l.lock.Unlock()

	return append(Transactions{}, l.history...)
}

func (l *Ledger) GetData(ctx context.Context) (*storage.Data, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return storage.GetData(ctx, state.NewReadOnly(l.db))
}

func (l *Ledger) GetBalance(ctx context.Context) (uint64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	return storage.GetBalance(ctx, state.NewReadOnly(l.db))
}

func (l *Ledger) WalletBalance(ctx context.Context, addr codec.Address) (uint64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	bal, _, err := getWallet(ctx, state.NewReadOnly(l.db), addr)
	return bal, err
}

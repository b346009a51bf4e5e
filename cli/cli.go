// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/config"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/utils"

	cvtrace "github.com/ava-labs/countervm/trace"
)

const (
	loggerName = "countervm-cli"
	dbDir      = "db"
)

// Handler owns everything a CLI invocation needs: the logger, the tracer,
// the on-disk database and the ledger opened on top of it.
type Handler struct {
	cfg *config.Config

	log     logging.Logger
	closer  func()
	tracer  trace.Tracer
	db      *pebble.Database
	dbReg   *prometheus.Registry
	ledReg  *prometheus.Registry
	ledger  *ledger.Ledger
	dataDir string
}

func New(cfg *config.Config, rules chain.Rules) (*Handler, error) {
	log, closer, err := NewLogger(cfg, loggerName)
	if err != nil {
		return nil, err
	}
	h := &Handler{cfg: cfg, log: log, closer: closer}
	if err := h.open(rules); err != nil {
		_ = h.Close()
		return nil, err
	}
	return h, nil
}

func (h *Handler) open(rules chain.Rules) error {
	tracer, err := cvtrace.New(h.cfg.GetTraceConfig())
	if err != nil {
		return err
	}
	h.tracer = tracer

	h.dataDir, err = utils.InitSubDirectory(h.cfg.GetDataDir(), dbDir)
	if err != nil {
		return err
	}
	h.db, h.dbReg, err = pebble.New(h.dataDir, pebble.NewDefaultConfig())
	if err != nil {
		return err
	}
	h.ledReg = prometheus.NewRegistry()
	h.ledger, err = ledger.New(h.log, h.tracer, h.cfg, rules, h.db, h.ledReg)
	if err != nil {
		return err
	}
	h.log.Debug("opened ledger", zap.String("dataDir", h.dataDir))
	return nil
}

func (h *Handler) Config() *config.Config { return h.cfg }
func (h *Handler) Log() logging.Logger    { return h.log }
func (h *Handler) Ledger() *ledger.Ledger { return h.ledger }

// Gatherer collects both the ledger and the database metrics.
func (h *Handler) Gatherer() prometheus.Gatherer {
	return prometheus.Gatherers{h.ledReg, h.dbReg}
}

// Close releases the database, the tracer and the logger, in that order.
func (h *Handler) Close() error {
	var errs []error
	if h.db != nil {
		errs = append(errs, h.db.Close())
	}
	if h.tracer != nil {
		errs = append(errs, h.tracer.Close())
	}
	if h.closer != nil {
		h.closer()
	}
	return errors.Join(errs...)
}

// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"strconv"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/countervm/actions"
)

const namespace = "ledger"

type metrics struct {
	messages  *prometheus.CounterVec
	failures  *prometheus.CounterVec
	credited  prometheus.Counter
	withdrawn prometheus.Counter
	fees      prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages",
			Help:      "number of messages delivered to the contract",
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures",
			Help:      "number of rejected messages",
		}, []string{"exit_code"}),
		credited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credited",
			Help:      "base units credited to the contract",
		}),
		withdrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawn",
			Help:      "base units transferred out of the contract",
		}),
		fees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees",
			Help:      "base units charged as compute fees",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.messages),
		r.Register(m.failures),
		r.Register(m.credited),
		r.Register(m.withdrawn),
		r.Register(m.fees),
	)
	return m, errs.Err
}

// record counts an inbound message. Messages that could not be parsed have
// no kind.
func (m *metrics) record(tx *Transaction, parsed bool) {
	kind := "unparsed"
	if parsed {
		kind = actions.Name(tx.TypeID)
	}
	m.messages.WithLabelValues(kind).Inc()
	if !tx.Success {
		m.failures.WithLabelValues(strconv.FormatUint(uint64(tx.ExitCode), 10)).Inc()
	}
}

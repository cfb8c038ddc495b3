// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes operations on the builtin contracts one at a time.
// Each operation is atomic: it either commits all its state changes and signals or none.
package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/slotauction/builtin"
	"github.com/vechain/slotauction/builtin/listregistry"
	"github.com/vechain/slotauction/builtin/oracle"
	"github.com/vechain/slotauction/builtin/reverts"
	"github.com/vechain/slotauction/builtin/solidity"
	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/builtin/token"
	"github.com/vechain/slotauction/builtin/wrapper"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/metrics"
	"github.com/vechain/slotauction/state"
	"github.com/vechain/slotauction/thor"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metaAddress = thor.BytesToAddress([]byte("Runtime"))
	slotSeq     = thor.BytesToBytes32([]byte("seq"))
	slotTick    = thor.BytesToBytes32([]byte("tick"))

	metricOps        = metrics.LazyLoadCounterVec("runtime_ops_count", []string{"op", "outcome"})
	metricOpDuration = metrics.LazyLoadHistogram("runtime_op_duration_us", metrics.BucketOpMicros)
	metricSinkErrors = metrics.LazyLoadCounter("runtime_sink_errors_count")
	metricTick       = metrics.LazyLoadGauge("runtime_tick")
)

const defaultPriceCacheSize = 256

// EventSink receives the signals of committed operations.
type EventSink interface {
	Insert(ctx context.Context, events []*eventdb.Event) error
}

// Options configures a Runtime.
type Options struct {
	PriceCacheSize int
	Sink           EventSink
}

// Contracts are the builtins bound to the state and tick of one operation.
type Contracts struct {
	Tick         uint64
	Sponsorship  *sponsorship.Sponsorship
	Token        *token.Token
	Oracle       *oracle.Oracle
	Wrapper      *wrapper.Wrapper
	ListRegistry *listregistry.Registry
	State        *state.State
}

// Op is an operation over the contracts.
type Op func(c *Contracts) error

// Receipt describes a committed operation.
type Receipt struct {
	Seq    uint64               `json:"seq"`
	Tick   uint64               `json:"tick"`
	Events []*sponsorship.Event `json:"events"`
}

// Runtime serializes operations over a state.
type Runtime struct {
	mu     sync.Mutex
	state  *state.State
	clock  Clock
	prices *oracle.Cache
	sink   EventSink

	seq      *solidity.Raw[uint64]
	lastTick *solidity.Raw[uint64]
}

// New creates a runtime over state.
func New(st *state.State, clock Clock, opts Options) (*Runtime, error) {
	size := opts.PriceCacheSize
	if size <= 0 {
		size = defaultPriceCacheSize
	}
	prices, err := oracle.NewCache(size)
	if err != nil {
		return nil, err
	}
	meta := solidity.NewContext(metaAddress, st)
	return &Runtime{
		state:    st,
		clock:    clock,
		prices:   prices,
		sink:     opts.Sink,
		seq:      solidity.NewRaw[uint64](meta, slotSeq),
		lastTick: solidity.NewRaw[uint64](meta, slotTick),
	}, nil
}

// Seq returns the number of committed operations.
func (r *Runtime) Seq() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seq.Get()
}

// Tick returns the tick the next operation would run at.
func (r *Runtime) Tick() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tick()
}

// tick never goes backwards.
func (r *Runtime) tick() (uint64, error) {
	last, err := r.lastTick.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get last tick")
	}
	return max(r.clock.Tick(), last), nil
}

func (r *Runtime) bind(tick uint64, emit func(*sponsorship.Event)) *Contracts {
	tokens := builtin.Token.Native(r.state)
	o := builtin.Oracle.Native(r.state, r.prices)
	engine := builtin.Sponsorship.Native(r.state, &sponsorship.Env{
		Tick:   tick,
		Oracle: o,
		Bank:   tokens,
		Emit:   emit,
	})
	return &Contracts{
		Tick:         tick,
		Sponsorship:  engine,
		Token:        tokens,
		Oracle:       o,
		Wrapper:      builtin.Wrapper.Native(r.state, tokens, engine),
		ListRegistry: builtin.ListRegistry.Native(r.state),
		State:        r.state,
	}
}

// Execute runs op atomically at the current tick. On error, nothing op did is kept.
func (r *Runtime) Execute(ctx context.Context, name string, op Op) (*Receipt, error) {
	start := time.Now()
	receipt, err := r.execute(ctx, op)

	metricOpDuration().Observe(time.Since(start).Microseconds())
	metricOps().AddWithLabel(1, map[string]string{"op": name, "outcome": outcome(err)})
	if err != nil {
		logger.Debug("operation rejected", "op", name, "err", err)
		return nil, err
	}
	logger.Debug("operation committed", "op", name, "seq", receipt.Seq, "tick", receipt.Tick, "events", len(receipt.Events))
	return receipt, nil
}

func (r *Runtime) execute(ctx context.Context, op Op) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tick, err := r.tick()
	if err != nil {
		return nil, err
	}

	var events []*sponsorship.Event
	chk := r.state.NewCheckpoint()
	c := r.bind(tick, func(ev *sponsorship.Event) { events = append(events, ev) })

	seq, err := r.run(c, op)
	if err != nil {
		r.state.RevertTo(chk)
		r.prices.Purge()
		return nil, err
	}
	metricTick().Set(int64(tick))

	if r.sink != nil && len(events) > 0 {
		records := make([]*eventdb.Event, 0, len(events))
		for i, ev := range events {
			records = append(records, &eventdb.Event{Seq: seq, Index: uint32(i), Tick: tick, Event: *ev})
		}
		// state is committed already; a lost record must not undo the operation
		if err := r.sink.Insert(ctx, records); err != nil {
			metricSinkErrors().Add(1)
			logger.Warn("failed to record events", "seq", seq, "err", err)
		}
	}
	return &Receipt{Seq: seq, Tick: tick, Events: events}, nil
}

func (r *Runtime) run(c *Contracts, op Op) (uint64, error) {
	if err := op(c); err != nil {
		return 0, err
	}
	seq, err := r.seq.Get()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get seq")
	}
	seq++
	if err := r.seq.Set(seq); err != nil {
		return 0, errors.Wrap(err, "failed to set seq")
	}
	if err := r.lastTick.Set(c.Tick); err != nil {
		return 0, errors.Wrap(err, "failed to set tick")
	}
	if err := r.state.Stage().Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return seq, nil
}

// View runs fn at the current tick and discards whatever it changed.
func (r *Runtime) View(ctx context.Context, fn Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tick, err := r.tick()
	if err != nil {
		return err
	}
	chk := r.state.NewCheckpoint()
	defer r.state.RevertTo(chk)
	return fn(r.bind(tick, nil))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := reverts.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "error"
}

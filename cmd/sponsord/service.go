// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/slotauction/api"
	"github.com/vechain/slotauction/api/node"
	"github.com/vechain/slotauction/eventdb"
	"github.com/vechain/slotauction/genesis"
	"github.com/vechain/slotauction/log"
	"github.com/vechain/slotauction/lvldb"
	"github.com/vechain/slotauction/metrics"
	"github.com/vechain/slotauction/runtime"
	"github.com/vechain/slotauction/state"
)

var metricClockTick = metrics.LazyLoadGauge("clock_tick")

type service struct {
	gene     *genesis.Genesis
	mainDB   *lvldb.LevelDB
	eventDB  *eventdb.EventDB
	dataDir  string
	interval uint64
	solo     bool
}

// newRuntime binds the databases to the genesis and applies it on first start.
func (s *service) newRuntime(ctx context.Context, clock runtime.Clock) (*runtime.Runtime, error) {
	if err := bindGenesis(s.mainDB, s.gene); err != nil {
		return nil, err
	}
	rt, err := runtime.New(state.New(s.mainDB), clock, runtime.Options{Sink: s.eventDB})
	if err != nil {
		return nil, err
	}

	seq, err := rt.Seq()
	if err != nil {
		return nil, err
	}
	if seq == 0 {
		if _, err := rt.Execute(ctx, "genesis", s.gene.Apply); err != nil {
			return nil, errors.WithMessage(err, "apply genesis")
		}
		log.Info("genesis applied", "id", s.gene.ID())
		return rt, nil
	}

	lastSeq, err := s.eventDB.LastSeq(ctx)
	if err != nil {
		return nil, err
	}
	if lastSeq < seq {
		log.Warn("event log is behind the state, some signals were not recorded", "state", seq, "events", lastSeq)
	}
	return rt, nil
}

// watchTicks reports every tick of the clock until ctx is done.
func watchTicks(ctx context.Context, rt *runtime.Runtime, clock *runtime.WallClock) error {
	for {
		tick, err := rt.Tick()
		if err != nil {
			return err
		}
		metricClockTick().Set(int64(tick))
		log.Trace("tick", "tick", tick)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(clock.Until()):
		}
	}
}

func (s *service) run(exit context.Context, ctx *cli.Context) error {
	clock := runtime.NewWallClock(s.gene.LaunchTime(), s.interval)
	rt, err := s.newRuntime(exit, clock)
	if err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.WithMessage(err, "unable to start metrics server")
		}
		log.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	var enableAPILogs atomic.Bool
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler := api.New(rt, s.eventDB, node.Info{
		Network:      s.gene.Name(),
		GenesisID:    s.gene.ID(),
		LaunchTime:   s.gene.LaunchTime(),
		TickInterval: s.interval,
	}, api.Options{
		AllowedOrigins:     ctx.String(apiCorsFlag.Name),
		EventsLimit:        ctx.Uint64(apiEventsLimitFlag.Name),
		EnableMetrics:      ctx.Bool(enableMetricsFlag.Name),
		EnableReqLogger:    &enableAPILogs,
		SlowQueryThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
	})

	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); srvCloser() }()

	tick, err := rt.Tick()
	if err != nil {
		return err
	}
	seq, err := rt.Seq()
	if err != nil {
		return err
	}
	printStartupMessage(os.Stdout, s.gene, s.interval, tick, seq, s.dataDir, apiURL)
	if s.solo {
		printSoloAccounts(os.Stdout)
	}

	g, gctx := errgroup.WithContext(exit)
	g.Go(func() error {
		return watchTicks(gctx, rt, clock)
	})
	return g.Wait()
}

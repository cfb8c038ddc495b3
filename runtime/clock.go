// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync/atomic"
	"time"
)

// Clock tells the current tick.
type Clock interface {
	Tick() uint64
}

// ManualClock is a clock moved by hand, for tests and tooling.
type ManualClock struct {
	tick atomic.Uint64
}

// NewManualClock creates a manual clock at tick.
func NewManualClock(tick uint64) *ManualClock {
	c := &ManualClock{}
	c.tick.Store(tick)
	return c
}

func (c *ManualClock) Tick() uint64 { return c.tick.Load() }

// Set moves the clock to tick.
func (c *ManualClock) Set(tick uint64) { c.tick.Store(tick) }

// Advance moves the clock forward by n ticks.
func (c *ManualClock) Advance(n uint64) { c.tick.Add(n) }

// WallClock derives ticks from the system time: (now - launchTime) / interval.
type WallClock struct {
	launchTime uint64
	interval   uint64
	now        func() time.Time
}

// NewWallClock creates a wall clock. interval is in seconds and must be positive.
func NewWallClock(launchTime, interval uint64) *WallClock {
	if interval == 0 {
		panic("zero tick interval")
	}
	return &WallClock{launchTime, interval, time.Now}
}

// Tick returns the ticks elapsed since launch, zero before it.
func (c *WallClock) Tick() uint64 {
	now := uint64(c.now().Unix())
	if now <= c.launchTime {
		return 0
	}
	return (now - c.launchTime) / c.interval
}

// Until returns the time left until the next tick.
func (c *WallClock) Until() time.Duration {
	next := c.launchTime + (c.Tick()+1)*c.interval
	return time.Until(time.Unix(int64(next), 0))
}

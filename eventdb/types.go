// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/vechain/slotauction/builtin/sponsorship"
	"github.com/vechain/slotauction/thor"
)

// Event is a signal as recorded: the operation sequence number, its position within
// the operation and the tick the operation ran at.
type Event struct {
	Seq   uint64 `json:"seq"`
	Index uint32 `json:"index"`
	Tick  uint64 `json:"tick"`
	sponsorship.Event
}

type OrderType string

const (
	ASC  OrderType = "asc"
	DESC OrderType = "desc"
)

// Range is an inclusive tick range. A To below From leaves it open-ended.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects events. Empty criteria match everything.
type Filter struct {
	Names    []string      `json:"names"`
	Sponsor  *thor.Bytes32 `json:"sponsor"`
	Campaign *thor.Bytes32 `json:"campaign"`
	Range    *Range        `json:"range"`
	Order    OrderType     `json:"order"` // default asc
	Options  *Options      `json:"options"`
}
